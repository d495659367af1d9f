package main

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "hotel-loadtest",
		Usage: "race identical BOOK requests per room and check that each room is booked once",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Value: "localhost:8080", EnvVars: []string{"HOTEL_ADDR"}},
			&cli.IntFlag{Name: "rooms", Value: 18, Usage: "rooms 1..N are targeted"},
			&cli.IntFlag{Name: "requests", Value: 100, Usage: "requests per room"},
			&cli.IntFlag{Name: "concurrency", Value: 200, Usage: "requests in flight"},
			&cli.StringFlag{Name: "check-in", Usage: "defaults to 30 days from now"},
			&cli.StringFlag{Name: "check-out", Usage: "defaults to 9 nights after check-in"},
			&cli.StringFlag{Name: "user", Value: "user"},
			&cli.StringFlag{Name: "password", Value: "user"},
			&cli.DurationFlag{Name: "timeout", Value: 10 * time.Second},
		},
		Action: func(c *cli.Context) error {
			opts := options{
				Addr:            c.String("addr"),
				Rooms:           c.Int("rooms"),
				RequestsPerRoom: c.Int("requests"),
				Concurrency:     c.Int("concurrency"),
				CheckIn:         c.String("check-in"),
				CheckOut:        c.String("check-out"),
				Username:        c.String("user"),
				Password:        c.String("password"),
				Timeout:         c.Duration("timeout"),
			}
			if opts.CheckIn == "" || opts.CheckOut == "" {
				in, out := defaultStay(time.Now())
				if opts.CheckIn == "" {
					opts.CheckIn = in
				}
				if opts.CheckOut == "" {
					opts.CheckOut = out
				}
			}
			if opts.Rooms <= 0 || opts.RequestsPerRoom <= 0 || opts.Concurrency <= 0 {
				return cli.Exit("rooms, requests and concurrency must be positive", 2)
			}

			fmt.Fprintf(c.App.Writer, "Starting concurrent booking test: %d rooms x %d requests against %s\n",
				opts.Rooms, opts.RequestsPerRoom, opts.Addr)

			rep := run(c.Context, opts, tcpSender(opts.Addr, opts.Timeout))
			rep.Print(c.App.Writer, opts.RequestsPerRoom)

			if rooms := rep.DoubleBooked(); len(rooms) > 0 {
				return cli.Exit(fmt.Sprintf("double booking detected for rooms %v", rooms), 1)
			}
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
