package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "hotel-client",
		Usage: "interactive client for the hotel booking server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "host",
				Value:   "localhost",
				Usage:   "server host",
				EnvVars: []string{"HOTEL_HOST"},
			},
			&cli.StringFlag{
				Name:    "port",
				Value:   "8080",
				Usage:   "server port",
				EnvVars: []string{"HOTEL_PORT"},
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Value:   10 * time.Second,
				Usage:   "per-request timeout",
				EnvVars: []string{"HOTEL_TIMEOUT"},
			},
		},
		Action: interactive,
		Commands: []*cli.Command{
			{
				Name:      "send",
				Usage:     "send a single raw command and print the response",
				ArgsUsage: "<COMMAND> [ARGS...]",
				Action:    send,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func transportFrom(c *cli.Context) Transport {
	addr := net.JoinHostPort(c.String("host"), c.String("port"))
	return newTCPTransport(addr, c.Duration("timeout"))
}

func interactive(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return newSession(transportFrom(c), os.Stdin, os.Stdout).Run(ctx)
}

// send skips client-side validation so the server's own errors can be seen.
func send(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("send: missing command", 2)
	}

	ctx, cancel := context.WithTimeout(c.Context, c.Duration("timeout"))
	defer cancel()

	resp, err := transportFrom(c).Send(ctx, strings.Join(c.Args().Slice(), " "))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	fmt.Fprint(c.App.Writer, resp.String())
	if !resp.OK() {
		return cli.Exit("", 1)
	}
	return nil
}
