package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"sort"
	"sync"
	"time"

	"hotelbook/pkg/protocol"

	"golang.org/x/sync/errgroup"
)

type options struct {
	Addr            string
	Rooms           int
	RequestsPerRoom int
	Concurrency     int
	CheckIn         string
	CheckOut        string
	Username        string
	Password        string
	Timeout         time.Duration
}

// defaultStay is a nine night stay starting 30 days after now, always in the
// future so the server accepts it.
func defaultStay(now time.Time) (checkIn, checkOut string) {
	in := now.AddDate(0, 0, 30).Truncate(time.Minute)
	return protocol.FormatDateTime(in), protocol.FormatDateTime(in.AddDate(0, 0, 9))
}

type sendFunc func(ctx context.Context, line string) (protocol.Response, error)

type roomResult struct {
	Successes int
	Failures  int
	Errors    int
}

type report struct {
	Rooms    map[int]*roomResult
	Requests int
	Elapsed  time.Duration
}

// DoubleBooked lists rooms that accepted more than one of the identical
// requests.
func (r *report) DoubleBooked() []int {
	var rooms []int
	for id, res := range r.Rooms {
		if res.Successes > 1 {
			rooms = append(rooms, id)
		}
	}
	sort.Ints(rooms)
	return rooms
}

func (r *report) Print(w io.Writer, perRoom int) {
	var ok, failed, errs int
	for _, res := range r.Rooms {
		ok += res.Successes
		failed += res.Failures
		errs += res.Errors
	}

	fmt.Fprintln(w, "\n=== Test Results ===")
	fmt.Fprintf(w, "Total requests: %d\n", r.Requests)
	fmt.Fprintf(w, "Successful bookings: %d\n", ok)
	fmt.Fprintf(w, "Rejected bookings: %d\n", failed)
	fmt.Fprintf(w, "Transport errors: %d\n", errs)

	fmt.Fprintln(w, "\n=== Room Success Rates ===")
	ids := make([]int, 0, len(r.Rooms))
	for id := range r.Rooms {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		res := r.Rooms[id]
		fmt.Fprintf(w, "Room %d: %d/%d successful (%.1f%%)\n",
			id, res.Successes, perRoom, float64(res.Successes)*100/float64(perRoom))
	}

	fmt.Fprintf(w, "\nTotal time: %s\n", r.Elapsed.Round(time.Millisecond))
	if r.Requests > 0 && r.Elapsed > 0 {
		fmt.Fprintf(w, "Requests per second: %.1f\n", float64(r.Requests)/r.Elapsed.Seconds())
	}
}

// run fires RequestsPerRoom identical BOOK requests at each of rooms 1..Rooms.
func run(ctx context.Context, opts options, send sendFunc) *report {
	rep := &report{Rooms: make(map[int]*roomResult, opts.Rooms)}
	for id := 1; id <= opts.Rooms; id++ {
		rep.Rooms[id] = &roomResult{}
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)

	start := time.Now()
	for id := 1; id <= opts.Rooms; id++ {
		id := id
		line := protocol.Command("BOOK", fmt.Sprint(id), opts.CheckIn, opts.CheckOut, opts.Username, opts.Password)
		for i := 0; i < opts.RequestsPerRoom; i++ {
			g.Go(func() error {
				resp, err := send(gctx, line)

				mu.Lock()
				defer mu.Unlock()
				res := rep.Rooms[id]
				switch {
				case err != nil:
					res.Errors++
				case resp.OK():
					res.Successes++
				default:
					res.Failures++
				}
				return nil
			})
			rep.Requests++
		}
	}
	_ = g.Wait()
	rep.Elapsed = time.Since(start)
	return rep
}

func tcpSender(addr string, timeout time.Duration) sendFunc {
	dialer := net.Dialer{Timeout: timeout}
	return func(ctx context.Context, line string) (protocol.Response, error) {
		conn, err := dialer.DialContext(ctx, "tcp", addr)
		if err != nil {
			return protocol.Response{}, err
		}
		defer conn.Close()

		if err := conn.SetDeadline(time.Now().Add(timeout)); err != nil {
			return protocol.Response{}, err
		}
		if _, err := fmt.Fprintf(conn, "%s\n", line); err != nil {
			return protocol.Response{}, err
		}
		return protocol.ReadResponse(bufio.NewReader(conn))
	}
}
