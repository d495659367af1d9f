package main

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"time"

	"hotelbook/pkg/protocol"
)

// Transport sends one request line and returns the framed response.
type Transport interface {
	Send(ctx context.Context, line string) (protocol.Response, error)
}

// tcpTransport opens a fresh connection per request so an idle prompt never
// outlives the server's read timeout.
type tcpTransport struct {
	addr    string
	timeout time.Duration
	dialer  net.Dialer
}

func newTCPTransport(addr string, timeout time.Duration) *tcpTransport {
	return &tcpTransport{
		addr:    addr,
		timeout: timeout,
		dialer:  net.Dialer{Timeout: timeout},
	}
}

func (t *tcpTransport) Send(ctx context.Context, line string) (protocol.Response, error) {
	conn, err := t.dialer.DialContext(ctx, "tcp", t.addr)
	if err != nil {
		return protocol.Response{}, fmt.Errorf("connect to %s: %w", t.addr, err)
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(t.timeout)); err != nil {
		return protocol.Response{}, err
	}
	if _, err := fmt.Fprintf(conn, "%s\n", line); err != nil {
		return protocol.Response{}, fmt.Errorf("send request: %w", err)
	}

	resp, err := protocol.ReadResponse(bufio.NewReader(conn))
	if err != nil {
		return protocol.Response{}, fmt.Errorf("read response: %w", err)
	}
	return resp, nil
}
