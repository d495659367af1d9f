// Package protocol implements the line-oriented wire format shared by the
// server and its clients.
//
// A request is a single line of space separated tokens. A response starts with
// "<status> <message>", may carry further lines, and ends with an empty line.
package protocol

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	apperrors "hotelbook/pkg/errors"
)

// DateTimeLayout is the ISO local date-time format used for check-in and
// check-out. Seconds are optional on input.
const (
	DateTimeLayout        = "2006-01-02T15:04"
	DateTimeSecondsLayout = "2006-01-02T15:04:05"
	DisplayLayout         = "2006-01-02 15:04"
)

var (
	ErrEmptyResponse     = errors.New("empty response")
	ErrMalformedResponse = errors.New("malformed response status line")
)

type Response struct {
	Status  int
	Message string
	Lines   []string
}

func OK(message string, lines ...string) Response {
	return Response{Status: apperrors.StatusOK, Message: message, Lines: lines}
}

func Fail(status int, message string, lines ...string) Response {
	return Response{Status: status, Message: message, Lines: lines}
}

// FromError renders err as a response. Anything other than an AppError is
// reported as a generic internal error.
func FromError(err error) Response {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return Response{
			Status:  appErr.StatusCode(),
			Message: appErr.Message,
			Lines:   appErr.Details,
		}
	}
	return Response{Status: apperrors.StatusInternal, Message: "Internal server error"}
}

func (r Response) OK() bool {
	return r.Status == apperrors.StatusOK
}

func (r Response) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d %s\n", r.Status, r.Message)
	for _, line := range r.Lines {
		b.WriteString(strings.TrimRight(line, "\r\n"))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	return b.String()
}

func (r Response) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, r.String())
	return int64(n), err
}

// ReadResponse reads one framed response. A connection closed after the last
// content line but before the terminating empty line still yields the
// response.
func ReadResponse(br *bufio.Reader) (Response, error) {
	status, err := readLine(br)
	if err != nil {
		if errors.Is(err, io.EOF) && status == "" {
			return Response{}, ErrEmptyResponse
		}
		if !errors.Is(err, io.EOF) {
			return Response{}, err
		}
	}

	code, message, ok := strings.Cut(status, " ")
	resp := Response{Message: message}
	resp.Status, err = strconv.Atoi(code)
	if !ok || err != nil {
		return Response{}, fmt.Errorf("%w: %q", ErrMalformedResponse, status)
	}

	for {
		line, err := readLine(br)
		if line == "" {
			if err != nil && !errors.Is(err, io.EOF) {
				return resp, err
			}
			return resp, nil
		}
		resp.Lines = append(resp.Lines, line)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return resp, nil
			}
			return resp, err
		}
	}
}

func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	return strings.TrimRight(line, "\r\n"), err
}

// ParseDateTime accepts DateTimeLayout with or without seconds.
func ParseDateTime(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateTimeLayout, s, time.Local)
	if err == nil {
		return t, nil
	}
	return time.ParseInLocation(DateTimeSecondsLayout, s, time.Local)
}

func FormatDateTime(t time.Time) string {
	return t.Format(DateTimeLayout)
}

// Command joins tokens into a request line.
func Command(tokens ...string) string {
	return strings.Join(tokens, " ")
}
