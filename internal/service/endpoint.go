package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"perfserver/internal/model"
)

// Response literals served by the test endpoints. Clients compare them byte for byte.
const (
	FastMessage        = "This is a fast endpoint!"
	SlowMessage        = "This is a slow endpoint!"
	AnotherFastMessage = "This is another fast endpoint!"
	FastPostMessage    = "This is a fast POST endpoint!"
	FastPutMessage     = "This is a fast PUT endpoint!"
	SlowDeleteMessage  = "This is a slow DELETE endpoint!"
)

// DefaultSlowDelay is how long the slow endpoints wait before answering.
const DefaultSlowDelay = 1000 * time.Millisecond

var ErrInvalidBody = errors.New("request body is not valid JSON")

// emptyBody is echoed when the request carried no JSON payload.
var emptyBody = json.RawMessage(`{}`)

// EndpointService defines the behavior behind each test route.
type EndpointService interface {
	// Fast returns the /fast literal without delay.
	Fast() string

	// AnotherFast returns the /another-fast literal without delay.
	AnotherFast() string

	// Slow waits the configured delay, then returns the /slow literal.
	Slow(ctx context.Context) (string, error)

	// FastPost echoes body under the POST message.
	FastPost(body []byte) (*model.EchoResponse, error)

	// FastPut echoes body under the PUT message.
	FastPut(body []byte) (*model.EchoResponse, error)

	// SlowDelete validates body, waits the configured delay, then echoes it.
	SlowDelete(ctx context.Context, body []byte) (*model.EchoResponse, error)
}

type endpointService struct {
	delay time.Duration
}

// NewEndpointService constructs an EndpointService whose slow routes wait for delay.
// A negative delay is treated as zero.
func NewEndpointService(delay time.Duration) EndpointService {
	if delay < 0 {
		delay = 0
	}
	return &endpointService{delay: delay}
}

func (s *endpointService) Fast() string { return FastMessage }

func (s *endpointService) AnotherFast() string { return AnotherFastMessage }

func (s *endpointService) Slow(ctx context.Context) (string, error) {
	if err := s.wait(ctx); err != nil {
		return "", err
	}
	return SlowMessage, nil
}

func (s *endpointService) FastPost(body []byte) (*model.EchoResponse, error) {
	return echo(FastPostMessage, body)
}

func (s *endpointService) FastPut(body []byte) (*model.EchoResponse, error) {
	return echo(FastPutMessage, body)
}

func (s *endpointService) SlowDelete(ctx context.Context, body []byte) (*model.EchoResponse, error) {
	// Reject malformed payloads before waiting, like a body parser in front of the handler would.
	res, err := echo(SlowDeleteMessage, body)
	if err != nil {
		return nil, err
	}
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return res, nil
}

// wait blocks only the calling request. It returns early when ctx is done.
func (s *endpointService) wait(ctx context.Context) error {
	if s.delay == 0 {
		return nil
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("slow response interrupted: %w", ctx.Err())
	}
}

// echo builds the response for a write endpoint. body is copied, so callers may reuse its buffer.
func echo(message string, body []byte) (*model.EchoResponse, error) {
	received := emptyBody
	if len(bytes.TrimSpace(body)) > 0 {
		// JSON text must be UTF-8; Compact alone passes invalid bytes inside strings through.
		if !utf8.Valid(body) {
			return nil, fmt.Errorf("%w: invalid UTF-8", ErrInvalidBody)
		}
		var buf bytes.Buffer
		if err := json.Compact(&buf, body); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBody, err)
		}
		received = json.RawMessage(buf.Bytes())
	}
	return &model.EchoResponse{Message: message, Received: received}, nil
}
