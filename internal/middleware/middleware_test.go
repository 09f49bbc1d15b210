package middleware

import (
	"context"
	"errors"
	"testing"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/fundplan/internal/metrics"
)

type payload struct{}

func TestRequestID(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "generated"},
		{name: "client supplied", header: "abc-123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			next := connect.UnaryFunc(func(ctx context.Context, _ connect.AnyRequest) (connect.AnyResponse, error) {
				seen = GetRequestID(ctx)
				return connect.NewResponse(&payload{}), nil
			})

			req := connect.NewRequest(&payload{})
			if tt.header != "" {
				req.Header().Set(RequestIDHeader, tt.header)
			}

			resp, err := RequestID()(next)(context.Background(), req)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if seen == "" {
				t.Fatal("request ID not set in context")
			}
			if tt.header != "" && seen != tt.header {
				t.Errorf("request ID = %q, want %q", seen, tt.header)
			}
			if got := resp.Header().Get(RequestIDHeader); got != seen {
				t.Errorf("response header = %q, want %q", got, seen)
			}
		})
	}
}

func TestGetRequestIDMissing(t *testing.T) {
	if got := GetRequestID(context.Background()); got != "" {
		t.Errorf("GetRequestID = %q, want empty", got)
	}
}

func TestLoggingAndMetricsInterceptors(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	failing := connect.UnaryFunc(func(context.Context, connect.AnyRequest) (connect.AnyResponse, error) {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("bad budget"))
	})

	chain := LoggingInterceptor()(MetricsInterceptor(m)(failing))
	_, err := chain(context.Background(), connect.NewRequest(&payload{}))
	if connect.CodeOf(err) != connect.CodeInvalidArgument {
		t.Errorf("code = %v, want invalid_argument", connect.CodeOf(err))
	}

	// A nil *Metrics records nothing and must not panic.
	ok := connect.UnaryFunc(func(context.Context, connect.AnyRequest) (connect.AnyResponse, error) {
		return connect.NewResponse(&payload{}), nil
	})
	if _, err := MetricsInterceptor(nil)(ok)(context.Background(), connect.NewRequest(&payload{})); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
