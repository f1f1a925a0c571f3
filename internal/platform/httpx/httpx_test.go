package httpx

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestIsRetryableError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"deadline", context.DeadlineExceeded, false},
		{"wrapped deadline", fmt.Errorf("call: %w", context.DeadlineExceeded), false},
		{"canceled", context.Canceled, false},
		{"503", &StatusError{Service: "ai", StatusCode: 503}, true},
		{"429", &StatusError{Service: "ai", StatusCode: 429}, true},
		{"400", &StatusError{Service: "ai", StatusCode: 400}, false},
		{"wrapped 502", fmt.Errorf("x: %w", &StatusError{StatusCode: 502}), true},
	}
	for _, tc := range cases {
		if got := IsRetryableError(tc.err); got != tc.want {
			t.Fatalf("%s: got %v want %v", tc.name, got, tc.want)
		}
	}
}

func TestRetryAfterDuration(t *testing.T) {
	resp := &http.Response{Header: http.Header{}}
	resp.Header.Set("Retry-After", "3")
	if got := RetryAfterDuration(resp, time.Second, 10*time.Second); got != 3*time.Second {
		t.Fatalf("got %v", got)
	}
	if got := RetryAfterDuration(resp, time.Second, 2*time.Second); got != 2*time.Second {
		t.Fatalf("cap not applied: %v", got)
	}
	if got := RetryAfterDuration(nil, 500*time.Millisecond, 0); got != 500*time.Millisecond {
		t.Fatalf("fallback not used: %v", got)
	}
}

func TestJitterSleepBounds(t *testing.T) {
	base := time.Second
	for i := 0; i < 50; i++ {
		d := JitterSleep(base)
		if d < 800*time.Millisecond || d > 1200*time.Millisecond {
			t.Fatalf("jitter out of range: %v", d)
		}
	}
	if JitterSleep(0) != 0 {
		t.Fatal("zero base should yield zero")
	}
}

func TestSleepHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Sleep(ctx, time.Minute); err == nil {
		t.Fatal("expected context error")
	}
}

func TestStatusErrorTruncatesBody(t *testing.T) {
	long := make([]byte, 600)
	for i := range long {
		long[i] = 'x'
	}
	msg := (&StatusError{Service: "ai", StatusCode: 500, Body: string(long)}).Error()
	if len(msg) > 300 {
		t.Fatalf("message not truncated: %d", len(msg))
	}
}
