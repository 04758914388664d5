package ocr

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestIsRetryable(t *testing.T) {
	if !IsRetryable(&RetryableError{StatusCode: 429, Message: "rate limited"}) {
		t.Error("expected retryable for 429")
	}
	if !IsRetryable(fmt.Errorf("call failed: %w", &RetryableError{StatusCode: 503})) {
		t.Error("expected retryable through wrapping")
	}
	if IsRetryable(errors.New("bad request")) {
		t.Error("expected plain error to be non-retryable")
	}
	if IsRetryable(nil) {
		t.Error("expected nil to be non-retryable")
	}
}

func TestRetryableError_Message(t *testing.T) {
	err := &RetryableError{StatusCode: 500, Message: "internal"}
	want := "retryable error (status 500): internal"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestBackoff_GrowsWithJitter(t *testing.T) {
	for attempt := 0; attempt < 4; attempt++ {
		base := time.Duration(1<<uint(attempt)) * time.Second
		for i := 0; i < 10; i++ {
			d := Backoff(attempt)
			if d < base {
				t.Errorf("attempt %d: backoff %v below base %v", attempt, d, base)
			}
			if d >= base+base/2+time.Millisecond {
				t.Errorf("attempt %d: backoff %v exceeds jitter ceiling", attempt, d)
			}
		}
	}
}

func TestBackoff_Capped(t *testing.T) {
	for i := 0; i < 10; i++ {
		if d := Backoff(10); d > 45*time.Second {
			t.Errorf("expected capped backoff, got %v", d)
		}
	}
}
