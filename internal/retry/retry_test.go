package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	res := Do(context.Background(), Exponential(3, time.Millisecond, time.Millisecond), func() error {
		return nil
	})
	if res.Err != nil {
		t.Errorf("Err = %v, want nil", res.Err)
	}
	if res.Attempts != 1 {
		t.Errorf("Attempts = %d, want 1", res.Attempts)
	}
}

func TestDo_RetriesUntilSuccess(t *testing.T) {
	calls := 0
	res := Do(context.Background(), Exponential(5, time.Millisecond, time.Millisecond), func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	if res.Err != nil {
		t.Errorf("Err = %v, want nil", res.Err)
	}
	if res.Attempts != 3 {
		t.Errorf("Attempts = %d, want 3", res.Attempts)
	}
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	boom := errors.New("still broken")
	res := Do(context.Background(), Exponential(3, time.Millisecond, time.Millisecond), func() error {
		return boom
	})
	if !errors.Is(res.Err, boom) {
		t.Errorf("Err = %v, want %v", res.Err, boom)
	}
	if res.Attempts != 3 {
		t.Errorf("Attempts = %d, want 3", res.Attempts)
	}
}

func TestDo_PermanentStopsRetrying(t *testing.T) {
	calls := 0
	res := Do(context.Background(), Exponential(5, time.Millisecond, time.Millisecond), func() error {
		calls++
		return Permanent(errors.New("bad credentials"))
	})
	if calls != 1 {
		t.Errorf("op called %d times, want 1", calls)
	}
	if !IsPermanent(res.Err) {
		t.Errorf("Err = %v, want permanent", res.Err)
	}
}

func TestDo_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := Do(ctx, Exponential(3, time.Millisecond, time.Millisecond), func() error {
		return errors.New("never succeeds")
	})
	if !errors.Is(res.Err, context.Canceled) {
		t.Errorf("Err = %v, want context.Canceled", res.Err)
	}
}

func TestDoWithValue(t *testing.T) {
	calls := 0
	value, res := DoWithValue(context.Background(), Exponential(3, time.Millisecond, time.Millisecond), func() (string, error) {
		calls++
		if calls < 2 {
			return "", errors.New("transient")
		}
		return "ok", nil
	})
	if res.Err != nil {
		t.Fatalf("Err = %v", res.Err)
	}
	if value != "ok" {
		t.Errorf("value = %q, want %q", value, "ok")
	}
}

func TestPermanent_NilPassthrough(t *testing.T) {
	if Permanent(nil) != nil {
		t.Error("Permanent(nil) should be nil")
	}
	if IsPermanent(errors.New("plain")) {
		t.Error("plain error reported as permanent")
	}
}
