package confirm_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Cinemaker123/nutrition-tracker/internal/confirm"
)

func TestFirstClickArmsSecondDeletes(t *testing.T) {
	var calls []string
	tr := confirm.NewTracker(func(ctx context.Context, id string) error {
		calls = append(calls, id)
		return nil
	})
	ctx := context.Background()

	out, err := tr.Click(ctx, "a")
	if err != nil || out != confirm.OutcomeArmed {
		t.Fatalf("first click = %s, %v", out, err)
	}
	if len(calls) != 0 {
		t.Fatalf("delete ran on first click")
	}
	if st := tr.State("a"); st.Clicks != 1 || !st.Armed() {
		t.Fatalf("state after first click = %+v", st)
	}

	out, err = tr.Click(ctx, "a")
	if err != nil || out != confirm.OutcomeDeleted {
		t.Fatalf("second click = %s, %v", out, err)
	}
	if len(calls) != 1 || calls[0] != "a" {
		t.Fatalf("delete calls = %v", calls)
	}
	if tr.Len() != 0 {
		t.Errorf("deleted id still tracked")
	}
}

func TestIdsAreIndependent(t *testing.T) {
	var calls int32
	tr := confirm.NewTracker(func(ctx context.Context, id string) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})
	ctx := context.Background()

	tr.Click(ctx, "a")
	out, _ := tr.Click(ctx, "b")
	if out != confirm.OutcomeArmed {
		t.Fatalf("click on b = %s, want armed", out)
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Fatalf("clicking two different ids must not delete")
	}
}

func TestClickDuringInFlightDeleteIsIgnored(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var calls int32
	tr := confirm.NewTracker(func(ctx context.Context, id string) error {
		atomic.AddInt32(&calls, 1)
		close(started)
		<-release
		return nil
	})
	ctx := context.Background()

	tr.Click(ctx, "a")

	var wg sync.WaitGroup
	wg.Add(1)
	var second confirm.Outcome
	go func() {
		defer wg.Done()
		second, _ = tr.Click(ctx, "a")
	}()

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("delete did not start")
	}

	if st := tr.State("a"); !st.Deleting {
		t.Errorf("state during delete = %+v", st)
	}
	third, err := tr.Click(ctx, "a")
	if err != nil || third != confirm.OutcomeIgnored {
		t.Errorf("third click = %s, %v; want ignored", third, err)
	}

	close(release)
	wg.Wait()

	if second != confirm.OutcomeDeleted {
		t.Errorf("second click = %s, want deleted", second)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("delete called %d times, want 1", n)
	}
}

func TestFailedDeleteReturnsToIdle(t *testing.T) {
	boom := errors.New("storage down")
	fail := true
	tr := confirm.NewTracker(func(ctx context.Context, id string) error {
		if fail {
			return boom
		}
		return nil
	})
	ctx := context.Background()

	tr.Click(ctx, "a")
	out, err := tr.Click(ctx, "a")
	if !errors.Is(err, boom) || out != confirm.OutcomeFailed {
		t.Fatalf("failing delete = %s, %v", out, err)
	}
	if st := tr.State("a"); st.Clicks != 0 || st.Deleting {
		t.Fatalf("state after failure = %+v, want idle", st)
	}

	// needs two fresh clicks again
	fail = false
	out, _ = tr.Click(ctx, "a")
	if out != confirm.OutcomeArmed {
		t.Fatalf("click after failure = %s, want armed", out)
	}
	out, err = tr.Click(ctx, "a")
	if err != nil || out != confirm.OutcomeDeleted {
		t.Fatalf("retry = %s, %v", out, err)
	}
}

func TestResetAllAndDisarm(t *testing.T) {
	var calls int32
	tr := confirm.NewTracker(func(ctx context.Context, id string) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})
	ctx := context.Background()

	tr.Click(ctx, "a")
	tr.Click(ctx, "b")
	tr.Disarm("b")
	if tr.State("b").Clicks != 0 {
		t.Error("b still armed after Disarm")
	}

	tr.ResetAll()
	if tr.Len() != 0 {
		t.Fatalf("ResetAll left %d ids", tr.Len())
	}
	out, _ := tr.Click(ctx, "a")
	if out != confirm.OutcomeArmed || atomic.LoadInt32(&calls) != 0 {
		t.Errorf("click after reset = %s, calls %d", out, calls)
	}
}

func TestNeverClickedIdIsNotStored(t *testing.T) {
	tr := confirm.NewTracker(func(ctx context.Context, id string) error { return nil })
	if st := tr.State("ghost"); st.Clicks != 0 || st.Deleting || st.Armed() {
		t.Errorf("state = %+v", st)
	}
	if tr.Len() != 0 {
		t.Errorf("State must not create entries")
	}
}
