package search

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// linearEncoder returns a monotonic synthetic encoder whose output size
// is bytesPerQuality * quality, and counts calls through *calls.
func linearEncoder(bytesPerQuality int, calls *int) EncodeFunc {
	return func(q int) ([]byte, error) {
		*calls++
		return make([]byte, bytesPerQuality*q), nil
	}
}

func defaultParams(target int) Params {
	return Params{
		TargetBytes:       target,
		InitialQuality:    80,
		LowerTolerancePct: 10,
		UpperTolerancePct: 10,
	}
}

func TestFind_ConvergesWithinWindow(t *testing.T) {
	calls := 0
	attempt, err := Find(context.Background(), linearEncoder(1000, &calls), defaultParams(50000))
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if attempt.Size < 45000 || attempt.Size > 55000 {
		t.Errorf("size %d outside window [45000, 55000]", attempt.Size)
	}
	if calls > maxProbes {
		t.Errorf("used %d probes, budget is %d", calls, maxProbes)
	}
	if len(attempt.Data) != attempt.Size {
		t.Errorf("data length %d != size %d", len(attempt.Data), attempt.Size)
	}
}

func TestFind_PrefersHighestInWindowQuality(t *testing.T) {
	// size = 500*q, target 25000, window [22500, 27500]: qualities
	// 45-55 all fit. The search must keep probing upward and land on
	// the top of the in-window range.
	calls := 0
	p := Params{
		TargetBytes:       25000,
		InitialQuality:    50,
		LowerTolerancePct: 10,
		UpperTolerancePct: 10,
	}
	attempt, err := Find(context.Background(), linearEncoder(500, &calls), p)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if attempt.Quality != 55 {
		t.Errorf("quality: got %d, want 55 (highest that fits)", attempt.Quality)
	}
}

func TestFind_StrictUpperLimit(t *testing.T) {
	calls := 0
	p := Params{
		TargetBytes:       50500,
		InitialQuality:    80,
		LowerTolerancePct: 10,
		UpperTolerancePct: 10,
		StrictUpperLimit:  true,
	}
	attempt, err := Find(context.Background(), linearEncoder(1000, &calls), p)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if attempt.Size > 50500 {
		t.Errorf("strict mode produced %d bytes, target is %d", attempt.Size, 50500)
	}
}

func TestFind_ToleranceRelaxation(t *testing.T) {
	// No quality hits the initial window: every quality above 1
	// produces 200000 bytes, quality 1 produces 30000. Target 50000
	// means the lower bound has to relax to 40% (reduction steps
	// 10, 15, ... 40) before 30000 is acceptable.
	encode := func(q int) ([]byte, error) {
		if q == 1 {
			return make([]byte, 30000), nil
		}
		return make([]byte, 200000), nil
	}

	attempt, err := Find(context.Background(), encode, defaultParams(50000))
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if attempt.Quality != 1 {
		t.Errorf("quality: got %d, want 1", attempt.Quality)
	}
	if attempt.Size != 30000 {
		t.Errorf("size: got %d, want 30000", attempt.Size)
	}
}

func TestFind_LastResortAcceptsBelowLowerBound(t *testing.T) {
	// Quality 1 undershoots even the fully relaxed lower bound
	// (50% of 50000 = 25000), everything else overshoots. The final
	// fallback ignores the lower bound and must accept it.
	encode := func(q int) ([]byte, error) {
		if q == 1 {
			return make([]byte, 10000), nil
		}
		return make([]byte, 200000), nil
	}

	attempt, err := Find(context.Background(), encode, defaultParams(50000))
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if attempt.Quality != 1 || attempt.Size != 10000 {
		t.Errorf("got quality=%d size=%d, want quality=1 size=10000", attempt.Quality, attempt.Size)
	}
}

func TestFind_LastResortNeverViolatesUpperBound(t *testing.T) {
	// Even quality 1 exceeds the upper bound: the format must be
	// reported not viable, never a result above the window.
	encode := func(q int) ([]byte, error) {
		return make([]byte, 60000), nil
	}

	_, err := Find(context.Background(), encode, defaultParams(50000))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestFind_EncodeFailureIsNotFound(t *testing.T) {
	boom := fmt.Errorf("codec exploded")
	encode := func(q int) ([]byte, error) {
		return nil, boom
	}

	_, err := Find(context.Background(), encode, defaultParams(50000))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("want the encoder failure preserved in the chain, got %v", err)
	}
}

func TestFind_ProbeBudgetWhenAlwaysInWindow(t *testing.T) {
	// An encoder that always lands in the window makes the in-window
	// bound update revisit qualities near the ceiling. The probe
	// budget, not range collapse, has to stop it.
	calls := 0
	encode := func(q int) ([]byte, error) {
		calls++
		return make([]byte, 50000), nil
	}

	attempt, err := Find(context.Background(), encode, defaultParams(50000))
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if calls > maxProbes {
		t.Errorf("used %d probes, budget is %d", calls, maxProbes)
	}
	if attempt == nil || attempt.Size != 50000 {
		t.Fatalf("unexpected attempt: %+v", attempt)
	}
}

func TestFind_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	_, err := Find(ctx, linearEncoder(1000, &calls), defaultParams(50000))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
	if calls != 0 {
		t.Errorf("no probe should run after cancellation, got %d", calls)
	}
}

func TestState_String(t *testing.T) {
	cases := map[state]string{
		searching: "searching",
		converged: "converged",
		exhausted: "exhausted",
	}
	for s, want := range cases {
		if got := s.String(); got != want {
			t.Errorf("state %d: got %q, want %q", s, got, want)
		}
	}
}

func TestQualitySearch_ExhaustedWithoutResult(t *testing.T) {
	// Window [45000, 55000], every output 200000: the range collapses
	// with no best and the state must be exhausted.
	qs := &qualitySearch{
		encode: func(q int) ([]byte, error) {
			return make([]byte, 200000), nil
		},
		lower:   45000,
		upper:   55000,
		floor:   1,
		ceiling: 100,
		quality: 80,
	}
	if err := qs.run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if qs.state != exhausted {
		t.Errorf("state: got %v, want exhausted", qs.state)
	}
	if qs.best != nil {
		t.Errorf("best should be nil, got %+v", qs.best)
	}
}
