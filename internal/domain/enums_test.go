package domain

import "testing"

func TestLifecycleIsMonotonic(t *testing.T) {
	legal := [][2]TaskStatus{
		{TaskNeeded, TaskPlanned},
		{TaskNeeded, TaskBooked},
		{TaskNeeded, TaskFailed},
		{TaskPlanned, TaskBooked},
		{TaskPlanned, TaskFailed},
		{TaskFailed, TaskFallbackApplied},
	}
	for _, pair := range legal {
		if !CanTransition(pair[0], pair[1]) {
			t.Fatalf("%s -> %s should be legal", pair[0], pair[1])
		}
	}

	illegal := [][2]TaskStatus{
		{TaskPlanned, TaskNeeded},
		{TaskBooked, TaskNeeded},
		{TaskBooked, TaskFailed},
		{TaskFailed, TaskBooked},
		{TaskFallbackApplied, TaskNeeded},
		{TaskFallbackApplied, TaskBooked},
	}
	for _, pair := range illegal {
		if CanTransition(pair[0], pair[1]) {
			t.Fatalf("%s -> %s should be rejected", pair[0], pair[1])
		}
	}
}

func TestSameStatusWriteIsIdempotent(t *testing.T) {
	for _, s := range []TaskStatus{TaskNeeded, TaskPlanned, TaskBooked, TaskFailed, TaskFallbackApplied} {
		if !CanTransition(s, s) {
			t.Fatalf("%s -> %s re-apply should be allowed", s, s)
		}
	}
}

func TestLegalNextStatesMatchCanTransition(t *testing.T) {
	all := []TaskStatus{TaskNeeded, TaskPlanned, TaskBooked, TaskFailed, TaskFallbackApplied}
	for _, from := range all {
		next := LegalNextStates(from)
		for _, to := range next {
			if !CanTransition(from, to) {
				t.Fatalf("LegalNextStates lists %s -> %s but CanTransition rejects it", from, to)
			}
		}
		for _, to := range all {
			if to == from {
				continue
			}
			listed := false
			for _, n := range next {
				if n == to {
					listed = true
				}
			}
			if CanTransition(from, to) && !listed {
				t.Fatalf("CanTransition allows %s -> %s but LegalNextStates omits it", from, to)
			}
		}
	}
}

func TestMaxRisk(t *testing.T) {
	if MaxRisk(RiskLow, RiskHigh) != RiskHigh {
		t.Fatalf("expected HIGH to dominate LOW")
	}
	if MaxRisk(RiskMedium, RiskLow) != RiskMedium {
		t.Fatalf("expected MEDIUM to dominate LOW")
	}
	if MaxRisk(RiskMedium, RiskMedium) != RiskMedium {
		t.Fatalf("equal levels should be stable")
	}
}
