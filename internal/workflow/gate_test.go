package workflow_test

import (
	"testing"

	"subburn/internal/workflow"
)

func TestGateBoundsAcquisition(t *testing.T) {
	gate := workflow.NewGate(2)
	if !gate.TryAcquire() {
		t.Fatal("first acquire denied")
	}
	if !gate.TryAcquire() {
		t.Fatal("second acquire denied")
	}
	if gate.TryAcquire() {
		t.Fatal("acquire beyond capacity granted")
	}
	if got := gate.InFlight(); got != 2 {
		t.Fatalf("InFlight = %d, want 2", got)
	}

	gate.Release()
	if !gate.TryAcquire() {
		t.Fatal("acquire after release denied")
	}
}

func TestGateReleaseWithoutAcquireIsHarmless(t *testing.T) {
	gate := workflow.NewGate(1)
	gate.Release()
	gate.Release()
	if got := gate.InFlight(); got != 0 {
		t.Fatalf("InFlight = %d, want 0", got)
	}
	if !gate.TryAcquire() {
		t.Fatal("acquire denied on empty gate")
	}
	if gate.TryAcquire() {
		t.Fatal("capacity grew after spurious releases")
	}
}

func TestGateMinimumCapacity(t *testing.T) {
	gate := workflow.NewGate(0)
	if got := gate.Capacity(); got != 1 {
		t.Fatalf("Capacity = %d, want 1", got)
	}
}
