// ABOUTME: Tests for the manual output backend
// ABOUTME: Tests pulling, pausing, lifecycle counters and failure injection
package output

import (
	"context"
	"errors"
	"testing"
)

func TestManualPull(t *testing.T) {
	m := NewManual()
	src := &rampPull{channels: 2, step: 1}

	out, err := m.Create(context.Background(), 2, 44100, src.pull)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	mo := m.Last()
	if mo == nil || Output(mo) != out {
		t.Fatal("expected Last to return the created output")
	}

	got := mo.Pull(2)
	assertEqual(t, got, []int32{0, 0, 1, 1})

	mo.SetPaused(true)
	got = mo.Pull(2)
	assertEqual(t, got, []int32{0, 0, 0, 0})
	if src.calls != 1 {
		t.Errorf("expected paused pull to skip the source, got %d calls", src.calls)
	}
}

func TestManualLifecycle(t *testing.T) {
	m := NewManual()
	out, _ := m.Create(context.Background(), 1, 8000, func([]int32) {})
	mo := m.Last()

	if mo.Started() {
		t.Error("expected output not started")
	}
	out.Start()
	if !mo.Started() || mo.StartCount() != 1 {
		t.Errorf("expected one start, got %d", mo.StartCount())
	}

	m.Close()
	if !mo.Stopped() {
		t.Error("expected Close to stop outputs")
	}
	if !m.Closed() {
		t.Error("expected backend closed")
	}
}

func TestManualFailures(t *testing.T) {
	m := NewManual()

	m.FailCreate(true)
	if _, err := m.Create(context.Background(), 1, 8000, nil); !errors.Is(err, ErrCreateFailed) {
		t.Errorf("expected ErrCreateFailed, got %v", err)
	}
	m.FailCreate(false)

	boom := errors.New("boom")
	m.FailStart(boom)
	out, err := m.Create(context.Background(), 1, 8000, nil)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := out.Start(); !errors.Is(err, boom) {
		t.Errorf("expected start error, got %v", err)
	}

	m.Last().Fail(boom)
	if !errors.Is(out.Err(), boom) {
		t.Errorf("expected injected error, got %v", out.Err())
	}
}
