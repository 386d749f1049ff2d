package store

import (
	"math"
	"testing"
)

func testRun() (Run, [][]float64) {
	run := Run{
		Scene:     "bounce",
		TimeStep:  1.0 / 60.0,
		Duration:  0.05,
		BodyNames: []string{"a", "b"},
		Metrics:   map[string]float64{"kinetic_energy": 12.5},
	}
	frames := [][]float64{
		{100, 200, 300, 400},
		{101, 201, 299, 401},
		{102, 203, 298, 403},
	}
	return run, frames
}

func TestSaveLoadRoundtrip(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	run, frames := testRun()
	runID, err := s.Save(run, frames)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	meta, err := s.Load(runID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if meta.Scene != "bounce" {
		t.Errorf("scene = %q, want bounce", meta.Scene)
	}
	if meta.Steps != 3 {
		t.Errorf("steps = %d, want 3", meta.Steps)
	}
	if len(meta.BodyNames) != 2 || meta.BodyNames[0] != "a" {
		t.Errorf("body names = %v", meta.BodyNames)
	}
	if meta.Metrics["kinetic_energy"] != 12.5 {
		t.Errorf("metrics = %v", meta.Metrics)
	}

	loaded, times, err := s.LoadFrames(runID)
	if err != nil {
		t.Fatalf("LoadFrames: %v", err)
	}
	if len(loaded) != 3 {
		t.Fatalf("got %d frames, want 3", len(loaded))
	}
	for i, frame := range loaded {
		if len(frame) != 4 {
			t.Fatalf("frame %d has %d values, want 4", i, len(frame))
		}
		for j, v := range frame {
			if math.Abs(v-frames[i][j]) > 1e-6 {
				t.Errorf("frame[%d][%d] = %v, want %v", i, j, v, frames[i][j])
			}
		}
	}
	if math.Abs(times[1]-1.0/60.0) > 1e-9 {
		t.Errorf("times[1] = %v, want one timestep", times[1])
	}
}

func TestList(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	run, frames := testRun()
	if _, err := s.Save(run, frames); err != nil {
		t.Fatalf("Save: %v", err)
	}
	run.Scene = "stack"
	if _, err := s.Save(run, frames); err != nil {
		t.Fatalf("Save: %v", err)
	}

	runs, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("got %d runs, want 2", len(runs))
	}
}

func TestListEmptyDir(t *testing.T) {
	s := New(t.TempDir())

	runs, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("got %d runs from missing dir, want 0", len(runs))
	}
}

func TestLoadUnknownRun(t *testing.T) {
	s := New(t.TempDir())
	if _, err := s.Load("nope_123"); err == nil {
		t.Error("expected error for unknown run")
	}
}

func TestSaveEmptyFrames(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	run, _ := testRun()
	runID, err := s.Save(run, nil)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	frames, times, err := s.LoadFrames(runID)
	if err != nil {
		t.Fatalf("LoadFrames: %v", err)
	}
	if len(frames) != 0 || len(times) != 0 {
		t.Errorf("got %d frames, %d times, want 0", len(frames), len(times))
	}
}
