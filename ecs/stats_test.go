package ecs

import (
	"testing"
	"time"
)

type idleSystem struct{}

func (idleSystem) Aspect() Aspect        { return Requires("pos") }
func (idleSystem) Update(*Frame, Entity) {}

func TestWorldStats(t *testing.T) {
	w := NewWorld()

	stats := w.Stats()
	if stats.SystemCount != 0 || stats.EntityCount != 0 || stats.TotalExecutions != 0 {
		t.Fatalf("expected zeroed stats for a fresh world, got %+v", stats)
	}

	w.AddSystem(&idleSystem{})
	busy := &SystemFunc{
		Filter: Requires("pos"),
		UpdateFn: func(*Frame, Entity) {
			time.Sleep(time.Microsecond)
		},
	}
	w.AddSystem(busy)

	e := w.NewEntity()
	w.SetComponent(e, "pos", 1)

	w.Update(0.1)
	w.Update(0.1)
	w.Update(0.1)

	stats = w.Stats()

	if stats.SystemCount != 2 {
		t.Errorf("expected 2 systems, got %d", stats.SystemCount)
	}
	if stats.EntityCount != 1 {
		t.Errorf("expected 1 entity, got %d", stats.EntityCount)
	}
	if stats.TotalExecutions != 6 {
		t.Errorf("expected 6 total executions, got %d", stats.TotalExecutions)
	}
	if len(stats.Systems) != 2 {
		t.Fatalf("expected 2 system entries, got %d", len(stats.Systems))
	}

	if stats.Systems[0].Name != "idleSystem" {
		t.Errorf("expected first entry to be idleSystem, got %q", stats.Systems[0].Name)
	}
	if stats.Systems[1].Name != "SystemFunc" {
		t.Errorf("expected second entry to be SystemFunc, got %q", stats.Systems[1].Name)
	}

	for _, s := range stats.Systems {
		if s.ExecutionCount != 3 {
			t.Errorf("%s: expected 3 executions, got %d", s.Name, s.ExecutionCount)
		}
		if s.MinDuration > s.AvgDuration || s.AvgDuration > s.MaxDuration {
			t.Errorf("%s: min/avg/max ordering violated: %v %v %v",
				s.Name, s.MinDuration, s.AvgDuration, s.MaxDuration)
		}
		if s.TotalDuration < s.MaxDuration {
			t.Errorf("%s: total %v below max %v", s.Name, s.TotalDuration, s.MaxDuration)
		}
	}

	if stats.Systems[1].MinDuration < time.Microsecond {
		t.Errorf("busy system min duration %v below its sleep floor", stats.Systems[1].MinDuration)
	}
}

func TestStatsRecordManualDrives(t *testing.T) {
	system := &idleSystem{}
	w := NewWorld(WithSystems(system))
	w.Update(0)

	w.SetSystemActive(system, false)
	w.UpdateSystem(system, 0.1)
	w.UpdateSystem(system, 0.1)

	stats := w.Stats()
	if stats.TotalExecutions != 3 {
		t.Errorf("expected manual drives to be counted, got %d executions", stats.TotalExecutions)
	}
}
