package ecs

import (
	"reflect"
	"time"
)

// WorldStats summarizes the world's population and its systems' execution
// history.
type WorldStats struct {
	EntityCount     int
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single registered system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

func newSystemStats(name string) *systemStatsInternal {
	return &systemStatsInternal{
		name:        name,
		minDuration: time.Duration(1<<63 - 1),
	}
}

func (s *systemStatsInternal) record(d time.Duration) {
	s.executionCount++
	s.lastDuration = d
	s.totalDuration += d

	if d < s.minDuration {
		s.minDuration = d
	}
	if d > s.maxDuration {
		s.maxDuration = d
	}
}

func (s *systemStatsInternal) snapshot() SystemStats {
	avgDuration := time.Duration(0)
	if s.executionCount > 0 {
		avgDuration = s.totalDuration / time.Duration(s.executionCount)
	}

	return SystemStats{
		Name:           s.name,
		ExecutionCount: s.executionCount,
		MinDuration:    s.minDuration,
		MaxDuration:    s.maxDuration,
		AvgDuration:    avgDuration,
		LastDuration:   s.lastDuration,
		TotalDuration:  s.totalDuration,
	}
}

// systemName derives a display name from the system's concrete type.
func systemName(s System) string {
	t := reflect.TypeOf(s)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// Stats returns statistics about the registered systems' execution.
func (w *World) Stats() *WorldStats {
	stats := &WorldStats{
		EntityCount: w.residents.Len(),
		SystemCount: len(w.systems),
		Systems:     make([]SystemStats, len(w.systems)),
	}
	for i, st := range w.systems {
		stats.Systems[i] = st.stats.snapshot()
		stats.TotalExecutions += st.stats.executionCount
	}
	return stats
}
