// Package feed turns upstream jobs and operations into calendar events.
package feed

import (
	"sort"
	"time"

	"job-calendar-feed/internal/models"
)

// SelectionMode reports how the primary operation was chosen.
type SelectionMode int

const (
	// SelectionNone means no candidate had a usable start.
	SelectionNone SelectionMode = iota
	// SelectionOverlap means a candidate window overlapped the job window.
	SelectionOverlap
	// SelectionEarliest means the earliest-starting candidate was used as
	// a fallback.
	SelectionEarliest
)

// PickPrimary selects the one operation that best represents the job's
// schedule. Candidates without any start timestamp are dropped, the rest
// are ordered by effective start (stable on ties), and the first whose
// window overlaps the job's window wins. Without an overlap, or without
// a known job start, the earliest candidate is returned. Best-effort
// heuristic; deterministic for a given input.
func PickPrimary(job models.Job, ops []models.Operation) (*models.Operation, SelectionMode) {
	candidates := make([]models.Operation, 0, len(ops))
	for _, op := range ops {
		if op.EffectiveStart() != nil {
			candidates = append(candidates, op)
		}
	}
	if len(candidates) == 0 {
		return nil, SelectionNone
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].EffectiveStart().Before(*candidates[j].EffectiveStart())
	})

	jobStart := job.EffectiveStart()
	jobEnd := job.EffectiveEnd()
	if jobStart != nil {
		for i := range candidates {
			if overlapsWindow(candidates[i], *jobStart, jobEnd) {
				return &candidates[i], SelectionOverlap
			}
		}
	}
	return &candidates[0], SelectionEarliest
}

// overlapsWindow reports whether the candidate's window touches the job
// window. A candidate with no end is treated as instantaneous at its
// start; a job with no end only requires the candidate to start at or
// after the job start.
func overlapsWindow(op models.Operation, jobStart time.Time, jobEnd *time.Time) bool {
	start := *op.EffectiveStart()
	end := start
	if e := op.EffectiveEnd(); e != nil {
		end = *e
	}
	if jobEnd != nil {
		return !start.After(*jobEnd) && !end.Before(jobStart)
	}
	return !start.Before(jobStart)
}
