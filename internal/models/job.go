package models

import (
	"time"
)

// JobStatus enumerates the upstream scheduling states we filter on.
const (
	StatusUnscheduled = "unscheduled"
	StatusScheduled   = "scheduled"
	StatusInProgress  = "inProgress"
	StatusOnHold      = "onHold"
	StatusCompleted   = "completed"
	StatusClosed      = "closed"
	StatusCancelled   = "cancelled"
)

// Job is a unit of scheduled production work as returned by the upstream API.
type Job struct {
	ID                        string     `json:"id"`
	Name                      string     `json:"name"`
	Number                    int        `json:"number"`
	Status                    string     `json:"status"`
	ScheduledStartUtc         *time.Time `json:"scheduledStartUtc"`
	ScheduledEndUtc           *time.Time `json:"scheduledEndUtc"`
	OriginalScheduledStartUtc *time.Time `json:"originalScheduledStartUtc"`
	OriginalScheduledEndUtc   *time.Time `json:"originalScheduledEndUtc"`
	ProductionDueDateUtc      *time.Time `json:"productionDueDateUtc"`
	SalesOrderNumber          string     `json:"salesOrderNumber"`
	CreatedUtc                *time.Time `json:"createdUtc"`
}

// EffectiveStart resolves the job's start: scheduled, then original
// schedule, then the production due date. Nil when none is set.
func (j Job) EffectiveStart() *time.Time {
	if j.ScheduledStartUtc != nil {
		return j.ScheduledStartUtc
	}
	if j.OriginalScheduledStartUtc != nil {
		return j.OriginalScheduledStartUtc
	}
	return j.ProductionDueDateUtc
}

// EffectiveEnd resolves the job's end: scheduled, then original schedule.
func (j Job) EffectiveEnd() *time.Time {
	if j.ScheduledEndUtc != nil {
		return j.ScheduledEndUtc
	}
	return j.OriginalScheduledEndUtc
}

// ProducedItem is the item an operation produces, when the upstream
// record carries one.
type ProducedItem struct {
	Name           string  `json:"name"`
	Number         string  `json:"number"`
	Description    string  `json:"description"`
	QuantityToMake float64 `json:"quantityToMake"`
}

// Operation is a scheduled sub-step of a Job.
type Operation struct {
	ID                        string        `json:"id"`
	Name                      string        `json:"name"`
	ScheduledEquipmentName    string        `json:"scheduledEquipmentName"`
	ScheduledStartUtc         *time.Time    `json:"scheduledStartUtc"`
	ScheduledEndUtc           *time.Time    `json:"scheduledEndUtc"`
	OriginalScheduledStartUtc *time.Time    `json:"originalScheduledStartUtc"`
	OriginalScheduledEndUtc   *time.Time    `json:"originalScheduledEndUtc"`
	Item                      *ProducedItem `json:"item"`
}

// EffectiveStart resolves the operation's start: scheduled, then original.
func (o Operation) EffectiveStart() *time.Time {
	if o.ScheduledStartUtc != nil {
		return o.ScheduledStartUtc
	}
	return o.OriginalScheduledStartUtc
}

// EffectiveEnd resolves the operation's end: scheduled, then original.
func (o Operation) EffectiveEnd() *time.Time {
	if o.ScheduledEndUtc != nil {
		return o.ScheduledEndUtc
	}
	return o.OriginalScheduledEndUtc
}

// CalendarEvent is the normalized event derived from a job and its
// primary operation. It lives for one request and is never persisted.
type CalendarEvent struct {
	ID          string
	Start       time.Time
	End         time.Time
	Summary     string
	Location    string
	Description string
	Categories  []string
}
