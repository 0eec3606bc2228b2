package db

import (
	"context"
	"time"
)

// Operation names the kind of timed list operation.
type Operation string

const (
	OperationLoad Operation = "load"
	OperationFind Operation = "find"
)

// Timing is one measured operation.
type Timing struct {
	ID         int64
	RunID      string
	Operation  Operation
	BidKey     string
	ItemCount  int
	Duration   time.Duration
	RecordedAt time.Time
}

// Recorder persists operation timings.
type Recorder interface {
	RecordTiming(ctx context.Context, timing Timing) error
	Close() error
}

// NoopRecorder discards timings. It is used when history is disabled or
// the database cannot be opened.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordTiming(_ context.Context, _ Timing) error { return nil }
func (n *NoopRecorder) Close() error { return nil }
