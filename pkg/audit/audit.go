// Package audit records who did what to which entity.
//
// Workflows receive a Sink as an explicit dependency instead of calling a
// static logging facade, so tests can capture events and production can
// fan them out to the structured log and a MongoDB trail.
package audit

import (
	"context"
	"time"

	"github.com/shashiranjanraj/bazaar/pkg/logger"
)

// Event is one audit record.
type Event struct {
	Time   time.Time      `bson:"time"   json:"time"`
	Action string         `bson:"action" json:"action"`
	UserID uint           `bson:"user_id,omitempty" json:"user_id,omitempty"`
	Fields map[string]any `bson:"fields,omitempty"  json:"fields,omitempty"`
}

// Sink receives audit events. Implementations must never block the
// request path and must never fail it: Record has no error return.
type Sink interface {
	Record(ctx context.Context, action string, userID uint, fields map[string]any)
}

// LogSink writes audit events to the structured log.
type LogSink struct{}

// NewLogSink returns a Sink backed by pkg/logger.
func NewLogSink() *LogSink { return &LogSink{} }

func (s *LogSink) Record(ctx context.Context, action string, userID uint, fields map[string]any) {
	args := make([]any, 0, 2*len(fields)+4)
	args = append(args, "action", action, "user_id", userID)
	for k, v := range fields {
		args = append(args, k, v)
	}
	logger.WithCtx(ctx).Info("audit", args...)
}

// MultiSink fans out to several sinks.
type MultiSink struct {
	sinks []Sink
}

// NewMultiSink returns a Sink that records to all of ss.
func NewMultiSink(ss ...Sink) *MultiSink { return &MultiSink{sinks: ss} }

func (m *MultiSink) Record(ctx context.Context, action string, userID uint, fields map[string]any) {
	for _, s := range m.sinks {
		s.Record(ctx, action, userID, fields)
	}
}
