package kafka_middleware

import (
	"context"
	"sync/atomic"
	"time"

	"hotelbook/pkg/kafka"
)

// Metrics counts producer outcomes. The zero value is ready to use.
type Metrics struct {
	published     atomic.Int64
	failed        atomic.Int64
	totalDuration atomic.Int64 // nanoseconds
}

type MetricsSnapshot struct {
	Published          int64         `json:"published"`
	Failed             int64         `json:"failed"`
	AvgPublishDuration time.Duration `json:"avg_publish_duration_ns"`
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		Published: m.published.Load(),
		Failed:    m.failed.Load(),
	}
	if total := s.Published + s.Failed; total > 0 {
		s.AvgPublishDuration = time.Duration(m.totalDuration.Load() / total)
	}
	return s
}

func (m *Metrics) Reset() {
	m.published.Store(0)
	m.failed.Store(0)
	m.totalDuration.Store(0)
}

func MetricsProducerMiddleware(m *Metrics) kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		start := time.Now()

		err := next(ctx, msg)

		m.totalDuration.Add(int64(time.Since(start)))
		if err != nil {
			m.failed.Add(1)
		} else {
			m.published.Add(1)
		}

		return err
	}
}
