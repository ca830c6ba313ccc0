package telemetry

import (
	"context"
	"sync"
	"time"

	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/unimap/globe/internal/queue"
	"github.com/unimap/globe/pkg/core"
)

const defaultFlushInterval = 5 * time.Second

type pendingPoint struct {
	bucket string
	point  *influxdb2_write.Point
}

// Recorder batches engagement events and flushes them to the manager on an
// interval. Record calls never block on InfluxDB.
type Recorder struct {
	manager *Manager
	pending *queue.Queue[pendingPoint]

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewRecorder starts a recorder flushing at the default interval.
func NewRecorder(m *Manager) *Recorder {
	return NewRecorderWithInterval(m, defaultFlushInterval)
}

// NewRecorderWithInterval starts a recorder flushing at the given interval.
func NewRecorderWithInterval(m *Manager, interval time.Duration) *Recorder {
	r := &Recorder{
		manager: m,
		pending: queue.New[pendingPoint](),
		done:    make(chan struct{}),
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-r.done:
				r.Flush()
				return
			case <-ticker.C:
				r.Flush()
			}
		}
	}()

	return r
}

// RecordHover records a marker hover-on event.
func (r *Recorder) RecordHover(sessionID, entityID string) {
	r.add(BucketEngagement, influxdb2_write.NewPoint(
		"entity_hover",
		map[string]string{"session": sessionID, "entity": entityID},
		map[string]any{"count": 1},
		time.Now(),
	))
}

// RecordSelect records a marker selection.
func (r *Recorder) RecordSelect(sessionID, entityID string) {
	r.add(BucketEngagement, influxdb2_write.NewPoint(
		"entity_select",
		map[string]string{"session": sessionID, "entity": entityID},
		map[string]any{"count": 1},
		time.Now(),
	))
}

// RecordFocus records a camera focus flight at the given level.
func (r *Recorder) RecordFocus(sessionID string, level core.FocusLevel) {
	r.add(BucketEngagement, influxdb2_write.NewPoint(
		"camera_focus",
		map[string]string{"session": sessionID, "level": string(level)},
		map[string]any{"count": 1},
		time.Now(),
	))
}

// RecordAltitude records one camera altitude sample.
func (r *Recorder) RecordAltitude(sessionID string, meters float64) {
	r.add(BucketScenePerformance, influxdb2_write.NewPoint(
		"camera_altitude",
		map[string]string{"session": sessionID},
		map[string]any{"meters": meters},
		time.Now(),
	))
}

// Flush drains the pending queue into the manager.
func (r *Recorder) Flush() {
	for _, p := range r.pending.GetAndEmpty() {
		if err := r.manager.WritePoint(context.Background(), p.bucket, p.point); err != nil {
			r.manager.Logger.Error().Err(err).Str("bucket", p.bucket).
				Msg("Error writing telemetry point")
		}
	}
}

// Pending reports how many points await the next flush.
func (r *Recorder) Pending() int {
	return r.pending.Len()
}

// Close flushes remaining points and stops the flush loop.
func (r *Recorder) Close() {
	r.closeOnce.Do(func() {
		close(r.done)
	})
	r.wg.Wait()
}

func (r *Recorder) add(bucket string, point *influxdb2_write.Point) {
	r.pending.Push(pendingPoint{bucket: bucket, point: point})
}
