/*
 * Copyright (c) 2025, Bazario Labs. (https://bazario.io)
 *
 * Bazario Labs licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package maintenance runs periodic and on-demand sweeps across the cache namespaces.
package maintenance

import (
	"sync"
	"time"

	"github.com/bazario/cachekit/internal/cache"
	"github.com/bazario/cachekit/internal/system/log"
)

const loggerComponentName = "MaintenanceScheduler"

// Target is a cache namespace the scheduler maintains.
type Target interface {
	// Name identifies the namespace in reports and logs.
	Name() string
	// Sweep removes expired entries and enforces the namespace size budget.
	Sweep() (cache.SweepResult, error)
	// Stats returns a snapshot of the namespace.
	Stats() (cache.Statistics, error)
}

// NamespaceReport reports the sweep outcome for one namespace.
type NamespaceReport struct {
	Name           string
	RemovedCount   int
	ReclaimedBytes int64
	// Err is set when the namespace could not be enumerated; the scheduler
	// stays Running and the next tick retries.
	Err error
}

// Report aggregates the sweep outcomes of all targets.
type Report struct {
	Namespaces []NamespaceReport
}

// TotalRemoved returns the number of entries removed across all namespaces.
func (r Report) TotalRemoved() int {
	total := 0
	for _, ns := range r.Namespaces {
		total += ns.RemovedCount
	}
	return total
}

// StatsResult holds one namespace's statistics, or the error that prevented
// collecting them. Failures are carried per namespace so one failing fetch
// does not block the others.
type StatsResult struct {
	Name  string
	Stats cache.Statistics
	Err   error
}

// AggregateStats combines the statistics of all maintained namespaces.
type AggregateStats struct {
	Targets []StatsResult
}

// Scheduler sweeps its targets periodically while Running, and on demand in
// either state. It starts Idle.
type Scheduler struct {
	targets  []Target
	interval time.Duration

	mu      sync.Mutex
	running bool
	stop    chan struct{}
	done    chan struct{}
}

// NewScheduler creates an Idle scheduler maintaining the given targets.
func NewScheduler(interval time.Duration, targets ...Target) *Scheduler {
	return &Scheduler{
		targets:  targets,
		interval: interval,
	}
}

// StartAutoMaintenance transitions the scheduler from Idle to Running and
// begins periodic sweeps. Calling it while Running is a no-op.
func (s *Scheduler) StartAutoMaintenance() {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	stop, done := s.stop, s.done
	s.mu.Unlock()

	go s.maintainLoop(stop, done)
	logger.Debug("Auto maintenance started", log.Any("interval", s.interval))
}

// StopAutoMaintenance transitions the scheduler from Running to Idle and
// cancels the timer, waiting for the loop to exit. Calling it while Idle is
// a no-op.
func (s *Scheduler) StopAutoMaintenance() {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	stop, done := s.stop, s.done
	s.stop = nil
	s.done = nil
	s.mu.Unlock()

	close(stop)
	<-done
	logger.Debug("Auto maintenance stopped")
}

// Running reports whether auto maintenance is active.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// maintainLoop runs sweeps on a cancellable ticker until stopped.
func (s *Scheduler) maintainLoop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.RunMaintenance()
		}
	}
}

// RunMaintenance sweeps every target once and reports entries removed and
// bytes reclaimed per namespace. It never panics: a failing namespace is
// reported through its Err field and the sweep moves on to the next target.
func (s *Scheduler) RunMaintenance() Report {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	report := Report{
		Namespaces: make([]NamespaceReport, 0, len(s.targets)),
	}

	for _, target := range s.targets {
		result, err := target.Sweep()
		nsReport := NamespaceReport{
			Name:           target.Name(),
			RemovedCount:   result.RemovedCount,
			ReclaimedBytes: result.ReclaimedBytes,
			Err:            err,
		}
		if err != nil {
			logger.Warn("Maintenance sweep failed for namespace",
				log.String(log.LoggerKeyCacheName, target.Name()), log.Error(err))
		} else if nsReport.RemovedCount > 0 {
			logger.Debug("Maintenance sweep completed",
				log.String(log.LoggerKeyCacheName, target.Name()),
				log.Int("removed", nsReport.RemovedCount),
				log.Int64("reclaimedBytes", nsReport.ReclaimedBytes))
		}
		report.Namespaces = append(report.Namespaces, nsReport)
	}

	return report
}

// MaintenanceStats collects statistics from every target for diagnostics. It
// is a pure read; each namespace's failure is carried in its own result.
func (s *Scheduler) MaintenanceStats() AggregateStats {
	stats := AggregateStats{
		Targets: make([]StatsResult, 0, len(s.targets)),
	}

	for _, target := range s.targets {
		targetStats, err := target.Stats()
		stats.Targets = append(stats.Targets, StatsResult{
			Name:  target.Name(),
			Stats: targetStats,
			Err:   err,
		})
	}

	return stats
}
