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

// Package manager binds the cache layer's lifecycle to the hosting application.
package manager

import (
	"github.com/bazario/cachekit/internal/maintenance"
	"github.com/bazario/cachekit/internal/system/log"
)

const loggerComponentName = "CacheManager"

// SchedulerInterface defines the maintenance scheduler operations the manager drives.
type SchedulerInterface interface {
	StartAutoMaintenance()
	StopAutoMaintenance()
	RunMaintenance() maintenance.Report
	MaintenanceStats() maintenance.AggregateStats
}

// ToggleableCache defines a cache whose availability follows the application lifecycle.
type ToggleableCache interface {
	SetEnabled(enabled bool)
}

// Manager is a lifecycle-binding shim: the hosting application calls Mount on
// start and Unmount on shutdown, and the manager drives the maintenance
// scheduler and the API cache enabled flag in lockstep. It exposes no other
// surface.
type Manager struct {
	scheduler SchedulerInterface
	apiCache  ToggleableCache
}

// New creates a new Manager over the given scheduler and API cache.
func New(scheduler SchedulerInterface, apiCache ToggleableCache) *Manager {
	return &Manager{
		scheduler: scheduler,
		apiCache:  apiCache,
	}
}

// Mount starts auto maintenance, enables the API cache, and runs one
// immediate sweep. Statistics are logged per namespace; a failure in one
// namespace's stats does not block the others and is never fatal.
func (m *Manager) Mount() {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	m.scheduler.StartAutoMaintenance()
	m.apiCache.SetEnabled(true)

	report := m.scheduler.RunMaintenance()
	for _, ns := range report.Namespaces {
		if ns.Err != nil {
			logger.Warn("Initial maintenance sweep failed for namespace",
				log.String(log.LoggerKeyCacheName, ns.Name), log.Error(ns.Err))
		}
	}
	logger.Info("Cache layer mounted", log.Int("entriesRemoved", report.TotalRemoved()))

	for _, result := range m.scheduler.MaintenanceStats().Targets {
		if result.Err != nil {
			logger.Warn("Failed to collect cache statistics",
				log.String(log.LoggerKeyCacheName, result.Name), log.Error(result.Err))
			continue
		}
		logger.Info("Cache statistics",
			log.String(log.LoggerKeyCacheName, result.Name),
			log.Int("entryCount", result.Stats.EntryCount),
			log.Int64("totalSizeBytes", result.Stats.TotalSizeBytes))
	}
}

// Unmount stops auto maintenance and disables the API cache. In-flight
// sweeps and downloads run to completion; their results are discarded.
func (m *Manager) Unmount() {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	m.scheduler.StopAutoMaintenance()
	m.apiCache.SetEnabled(false)
	logger.Info("Cache layer unmounted")
}
