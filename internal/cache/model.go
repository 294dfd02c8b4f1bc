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

// Package cache defines the stored cache entry, its codec, and shared cache statistics.
package cache

import (
	"time"
)

// SchemaVersion is the current cache record schema version. Records with a
// different version fail to decode and are treated as misses.
const SchemaVersion = 1

// Entry represents a stored cache unit.
type Entry struct {
	// Version is the record schema version.
	Version int `json:"version"`
	// Key is the unique identifier within its namespace.
	Key string `json:"key"`
	// Payload is the cached value. Images store a local file path; API
	// responses store the response body.
	Payload []byte `json:"payload"`
	// CreatedAt is the timestamp of the first write.
	CreatedAt time.Time `json:"created_at"`
	// LastAccessedAt is the timestamp of the most recent successful read.
	LastAccessedAt time.Time `json:"last_accessed_at"`
	// SizeBytes is the approximate payload size used for budget accounting.
	SizeBytes int64 `json:"size_bytes"`
	// ExpiresAt is the freshness deadline. Nil means the entry never
	// time-expires and is only subject to size-based eviction.
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// Expired reports whether the entry is past its freshness deadline.
func (e *Entry) Expired(now time.Time) bool {
	return e.ExpiresAt != nil && now.After(*e.ExpiresAt)
}

// Statistics represents a point-in-time view of one cache namespace. Hit and
// miss counters live in process memory only and reset on restart.
type Statistics struct {
	EntryCount     int           `json:"entry_count"`
	TotalSizeBytes int64         `json:"total_size_bytes"`
	OldestEntryAge time.Duration `json:"oldest_entry_age"`
	HitCount       int64         `json:"hit_count"`
	MissCount      int64         `json:"miss_count"`
	HitRate        float64       `json:"hit_rate"`
}

// SweepResult reports the outcome of one maintenance pass over a namespace.
type SweepResult struct {
	RemovedCount   int   `json:"removed_count"`
	ReclaimedBytes int64 `json:"reclaimed_bytes"`
}
