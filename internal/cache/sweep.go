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

package cache

import (
	"sort"
	"time"

	"github.com/bazario/cachekit/internal/kvstore"
	"github.com/bazario/cachekit/internal/system/log"
)

// survivor tracks a live entry during a sweep for size-budget eviction.
type survivor struct {
	key        string
	entry      *Entry
	lastAccess time.Time
	size       int64
}

// SweepNamespace removes expired entries from the namespace, then evicts
// entries ordered by ascending last access until the namespace fits its size
// budget. A budget of zero or less disables size-based eviction. onRemove is
// invoked for every removed entry before its record is deleted; image caches
// use it to unlink the cached file.
//
// Per-entry failures (corrupt record, store hiccup on one key) are logged and
// skipped so one bad entry cannot abort the sweep. Only a failure to
// enumerate the namespace is returned as an error.
func SweepNamespace(store kvstore.Store, prefix string, budget int64, now time.Time,
	onRemove func(*Entry)) (SweepResult, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "Sweep"),
		log.String(log.LoggerKeyCacheName, prefix))

	var result SweepResult

	keys, err := store.Keys(prefix)
	if err != nil {
		return result, err
	}

	var survivors []survivor
	var totalSize int64
	for _, key := range keys {
		record, err := store.Get(key)
		if err != nil {
			logger.Warn("Failed to read record during sweep, skipping", log.String("key", key), log.Error(err))
			continue
		}

		entry, err := DecodeEntry(record)
		if err != nil {
			logger.Warn("Skipping malformed record during sweep", log.String("key", key), log.Error(err))
			continue
		}

		if entry.Expired(now) {
			if removeEntry(store, key, entry, onRemove, logger) {
				result.RemovedCount++
				result.ReclaimedBytes += entry.SizeBytes
			}
			continue
		}

		survivors = append(survivors, survivor{
			key:        key,
			entry:      entry,
			lastAccess: entry.LastAccessedAt,
			size:       entry.SizeBytes,
		})
		totalSize += entry.SizeBytes
	}

	if budget <= 0 || totalSize <= budget {
		return result, nil
	}

	// Over budget: evict the least recently accessed entries first.
	sort.Slice(survivors, func(i, j int) bool {
		return survivors[i].lastAccess.Before(survivors[j].lastAccess)
	})
	for _, s := range survivors {
		if totalSize <= budget {
			break
		}
		if removeEntry(store, s.key, s.entry, onRemove, logger) {
			result.RemovedCount++
			result.ReclaimedBytes += s.size
			totalSize -= s.size
		}
	}

	return result, nil
}

// removeEntry deletes one record, reporting whether the deletion took effect.
func removeEntry(store kvstore.Store, key string, entry *Entry, onRemove func(*Entry),
	logger *log.Logger) bool {
	if onRemove != nil {
		onRemove(entry)
	}
	if err := store.Delete(key); err != nil {
		logger.Warn("Failed to delete record during sweep", log.String("key", key), log.Error(err))
		return false
	}
	return true
}

// NamespaceStatistics walks the namespace and summarizes its stored entries.
// Hit and miss counters are owned by the caches and filled in by the caller.
// Records that fail to read or decode are skipped.
func NamespaceStatistics(store kvstore.Store, prefix string, now time.Time) (Statistics, error) {
	var stats Statistics

	keys, err := store.Keys(prefix)
	if err != nil {
		return stats, err
	}

	var oldest time.Time
	for _, key := range keys {
		record, err := store.Get(key)
		if err != nil {
			continue
		}
		entry, err := DecodeEntry(record)
		if err != nil {
			continue
		}

		stats.EntryCount++
		stats.TotalSizeBytes += entry.SizeBytes
		if oldest.IsZero() || entry.CreatedAt.Before(oldest) {
			oldest = entry.CreatedAt
		}
	}

	if !oldest.IsZero() {
		stats.OldestEntryAge = now.Sub(oldest)
	}
	return stats, nil
}
