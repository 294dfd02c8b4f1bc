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

// Package apicache caches API response bodies keyed by request fingerprint.
package apicache

import (
	"errors"
	"sync"
	"time"

	"github.com/bazario/cachekit/internal/cache"
	"github.com/bazario/cachekit/internal/kvstore"
	"github.com/bazario/cachekit/internal/system/log"
)

const (
	loggerComponentName = "APICache"

	// KeyPrefix separates the API namespace within the shared store.
	KeyPrefix = "api:"
)

// Config holds the API response cache settings.
type Config struct {
	// DefaultTTL applies when Set is called with a zero TTL.
	DefaultTTL time.Duration
	// MaxSizeBytes is the namespace size budget enforced by maintenance.
	MaxSizeBytes int64
}

// APICache maps request fingerprints to cached response bodies. It performs
// exact string matching only; fingerprint construction is the caller's
// responsibility. The cache can be disabled at runtime, which turns every
// read into a miss and every write into a no-op.
type APICache struct {
	store  kvstore.Store
	config Config

	mu        sync.Mutex
	enabled   bool
	hitCount  int64
	missCount int64

	now func() time.Time
}

// New creates a new APICache over the given store. The cache starts disabled;
// the cache manager enables it on mount.
func New(store kvstore.Store, config Config) *APICache {
	return &APICache{
		store:  store,
		config: config,
		now:    time.Now,
	}
}

// Name returns the namespace name of the cache.
func (c *APICache) Name() string {
	return "api"
}

// SetEnabled toggles the cache at runtime.
func (c *APICache) SetEnabled(enabled bool) {
	c.mu.Lock()
	c.enabled = enabled
	c.mu.Unlock()

	log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName)).
		Debug("API cache toggled", log.Bool("enabled", enabled))
}

// Enabled returns whether the cache is enabled.
func (c *APICache) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// Get returns the cached response body for the fingerprint. It reports a miss
// when the cache is disabled, the entry is absent or expired, or the record
// cannot be read or decoded. Expired entries are deleted on read.
func (c *APICache) Get(fingerprint string) ([]byte, bool) {
	if !c.Enabled() {
		return nil, false
	}

	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))
	key := KeyPrefix + fingerprint

	record, err := c.store.Get(key)
	if err != nil {
		if !errors.Is(err, kvstore.ErrKeyNotFound) {
			logger.Warn("Failed to read response record, treating as miss", log.Error(err))
		}
		c.recordMiss()
		return nil, false
	}

	entry, err := cache.DecodeEntry(record)
	if err != nil {
		logger.Warn("Malformed response record, treating as miss", log.Error(err))
		c.recordMiss()
		return nil, false
	}

	now := c.now()
	if entry.Expired(now) {
		if err := c.store.Delete(key); err != nil {
			logger.Warn("Failed to delete expired response record", log.Error(err))
		}
		c.recordMiss()
		return nil, false
	}

	entry.LastAccessedAt = now
	if err := c.store.Set(key, cache.EncodeEntry(entry)); err != nil {
		logger.Warn("Failed to update response access time", log.Error(err))
	}

	c.recordHit()
	return entry.Payload, true
}

// Set stores the response body under the fingerprint, overwriting any
// existing entry. A zero TTL uses the configured default. When the cache is
// disabled the call is a no-op.
func (c *APICache) Set(fingerprint string, payload []byte, ttl time.Duration) error {
	if !c.Enabled() {
		return nil
	}

	if ttl <= 0 {
		ttl = c.config.DefaultTTL
	}

	now := c.now()
	expiresAt := now.Add(ttl)
	entry := &cache.Entry{
		Key:            KeyPrefix + fingerprint,
		Payload:        payload,
		CreatedAt:      now,
		LastAccessedAt: now,
		SizeBytes:      int64(len(payload)),
		ExpiresAt:      &expiresAt,
	}

	return c.store.Set(entry.Key, cache.EncodeEntry(entry))
}

// Stats returns a snapshot of the API namespace.
func (c *APICache) Stats() (cache.Statistics, error) {
	stats, err := cache.NamespaceStatistics(c.store, KeyPrefix, c.now())
	if err != nil {
		return stats, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	stats.HitCount = c.hitCount
	stats.MissCount = c.missCount
	if total := c.hitCount + c.missCount; total > 0 {
		stats.HitRate = float64(c.hitCount) / float64(total)
	}
	return stats, nil
}

// Clear removes every entry in the API namespace.
func (c *APICache) Clear() error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))
	logger.Debug("Clearing all entries in the API cache")

	keys, err := c.store.Keys(KeyPrefix)
	if err != nil {
		return err
	}

	for _, key := range keys {
		if err := c.store.Delete(key); err != nil {
			return err
		}
	}

	c.mu.Lock()
	c.hitCount = 0
	c.missCount = 0
	c.mu.Unlock()
	return nil
}

// Sweep removes expired entries and enforces the namespace size budget,
// evicting the least recently accessed entries first.
func (c *APICache) Sweep() (cache.SweepResult, error) {
	return cache.SweepNamespace(c.store, KeyPrefix, c.config.MaxSizeBytes, c.now(), nil)
}

func (c *APICache) recordHit() {
	c.mu.Lock()
	c.hitCount++
	c.mu.Unlock()
}

func (c *APICache) recordMiss() {
	c.mu.Lock()
	c.missCount++
	c.mu.Unlock()
}
