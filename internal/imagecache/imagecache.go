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

// Package imagecache maps remote image URLs to locally cached files.
package imagecache

import (
	"context"
	"errors"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/bazario/cachekit/internal/cache"
	"github.com/bazario/cachekit/internal/kvstore"
	"github.com/bazario/cachekit/internal/system/error/cacheerror"
	syshttp "github.com/bazario/cachekit/internal/system/http"
	"github.com/bazario/cachekit/internal/system/log"
)

const (
	loggerComponentName = "ImageCache"

	// KeyPrefix separates the image namespace within the shared store.
	KeyPrefix = "img:"
)

// Config holds the image cache settings.
type Config struct {
	// Directory is where downloaded image files are written.
	Directory string
	// TTL is the freshness window applied to every cached image.
	TTL time.Duration
	// MaxSizeBytes is the namespace size budget enforced by maintenance.
	MaxSizeBytes int64
}

// ImageCache caches remote images on the local file system, indexed through
// the persistent store. Concurrent downloads of the same URL are collapsed
// into a single flight.
type ImageCache struct {
	store  kvstore.Store
	client syshttp.ClientInterface
	config Config

	group singleflight.Group

	mu        sync.Mutex
	hitCount  int64
	missCount int64

	now func() time.Time
}

// New creates a new ImageCache over the given store and HTTP client.
func New(store kvstore.Store, client syshttp.ClientInterface, config Config) *ImageCache {
	return &ImageCache{
		store:  store,
		client: client,
		config: config,
		now:    time.Now,
	}
}

// Name returns the namespace name of the cache.
func (c *ImageCache) Name() string {
	return "image"
}

// GetCachedImage returns the local file path for a non-expired cached entry.
// It performs no network I/O. A missing or corrupted record, an expired
// entry, or a cache file deleted out-of-band all report a miss; stale state
// is cleaned up so the next CacheImage call re-fetches.
func (c *ImageCache) GetCachedImage(imageURL string) (string, bool) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))
	key := KeyPrefix + imageURL

	record, err := c.store.Get(key)
	if err != nil {
		if !errors.Is(err, kvstore.ErrKeyNotFound) {
			logger.Warn("Failed to read image record, treating as miss", log.Error(err))
		}
		c.recordMiss()
		return "", false
	}

	entry, err := cache.DecodeEntry(record)
	if err != nil {
		logger.Warn("Malformed image record, treating as miss", log.String("url", imageURL), log.Error(err))
		c.recordMiss()
		return "", false
	}

	now := c.now()
	if entry.Expired(now) {
		c.removeEntry(key, entry)
		c.recordMiss()
		return "", false
	}

	localPath := string(entry.Payload)
	if _, err := os.Stat(localPath); err != nil {
		// The cached file was deleted out-of-band. Drop the stale entry so
		// the next CacheImage call heals the cache.
		logger.Debug("Cached image file missing, dropping entry", log.String("url", imageURL))
		c.removeEntry(key, entry)
		c.recordMiss()
		return "", false
	}

	entry.LastAccessedAt = now
	if err := c.store.Set(key, cache.EncodeEntry(entry)); err != nil {
		logger.Warn("Failed to update image access time", log.String("url", imageURL), log.Error(err))
	}

	c.recordHit()
	return localPath, true
}

// CacheImage downloads the URL to local storage, records a cache entry with
// the configured TTL, and returns the local path. Concurrent calls for the
// same URL share one download and resolve to the same path.
func (c *ImageCache) CacheImage(ctx context.Context, imageURL string) (string, error) {
	result, err, _ := c.group.Do(imageURL, func() (interface{}, error) {
		return c.download(ctx, imageURL)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

// download fetches the image bytes, writes them to the cache directory, and
// stores the entry. It runs at most once per in-flight URL.
func (c *ImageCache) download(ctx context.Context, imageURL string) (string, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	resp, err := c.client.Get(ctx, imageURL)
	if err != nil {
		return "", &cacheerror.FetchError{URL: imageURL, Err: err}
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Warn("Failed to close response body", log.Error(closeErr))
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &cacheerror.FetchError{URL: imageURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &cacheerror.FetchError{URL: imageURL, Err: err}
	}

	if err := os.MkdirAll(c.config.Directory, 0750); err != nil {
		return "", err
	}

	localPath := filepath.Join(c.config.Directory, cacheFileName(imageURL))
	if err := os.WriteFile(localPath, body, 0600); err != nil {
		return "", err
	}

	now := c.now()
	expiresAt := now.Add(c.config.TTL)
	entry := &cache.Entry{
		Key:            KeyPrefix + imageURL,
		Payload:        []byte(localPath),
		CreatedAt:      now,
		LastAccessedAt: now,
		SizeBytes:      int64(len(body)),
		ExpiresAt:      &expiresAt,
	}

	if err := c.store.Set(entry.Key, cache.EncodeEntry(entry)); err != nil {
		return "", err
	}

	logger.Debug("Image cached", log.String("url", imageURL), log.Int("sizeBytes", len(body)))
	return localPath, nil
}

// Stats returns a snapshot of the image namespace.
func (c *ImageCache) Stats() (cache.Statistics, error) {
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

// Clear removes every entry in the image namespace along with its cached file.
func (c *ImageCache) Clear() error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))
	logger.Debug("Clearing all entries in the image cache")

	keys, err := c.store.Keys(KeyPrefix)
	if err != nil {
		return err
	}

	for _, key := range keys {
		if record, err := c.store.Get(key); err == nil {
			if entry, err := cache.DecodeEntry(record); err == nil {
				c.removeFile(entry)
			}
		}
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
func (c *ImageCache) Sweep() (cache.SweepResult, error) {
	return cache.SweepNamespace(c.store, KeyPrefix, c.config.MaxSizeBytes, c.now(), c.removeFile)
}

// removeEntry drops a record and its cached file, absorbing store errors.
func (c *ImageCache) removeEntry(key string, entry *cache.Entry) {
	c.removeFile(entry)
	if err := c.store.Delete(key); err != nil {
		log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName)).
			Warn("Failed to delete image record", log.String("key", key), log.Error(err))
	}
}

// removeFile unlinks the cached file referenced by the entry, if any.
func (c *ImageCache) removeFile(entry *cache.Entry) {
	localPath := string(entry.Payload)
	if localPath == "" {
		return
	}
	if err := os.Remove(localPath); err != nil && !os.IsNotExist(err) {
		log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName)).
			Warn("Failed to remove cached image file", log.String("path", localPath), log.Error(err))
	}
}

func (c *ImageCache) recordHit() {
	c.mu.Lock()
	c.hitCount++
	c.mu.Unlock()
}

func (c *ImageCache) recordMiss() {
	c.mu.Lock()
	c.missCount++
	c.mu.Unlock()
}

// cacheFileName builds a unique file name for a downloaded image, preserving
// the URL's extension when it has one.
func cacheFileName(imageURL string) string {
	name := uuid.New().String()
	if parsed, err := url.Parse(imageURL); err == nil {
		if ext := filepath.Ext(parsed.Path); ext != "" {
			name += ext
		}
	}
	return name
}
