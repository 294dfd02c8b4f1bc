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

package apicache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/bazario/cachekit/internal/cache"
	"github.com/bazario/cachekit/internal/kvstore"
)

type APICacheTestSuite struct {
	suite.Suite
	store    *kvstore.InMemoryStore
	apiCache *APICache
	now      time.Time
}

func TestAPICacheTestSuite(t *testing.T) {
	suite.Run(t, new(APICacheTestSuite))
}

func (suite *APICacheTestSuite) SetupTest() {
	suite.store = kvstore.NewInMemoryStore()
	suite.now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	suite.apiCache = New(suite.store, Config{
		DefaultTTL:   5 * time.Minute,
		MaxSizeBytes: 0,
	})
	suite.apiCache.now = func() time.Time { return suite.now }
	suite.apiCache.SetEnabled(true)
}

func (suite *APICacheTestSuite) TestStartsDisabled() {
	t := suite.T()

	fresh := New(suite.store, Config{DefaultTTL: time.Minute})
	assert.False(t, fresh.Enabled())
}

func (suite *APICacheTestSuite) TestSetAndGet() {
	t := suite.T()

	fingerprint := Fingerprint("GET", "/v1/listings", map[string]string{"category": "tools"})
	require.NoError(t, suite.apiCache.Set(fingerprint, []byte(`{"items":[]}`), 0))

	payload, hit := suite.apiCache.Get(fingerprint)
	assert.True(t, hit)
	assert.Equal(t, `{"items":[]}`, string(payload))
}

func (suite *APICacheTestSuite) TestGetMissingFingerprint() {
	t := suite.T()

	payload, hit := suite.apiCache.Get("GET|/v1/absent|")
	assert.False(t, hit)
	assert.Nil(t, payload)
}

func (suite *APICacheTestSuite) TestSetOverwrites() {
	t := suite.T()

	require.NoError(t, suite.apiCache.Set("fp", []byte("old"), 0))
	require.NoError(t, suite.apiCache.Set("fp", []byte("new"), 0))

	payload, hit := suite.apiCache.Get("fp")
	require.True(t, hit)
	assert.Equal(t, "new", string(payload))
}

func (suite *APICacheTestSuite) TestZeroTTLUsesDefault() {
	t := suite.T()

	require.NoError(t, suite.apiCache.Set("fp", []byte("body"), 0))

	record, err := suite.store.Get(KeyPrefix + "fp")
	require.NoError(t, err)
	entry, err := cache.DecodeEntry(record)
	require.NoError(t, err)
	require.NotNil(t, entry.ExpiresAt)
	assert.True(t, entry.ExpiresAt.Equal(suite.now.Add(5*time.Minute)))
}

func (suite *APICacheTestSuite) TestPerEntryTTLOverridesDefault() {
	t := suite.T()

	require.NoError(t, suite.apiCache.Set("fp", []byte("body"), time.Hour))

	record, err := suite.store.Get(KeyPrefix + "fp")
	require.NoError(t, err)
	entry, err := cache.DecodeEntry(record)
	require.NoError(t, err)
	require.NotNil(t, entry.ExpiresAt)
	assert.True(t, entry.ExpiresAt.Equal(suite.now.Add(time.Hour)))
}

func (suite *APICacheTestSuite) TestExpiredEntryIsDeletedOnRead() {
	t := suite.T()

	require.NoError(t, suite.apiCache.Set("fp", []byte("body"), time.Minute))

	suite.now = suite.now.Add(2 * time.Minute)

	payload, hit := suite.apiCache.Get("fp")
	assert.False(t, hit)
	assert.Nil(t, payload)

	_, err := suite.store.Get(KeyPrefix + "fp")
	assert.ErrorIs(t, err, kvstore.ErrKeyNotFound)
}

func (suite *APICacheTestSuite) TestDisabledGetIsAlwaysMiss() {
	t := suite.T()

	require.NoError(t, suite.apiCache.Set("fp", []byte("body"), 0))

	suite.apiCache.SetEnabled(false)

	payload, hit := suite.apiCache.Get("fp")
	assert.False(t, hit)
	assert.Nil(t, payload)

	// Disabled reads do not move the hit/miss counters.
	stats, err := suite.apiCache.Stats()
	require.NoError(t, err)
	assert.Zero(t, stats.HitCount)
	assert.Zero(t, stats.MissCount)
}

func (suite *APICacheTestSuite) TestDisabledSetIsNoOp() {
	t := suite.T()

	suite.apiCache.SetEnabled(false)
	require.NoError(t, suite.apiCache.Set("fp", []byte("body"), 0))

	_, err := suite.store.Get(KeyPrefix + "fp")
	assert.ErrorIs(t, err, kvstore.ErrKeyNotFound)
}

func (suite *APICacheTestSuite) TestReEnableServesSurvivingEntries() {
	t := suite.T()

	require.NoError(t, suite.apiCache.Set("fp", []byte("body"), time.Hour))

	// Disabling hides entries without deleting them.
	suite.apiCache.SetEnabled(false)
	_, hit := suite.apiCache.Get("fp")
	assert.False(t, hit)

	suite.apiCache.SetEnabled(true)
	payload, hit := suite.apiCache.Get("fp")
	assert.True(t, hit)
	assert.Equal(t, "body", string(payload))
}

func (suite *APICacheTestSuite) TestGetRefreshesLastAccessTime() {
	t := suite.T()

	require.NoError(t, suite.apiCache.Set("fp", []byte("body"), time.Hour))

	suite.now = suite.now.Add(10 * time.Minute)
	_, hit := suite.apiCache.Get("fp")
	require.True(t, hit)

	record, err := suite.store.Get(KeyPrefix + "fp")
	require.NoError(t, err)
	entry, err := cache.DecodeEntry(record)
	require.NoError(t, err)
	assert.True(t, entry.LastAccessedAt.Equal(suite.now))
}

func (suite *APICacheTestSuite) TestStats() {
	t := suite.T()

	require.NoError(t, suite.apiCache.Set("fp1", []byte("aaaa"), 0))
	require.NoError(t, suite.apiCache.Set("fp2", []byte("bbbbbbbb"), 0))

	suite.apiCache.Get("fp1")
	suite.apiCache.Get("fp1")
	suite.apiCache.Get("fp-missing")

	stats, err := suite.apiCache.Stats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.EntryCount)
	assert.Equal(t, int64(12), stats.TotalSizeBytes)
	assert.Equal(t, int64(2), stats.HitCount)
	assert.Equal(t, int64(1), stats.MissCount)
	assert.InDelta(t, 2.0/3.0, stats.HitRate, 0.0001)
}

func (suite *APICacheTestSuite) TestSweepRemovesExpiredEntries() {
	t := suite.T()

	require.NoError(t, suite.apiCache.Set("fp-old", []byte("body"), time.Minute))
	require.NoError(t, suite.apiCache.Set("fp-new", []byte("body"), time.Hour))

	suite.now = suite.now.Add(30 * time.Minute)

	result, err := suite.apiCache.Sweep()
	require.NoError(t, err)
	assert.Equal(t, 1, result.RemovedCount)

	_, hit := suite.apiCache.Get("fp-new")
	assert.True(t, hit)
}

func (suite *APICacheTestSuite) TestClear() {
	t := suite.T()

	require.NoError(t, suite.apiCache.Set("fp1", []byte("a"), 0))
	require.NoError(t, suite.apiCache.Set("fp2", []byte("b"), 0))
	suite.apiCache.Get("fp1")

	require.NoError(t, suite.apiCache.Clear())

	keys, err := suite.store.Keys(KeyPrefix)
	require.NoError(t, err)
	assert.Empty(t, keys)

	stats, err := suite.apiCache.Stats()
	require.NoError(t, err)
	assert.Zero(t, stats.HitCount)
	assert.Zero(t, stats.MissCount)
}
