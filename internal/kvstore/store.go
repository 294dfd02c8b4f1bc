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

// Package kvstore provides the persistent key-value store used by the cache layer.
package kvstore

import "errors"

// ErrKeyNotFound is returned by Get when no record exists for the key.
var ErrKeyNotFound = errors.New("key not found")

// Store defines the interface for the persistent key-value store. The image
// and API caches share one store and separate themselves by key prefix.
type Store interface {
	// Get returns the stored value for the key, or ErrKeyNotFound.
	Get(key string) ([]byte, error)
	// Set stores the value under the key, overwriting any existing record.
	Set(key string, value []byte) error
	// Delete removes the record for the key. Deleting an absent key is not an error.
	Delete(key string) error
	// Keys returns all stored keys starting with the given prefix.
	Keys(prefix string) ([]string, error)
}
