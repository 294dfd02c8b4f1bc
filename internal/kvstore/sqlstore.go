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

package kvstore

import (
	"fmt"

	"github.com/bazario/cachekit/internal/system/database/client"
	"github.com/bazario/cachekit/internal/system/error/cacheerror"
)

// SQLStore is a Store implementation backed by a relational database.
type SQLStore struct {
	client client.DBClientInterface
}

// NewSQLStore creates a new SQLStore over the given database client.
func NewSQLStore(dbClient client.DBClientInterface) *SQLStore {
	return &SQLStore{
		client: dbClient,
	}
}

// Init creates the cache record table if it does not exist.
func (s *SQLStore) Init() error {
	if _, err := s.client.Execute(QueryCreateRecordTable); err != nil {
		return &cacheerror.StoreUnavailableError{Op: "init", Err: err}
	}
	return nil
}

// Get returns the stored value for the key, or ErrKeyNotFound.
func (s *SQLStore) Get(key string) ([]byte, error) {
	results, err := s.client.Query(QueryGetRecord, key)
	if err != nil {
		return nil, &cacheerror.StoreUnavailableError{Op: "get", Err: err}
	}
	if len(results) == 0 {
		return nil, ErrKeyNotFound
	}

	value, err := columnBytes(results[0]["record_value"])
	if err != nil {
		return nil, &cacheerror.StoreUnavailableError{Op: "get", Err: err}
	}
	return value, nil
}

// Set stores the value under the key, overwriting any existing record.
func (s *SQLStore) Set(key string, value []byte) error {
	if _, err := s.client.Execute(QueryUpsertRecord, key, string(value)); err != nil {
		return &cacheerror.StoreUnavailableError{Op: "set", Err: err}
	}
	return nil
}

// Delete removes the record for the key.
func (s *SQLStore) Delete(key string) error {
	if _, err := s.client.Execute(QueryDeleteRecord, key); err != nil {
		return &cacheerror.StoreUnavailableError{Op: "delete", Err: err}
	}
	return nil
}

// Keys returns all stored keys starting with the given prefix.
func (s *SQLStore) Keys(prefix string) ([]string, error) {
	results, err := s.client.Query(QueryListKeysByPrefix, prefix+"%")
	if err != nil {
		return nil, &cacheerror.StoreUnavailableError{Op: "keys", Err: err}
	}

	keys := make([]string, 0, len(results))
	for _, row := range results {
		key, err := columnBytes(row["record_key"])
		if err != nil {
			return nil, &cacheerror.StoreUnavailableError{Op: "keys", Err: err}
		}
		keys = append(keys, string(key))
	}
	return keys, nil
}

// columnBytes normalizes a scanned column value to bytes. Drivers differ in
// whether TEXT columns scan as string or []byte.
func columnBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unexpected column type %T", value)
	}
}
