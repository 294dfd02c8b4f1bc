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
	"encoding/json"
	"fmt"

	"github.com/bazario/cachekit/internal/system/error/cacheerror"
)

// EncodeEntry serializes the entry into a storable record. Encoding is total:
// the entry shape contains only marshalable fields.
func EncodeEntry(entry *Entry) []byte {
	record := *entry
	record.Version = SchemaVersion
	data, err := json.Marshal(&record)
	if err != nil {
		// Unreachable for the Entry field set; keep the record parseable anyway.
		return []byte("{}")
	}
	return data
}

// DecodeEntry parses a stored record back into an entry. Malformed records
// and unrecognized schema versions fail with a DecodeError, which callers
// treat as a cache miss.
func DecodeEntry(record []byte) (*Entry, error) {
	var entry Entry
	if err := json.Unmarshal(record, &entry); err != nil {
		return nil, &cacheerror.DecodeError{Reason: "malformed record", Err: err}
	}

	if entry.Version != SchemaVersion {
		return nil, &cacheerror.DecodeError{
			Reason: fmt.Sprintf("unrecognized schema version %d", entry.Version),
		}
	}
	if entry.Key == "" {
		return nil, &cacheerror.DecodeError{Reason: "missing key"}
	}
	if entry.CreatedAt.IsZero() {
		return nil, &cacheerror.DecodeError{Reason: "missing creation time"}
	}

	return &entry, nil
}
