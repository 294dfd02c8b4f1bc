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

import "github.com/bazario/cachekit/internal/system/database/model"

var (
	// QueryCreateRecordTable is the query to create the cache record table.
	QueryCreateRecordTable = model.DBQuery{
		ID:    "KVQ-RECORD-00",
		Query: "CREATE TABLE IF NOT EXISTS CACHE_RECORD (RECORD_KEY TEXT PRIMARY KEY, RECORD_VALUE TEXT NOT NULL)",
	}

	// QueryGetRecord is the query to retrieve a record by key.
	QueryGetRecord = model.DBQuery{
		ID:            "KVQ-RECORD-01",
		Query:         "SELECT RECORD_VALUE FROM CACHE_RECORD WHERE RECORD_KEY = ?",
		PostgresQuery: "SELECT RECORD_VALUE FROM CACHE_RECORD WHERE RECORD_KEY = $1",
	}

	// QueryUpsertRecord is the query to insert or overwrite a record.
	QueryUpsertRecord = model.DBQuery{
		ID: "KVQ-RECORD-02",
		Query: "INSERT INTO CACHE_RECORD (RECORD_KEY, RECORD_VALUE) VALUES (?, ?) " +
			"ON CONFLICT (RECORD_KEY) DO UPDATE SET RECORD_VALUE = excluded.RECORD_VALUE",
		PostgresQuery: "INSERT INTO CACHE_RECORD (RECORD_KEY, RECORD_VALUE) VALUES ($1, $2) " +
			"ON CONFLICT (RECORD_KEY) DO UPDATE SET RECORD_VALUE = excluded.RECORD_VALUE",
	}

	// QueryDeleteRecord is the query to delete a record by key.
	QueryDeleteRecord = model.DBQuery{
		ID:            "KVQ-RECORD-03",
		Query:         "DELETE FROM CACHE_RECORD WHERE RECORD_KEY = ?",
		PostgresQuery: "DELETE FROM CACHE_RECORD WHERE RECORD_KEY = $1",
	}

	// QueryListKeysByPrefix is the query to list record keys matching a prefix.
	QueryListKeysByPrefix = model.DBQuery{
		ID:            "KVQ-RECORD-04",
		Query:         "SELECT RECORD_KEY FROM CACHE_RECORD WHERE RECORD_KEY LIKE ?",
		PostgresQuery: "SELECT RECORD_KEY FROM CACHE_RECORD WHERE RECORD_KEY LIKE $1",
	}
)
