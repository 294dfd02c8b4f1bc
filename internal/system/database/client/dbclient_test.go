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

package client

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/bazario/cachekit/internal/system/database/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type DBClientTestSuite struct {
	suite.Suite
	mockDB   *sql.DB
	mock     sqlmock.Sqlmock
	dbClient DBClientInterface
}

func TestDBClientSuite(t *testing.T) {
	suite.Run(t, new(DBClientTestSuite))
}

func (suite *DBClientTestSuite) SetupTest() {
	var err error
	suite.mockDB, suite.mock, err = sqlmock.New()
	if err != nil {
		suite.T().Fatalf("Failed to create mock database: %v", err)
	}

	db := model.NewDB(suite.mockDB)
	suite.dbClient = NewDBClient(db, "mock")
}

func (suite *DBClientTestSuite) TearDownTest() {
	if suite.mock != nil {
		if err := suite.mock.ExpectationsWereMet(); err != nil {
			suite.T().Fatalf("There were unfulfilled expectations: %v", err)
		}
	}
}

func (suite *DBClientTestSuite) TestQuerySuccess() {
	testQuery := model.DBQuery{
		ID:    "test_query_success",
		Query: "SELECT RECORD_KEY, RECORD_VALUE FROM CACHE_RECORD WHERE RECORD_KEY = ?",
	}
	args := []interface{}{"img:https://cdn.bazario.io/a.jpg"}
	mockArgs := []driver.Value{"img:https://cdn.bazario.io/a.jpg"}

	columns := []string{"RECORD_KEY", "RECORD_VALUE"}
	rows := sqlmock.NewRows(columns).
		AddRow("img:https://cdn.bazario.io/a.jpg", `{"version":1}`)
	suite.mock.ExpectQuery("SELECT RECORD_KEY, RECORD_VALUE FROM CACHE_RECORD WHERE RECORD_KEY = ?").
		WithArgs(mockArgs...).
		WillReturnRows(rows)

	results, err := suite.dbClient.Query(testQuery, args...)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), results, 1)
	// Column names are normalized to lowercase.
	assert.Equal(suite.T(), "img:https://cdn.bazario.io/a.jpg", results[0]["record_key"])
	assert.Equal(suite.T(), `{"version":1}`, results[0]["record_value"])
}

func (suite *DBClientTestSuite) TestQueryEmptyResults() {
	testQuery := model.DBQuery{
		ID:    "test_query_empty",
		Query: "SELECT RECORD_VALUE FROM CACHE_RECORD WHERE RECORD_KEY = ?",
	}

	rows := sqlmock.NewRows([]string{"RECORD_VALUE"})
	suite.mock.ExpectQuery("SELECT RECORD_VALUE FROM CACHE_RECORD WHERE RECORD_KEY = ?").
		WithArgs("api:missing").
		WillReturnRows(rows)

	results, err := suite.dbClient.Query(testQuery, "api:missing")

	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), results)
}

func (suite *DBClientTestSuite) TestQueryError() {
	testQuery := model.DBQuery{
		ID:    "test_query_error",
		Query: "SELECT RECORD_VALUE FROM CACHE_RECORD WHERE RECORD_KEY = ?",
	}

	suite.mock.ExpectQuery("SELECT RECORD_VALUE FROM CACHE_RECORD WHERE RECORD_KEY = ?").
		WithArgs("api:broken").
		WillReturnError(errors.New("database is locked"))

	results, err := suite.dbClient.Query(testQuery, "api:broken")

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), results)
}

func (suite *DBClientTestSuite) TestExecuteSuccess() {
	testQuery := model.DBQuery{
		ID:    "test_execute_success",
		Query: "DELETE FROM CACHE_RECORD WHERE RECORD_KEY = ?",
	}

	suite.mock.ExpectExec("DELETE FROM CACHE_RECORD WHERE RECORD_KEY = ?").
		WithArgs("img:stale").
		WillReturnResult(sqlmock.NewResult(0, 1))

	rowsAffected, err := suite.dbClient.Execute(testQuery, "img:stale")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), rowsAffected)
}

func (suite *DBClientTestSuite) TestExecuteError() {
	testQuery := model.DBQuery{
		ID:    "test_execute_error",
		Query: "DELETE FROM CACHE_RECORD WHERE RECORD_KEY = ?",
	}

	suite.mock.ExpectExec("DELETE FROM CACHE_RECORD WHERE RECORD_KEY = ?").
		WithArgs("img:stale").
		WillReturnError(errors.New("connection reset"))

	rowsAffected, err := suite.dbClient.Execute(testQuery, "img:stale")

	assert.Error(suite.T(), err)
	assert.Zero(suite.T(), rowsAffected)
}

func (suite *DBClientTestSuite) TestClose() {
	suite.mock.ExpectClose()
	assert.NoError(suite.T(), suite.dbClient.Close())
}
