/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
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

package store

import (
	"context"
	"errors"
	"os"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masonvector/claim-import-service/internal/claimant/model"
	"github.com/masonvector/claim-import-service/internal/system/constants"
	"github.com/masonvector/claim-import-service/internal/system/database/client"
	"github.com/masonvector/claim-import-service/internal/system/database/provider"
	"github.com/masonvector/claim-import-service/internal/system/database/scripts"
	errors2 "github.com/masonvector/claim-import-service/internal/system/errors"
	"github.com/masonvector/claim-import-service/internal/system/log"
)

var claimantColumns = []string{"claimant_id", "org_handle", "name", "email", "phone", "external_id", "attributes",
	"status", "created_at", "updated_at"}

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

func newMockStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresStore(client.NewDBClient(db), provider.DBTypePostgres), mock
}

func TestPostgresStore_ListByOrg(t *testing.T) {
	s, mock := newMockStore(t)
	created := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(scripts.GetClaimantsByOrg[provider.DBTypePostgres])).
		WithArgs("demo").
		WillReturnRows(sqlmock.NewRows(claimantColumns).
			AddRow("c-1", "demo", "Alice", "alice@example.com", "555", "EXT-1", `{"city":"Springfield"}`,
				"active", created, created).
			AddRow([]byte("c-2"), "demo", "Bob", nil, nil, nil, "{}", "active", created, created))

	claimants, err := s.ListByOrg(context.Background(), "demo")
	require.NoError(t, err)
	require.Len(t, claimants, 2)
	assert.Equal(t, "alice@example.com", claimants[0].Email)
	assert.Equal(t, map[string]string{"city": "Springfield"}, claimants[0].Attributes)
	assert.Equal(t, created, claimants[0].CreatedAt)
	assert.Equal(t, "c-2", claimants[1].ID)
	assert.Empty(t, claimants[1].Email)
	assert.Nil(t, claimants[1].Attributes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListByOrgQueryFailure(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery(regexp.QuoteMeta(scripts.GetClaimantsByOrg[provider.DBTypePostgres])).
		WithArgs("demo").
		WillReturnError(errors.New("connection reset"))

	_, err := s.ListByOrg(context.Background(), "demo")
	require.Error(t, err)
	assert.True(t, errors2.HasCode(err, errors2.FETCH_CLAIMANTS))
}

func TestPostgresStore_Get(t *testing.T) {
	s, mock := newMockStore(t)
	query := regexp.QuoteMeta(scripts.GetClaimant[provider.DBTypePostgres])

	mock.ExpectQuery(query).WithArgs("demo", "c-1").
		WillReturnRows(sqlmock.NewRows(claimantColumns).
			AddRow("c-1", "demo", "Alice", "", "", "", nil, "active", time.Now(), time.Now()))
	mock.ExpectQuery(query).WithArgs("demo", "missing").
		WillReturnRows(sqlmock.NewRows(claimantColumns))

	got, err := s.Get(context.Background(), "demo", "c-1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)

	_, err = s.Get(context.Background(), "demo", "missing")
	assert.ErrorIs(t, err, ErrClaimantNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Create(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Now().UTC()
	claimant := model.Claimant{ID: "c-1", OrgHandle: "demo", Name: "Alice", Status: constants.ClaimantStatusActive,
		Attributes: map[string]string{"zip": "12345"}, CreatedAt: now, UpdatedAt: now}
	insert := regexp.QuoteMeta(scripts.InsertClaimant[provider.DBTypePostgres])

	mock.ExpectExec(insert).
		WithArgs("c-1", "demo", "Alice", "", "", "", `{"zip":"12345"}`, "active", now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(insert).WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectExec(insert).WillReturnError(errors.New("disk full"))

	require.NoError(t, s.Create(context.Background(), claimant))
	assert.ErrorIs(t, s.Create(context.Background(), claimant), ErrDuplicateClaimant)
	err := s.Create(context.Background(), claimant)
	assert.True(t, errors2.HasCode(err, errors2.CREATE_CLAIMANT))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Update(t *testing.T) {
	s, mock := newMockStore(t)
	update := regexp.QuoteMeta(scripts.UpdateClaimant[provider.DBTypePostgres])
	claimant := model.Claimant{ID: "c-1", OrgHandle: "demo", Name: "Alice Example", Status: constants.ClaimantStatusActive}

	mock.ExpectExec(update).
		WithArgs("demo", "c-1", "Alice Example", "", "", "", "{}", "active", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(update).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, s.Update(context.Background(), claimant))
	assert.ErrorIs(t, s.Update(context.Background(), claimant), ErrClaimantNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_PingAndClose(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	s := NewPostgresStore(client.NewDBClient(db), provider.DBTypePostgres)

	mock.ExpectPing()
	mock.ExpectClose()
	assert.NoError(t, s.Ping(context.Background()))
	assert.NoError(t, s.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}
