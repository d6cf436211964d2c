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

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	claimantModel "github.com/masonvector/claim-import-service/internal/claimant/model"
	claimantStore "github.com/masonvector/claim-import-service/internal/claimant/store"
	"github.com/masonvector/claim-import-service/internal/import_job/inference"
	"github.com/masonvector/claim-import-service/internal/import_job/model"
	"github.com/masonvector/claim-import-service/internal/import_job/service"
	"github.com/masonvector/claim-import-service/internal/import_job/store"
	"github.com/masonvector/claim-import-service/internal/system/config"
	errors2 "github.com/masonvector/claim-import-service/internal/system/errors"
	"github.com/masonvector/claim-import-service/internal/system/log"
	"github.com/masonvector/claim-import-service/internal/system/utils"
)

const claimsCSV = "Full Name,Email\nAlice Example,alice@example.com\nCharlie Other,charlie@example.com\n"

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

type testServer struct {
	mux   *http.ServeMux
	now   time.Time
	store *claimantStore.MemoryStore
}

func newTestServer(t *testing.T, maxUpload int64) *testServer {
	t.Helper()
	ts := &testServer{now: time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)}
	clock := func() time.Time { return ts.now }
	seq := 0
	ts.store = claimantStore.NewMemoryStoreWith([]claimantModel.Claimant{{
		ID: "c-alice", OrgHandle: "demo", Name: "Alice Oldname", Email: "alice@example.com", Status: "active",
	}})
	svc := service.NewImportService(ts.store, store.NewMemoryStoreWithClock(clock), inference.NewEngine(),
		service.Settings{Retention: time.Hour}, service.WithClock(clock), service.WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		}))

	settings := config.Default().Import
	settings.MaxUploadSize = maxUpload
	h := NewImportHandler(svc, settings)

	ts.mux = http.NewServeMux()
	ts.mux.HandleFunc("POST /api/v1/imports", h.SubmitImport)
	ts.mux.HandleFunc("POST /api/v1/imports/preview", h.PreviewImport)
	ts.mux.HandleFunc("POST /api/v1/imports/apply-mapping", h.ApplyMapping)
	ts.mux.HandleFunc("POST /api/v1/imports/ingest", h.IngestImport)
	ts.mux.HandleFunc("GET /api/v1/imports/{id}", h.GetImport)
	return ts
}

func (ts *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	ts.mux.ServeHTTP(rec, req)
	return rec
}

func uploadRequest(t *testing.T, path, fileName, content string, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if fileName != "" {
		part, err := writer.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func formRequest(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) utils.ErrorResponse {
	t.Helper()
	var body utils.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func submit(t *testing.T, ts *testServer) string {
	t.Helper()
	req := uploadRequest(t, "/api/v1/imports", "claims.csv", claimsCSV, nil)
	req.Header.Set("Accept", "application/json")
	rec := ts.do(req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var result model.SubmitResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	return result.ImportID
}

func TestSubmitImport_RedirectsToResultView(t *testing.T) {
	ts := newTestServer(t, 1<<20)

	rec := ts.do(uploadRequest(t, "/api/v1/imports", "claims.csv", claimsCSV, map[string]string{"org": "demo"}))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/imports/result?id=id-1", rec.Header().Get("Location"))
}

func TestSubmitImport_JSON(t *testing.T) {
	ts := newTestServer(t, 1<<20)
	req := uploadRequest(t, "/api/v1/imports", "claims.csv", claimsCSV, nil)
	req.Header.Set("Accept", "application/json")

	rec := ts.do(req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "id-1", body["importId"])
	assert.Equal(t, float64(2), body["total"])
	duplicates, ok := body["duplicates"].([]interface{})
	require.True(t, ok)
	assert.Len(t, duplicates, 1)
}

func TestSubmitImport_Errors(t *testing.T) {
	tests := []struct {
		name       string
		maxUpload  int64
		req        func(t *testing.T) *http.Request
		wantStatus int
		wantCode   string
	}{
		{
			name:      "missing file field",
			maxUpload: 1 << 20,
			req: func(t *testing.T) *http.Request {
				return uploadRequest(t, "/api/v1/imports", "", "", map[string]string{"org": "demo"})
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   errors2.NO_FILE.Code,
		},
		{
			name:      "not a multipart body",
			maxUpload: 1 << 20,
			req: func(t *testing.T) *http.Request {
				return formRequest("/api/v1/imports", url.Values{"org": {"demo"}})
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   errors2.NO_FILE.Code,
		},
		{
			name:      "empty file",
			maxUpload: 1 << 20,
			req: func(t *testing.T) *http.Request {
				return uploadRequest(t, "/api/v1/imports", "claims.csv", "", nil)
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   errors2.NO_FILE.Code,
		},
		{
			name:      "file without a header line",
			maxUpload: 1 << 20,
			req: func(t *testing.T) *http.Request {
				return uploadRequest(t, "/api/v1/imports", "claims.csv", "\n\n", nil)
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   errors2.PARSE_FAILED.Code,
		},
		{
			name:      "upload over the limit",
			maxUpload: 256,
			req: func(t *testing.T) *http.Request {
				return uploadRequest(t, "/api/v1/imports", "claims.csv", strings.Repeat(claimsCSV, 50), nil)
			},
			wantStatus: http.StatusRequestEntityTooLarge,
			wantCode:   errors2.FILE_TOO_LARGE.Code,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, tt.maxUpload)
			rec := ts.do(tt.req(t))

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeError(t, rec)
			assert.False(t, body.Ok)
			assert.Equal(t, tt.wantCode, body.Code)
		})
	}
}

func TestPreviewImport(t *testing.T) {
	ts := newTestServer(t, 1<<20)

	rec := ts.do(uploadRequest(t, "/api/v1/imports/preview", "claims.csv", claimsCSV,
		map[string]string{"mapping": `{"Full Name":"name","Email":"email"}`}))

	require.Equal(t, http.StatusOK, rec.Code)
	var result model.PreviewResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 2, result.Total)
	assert.Len(t, result.Duplicates, 1)
	assert.Equal(t, model.Mapping{"Full Name": "name", "Email": "email"}, result.Mapping)

	rec = ts.do(uploadRequest(t, "/api/v1/imports/preview", "claims.csv", claimsCSV,
		map[string]string{"mapping": `["name"]`}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, errors2.INVALID_MAPPING.Code, decodeError(t, rec).Code)
}

func TestApplyMapping_BracketFieldsAndIngest(t *testing.T) {
	ts := newTestServer(t, 1<<20)
	id := submit(t, ts)

	rec := ts.do(formRequest("/api/v1/imports/apply-mapping", url.Values{
		"id":                 {id},
		"mapping[Full Name]": {"name"},
		"mapping[Email]":     {"email"},
	}))
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	assert.Equal(t, "/imports/result?id="+id, rec.Header().Get("Location"))

	rec = ts.do(httptest.NewRequest(http.MethodGet, "/api/v1/imports/"+id, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var summary model.ImportSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, "mapped", summary.State)
	assert.Equal(t, model.Mapping{"Full Name": "name", "Email": "email"}, summary.Mapping)

	rec = ts.do(formRequest("/api/v1/imports/ingest", url.Values{"id": {id}, "org": {"demo"}}))
	require.Equal(t, http.StatusOK, rec.Code)
	var ingest IngestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ingest))
	assert.True(t, ingest.Ok)
	require.NotNil(t, ingest.Results)
	assert.Equal(t, 1, ingest.Results.Created)
	assert.Equal(t, 1, ingest.Results.Updated)
	assert.Empty(t, ingest.Results.Errors)

	alice, err := ts.store.Get(context.Background(), "demo", "c-alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice Example", alice.Name)
}

func TestApplyMapping_JSONBody(t *testing.T) {
	ts := newTestServer(t, 1<<20)
	id := submit(t, ts)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/imports/apply-mapping",
		strings.NewReader(`{"id":"`+id+`","mapping":{"Full Name":"name"}}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	rec := ts.do(req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var summary model.ImportSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, model.Mapping{"Full Name": "name"}, summary.Mapping)
}

func TestApplyMapping_Errors(t *testing.T) {
	ts := newTestServer(t, 1<<20)
	id := submit(t, ts)

	tests := []struct {
		name       string
		values     url.Values
		wantStatus int
		wantCode   string
	}{
		{"missing id", url.Values{"mapping": {`{}`}}, http.StatusBadRequest, errors2.IMPORT_ID_REQUIRED.Code},
		{"unknown id", url.Values{"id": {"nope"}}, http.StatusNotFound, errors2.IMPORT_NOT_FOUND.Code},
		{"malformed mapping", url.Values{"id": {id}, "mapping": {`{"Full Name":`}}, http.StatusBadRequest,
			errors2.INVALID_MAPPING.Code},
		{"unknown target", url.Values{"id": {id}, "mapping[Full Name]": {"surname"}}, http.StatusBadRequest,
			errors2.INVALID_MAPPING.Code},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(formRequest("/api/v1/imports/apply-mapping", tt.values))
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, decodeError(t, rec).Code)
		})
	}
}

func TestApplyMapping_Expired(t *testing.T) {
	ts := newTestServer(t, 1<<20)
	id := submit(t, ts)
	ts.now = ts.now.Add(2 * time.Hour)

	rec := ts.do(formRequest("/api/v1/imports/apply-mapping", url.Values{"id": {id}}))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/imports/upload?error=expired&id="+id, rec.Header().Get("Location"))

	req := formRequest("/api/v1/imports/apply-mapping", url.Values{"id": {id}})
	req.Header.Set("Accept", "application/json")
	rec = ts.do(req)
	assert.Equal(t, http.StatusGone, rec.Code)
	assert.Equal(t, errors2.IMPORT_EXPIRED.Code, decodeError(t, rec).Code)
}

func TestIngestImport_Errors(t *testing.T) {
	ts := newTestServer(t, 1<<20)
	id := submit(t, ts)

	rec := ts.do(formRequest("/api/v1/imports/ingest", url.Values{"id": {id}}))
	assert.Equal(t, http.StatusConflict, rec.Code)
	body := decodeError(t, rec)
	assert.False(t, body.Ok)
	assert.Equal(t, errors2.IMPORT_INVALID_STATE.Code, body.Code)

	rec = ts.do(formRequest("/api/v1/imports/ingest", url.Values{"id": {"unknown"}}))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetImport_NotFound(t *testing.T) {
	ts := newTestServer(t, 1<<20)

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/api/v1/imports/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, errors2.IMPORT_NOT_FOUND.Code, decodeError(t, rec).Code)
}
