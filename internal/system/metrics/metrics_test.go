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

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	m := getMetrics()

	before := testutil.ToFloat64(m.ingestedRows.WithLabelValues(OutcomeCreated))
	RowIngested(OutcomeCreated)
	RowIngested(OutcomeCreated)
	assert.Equal(t, before+2, testutil.ToFloat64(m.ingestedRows.WithLabelValues(OutcomeCreated)))

	rowsBefore := testutil.ToFloat64(m.rowsParsed)
	ImportSubmitted(5)
	assert.Equal(t, rowsBefore+5, testutil.ToFloat64(m.rowsParsed))

	dupBefore := testutil.ToFloat64(m.duplicatesFound.WithLabelValues("email"))
	DuplicateFound("email")
	assert.Equal(t, dupBefore+1, testutil.ToFloat64(m.duplicatesFound.WithLabelValues("email")))
}

func TestHandler_ExposesImportMetrics(t *testing.T) {
	SnapshotsExpired(1)
	ObserveIngest(20 * time.Millisecond)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "claim_import_snapshots_expired_total")
	assert.Contains(t, rec.Body.String(), "claim_import_ingest_duration_seconds")
}
