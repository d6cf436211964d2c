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
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "claim_import"

// Outcome labels for ingested rows.
const (
	OutcomeCreated = "created"
	OutcomeUpdated = "updated"
	OutcomeError   = "error"
)

type metrics struct {
	importsSubmitted  prometheus.Counter
	rowsParsed        prometheus.Counter
	duplicatesFound   *prometheus.CounterVec
	ingestedRows      *prometheus.CounterVec
	snapshotsExpired  prometheus.Counter
	ingestDuration    prometheus.Histogram
}

var metricsSingleton = sync.OnceValue(func() *metrics {
	return &metrics{
		importsSubmitted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "imports_submitted_total",
			Help:      "Total number of uploaded files accepted as import snapshots.",
		}),
		rowsParsed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_parsed_total",
			Help:      "Total number of data rows parsed from uploaded files.",
		}),
		duplicatesFound: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "duplicates_found_total",
			Help:      "Duplicate matches found during preview and ingest, by matching reason.",
		}, []string{"reason"}),
		ingestedRows: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingested_rows_total",
			Help:      "Rows processed by ingest, by outcome.",
		}, []string{"outcome"}),
		snapshotsExpired: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshots_expired_total",
			Help:      "Import snapshots turned into tombstones by the cleanup pass.",
		}),
		ingestDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ingest_duration_seconds",
			Help:      "Latency distribution of ingest calls.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
		}),
	}
})

func getMetrics() *metrics {
	return metricsSingleton()
}

// ImportSubmitted records an accepted upload and its parsed row count.
func ImportSubmitted(rows int) {
	m := getMetrics()
	m.importsSubmitted.Inc()
	m.rowsParsed.Add(float64(rows))
}

// DuplicateFound records one duplicate match for reason.
func DuplicateFound(reason string) {
	getMetrics().duplicatesFound.WithLabelValues(reason).Inc()
}

// RowIngested records the outcome of one ingested row.
func RowIngested(outcome string) {
	getMetrics().ingestedRows.WithLabelValues(outcome).Inc()
}

// SnapshotsExpired records snapshots tombstoned by a cleanup pass.
func SnapshotsExpired(n int) {
	getMetrics().snapshotsExpired.Add(float64(n))
}

// ObserveIngest records how long an ingest call took.
func ObserveIngest(d time.Duration) {
	getMetrics().ingestDuration.Observe(d.Seconds())
}

// Handler serves the default registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}
