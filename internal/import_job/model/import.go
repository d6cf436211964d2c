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

package model

import (
	"time"

	claimantModel "github.com/masonvector/claim-import-service/internal/claimant/model"
)

// DuplicateEntry flags one uploaded row that matches an existing claimant.
type DuplicateEntry struct {
	Row      int                   `json:"row"`
	Reason   string                `json:"reason"`
	Score    float64               `json:"score"`
	Claimant claimantModel.Summary `json:"claimant"`
}

// IngestResult summarises one ingest pass.
type IngestResult struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Errors  []string `json:"errors"`
}

// Snapshot is the persisted state of one import between upload and ingest.
type Snapshot struct {
	ImportID         string           `json:"import_id"`
	OrgHandle        string           `json:"org"`
	FileName         string           `json:"file_name"`
	RowCount         int              `json:"row_count"`
	Headers          []string         `json:"headers"`
	Preview          []Row            `json:"preview,omitempty"`
	Rows             []Row            `json:"rows,omitempty"`
	SuggestedMapping *InferenceResult `json:"suggested_mapping,omitempty"`
	Duplicates       []DuplicateEntry `json:"duplicates,omitempty"`
	Mapping          Mapping          `json:"mapping,omitempty"`
	MappedRows       []Row            `json:"mapped_rows,omitempty"`
	IngestResult     *IngestResult    `json:"ingest_result,omitempty"`
	State            string           `json:"state"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
	ExpiresAt        time.Time        `json:"expires_at"`
	PurgeAt          time.Time        `json:"purge_at"`
	Expired          bool             `json:"expired,omitempty"`
}

// IsExpired reports whether the snapshot is past its retention window at now.
func (s *Snapshot) IsExpired(now time.Time) bool {
	return s.Expired || !now.Before(s.ExpiresAt)
}

// Tombstone returns the marker left behind once a snapshot expires.
func (s *Snapshot) Tombstone() Snapshot {
	return Snapshot{
		ImportID:  s.ImportID,
		OrgHandle: s.OrgHandle,
		FileName:  s.FileName,
		RowCount:  s.RowCount,
		State:     s.State,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
		ExpiresAt: s.ExpiresAt,
		PurgeAt:   s.PurgeAt,
		Expired:   true,
	}
}
