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

// SubmitRequest carries one uploaded file.
type SubmitRequest struct {
	FileName string
	Content  []byte
	Org      string
}

// SubmitResult is returned once an upload has been turned into a snapshot.
type SubmitResult struct {
	ImportID         string           `json:"importId"`
	Total            int              `json:"total"`
	Preview          []Row            `json:"preview"`
	SuggestedMapping InferenceResult  `json:"suggestedMapping"`
	Duplicates       []DuplicateEntry `json:"duplicates"`
}

// PreviewRequest is a dry run over an uploaded file with an optional mapping.
type PreviewRequest struct {
	FileName string
	Content  []byte
	Org      string
	Mapping  Mapping
}

// PreviewResult is the dry run output. Nothing is persisted.
type PreviewResult struct {
	Total            int              `json:"total"`
	Preview          []Row            `json:"preview"`
	Duplicates       []DuplicateEntry `json:"duplicates"`
	SuggestedMapping InferenceResult  `json:"suggestedMapping"`
	Mapping          Mapping          `json:"mapping"`
}

// ImportSummary is what the result view shows for one import.
type ImportSummary struct {
	ImportID         string           `json:"importId"`
	Org              string           `json:"org"`
	FileName         string           `json:"fileName"`
	State            string           `json:"state"`
	Total            int              `json:"total"`
	Headers          []string         `json:"headers"`
	Preview          []Row            `json:"preview"`
	SuggestedMapping *InferenceResult `json:"suggestedMapping,omitempty"`
	Duplicates       []DuplicateEntry `json:"duplicates"`
	Mapping          Mapping          `json:"mapping,omitempty"`
	Results          *IngestResult    `json:"results,omitempty"`
	ExpiresAt        string           `json:"expiresAt"`
}
