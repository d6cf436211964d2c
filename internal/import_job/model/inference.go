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

// Inference statuses shown to the reviewer.
const (
	InferenceStatusAuto   = "auto"
	InferenceStatusReview = "review"
)

// Candidate is one possible target field for a source header.
type Candidate struct {
	Target     string  `json:"target"`
	Confidence float64 `json:"confidence"`
}

// HeaderInference holds the ranked candidates for a single source header.
type HeaderInference struct {
	Header       string      `json:"header"`
	Top          *Candidate  `json:"top"`
	Alternatives []Candidate `json:"alternatives"`
	Status       string      `json:"status"`
}

// InferenceResult maps every source header to its inference, in column order.
type InferenceResult struct {
	Headers []HeaderInference `json:"headers"`
}

// For returns the inference of header, or nil when the header was not part of the input.
func (r InferenceResult) For(header string) *HeaderInference {
	for i := range r.Headers {
		if r.Headers[i].Header == header {
			return &r.Headers[i]
		}
	}
	return nil
}

// Mapping associates a source header with a target field. An empty target passes the column through.
type Mapping map[string]string
