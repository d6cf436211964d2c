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

package inference

import (
	"math"
	"sort"
	"strings"

	"github.com/masonvector/claim-import-service/internal/import_job/model"
	"github.com/masonvector/claim-import-service/internal/system/utils"
)

// AcceptanceThreshold is the confidence at which a top candidate is applied without review.
const AcceptanceThreshold = 0.7

// Compact substring matches shorter than this are ignored ("id" inside "paid").
const minSubstringLen = 4

type synonym struct {
	normalized string
	compact    string
}

type target struct {
	name     string
	synonyms []synonym
}

// Engine scores source headers against a fixed, ordered table of target fields.
type Engine struct {
	targets []target
	known   map[string]bool
}

// NewEngine returns an engine over DefaultFields.
func NewEngine() *Engine {
	return NewEngineWithFields(DefaultFields)
}

// NewEngineWithFields returns an engine over fields. Earlier fields win ties.
func NewEngineWithFields(fields []TargetField) *Engine {
	e := &Engine{
		targets: make([]target, 0, len(fields)),
		known:   make(map[string]bool, len(fields)),
	}
	for _, f := range fields {
		t := target{name: f.Name}
		for _, s := range f.Synonyms {
			normalized := utils.NormalizeText(s)
			if normalized == "" {
				continue
			}
			t.synonyms = append(t.synonyms, synonym{normalized: normalized, compact: strings.ReplaceAll(normalized, " ", "")})
		}
		e.targets = append(e.targets, t)
		e.known[f.Name] = true
	}
	return e
}

// IsTarget reports whether name is one of the engine's target fields.
func (e *Engine) IsTarget(name string) bool {
	return e.known[name]
}

// Targets returns the target field names in table order.
func (e *Engine) Targets() []string {
	names := make([]string, len(e.targets))
	for i, t := range e.targets {
		names[i] = t.name
	}
	return names
}

// Candidates returns every target with a non-zero score for header, best first.
func (e *Engine) Candidates(header string) []model.Candidate {
	normalized := utils.NormalizeText(header)
	if normalized == "" {
		return []model.Candidate{}
	}
	compact := strings.ReplaceAll(normalized, " ", "")

	candidates := make([]model.Candidate, 0)
	for _, t := range e.targets {
		best := 0.0
		for _, s := range t.synonyms {
			if score := scoreSynonym(normalized, compact, s); score > best {
				best = score
			}
		}
		if best > 0 {
			candidates = append(candidates, model.Candidate{Target: t.name, Confidence: round2(best)})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Confidence > candidates[j].Confidence
	})
	return candidates
}

func scoreSynonym(header, compactHeader string, s synonym) float64 {
	switch {
	case header == s.normalized:
		return 1.0
	case compactHeader == s.compact:
		return 0.9
	case strings.Contains(" "+header+" ", " "+s.normalized+" "):
		return 0.6 + 0.25*coverage(s.compact, compactHeader)
	case len(s.compact) >= minSubstringLen && strings.Contains(compactHeader, s.compact):
		return 0.4 + 0.3*coverage(s.compact, compactHeader)
	default:
		return 0
	}
}

func coverage(part, whole string) float64 {
	if len(whole) == 0 {
		return 0
	}
	return float64(len(part)) / float64(len(whole))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Infer ranks candidates for every header and marks each as auto or review. A target is
// auto-assigned to at most one header: the most confident one, the earlier column on ties.
func (e *Engine) Infer(headers []string) model.InferenceResult {
	result := model.InferenceResult{Headers: make([]model.HeaderInference, len(headers))}
	for i, header := range headers {
		candidates := e.Candidates(header)
		inference := model.HeaderInference{
			Header:       header,
			Alternatives: candidates,
			Status:       model.InferenceStatusReview,
		}
		if len(candidates) > 0 {
			top := candidates[0]
			inference.Top = &top
			if top.Confidence >= AcceptanceThreshold {
				inference.Status = model.InferenceStatusAuto
			}
		}
		result.Headers[i] = inference
	}

	owner := make(map[string]int)
	for i, h := range result.Headers {
		if h.Status != model.InferenceStatusAuto {
			continue
		}
		prev, taken := owner[h.Top.Target]
		if !taken {
			owner[h.Top.Target] = i
			continue
		}
		if h.Top.Confidence > result.Headers[prev].Top.Confidence {
			result.Headers[prev].Status = model.InferenceStatusReview
			owner[h.Top.Target] = i
		} else {
			result.Headers[i].Status = model.InferenceStatusReview
		}
	}
	return result
}

// AutoMapping maps every auto header to its top target. Headers under review map to "" and pass through.
func AutoMapping(result model.InferenceResult) model.Mapping {
	mapping := make(model.Mapping, len(result.Headers))
	for _, h := range result.Headers {
		if h.Status == model.InferenceStatusAuto && h.Top != nil {
			mapping[h.Header] = h.Top.Target
		} else {
			mapping[h.Header] = ""
		}
	}
	return mapping
}
