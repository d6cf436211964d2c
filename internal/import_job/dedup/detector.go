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

package dedup

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"

	claimantModel "github.com/masonvector/claim-import-service/internal/claimant/model"
	"github.com/masonvector/claim-import-service/internal/system/utils"
)

// NameSimilarityFloor is the lowest NameSimilarity accepted as a fuzzy name match.
const NameSimilarityFloor = 0.85

// Reasons reported on a Match.
const (
	ReasonID      = "id"
	ReasonClaimID = "claimId"
	ReasonEmail   = "email"
	ReasonName    = "name"
)

// Identity holds the fields of a candidate record that the cascade compares.
type Identity struct {
	ID         string
	ExternalID string
	Email      string
	Name       string
}

// IsEmpty reports whether the identity carries nothing to match on.
func (i Identity) IsEmpty() bool {
	return i.ID == "" && i.ExternalID == "" && i.Email == "" && strings.TrimSpace(i.Name) == ""
}

func (i Identity) hasStrongSignal() bool {
	return i.ID != "" || i.ExternalID != "" || i.Email != ""
}

// Match links a candidate to the existing claimant it duplicates.
type Match struct {
	CandidateIndex int
	RecordIndex    int
	Record         claimantModel.Claimant
	Reason         string
	Score          float64
}

// FindDuplicate runs the cascade id, external id, email, fuzzy name and returns the first hit,
// or nil. The name step only runs when the candidate has no id, external id or email.
// existing is never modified.
func FindDuplicate(candidate Identity, existing []claimantModel.Claimant) *Match {
	if candidate.IsEmpty() {
		return nil
	}

	if candidate.ID != "" {
		for i := range existing {
			if existing[i].ID == candidate.ID {
				return newMatch(i, existing[i], ReasonID, 1)
			}
		}
	}

	if candidate.ExternalID != "" {
		for i := range existing {
			if existing[i].ID == candidate.ExternalID ||
				(existing[i].ExternalID != "" && existing[i].ExternalID == candidate.ExternalID) {
				return newMatch(i, existing[i], ReasonClaimID, 1)
			}
		}
	}

	if email := normalizeEmail(candidate.Email); email != "" {
		for i := range existing {
			if normalizeEmail(existing[i].Email) == email {
				return newMatch(i, existing[i], ReasonEmail, 1)
			}
		}
	}

	if candidate.hasStrongSignal() {
		return nil
	}

	bestIdx := -1
	bestScore := 0.0
	for i := range existing {
		score := NameSimilarity(candidate.Name, existing[i].Name)
		if score >= NameSimilarityFloor && score > bestScore {
			bestIdx, bestScore = i, score
		}
	}
	if bestIdx < 0 {
		return nil
	}
	return newMatch(bestIdx, existing[bestIdx], ReasonName, math.Round(bestScore*100)/100)
}

// FindPotentialDuplicates runs FindDuplicate for every candidate and returns the hits in candidate order.
func FindPotentialDuplicates(candidates []Identity, existing []claimantModel.Claimant) []Match {
	matches := make([]Match, 0)
	for i, candidate := range candidates {
		if m := FindDuplicate(candidate, existing); m != nil {
			m.CandidateIndex = i
			matches = append(matches, *m)
		}
	}
	return matches
}

func newMatch(idx int, record claimantModel.Claimant, reason string, score float64) *Match {
	return &Match{
		RecordIndex: idx,
		Record:      record.Clone(),
		Reason:      reason,
		Score:       score,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NameSimilarity returns 1 - levenshtein/maxLen over the normalised, token-sorted names,
// so "Example, Alice" and "alice example" score 1. Empty names score 0.
func NameSimilarity(a, b string) float64 {
	na, nb := canonicalName(a), canonicalName(b)
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1
	}
	maxLen := utf8.RuneCountInString(na)
	if l := utf8.RuneCountInString(nb); l > maxLen {
		maxLen = l
	}
	dist := fuzzy.LevenshteinDistance(na, nb)
	return 1 - float64(dist)/float64(maxLen)
}

func canonicalName(name string) string {
	tokens := strings.Fields(utils.NormalizeText(name))
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}
