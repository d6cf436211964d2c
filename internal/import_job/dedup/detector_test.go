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
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	claimantModel "github.com/masonvector/claim-import-service/internal/claimant/model"
)

func existingClaimants() []claimantModel.Claimant {
	return []claimantModel.Claimant{
		{ID: "c-1", OrgHandle: "demo", Name: "Alice Old", Email: "Alice@Example.com"},
		{ID: "c-2", OrgHandle: "demo", Name: "Bob Builder", ExternalID: "LEG-42"},
		{ID: "c-3", OrgHandle: "demo", Name: "Jon Smith"},
		{ID: "c-4", OrgHandle: "demo", Name: "Dana Scully", Email: "dana@example.com"},
	}
}

func TestNameSimilarityFloorIsPinned(t *testing.T) {
	assert.Equal(t, 0.85, NameSimilarityFloor)
}

func TestFindDuplicate_Cascade(t *testing.T) {
	tests := []struct {
		name       string
		candidate  Identity
		wantID     string
		wantReason string
	}{
		{"Own id", Identity{ID: "c-3", Email: "alice@example.com"}, "c-3", ReasonID},
		{"External id equals record id", Identity{ExternalID: "c-4"}, "c-4", ReasonClaimID},
		{"External id equals record external id", Identity{ExternalID: "LEG-42", Email: "alice@example.com"}, "c-2", ReasonClaimID},
		{"Email is case-insensitive", Identity{Email: "  ALICE@example.COM "}, "c-1", ReasonEmail},
		{"Unknown id falls through to email", Identity{ID: "zzz", Email: "dana@example.com"}, "c-4", ReasonEmail},
		{"Name only, token order ignored", Identity{Name: "Smith, Jon"}, "c-3", ReasonName},
		{"Name only, one edit", Identity{Name: "John Smith"}, "c-3", ReasonName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := FindDuplicate(tt.candidate, existingClaimants())
			require.NotNil(t, m)
			assert.Equal(t, tt.wantID, m.Record.ID)
			assert.Equal(t, tt.wantReason, m.Reason)
		})
	}
}

func TestFindDuplicate_NoMatch(t *testing.T) {
	tests := []struct {
		name      string
		candidate Identity
	}{
		{"Empty candidate", Identity{}},
		{"Whitespace name only", Identity{Name: "   "}},
		{"Unknown email", Identity{Email: "charlie@example.com"}},
		{"Name below floor", Identity{Name: "Jane Smith"}},
		{"Name ignored when email present", Identity{Email: "someone@example.com", Name: "Jon Smith"}},
		{"Name ignored when external id present", Identity{ExternalID: "nope", Name: "Jon Smith"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, FindDuplicate(tt.candidate, existingClaimants()))
		})
	}
}

func TestFindDuplicate_NoMatchIsOrderIndependent(t *testing.T) {
	candidates := []Identity{
		{Email: "charlie@example.com"},
		{Name: "Zed Unrelated"},
		{ID: "missing", ExternalID: "missing-too"},
	}
	records := existingClaimants()
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 25; i++ {
		rng.Shuffle(len(records), func(a, b int) { records[a], records[b] = records[b], records[a] })
		for _, c := range candidates {
			assert.Nil(t, FindDuplicate(c, records))
		}
	}
}

func TestFindDuplicate_DoesNotMutateExisting(t *testing.T) {
	records := existingClaimants()
	records[0].Attributes = map[string]string{"k": "v"}
	before := make([]claimantModel.Claimant, len(records))
	for i := range records {
		before[i] = records[i].Clone()
	}

	m := FindDuplicate(Identity{Email: "alice@example.com"}, records)
	require.NotNil(t, m)
	m.Record.Attributes["k"] = "changed"
	m.Record.Name = "changed"

	assert.Equal(t, before, records)
}

func TestFindDuplicate_BestNameWins(t *testing.T) {
	records := []claimantModel.Claimant{
		{ID: "a", Name: "Jon Smyth"},
		{ID: "b", Name: "Jon Smith"},
		{ID: "c", Name: "Jon Smith"},
	}

	m := FindDuplicate(Identity{Name: "jon smith"}, records)
	require.NotNil(t, m)
	assert.Equal(t, "b", m.Record.ID)
	assert.Equal(t, 1, m.RecordIndex)
	assert.Equal(t, 1.0, m.Score)
}

func TestFindPotentialDuplicates(t *testing.T) {
	candidates := []Identity{
		{Email: "alice@example.com", Name: "Alice Example"},
		{Email: "charlie@example.com", Name: "Charlie Other"},
		{Name: "Dana Scully"},
	}

	matches := FindPotentialDuplicates(candidates, existingClaimants())
	require.Len(t, matches, 2)
	assert.Equal(t, 0, matches[0].CandidateIndex)
	assert.Equal(t, ReasonEmail, matches[0].Reason)
	assert.Equal(t, 2, matches[1].CandidateIndex)
	assert.Equal(t, ReasonName, matches[1].Reason)

	assert.NotNil(t, FindPotentialDuplicates(nil, nil))
}

func TestNameSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, NameSimilarity("Alice Example", "example, ALICE"))
	assert.InDelta(t, 0.9, NameSimilarity("Jon Smith", "John Smith"), 1e-9)
	assert.InDelta(t, 0.7, NameSimilarity("Jane Smith", "John Smith"), 1e-9)
	assert.Equal(t, 0.0, NameSimilarity("", "John"))
	assert.Equal(t, 0.0, NameSimilarity("!!", "John"))
}
