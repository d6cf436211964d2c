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
	"sort"
	"sync"

	"github.com/masonvector/claim-import-service/internal/claimant/model"
	"github.com/masonvector/claim-import-service/internal/system/constants"
)

// MemoryStore keeps claimants in process. Callers always receive copies.
type MemoryStore struct {
	mu        sync.RWMutex
	claimants map[string]map[string]model.Claimant
	seq       map[string]int64
	next      int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		claimants: make(map[string]map[string]model.Claimant),
		seq:       make(map[string]int64),
	}
}

// NewMemoryStoreWith returns a store preloaded with claimants, in the given order.
func NewMemoryStoreWith(claimants []model.Claimant) *MemoryStore {
	s := NewMemoryStore()
	for _, c := range claimants {
		s.put(c)
	}
	return s
}

func (s *MemoryStore) put(c model.Claimant) {
	byOrg, ok := s.claimants[c.OrgHandle]
	if !ok {
		byOrg = make(map[string]model.Claimant)
		s.claimants[c.OrgHandle] = byOrg
	}
	byOrg[c.ID] = c.Clone()
	s.next++
	s.seq[c.OrgHandle+"\x00"+c.ID] = s.next
}

func (s *MemoryStore) ListByOrg(_ context.Context, org string) ([]model.Claimant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Claimant, 0, len(s.claimants[org]))
	for _, c := range s.claimants[org] {
		if c.Status == constants.ClaimantStatusDeleted {
			continue
		}
		out = append(out, c.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		return s.seq[org+"\x00"+out[i].ID] < s.seq[org+"\x00"+out[j].ID]
	})
	return out, nil
}

func (s *MemoryStore) Get(_ context.Context, org, id string) (*model.Claimant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.claimants[org][id]
	if !ok {
		return nil, ErrClaimantNotFound
	}
	out := c.Clone()
	return &out, nil
}

func (s *MemoryStore) Create(_ context.Context, claimant model.Claimant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.claimants[claimant.OrgHandle][claimant.ID]; exists {
		return ErrDuplicateClaimant
	}
	s.put(claimant)
	return nil
}

func (s *MemoryStore) Update(_ context.Context, claimant model.Claimant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.claimants[claimant.OrgHandle][claimant.ID]; !exists {
		return ErrClaimantNotFound
	}
	s.claimants[claimant.OrgHandle][claimant.ID] = claimant.Clone()
	return nil
}

func (s *MemoryStore) Ping(context.Context) error {
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// All returns every stored claimant of org, deleted ones included.
func (s *MemoryStore) All(org string) []model.Claimant {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Claimant, 0, len(s.claimants[org]))
	for _, c := range s.claimants[org] {
		out = append(out, c.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		return s.seq[org+"\x00"+out[i].ID] < s.seq[org+"\x00"+out[j].ID]
	})
	return out
}
