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
	"fmt"
	"time"

	"github.com/masonvector/claim-import-service/internal/import_job/model"
	"github.com/masonvector/claim-import-service/internal/system/cache"
)

// MemoryStore keeps encoded snapshots in a TTL cache.
type MemoryStore struct {
	cache *cache.Cache
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithClock(time.Now)
}

// NewMemoryStoreWithClock returns a store that expires entries against now.
func NewMemoryStoreWithClock(now func() time.Time) *MemoryStore {
	return &MemoryStore{
		cache: cache.NewCacheWithClock(24*time.Hour, now),
		now:   now,
	}
}

func (s *MemoryStore) Save(_ context.Context, snapshot model.Snapshot) error {
	ttl := timeToLive(snapshot, s.now())
	if ttl <= 0 {
		s.cache.Delete(snapshot.ImportID)
		return nil
	}
	data, err := encodeSnapshot(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot %s: %w", snapshot.ImportID, err)
	}
	s.cache.SetWithTTL(snapshot.ImportID, data, ttl)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, importID string) (*model.Snapshot, error) {
	value, ok := s.cache.Get(importID)
	if !ok {
		return nil, ErrSnapshotNotFound
	}
	data, ok := value.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected cache value for snapshot %s", importID)
	}
	snapshot, err := decodeSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", importID, err)
	}
	return snapshot, nil
}

// ListIDs returns the ids of live entries and drops purged ones from memory.
func (s *MemoryStore) ListIDs(context.Context) ([]string, error) {
	s.cache.Purge()
	return s.cache.Keys(), nil
}

func (s *MemoryStore) Delete(_ context.Context, importID string) error {
	s.cache.Delete(importID)
	return nil
}

func (s *MemoryStore) Ping(context.Context) error {
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
