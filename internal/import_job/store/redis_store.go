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
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/masonvector/claim-import-service/internal/import_job/model"
	"github.com/masonvector/claim-import-service/internal/system/config"
)

const scanBatchSize = 100

// RedisStore keeps each snapshot as a JSON string under <prefix><import id>, expiring at PurgeAt.
type RedisStore struct {
	client    redis.UniversalClient
	keyPrefix string
	now       func() time.Time
}

// NewRedisStore connects to the configured server and checks it is reachable.
func NewRedisStore(ctx context.Context, cfg config.RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Addr, err)
	}
	return NewRedisStoreWithClient(client, cfg.KeyPrefix, time.Now), nil
}

// NewRedisStoreWithClient wraps an existing client.
func NewRedisStoreWithClient(client redis.UniversalClient, keyPrefix string, now func() time.Time) *RedisStore {
	return &RedisStore{client: client, keyPrefix: keyPrefix, now: now}
}

// Client exposes the connection so other redis backed components can share it.
func (s *RedisStore) Client() redis.UniversalClient {
	return s.client
}

func (s *RedisStore) key(importID string) string {
	return s.keyPrefix + importID
}

func (s *RedisStore) Save(ctx context.Context, snapshot model.Snapshot) error {
	ttl := timeToLive(snapshot, s.now())
	if ttl <= 0 {
		return s.Delete(ctx, snapshot.ImportID)
	}
	data, err := encodeSnapshot(snapshot)
	if err != nil {
		return errors.Wrapf(err, "failed to encode snapshot %s", snapshot.ImportID)
	}
	if err := s.client.Set(ctx, s.key(snapshot.ImportID), data, ttl).Err(); err != nil {
		return errors.Wrapf(err, "failed to store snapshot %s", snapshot.ImportID)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, importID string) (*model.Snapshot, error) {
	data, err := s.client.Get(ctx, s.key(importID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSnapshotNotFound
		}
		return nil, errors.Wrapf(err, "failed to read snapshot %s", importID)
	}
	snapshot, err := decodeSnapshot(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode snapshot %s", importID)
	}
	return snapshot, nil
}

func (s *RedisStore) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.keyPrefix+"*", scanBatchSize).Result()
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan snapshot keys")
		}
		for _, k := range keys {
			ids = append(ids, strings.TrimPrefix(k, s.keyPrefix))
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *RedisStore) Delete(ctx context.Context, importID string) error {
	if err := s.client.Del(ctx, s.key(importID)).Err(); err != nil {
		return errors.Wrapf(err, "failed to delete snapshot %s", importID)
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
