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

package provider

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masonvector/claim-import-service/internal/import_job/model"
	"github.com/masonvector/claim-import-service/internal/import_job/store"
	"github.com/masonvector/claim-import-service/internal/system/config"
	"github.com/masonvector/claim-import-service/internal/system/locks"
	"github.com/masonvector/claim-import-service/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

func TestNewImportProvider_MemoryStores(t *testing.T) {
	ctx := context.Background()
	p, err := NewImportProvider(ctx, config.Default(), t.TempDir())
	require.NoError(t, err)
	defer func() { assert.NoError(t, p.Close()) }()

	require.NoError(t, p.GetClaimantStore().Ping(ctx))
	require.NoError(t, p.GetSnapshotStore().Ping(ctx))

	result, err := p.GetImportService().Submit(ctx, model.SubmitRequest{
		FileName: "claims.csv",
		Content:  []byte("Name,Email\nAlice,alice@example.com\n"),
	})
	require.NoError(t, err)

	ids, err := p.GetSnapshotStore().ListIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{result.ImportID}, ids)
}

func TestNewImportProvider_UnsupportedSnapshotStore(t *testing.T) {
	cfg := config.Default()
	cfg.SnapshotStore.Type = "memcached"

	_, err := NewImportProvider(context.Background(), cfg, t.TempDir())
	assert.ErrorContains(t, err, "unsupported snapshot store type")
}

func TestIngestLock(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	redisStore := store.NewRedisStoreWithClient(client, "claims:imports:", time.Now)

	cfg := config.Default()
	assert.Nil(t, ingestLock(cfg, store.NewMemoryStore()))
	assert.Nil(t, ingestLock(cfg, redisStore))

	cfg.Import.IngestLock = true
	assert.IsType(t, &locks.MemoryLock{}, ingestLock(cfg, store.NewMemoryStore()))
	assert.IsType(t, &locks.RedisLock{}, ingestLock(cfg, redisStore))
}
