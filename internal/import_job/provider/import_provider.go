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
	"errors"

	claimantProvider "github.com/masonvector/claim-import-service/internal/claimant/provider"
	claimantStore "github.com/masonvector/claim-import-service/internal/claimant/store"
	"github.com/masonvector/claim-import-service/internal/import_job/inference"
	"github.com/masonvector/claim-import-service/internal/import_job/service"
	"github.com/masonvector/claim-import-service/internal/import_job/store"
	"github.com/masonvector/claim-import-service/internal/system/config"
	"github.com/masonvector/claim-import-service/internal/system/locks"
)

// ImportProviderInterface defines the interface for the import provider.
type ImportProviderInterface interface {
	GetImportService() service.ImportServiceInterface
	GetClaimantStore() claimantStore.ClaimantStore
	GetSnapshotStore() store.SnapshotStore
	Close() error
}

// ImportProvider owns the stores behind the import service.
type ImportProvider struct {
	claimants claimantStore.ClaimantStore
	snapshots store.SnapshotStore
	service   *service.ImportService
}

// NewImportProvider opens the configured stores and builds the import service on top of them.
func NewImportProvider(ctx context.Context, cfg config.Config, home string) (*ImportProvider, error) {

	claimants, err := claimantProvider.NewClaimantStore(ctx, cfg, home)
	if err != nil {
		return nil, err
	}
	snapshots, err := store.NewSnapshotStore(ctx, cfg.SnapshotStore)
	if err != nil {
		_ = claimants.Close()
		return nil, err
	}

	var opts []service.Option
	if lock := ingestLock(cfg, snapshots); lock != nil {
		opts = append(opts, service.WithIngestLock(lock))
	}
	return NewImportProviderWith(claimants, snapshots, service.SettingsFromConfig(cfg.Import), opts...), nil
}

// ingestLock returns nil unless import.ingest_lock is set. Replicas sharing a redis snapshot store
// also share ingest leases.
func ingestLock(cfg config.Config, snapshots store.SnapshotStore) locks.DistributedLock {
	if !cfg.Import.IngestLock {
		return nil
	}
	if rs, ok := snapshots.(*store.RedisStore); ok {
		return locks.NewRedisLock(rs.Client(), cfg.SnapshotStore.Redis.LockKeyPrefix)
	}
	return locks.NewMemoryLock()
}

// NewImportProviderWith builds a provider over already opened stores.
func NewImportProviderWith(claimants claimantStore.ClaimantStore, snapshots store.SnapshotStore,
	settings service.Settings, opts ...service.Option) *ImportProvider {

	return &ImportProvider{
		claimants: claimants,
		snapshots: snapshots,
		service:   service.NewImportService(claimants, snapshots, inference.NewEngine(), settings, opts...),
	}
}

// GetImportService returns the import service instance.
func (p *ImportProvider) GetImportService() service.ImportServiceInterface {
	return p.service
}

func (p *ImportProvider) GetClaimantStore() claimantStore.ClaimantStore {
	return p.claimants
}

func (p *ImportProvider) GetSnapshotStore() store.SnapshotStore {
	return p.snapshots
}

// Close releases both stores.
func (p *ImportProvider) Close() error {
	return errors.Join(p.claimants.Close(), p.snapshots.Close())
}
