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
	"fmt"

	"github.com/masonvector/claim-import-service/internal/claimant/store"
	"github.com/masonvector/claim-import-service/internal/system/config"
	"github.com/masonvector/claim-import-service/internal/system/constants"
	dbprovider "github.com/masonvector/claim-import-service/internal/system/database/provider"
	"github.com/masonvector/claim-import-service/internal/system/log"
)

// NewClaimantStore builds the record store selected by record_store.type.
func NewClaimantStore(ctx context.Context, cfg config.Config, home string) (store.ClaimantStore, error) {

	logger := log.GetLogger()
	switch cfg.RecordStore.Type {
	case constants.StoreTypeMemory, "":
		logger.Info("Using in-memory claimant store")
		return store.NewMemoryStore(), nil
	case constants.StoreTypePostgres:
		dbProvider := dbprovider.NewDBProvider(cfg.DataSource)
		dbClient, err := dbProvider.GetDBClient(ctx)
		if err != nil {
			return nil, err
		}
		if cfg.DataSource.SchemaFile != "" {
			if err := dbClient.InitDatabase(ctx, home, cfg.DataSource.SchemaFile); err != nil {
				_ = dbClient.Close()
				return nil, err
			}
		}
		logger.Info("Using postgres claimant store", log.String("host", cfg.DataSource.Hostname),
			log.String("database", cfg.DataSource.Name))
		return store.NewPostgresStore(dbClient, dbProvider.GetDBType()), nil
	case constants.StoreTypeMongoDB:
		mongoStore, err := store.NewMongoStore(ctx, cfg.RecordStore.MongoDB)
		if err != nil {
			return nil, err
		}
		logger.Info("Using mongodb claimant store", log.String("database", cfg.RecordStore.MongoDB.Database))
		return mongoStore, nil
	default:
		return nil, fmt.Errorf("unsupported record store type: %s", cfg.RecordStore.Type)
	}
}
