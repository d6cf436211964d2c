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

	"github.com/masonvector/claim-import-service/internal/system/config"
	"github.com/masonvector/claim-import-service/internal/system/constants"
	"github.com/masonvector/claim-import-service/internal/system/log"
)

// NewSnapshotStore builds the backend selected by snapshot_store.type.
func NewSnapshotStore(ctx context.Context, cfg config.SnapshotStoreConfig) (SnapshotStore, error) {
	switch cfg.Type {
	case constants.StoreTypeMemory, "":
		log.GetLogger().Info("Using in-memory import snapshot store")
		return NewMemoryStore(), nil
	case constants.StoreTypeRedis:
		s, err := NewRedisStore(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		log.GetLogger().Info("Using redis import snapshot store", log.String("addr", cfg.Redis.Addr))
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported snapshot store type: %s", cfg.Type)
	}
}
