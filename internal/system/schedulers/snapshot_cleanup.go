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

package schedulers

import (
	"context"
	"time"

	"github.com/masonvector/claim-import-service/internal/system/log"
)

// SnapshotCleaner expires import snapshots past their retention window.
type SnapshotCleaner interface {
	CleanupExpired(ctx context.Context) (int, error)
}

// StartSnapshotCleanupScheduler runs the cleanup once and then on every tick until ctx is done.
func StartSnapshotCleanupScheduler(ctx context.Context, cleaner SnapshotCleaner, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger := log.GetLogger()
	logger.Info("Snapshot cleanup scheduler started", log.String("interval", interval.String()))

	cleanupSnapshots(ctx, cleaner)
	for {
		select {
		case <-ctx.Done():
			logger.Info("Snapshot cleanup scheduler stopped")
			return
		case <-ticker.C:
			cleanupSnapshots(ctx, cleaner)
		}
	}
}

func cleanupSnapshots(ctx context.Context, cleaner SnapshotCleaner) {
	count, err := cleaner.CleanupExpired(ctx)
	if err != nil {
		log.GetLogger().Error("Failed to clean up expired import snapshots", log.Error(err))
		return
	}
	if count > 0 {
		log.GetLogger().Debug("Scheduled snapshot cleanup finished", log.Int("expired", count))
	}
}
