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
	"encoding/json"
	"errors"
	"time"

	"github.com/masonvector/claim-import-service/internal/import_job/model"
)

// ErrSnapshotNotFound is returned for ids the store has never seen or has already purged.
var ErrSnapshotNotFound = errors.New("import snapshot not found")

// SnapshotStore keeps one JSON document per import id. Entries are dropped by the backend at PurgeAt.
type SnapshotStore interface {
	Save(ctx context.Context, snapshot model.Snapshot) error
	Get(ctx context.Context, importID string) (*model.Snapshot, error)
	ListIDs(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, importID string) error
	Ping(ctx context.Context) error
	Close() error
}

func encodeSnapshot(snapshot model.Snapshot) ([]byte, error) {
	return json.Marshal(snapshot)
}

func decodeSnapshot(data []byte) (*model.Snapshot, error) {
	var snapshot model.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// timeToLive returns how long the backend keeps the snapshot. Zero or less means already purgeable.
func timeToLive(snapshot model.Snapshot, now time.Time) time.Duration {
	return snapshot.PurgeAt.Sub(now)
}
