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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masonvector/claim-import-service/internal/claimant/store"
	"github.com/masonvector/claim-import-service/internal/system/config"
)

func TestNewClaimantStore_Memory(t *testing.T) {
	s, err := NewClaimantStore(context.Background(), config.Default(), "")
	require.NoError(t, err)
	assert.IsType(t, &store.MemoryStore{}, s)
}

func TestNewClaimantStore_Unsupported(t *testing.T) {
	cfg := config.Default()
	cfg.RecordStore.Type = "cassandra"
	_, err := NewClaimantStore(context.Background(), cfg, "")
	assert.ErrorContains(t, err, "unsupported record store type")
}
