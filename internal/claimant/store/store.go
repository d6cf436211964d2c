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
	"errors"

	"github.com/masonvector/claim-import-service/internal/claimant/model"
)

// ErrClaimantNotFound is returned by Get and Update for ids the store does not hold.
var ErrClaimantNotFound = errors.New("claimant not found")

// ErrDuplicateClaimant is returned by Create when the id is already taken.
var ErrDuplicateClaimant = errors.New("claimant id already exists")

// ClaimantStore persists claimants scoped by organization.
type ClaimantStore interface {
	// ListByOrg returns the active claimants of org in creation order.
	ListByOrg(ctx context.Context, org string) ([]model.Claimant, error)
	Get(ctx context.Context, org, id string) (*model.Claimant, error)
	Create(ctx context.Context, claimant model.Claimant) error
	Update(ctx context.Context, claimant model.Claimant) error
	Ping(ctx context.Context) error
	Close() error
}
