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
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/masonvector/claim-import-service/internal/claimant/model"
	"github.com/masonvector/claim-import-service/internal/system/database/client"
	"github.com/masonvector/claim-import-service/internal/system/database/scripts"
	errors2 "github.com/masonvector/claim-import-service/internal/system/errors"
	"github.com/masonvector/claim-import-service/internal/system/log"
)

const uniqueViolation = "23505"

// PostgresStore keeps claimants in the claimants table, attributes as JSONB.
type PostgresStore struct {
	dbClient client.DBClientInterface
	dbType   string
}

func NewPostgresStore(dbClient client.DBClientInterface, dbType string) *PostgresStore {
	return &PostgresStore{dbClient: dbClient, dbType: dbType}
}

func (s *PostgresStore) ListByOrg(ctx context.Context, org string) ([]model.Claimant, error) {

	logger := log.GetLogger()
	query := scripts.GetClaimantsByOrg[s.dbType]
	results, err := s.dbClient.ExecuteQuery(ctx, query, org)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed in fetching claimants for organization: %s", org)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerErrorWithDescription(errors2.FETCH_CLAIMANTS, errorMsg, err)
	}

	claimants := make([]model.Claimant, 0, len(results))
	for _, row := range results {
		claimant, err := mapRowToClaimant(row)
		if err != nil {
			errorMsg := fmt.Sprintf("Failed in reading claimant row for organization: %s", org)
			logger.Debug(errorMsg, log.Error(err))
			return nil, errors2.NewServerErrorWithDescription(errors2.MARSHAL_JSON, errorMsg, err)
		}
		claimants = append(claimants, claimant)
	}
	return claimants, nil
}

func (s *PostgresStore) Get(ctx context.Context, org, id string) (*model.Claimant, error) {

	query := scripts.GetClaimant[s.dbType]
	results, err := s.dbClient.ExecuteQuery(ctx, query, org, id)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed in fetching claimant: %s", id)
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerErrorWithDescription(errors2.FETCH_CLAIMANTS, errorMsg, err)
	}
	if len(results) == 0 {
		return nil, ErrClaimantNotFound
	}
	claimant, err := mapRowToClaimant(results[0])
	if err != nil {
		return nil, errors2.NewServerErrorWithDescription(errors2.MARSHAL_JSON,
			fmt.Sprintf("Failed in reading claimant: %s", id), err)
	}
	return &claimant, nil
}

func (s *PostgresStore) Create(ctx context.Context, claimant model.Claimant) error {

	attributesJSON, err := marshalAttributes(claimant.Attributes)
	if err != nil {
		return errors2.NewServerErrorWithDescription(errors2.MARSHAL_JSON,
			fmt.Sprintf("Failed in encoding attributes of claimant: %s", claimant.ID), err)
	}

	query := scripts.InsertClaimant[s.dbType]
	_, err = s.dbClient.Execute(ctx, query, claimant.ID, claimant.OrgHandle, claimant.Name, claimant.Email,
		claimant.Phone, claimant.ExternalID, attributesJSON, claimant.Status, claimant.CreatedAt, claimant.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return ErrDuplicateClaimant
		}
		errorMsg := fmt.Sprintf("Error occurred while creating claimant: %s", claimant.ID)
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return errors2.NewServerErrorWithDescription(errors2.CREATE_CLAIMANT, errorMsg, err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, claimant model.Claimant) error {

	attributesJSON, err := marshalAttributes(claimant.Attributes)
	if err != nil {
		return errors2.NewServerErrorWithDescription(errors2.MARSHAL_JSON,
			fmt.Sprintf("Failed in encoding attributes of claimant: %s", claimant.ID), err)
	}

	query := scripts.UpdateClaimant[s.dbType]
	affected, err := s.dbClient.Execute(ctx, query, claimant.OrgHandle, claimant.ID, claimant.Name, claimant.Email,
		claimant.Phone, claimant.ExternalID, attributesJSON, claimant.Status, claimant.UpdatedAt)
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while updating claimant: %s", claimant.ID)
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return errors2.NewServerErrorWithDescription(errors2.UPDATE_CLAIMANT, errorMsg, err)
	}
	if affected == 0 {
		return ErrClaimantNotFound
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.dbClient.Ping(ctx)
}

func (s *PostgresStore) Close() error {
	return s.dbClient.Close()
}

func marshalAttributes(attributes map[string]string) (string, error) {
	if attributes == nil {
		attributes = map[string]string{}
	}
	data, err := json.Marshal(attributes)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func mapRowToClaimant(row map[string]interface{}) (model.Claimant, error) {
	claimant := model.Claimant{
		ID:         asString(row["claimant_id"]),
		OrgHandle:  asString(row["org_handle"]),
		Name:       asString(row["name"]),
		Email:      asString(row["email"]),
		Phone:      asString(row["phone"]),
		ExternalID: asString(row["external_id"]),
		Status:     asString(row["status"]),
		CreatedAt:  asTime(row["created_at"]),
		UpdatedAt:  asTime(row["updated_at"]),
	}
	if raw := asString(row["attributes"]); raw != "" {
		var attributes map[string]string
		if err := json.Unmarshal([]byte(raw), &attributes); err != nil {
			return model.Claimant{}, errors.Wrapf(err, "invalid attributes for claimant %s", claimant.ID)
		}
		if len(attributes) > 0 {
			claimant.Attributes = attributes
		}
	}
	return claimant, nil
}

func asString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}

func asTime(v interface{}) time.Time {
	if t, ok := v.(time.Time); ok {
		return t.UTC()
	}
	return time.Time{}
}
