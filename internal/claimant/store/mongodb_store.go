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

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/masonvector/claim-import-service/internal/claimant/model"
	"github.com/masonvector/claim-import-service/internal/system/config"
	"github.com/masonvector/claim-import-service/internal/system/constants"
	errors2 "github.com/masonvector/claim-import-service/internal/system/errors"
	"github.com/masonvector/claim-import-service/internal/system/log"
)

// MongoStore keeps one collection per organization and one document per claimant.
type MongoStore struct {
	client           *mongo.Client
	database         *mongo.Database
	collectionPrefix string
}

// NewMongoStore connects to the configured deployment and checks it is reachable.
func NewMongoStore(ctx context.Context, cfg config.MongoDBConfig) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}
	return NewMongoStoreWithClient(client, cfg.Database, cfg.CollectionPrefix), nil
}

// NewMongoStoreWithClient wraps an already connected client.
func NewMongoStoreWithClient(client *mongo.Client, database, collectionPrefix string) *MongoStore {
	return &MongoStore{
		client:           client,
		database:         client.Database(database),
		collectionPrefix: collectionPrefix,
	}
}

func (s *MongoStore) collection(org string) *mongo.Collection {
	return s.database.Collection(s.collectionPrefix + org)
}

func (s *MongoStore) ListByOrg(ctx context.Context, org string) ([]model.Claimant, error) {
	logger := log.GetLogger()

	filter := bson.M{"status": bson.M{"$ne": constants.ClaimantStatusDeleted}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := s.collection(org).Find(ctx, filter, opts)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed in fetching claimants for organization: %s", org)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerErrorWithDescription(errors2.FETCH_CLAIMANTS, errorMsg, err)
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			logger.Debug("Error occurred while closing cursor.", log.Error(err))
		}
	}()

	claimants := make([]model.Claimant, 0)
	if err := cursor.All(ctx, &claimants); err != nil {
		errorMsg := fmt.Sprintf("Failed in decoding claimants for organization: %s", org)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerErrorWithDescription(errors2.FETCH_CLAIMANTS, errorMsg, err)
	}
	return claimants, nil
}

func (s *MongoStore) Get(ctx context.Context, org, id string) (*model.Claimant, error) {
	var claimant model.Claimant
	err := s.collection(org).FindOne(ctx, bson.M{"_id": id}).Decode(&claimant)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrClaimantNotFound
		}
		errorMsg := fmt.Sprintf("Failed in fetching claimant: %s", id)
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerErrorWithDescription(errors2.FETCH_CLAIMANTS, errorMsg, err)
	}
	return &claimant, nil
}

func (s *MongoStore) Create(ctx context.Context, claimant model.Claimant) error {
	_, err := s.collection(claimant.OrgHandle).InsertOne(ctx, claimant)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateClaimant
		}
		errorMsg := fmt.Sprintf("Error occurred while creating claimant: %s", claimant.ID)
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return errors2.NewServerErrorWithDescription(errors2.CREATE_CLAIMANT, errorMsg, err)
	}
	return nil
}

func (s *MongoStore) Update(ctx context.Context, claimant model.Claimant) error {
	res, err := s.collection(claimant.OrgHandle).ReplaceOne(ctx, bson.M{"_id": claimant.ID}, claimant)
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while updating claimant: %s", claimant.ID)
		log.GetLogger().Debug(errorMsg, log.Error(err))
		return errors2.NewServerErrorWithDescription(errors2.UPDATE_CLAIMANT, errorMsg, err)
	}
	if res.MatchedCount == 0 {
		return ErrClaimantNotFound
	}
	return nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}
