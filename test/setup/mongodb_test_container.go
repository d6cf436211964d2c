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

package setup

import (
	"context"
	"fmt"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/masonvector/claim-import-service/internal/system/config"
)

// TestMongoDB is a throwaway mongodb server and the store settings that reach it.
type TestMongoDB struct {
	Container testcontainers.Container
	Config    config.MongoDBConfig
}

// SetupTestMongoDB starts a single node mongodb container.
func SetupTestMongoDB(ctx context.Context) (*TestMongoDB, error) {
	req := testcontainers.ContainerRequest{
		Image:        "mongo:7",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor:   wait.ForListeningPort("27017/tcp"),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start mongodb container: %w", err)
	}

	endpoint, err := container.PortEndpoint(ctx, "27017/tcp", "mongodb")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	return &TestMongoDB{
		Container: container,
		Config: config.MongoDBConfig{
			URI:              endpoint,
			Database:         "claims_test",
			CollectionPrefix: "claimants_",
		},
	}, nil
}
