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
	"strconv"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/masonvector/claim-import-service/internal/system/config"
)

const (
	postgresUser     = "testuser"
	postgresPassword = "testpass"
	postgresDatabase = "testdb"
)

// TestPostgres is a throwaway postgres server and the datasource settings that reach it.
type TestPostgres struct {
	Container  testcontainers.Container
	DataSource config.DataSourceConfig
}

// SetupTestPostgres starts a postgres container and waits until it accepts connections.
func SetupTestPostgres(ctx context.Context) (*TestPostgres, error) {
	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     postgresUser,
			"POSTGRES_PASSWORD": postgresPassword,
			"POSTGRES_DB":       postgresDatabase,
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}
	portNumber, _ := strconv.Atoi(port.Port())

	return &TestPostgres{
		Container: container,
		DataSource: config.DataSourceConfig{
			Hostname:     host,
			Port:         portNumber,
			Name:         postgresDatabase,
			Username:     postgresUser,
			Password:     postgresPassword,
			SSLMode:      "disable",
			MaxOpenConns: 5,
		},
	}, nil
}
