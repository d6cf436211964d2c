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
	"database/sql"
	"fmt"
	"time"

	"github.com/masonvector/claim-import-service/internal/system/config"
	"github.com/masonvector/claim-import-service/internal/system/database/client"
)

const (
	DBTypePostgres = "postgres"
	pingTimeout    = 5 * time.Second
)

// DBConfig represents the local database configuration.
type DBConfig struct {
	dsn        string
	driverName string
}

// DBProviderInterface defines the interface for getting database clients.
type DBProviderInterface interface {
	GetDBClient(ctx context.Context) (*client.DBClient, error)
	GetDBType() string
}

// DBProvider is the implementation of DBProviderInterface.
type DBProvider struct {
	dataSource config.DataSourceConfig
}

// NewDBProvider creates a new instance of DBProvider.
func NewDBProvider(dataSource config.DataSourceConfig) *DBProvider {

	return &DBProvider{dataSource: dataSource}
}

// GetDBClient opens a connection pool for the configured data source and checks that it is reachable.
func (d *DBProvider) GetDBClient(ctx context.Context) (*client.DBClient, error) {

	dbConfig := getDBConfig(d.dataSource)

	db, err := sql.Open(dbConfig.driverName, dbConfig.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if d.dataSource.MaxOpenConns > 0 {
		db.SetMaxOpenConns(d.dataSource.MaxOpenConns)
		db.SetMaxIdleConns(d.dataSource.MaxOpenConns)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return client.NewDBClient(db), nil
}

// GetDBType returns the key used to pick queries from the scripts tables.
func (d *DBProvider) GetDBType() string {
	return DBTypePostgres
}

// getDBConfig returns the database configuration based on the provided data source.
func getDBConfig(dataSource config.DataSourceConfig) DBConfig {

	var dbConfig DBConfig

	dbConfig.driverName = "postgres"
	dbConfig.dsn = fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dataSource.Hostname, dataSource.Port, dataSource.Username, dataSource.Password,
		dataSource.Name, dataSource.SSLMode)

	return dbConfig
}
