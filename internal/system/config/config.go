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

package config

import (
	"fmt"
	"time"

	"github.com/masonvector/claim-import-service/internal/system/constants"
)

type AddrConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

type LogConfig struct {
	LogLevel string `yaml:"log_level"`
	Format   string `yaml:"format"`
}

type AuthConfig struct {
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
}

type DataSourceConfig struct {
	Hostname     string `yaml:"hostname"`
	Port         int    `yaml:"port"`
	Name         string `yaml:"name"`
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	SSLMode      string `yaml:"sslmode"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	SchemaFile   string `yaml:"schema_file"`
}

type MongoDBConfig struct {
	URI              string `yaml:"uri"`
	Database         string `yaml:"database"`
	CollectionPrefix string `yaml:"collection_prefix"`
}

// RecordStoreConfig selects where claimant records live.
type RecordStoreConfig struct {
	Type    string        `yaml:"type"`
	MongoDB MongoDBConfig `yaml:"mongodb"`
}

type RedisConfig struct {
	Addr          string `yaml:"addr"`
	Password      string `yaml:"password"`
	DB            int    `yaml:"db"`
	KeyPrefix     string `yaml:"key_prefix"`
	LockKeyPrefix string `yaml:"lock_key_prefix"`
}

// SnapshotStoreConfig selects where import snapshots live.
type SnapshotStoreConfig struct {
	Type  string      `yaml:"type"`
	Redis RedisConfig `yaml:"redis"`
}

// ImportConfig holds the tunables of the import pipeline.
type ImportConfig struct {
	DefaultOrg         string        `yaml:"default_org"`
	PreviewLimit       int           `yaml:"preview_limit"`
	Retention          time.Duration `yaml:"retention"`
	TombstoneRetention time.Duration `yaml:"tombstone_retention"`
	CleanupInterval    time.Duration `yaml:"cleanup_interval"`
	MaxUploadSize      int64         `yaml:"max_upload_size"`
	ResultViewPath     string        `yaml:"result_view_path"`
	UploadViewPath     string        `yaml:"upload_view_path"`
	IngestLock         bool          `yaml:"ingest_lock"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

type Config struct {
	Addr          AddrConfig          `yaml:"addr"`
	Log           LogConfig           `yaml:"log"`
	Auth          AuthConfig          `yaml:"auth"`
	DataSource    DataSourceConfig    `yaml:"datasource"`
	RecordStore   RecordStoreConfig   `yaml:"record_store"`
	SnapshotStore SnapshotStoreConfig `yaml:"snapshot_store"`
	Import        ImportConfig        `yaml:"import"`
	Metrics       MetricsConfig       `yaml:"metrics"`
}

// Default returns the configuration used when a value is absent from the deployment file.
func Default() Config {
	return Config{
		Addr: AddrConfig{Host: "0.0.0.0", Port: 8900},
		Log:  LogConfig{LogLevel: "INFO", Format: "text"},
		Auth: AuthConfig{CORSAllowedOrigins: []string{"*"}},
		DataSource: DataSourceConfig{
			Hostname:     "localhost",
			Port:         5432,
			SSLMode:      "disable",
			MaxOpenConns: 10,
		},
		RecordStore: RecordStoreConfig{
			Type: constants.StoreTypeMemory,
			MongoDB: MongoDBConfig{
				URI:              "mongodb://localhost:27017",
				Database:         "claims",
				CollectionPrefix: "claimants_",
			},
		},
		SnapshotStore: SnapshotStoreConfig{
			Type: constants.StoreTypeMemory,
			Redis: RedisConfig{
				Addr:          "localhost:6379",
				KeyPrefix:     "claims:imports:",
				LockKeyPrefix: "claims:locks:",
			},
		},
		Import: ImportConfig{
			DefaultOrg:         constants.DefaultOrg,
			PreviewLimit:       200,
			Retention:          24 * time.Hour,
			TombstoneRetention: 7 * 24 * time.Hour,
			CleanupInterval:    time.Hour,
			MaxUploadSize:      32 << 20,
			ResultViewPath:     "/imports/result",
			UploadViewPath:     "/imports/upload",
		},
		Metrics: MetricsConfig{Enabled: true, Path: "/metrics"},
	}
}

// Validate checks the configuration for values the service cannot run with.
func (c *Config) Validate() error {
	switch c.RecordStore.Type {
	case constants.StoreTypeMemory, constants.StoreTypePostgres, constants.StoreTypeMongoDB:
	default:
		return fmt.Errorf("record_store.type must be one of memory, postgres, mongodb; got '%s'", c.RecordStore.Type)
	}
	switch c.SnapshotStore.Type {
	case constants.StoreTypeMemory, constants.StoreTypeRedis:
	default:
		return fmt.Errorf("snapshot_store.type must be one of memory, redis; got '%s'", c.SnapshotStore.Type)
	}
	if c.RecordStore.Type == constants.StoreTypePostgres && (c.DataSource.Hostname == "" || c.DataSource.Name == "") {
		return fmt.Errorf("datasource hostname and name are required for the postgres record store")
	}
	if c.Import.PreviewLimit <= 0 {
		return fmt.Errorf("import.preview_limit must be positive, got %d", c.Import.PreviewLimit)
	}
	if c.Import.Retention <= 0 {
		return fmt.Errorf("import.retention must be positive, got %s", c.Import.Retention)
	}
	if c.Import.TombstoneRetention <= 0 {
		return fmt.Errorf("import.tombstone_retention must be positive, got %s", c.Import.TombstoneRetention)
	}
	if c.Import.CleanupInterval <= 0 {
		return fmt.Errorf("import.cleanup_interval must be positive, got %s", c.Import.CleanupInterval)
	}
	if c.Import.MaxUploadSize <= 0 {
		return fmt.Errorf("import.max_upload_size must be positive, got %d", c.Import.MaxUploadSize)
	}
	if c.Import.DefaultOrg == "" {
		return fmt.Errorf("import.default_org must not be empty")
	}
	return nil
}
