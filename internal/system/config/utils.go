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
	"os"
	"path"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// LoadConfig reads the deployment file, expands ${ENV} references and overlays it on the defaults.
func LoadConfig(home, filePath string) (*Config, error) {
	file, err := os.ReadFile(path.Join(home, filePath))
	if err != nil {
		return nil, err
	}
	return ParseConfig(file)
}

// ParseConfig overlays the YAML document on the defaults and validates the result.
func ParseConfig(document []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(document))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadEnvFiles loads every file matching pattern into the process environment and returns how many were found.
func LoadEnvFiles(pattern string) (int, error) {
	envFiles, err := filepath.Glob(pattern)
	if err != nil {
		return 0, err
	}
	if len(envFiles) == 0 {
		return 0, nil
	}
	return len(envFiles), godotenv.Load(envFiles...)
}
