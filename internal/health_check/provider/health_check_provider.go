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
	"github.com/masonvector/claim-import-service/internal/health_check/service"
	importProvider "github.com/masonvector/claim-import-service/internal/import_job/provider"
)

// HealthCheckProviderInterface defines the interface for the HealthCheck provider.
type HealthCheckProviderInterface interface {
	GetHealthCheckService() service.HealthCheckServiceInterface
}

// HealthCheckProvider is the default implementation of the HealthCheckProviderInterface.
type HealthCheckProvider struct {
	imports importProvider.ImportProviderInterface
}

// NewHealthCheckProvider creates a provider that checks the stores behind imports.
func NewHealthCheckProvider(imports importProvider.ImportProviderInterface) HealthCheckProviderInterface {
	return &HealthCheckProvider{imports: imports}
}

// GetHealthCheckService returns the HealthCheck service instance.
func (p *HealthCheckProvider) GetHealthCheckService() service.HealthCheckServiceInterface {
	return service.NewHealthCheckService(map[string]service.Pinger{
		"claimant_store": p.imports.GetClaimantStore(),
		"snapshot_store": p.imports.GetSnapshotStore(),
	})
}
