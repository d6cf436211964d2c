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

package managers

import (
	"net/http"

	healthProvider "github.com/masonvector/claim-import-service/internal/health_check/provider"
	importProvider "github.com/masonvector/claim-import-service/internal/import_job/provider"
	"github.com/masonvector/claim-import-service/internal/system/config"
	"github.com/masonvector/claim-import-service/internal/system/log"
	"github.com/masonvector/claim-import-service/internal/system/metrics"
	"github.com/masonvector/claim-import-service/internal/system/services"
)

type ServiceManagerInterface interface {
	RegisterServices(apiBasePath string) error
}

type ServiceManager struct {
	mux     *http.ServeMux
	imports importProvider.ImportProviderInterface
	cfg     config.Config
}

// NewServiceManager creates a new instance of ServiceManager.
func NewServiceManager(mux *http.ServeMux, imports importProvider.ImportProviderInterface,
	cfg config.Config) ServiceManagerInterface {

	return &ServiceManager{
		mux:     mux,
		imports: imports,
		cfg:     cfg,
	}
}

func (sm *ServiceManager) RegisterServices(apiBasePath string) error {

	services.NewImportService(sm.mux, apiBasePath, sm.imports.GetImportService(), sm.cfg.Import)

	healthService := services.NewHealthService(
		healthProvider.NewHealthCheckProvider(sm.imports).GetHealthCheckService())
	sm.mux.HandleFunc("GET /health", healthService.Route)
	sm.mux.HandleFunc("GET /ready", healthService.Route)

	if sm.cfg.Metrics.Enabled {
		sm.mux.Handle("GET "+sm.cfg.Metrics.Path, metrics.Handler())
		log.GetLogger().Info("Metrics endpoint enabled", log.String("path", sm.cfg.Metrics.Path))
	}
	return nil
}
