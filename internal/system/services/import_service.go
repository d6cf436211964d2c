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

package services

import (
	"fmt"
	"net/http"

	"github.com/masonvector/claim-import-service/internal/import_job/handler"
	"github.com/masonvector/claim-import-service/internal/import_job/service"
	"github.com/masonvector/claim-import-service/internal/system/config"
)

type ImportService struct {
	handler *handler.ImportHandler
}

func NewImportService(mux *http.ServeMux, apiBasePath string, svc service.ImportServiceInterface,
	settings config.ImportConfig) *ImportService {

	instance := &ImportService{
		handler: handler.NewImportHandler(svc, settings),
	}
	instance.RegisterRoutes(mux, apiBasePath)
	return instance
}

func (s *ImportService) RegisterRoutes(mux *http.ServeMux, apiBasePath string) {
	mux.HandleFunc(fmt.Sprintf("POST %s/imports", apiBasePath), s.handler.SubmitImport)
	mux.HandleFunc(fmt.Sprintf("POST %s/imports/preview", apiBasePath), s.handler.PreviewImport)
	mux.HandleFunc(fmt.Sprintf("POST %s/imports/apply-mapping", apiBasePath), s.handler.ApplyMapping)
	mux.HandleFunc(fmt.Sprintf("POST %s/imports/ingest", apiBasePath), s.handler.IngestImport)
	mux.HandleFunc(fmt.Sprintf("GET %s/imports/{id}", apiBasePath), s.handler.GetImport)
}
