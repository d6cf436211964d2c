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

package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/masonvector/claim-import-service/internal/system/log"
)

const pingTimeout = 2 * time.Second

// Pinger is a dependency that can report whether it is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheckServiceInterface defines the service interface.
type HealthCheckServiceInterface interface {
	CheckReadiness(ctx context.Context) error
}

// HealthCheckService pings every registered dependency.
type HealthCheckService struct {
	dependencies map[string]Pinger
}

// NewHealthCheckService returns a service that checks the given dependencies by name.
func NewHealthCheckService(dependencies map[string]Pinger) *HealthCheckService {
	return &HealthCheckService{dependencies: dependencies}
}

func (h *HealthCheckService) CheckReadiness(ctx context.Context) error {

	names := make([]string, 0, len(h.dependencies))
	for name := range h.dependencies {
		names = append(names, name)
	}
	sort.Strings(names)

	var failures []error
	for _, name := range names {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		err := h.dependencies[name].Ping(pingCtx)
		cancel()
		if err != nil {
			log.GetLogger().WithContext(ctx).Warn("Readiness check failed", log.String("dependency", name),
				log.Error(err))
			failures = append(failures, fmt.Errorf("%s is not reachable", name))
		}
	}
	return errors.Join(failures...)
}
