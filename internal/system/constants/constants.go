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

package constants

type contextKey string

const (
	TraceIDContextKey contextKey = "trace_id"
	TraceIDHeader                = "X-Trace-Id"
)

const (
	ApiBasePath = "/api/v1"
	DefaultOrg  = "demo"
)

// Import snapshot states. Transitions only move forward.
const (
	ImportStateSubmitted = "submitted"
	ImportStateMapped    = "mapped"
	ImportStateIngested  = "ingested"
)

// Claimant status values. Deleted claimants are soft deleted by the admin side.
const (
	ClaimantStatusActive  = "active"
	ClaimantStatusDeleted = "deleted"
)

// Backends for the record and snapshot stores.
const (
	StoreTypeMemory   = "memory"
	StoreTypePostgres = "postgres"
	StoreTypeMongoDB  = "mongodb"
	StoreTypeRedis    = "redis"
)

// Form field names of the import endpoints.
const (
	FormFieldFile    = "file"
	FormFieldOrg     = "org"
	FormFieldID      = "id"
	FormFieldMapping = "mapping"
)

const ContentTypeJSON = "application/json"
