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

package mapping

import (
	"strings"

	"github.com/masonvector/claim-import-service/internal/import_job/dedup"
	"github.com/masonvector/claim-import-service/internal/import_job/inference"
	"github.com/masonvector/claim-import-service/internal/import_job/model"
)

// Pass-through keys that still identify a record when no claimId or externalId column was mapped.
const (
	KeyLegacyID           = "legacyId"
	KeyMetadataExternalID = "metadata.externalId"
)

// externalIDKeys lists the keys read for ExternalID, most trusted first.
var externalIDKeys = []string{inference.FieldClaimID, inference.FieldExternalID, KeyLegacyID, KeyMetadataExternalID}

// IdentityOf extracts the fields the duplicate cascade compares from a mapped row.
//
//	ID          <- id
//	ExternalID  <- claimId, then externalId, then legacyId, then metadata.externalId
//	Email       <- email, trimmed and lower-cased
//	Name        <- name, then firstName + " " + lastName
//
// Blank values count as absent.
func IdentityOf(row model.Row) dedup.Identity {
	externalID, _ := externalIDOf(row)
	return dedup.Identity{
		ID:         trimmed(row, inference.FieldID),
		ExternalID: externalID,
		Email:      strings.ToLower(trimmed(row, inference.FieldEmail)),
		Name:       nameOf(row),
	}
}

func externalIDOf(row model.Row) (string, string) {
	for _, key := range externalIDKeys {
		if v := trimmed(row, key); v != "" {
			return v, key
		}
	}
	return "", ""
}

func nameOf(row model.Row) string {
	if name := trimmed(row, inference.FieldName); name != "" {
		return strings.Join(strings.Fields(name), " ")
	}
	full := trimmed(row, inference.FieldFirstName) + " " + trimmed(row, inference.FieldLastName)
	return strings.Join(strings.Fields(full), " ")
}

func trimmed(row model.Row, key string) string {
	return strings.TrimSpace(row.Value(key))
}
