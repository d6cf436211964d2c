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

package scripts

var GetClaimantsByOrg = map[string]string{
	"postgres": `SELECT claimant_id, org_handle, name, email, phone, external_id, attributes::text, status, created_at,
       updated_at FROM claimants WHERE org_handle = $1 AND status = 'active' ORDER BY created_at, claimant_id`,
}

var GetClaimant = map[string]string{
	"postgres": `SELECT claimant_id, org_handle, name, email, phone, external_id, attributes::text, status, created_at,
       updated_at FROM claimants WHERE org_handle = $1 AND claimant_id = $2`,
}

var InsertClaimant = map[string]string{
	"postgres": `INSERT INTO claimants (claimant_id, org_handle, name, email, phone, external_id, attributes, status,
                       created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
}

var UpdateClaimant = map[string]string{
	"postgres": `
		UPDATE claimants
		SET name = $3,
			email = $4,
			phone = $5,
			external_id = $6,
			attributes = $7,
			status = $8,
			updated_at = $9
		WHERE org_handle = $1 AND claimant_id = $2`,
}
