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

package model

import (
	"time"
)

// Claimant is the canonical record the import pipeline creates and updates.
type Claimant struct {
	ID         string            `json:"id" bson:"_id" validate:"omitempty,max=128"`
	OrgHandle  string            `json:"org" bson:"org" validate:"required,max=128"`
	Name       string            `json:"name" bson:"name" validate:"max=256"`
	Email      string            `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,email,max=320"`
	Phone      string            `json:"phone,omitempty" bson:"phone,omitempty" validate:"max=64"`
	ExternalID string            `json:"externalId,omitempty" bson:"external_id,omitempty" validate:"max=128"`
	Attributes map[string]string `json:"attributes,omitempty" bson:"attributes,omitempty"`
	Status     string            `json:"status" bson:"status" validate:"oneof=active deleted"`
	CreatedAt  time.Time         `json:"createdAt" bson:"created_at"`
	UpdatedAt  time.Time         `json:"updatedAt" bson:"updated_at"`
}

// Clone returns a copy that shares no maps with c.
func (c Claimant) Clone() Claimant {
	out := c
	if c.Attributes != nil {
		out.Attributes = make(map[string]string, len(c.Attributes))
		for k, v := range c.Attributes {
			out.Attributes[k] = v
		}
	}
	return out
}

// Summary is the slice of a claimant shown next to a flagged duplicate.
type Summary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	ExternalID string `json:"externalId,omitempty"`
}

func (c Claimant) Summary() Summary {
	return Summary{
		ID:         c.ID,
		Name:       c.Name,
		Email:      c.Email,
		Phone:      c.Phone,
		ExternalID: c.ExternalID,
	}
}
