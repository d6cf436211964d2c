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
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	claimantModel "github.com/masonvector/claim-import-service/internal/claimant/model"
	"github.com/masonvector/claim-import-service/internal/import_job/inference"
	"github.com/masonvector/claim-import-service/internal/import_job/model"
	"github.com/masonvector/claim-import-service/internal/system/constants"
	errors2 "github.com/masonvector/claim-import-service/internal/system/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ProjectClaimant turns a mapped row into a claimant of org. Columns that are not claimant
// fields are kept as attributes. The claimant id is left empty unless the row carries one.
func ProjectClaimant(row model.Row, org string) (claimantModel.Claimant, error) {
	identity := IdentityOf(row)
	_, externalKey := externalIDOf(row)

	claimant := claimantModel.Claimant{
		ID:         identity.ID,
		OrgHandle:  strings.TrimSpace(org),
		Name:       identity.Name,
		Email:      identity.Email,
		Phone:      trimmed(row, inference.FieldPhone),
		ExternalID: identity.ExternalID,
		Status:     constants.ClaimantStatusActive,
	}
	if identity.ID == "" && identity.ExternalID == "" && identity.Email == "" && identity.Name == "" {
		return claimantModel.Claimant{}, invalidClaimant("row has no name, email or identifier")
	}

	reserved := map[string]bool{
		inference.FieldID:    true,
		inference.FieldName:  true,
		inference.FieldEmail: true,
		inference.FieldPhone: true,
		externalKey:          true,
	}
	attributes := make(map[string]string)
	for _, key := range row.Keys() {
		value := trimmed(row, key)
		if reserved[key] || value == "" {
			continue
		}
		if key == inference.FieldAmount {
			amount, err := NormalizeAmount(value)
			if err != nil {
				return claimantModel.Claimant{}, invalidClaimant(fmt.Sprintf("invalid amount '%s'", value))
			}
			value = amount
		}
		attributes[key] = value
	}
	if len(attributes) > 0 {
		claimant.Attributes = attributes
	}

	if err := validate.Struct(claimant); err != nil {
		return claimantModel.Claimant{}, invalidClaimant(describeValidation(err))
	}
	return claimant, nil
}

func describeValidation(err error) string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	problems := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		switch fe.Tag() {
		case "email":
			problems = append(problems, fmt.Sprintf("invalid email '%v'", fe.Value()))
		case "max":
			problems = append(problems, fmt.Sprintf("%s exceeds %s characters", fe.Field(), fe.Param()))
		case "required":
			problems = append(problems, fmt.Sprintf("%s is required", fe.Field()))
		default:
			problems = append(problems, fmt.Sprintf("%s failed '%s' validation", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(problems, ", ")
}

func invalidClaimant(description string) error {
	return errors2.NewClientErrorWithDescription(errors2.INVALID_CLAIMANT, description, http.StatusUnprocessableEntity)
}

// NormalizeAmount parses a money value such as "$1,234.5" or "(12.00)" and returns it with two
// decimal places.
func NormalizeAmount(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	s = strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || r == '.' || r == '-' {
			return r
		}
		if r == ',' || unicode.IsSpace(r) || unicode.Is(unicode.Sc, r) {
			return -1
		}
		return r
	}, s)

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return "", err
	}
	if negative {
		amount = amount.Neg()
	}
	return amount.StringFixed(2), nil
}

// MergeClaimant applies non-empty incoming values onto existing. Blank incoming values never
// clear stored data, and the id, org, status and creation time of existing are kept.
func MergeClaimant(existing, incoming claimantModel.Claimant) claimantModel.Claimant {
	merged := existing.Clone()
	if incoming.Name != "" {
		merged.Name = incoming.Name
	}
	if incoming.Email != "" {
		merged.Email = incoming.Email
	}
	if incoming.Phone != "" {
		merged.Phone = incoming.Phone
	}
	if incoming.ExternalID != "" {
		merged.ExternalID = incoming.ExternalID
	}
	for k, v := range incoming.Attributes {
		if v == "" {
			continue
		}
		if merged.Attributes == nil {
			merged.Attributes = make(map[string]string, len(incoming.Attributes))
		}
		merged.Attributes[k] = v
	}
	return merged
}
