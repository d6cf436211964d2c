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
	"sort"
	"strings"

	"github.com/masonvector/claim-import-service/internal/import_job/model"
	errors2 "github.com/masonvector/claim-import-service/internal/system/errors"
)

// TargetChecker tells whether a name is an accepted mapping target.
type TargetChecker interface {
	IsTarget(name string) bool
}

// ValidateMapping rejects mappings with blank headers or targets that are not known fields.
// An empty target is valid and passes the column through.
func ValidateMapping(mapping model.Mapping, targets TargetChecker) error {
	var problems []string
	for header, target := range mapping {
		if strings.TrimSpace(header) == "" {
			problems = append(problems, "blank header")
			continue
		}
		if target != "" && !targets.IsTarget(target) {
			problems = append(problems, fmt.Sprintf("unknown target '%s' for header '%s'", target, header))
		}
	}
	if len(problems) == 0 {
		return nil
	}
	sort.Strings(problems)
	return errors2.NewClientErrorWithDescription(errors2.INVALID_MAPPING, strings.Join(problems, "; "),
		http.StatusBadRequest)
}

// ApplyMapping renames mapped columns to their target field. Unmapped columns keep their header.
// When several columns land on one key the first non-empty value is kept.
func ApplyMapping(row model.Row, mapping model.Mapping) model.Row {
	out := model.NewRow(row.Len())
	for _, header := range row.Keys() {
		key := header
		if target := mapping[header]; target != "" {
			key = target
		}
		value := row.Value(header)
		if current, exists := out.Get(key); exists && (current != "" || value == "") {
			continue
		}
		out.Set(key, value)
	}
	return out
}

// ApplyMappingToRows maps every row.
func ApplyMappingToRows(rows []model.Row, mapping model.Mapping) []model.Row {
	out := make([]model.Row, len(rows))
	for i, row := range rows {
		out[i] = ApplyMapping(row, mapping)
	}
	return out
}
