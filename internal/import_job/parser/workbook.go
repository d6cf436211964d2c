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

package parser

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/masonvector/claim-import-service/internal/import_job/model"
	"github.com/masonvector/claim-import-service/internal/system/log"
)

// ParseWorkbook reads the first worksheet of an .xlsx workbook with the same row rules as ParseCSV.
func ParseWorkbook(content []byte) (model.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return model.Table{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.GetLogger().Warn("Failed to close workbook", log.Error(cerr))
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return model.Table{}, nil
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return model.Table{}, fmt.Errorf("failed to read worksheet %s: %w", sheets[0], err)
	}
	return buildTable(records), nil
}
