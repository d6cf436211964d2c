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

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	claimantModel "github.com/masonvector/claim-import-service/internal/claimant/model"
	claimantStore "github.com/masonvector/claim-import-service/internal/claimant/store"
	"github.com/masonvector/claim-import-service/internal/import_job/inference"
	"github.com/masonvector/claim-import-service/internal/import_job/model"
	"github.com/masonvector/claim-import-service/internal/import_job/service"
	"github.com/masonvector/claim-import-service/internal/import_job/store"
	"github.com/masonvector/claim-import-service/internal/system/constants"
)

func newPreviewCmd() *cobra.Command {
	var (
		filePath     string
		org          string
		mappingJSON  string
		existingPath string
		previewLimit int
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Dry run an import file: parse, infer headers and flag duplicates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if filePath == "" {
				return usagef("--file is required")
			}
			content, err := os.ReadFile(filePath)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", filePath, err)
			}

			var mapping model.Mapping
			if strings.TrimSpace(mappingJSON) != "" {
				if err := json.Unmarshal([]byte(mappingJSON), &mapping); err != nil {
					return usagef("invalid --mapping: %v", err)
				}
			}

			existing, err := loadExisting(existingPath, org)
			if err != nil {
				return err
			}

			svc := service.NewImportService(claimantStore.NewMemoryStoreWith(existing), store.NewMemoryStore(),
				inference.NewEngine(), service.Settings{DefaultOrg: org, PreviewLimit: previewLimit})
			result, err := svc.Preview(cmd.Context(), model.PreviewRequest{
				FileName: filepath.Base(filePath),
				Content:  content,
				Org:      org,
				Mapping:  mapping,
			})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&filePath, "file", "", "CSV or XLSX file to preview (required)")
	cmd.Flags().StringVar(&org, "org", constants.DefaultOrg, "Organization the rows belong to")
	cmd.Flags().StringVar(&mappingJSON, "mapping", "", "Mapping JSON object of header to target field")
	cmd.Flags().StringVar(&existingPath, "existing", "", "JSON array of existing claimants to check duplicates against")
	cmd.Flags().IntVar(&previewLimit, "limit", 200, "Maximum preview rows")
	return cmd
}

// loadExisting reads claimant records from a JSON file. Records without an org are put in org
// and records without an id get a positional one.
func loadExisting(path, org string) ([]claimantModel.Claimant, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var claimants []claimantModel.Claimant
	if err := json.Unmarshal(data, &claimants); err != nil {
		return nil, usagef("invalid --existing file %s: %v", path, err)
	}
	for i := range claimants {
		if claimants[i].OrgHandle == "" {
			claimants[i].OrgHandle = org
		}
		if claimants[i].ID == "" {
			claimants[i].ID = fmt.Sprintf("existing-%d", i+1)
		}
		if claimants[i].Status == "" {
			claimants[i].Status = constants.ClaimantStatusActive
		}
	}
	return claimants, nil
}
