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
	"encoding/csv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/masonvector/claim-import-service/internal/import_job/inference"
)

type inferOutput struct {
	Command string            `json:"command"`
	Result  any               `json:"result"`
	Mapping map[string]string `json:"mapping"`
}

func newInferCmd() *cobra.Command {
	var headers string

	cmd := &cobra.Command{
		Use:   "infer",
		Short: "Suggest a target field for each header",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(headers) == "" {
				return usagef("--headers is required")
			}
			// Headers are a CSV line so quoted names may contain commas.
			names, err := csv.NewReader(strings.NewReader(headers)).Read()
			if err != nil {
				return usagef("invalid --headers: %v", err)
			}
			for i := range names {
				names[i] = strings.TrimSpace(names[i])
			}

			result := inference.NewEngine().Infer(names)
			return writeJSON(cmd.OutOrStdout(), inferOutput{
				Command: "infer",
				Result:  result,
				Mapping: inference.AutoMapping(result),
			})
		},
	}

	cmd.Flags().StringVar(&headers, "headers", "", "Comma separated header line (required)")
	return cmd
}
