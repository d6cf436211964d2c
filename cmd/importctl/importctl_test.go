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
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := execute(args, strings.NewReader(""), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestInfer(t *testing.T) {
	code, stdout, _ := run(t, "infer", "--headers", `Full Name,Email,"Amount, USD",Mailing`)
	require.Equal(t, exitOK, code)

	var out struct {
		Command string            `json:"command"`
		Mapping map[string]string `json:"mapping"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, "infer", out.Command)
	assert.Equal(t, "name", out.Mapping["Full Name"])
	assert.Equal(t, "email", out.Mapping["Email"])
	assert.Equal(t, "", out.Mapping["Mailing"])
	assert.Contains(t, out.Mapping, "Amount, USD")
}

func TestPreview(t *testing.T) {
	file := writeFile(t, "claims.csv", "Full Name,Email\nAlice Example,alice@example.com\nCharlie Other,charlie@example.com\n")
	existing := writeFile(t, "existing.json", `[{"name":"Alice Oldname","email":"alice@example.com"}]`)

	code, stdout, stderr := run(t, "preview", "--file", file, "--existing", existing)
	require.Equal(t, exitOK, code, stderr)

	var out struct {
		Total      int `json:"total"`
		Duplicates []struct {
			Row    int    `json:"row"`
			Reason string `json:"reason"`
		} `json:"duplicates"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Equal(t, 2, out.Total)
	require.Len(t, out.Duplicates, 1)
	assert.Equal(t, 1, out.Duplicates[0].Row)
	assert.Equal(t, "email", out.Duplicates[0].Reason)
}

func TestExitCodes(t *testing.T) {
	headerless := writeFile(t, "empty.csv", "\n\n")
	valid := writeFile(t, "claims.csv", "Name\nAlice\n")

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"missing headers flag", []string{"infer"}, exitUsage},
		{"unknown flag", []string{"infer", "--colour"}, exitUsage},
		{"unknown command", []string{"export"}, exitUsage},
		{"missing file flag", []string{"preview"}, exitUsage},
		{"malformed mapping", []string{"preview", "--file", valid, "--mapping", "{"}, exitUsage},
		{"unknown mapping target", []string{"preview", "--file", valid, "--mapping", `{"Name":"nickname"}`}, exitValidation},
		{"file without header", []string{"preview", "--file", headerless}, exitValidation},
		{"unreadable file", []string{"preview", "--file", filepath.Join(t.TempDir(), "missing.csv")}, exitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := run(t, tt.args...)
			assert.Equal(t, tt.want, code)
			assert.True(t, strings.HasPrefix(stderr, "Error: "), stderr)
		})
	}
}
