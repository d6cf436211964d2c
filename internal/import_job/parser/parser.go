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
	"encoding/csv"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/text/encoding/charmap"

	"github.com/masonvector/claim-import-service/internal/import_job/model"
)

const (
	mimeTextPlain = "text/plain"
	mimeXLSX      = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimeZip       = "application/zip"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Delimiters tried when sniffing the header line. Comma wins ties.
var candidateDelimiters = []rune{',', ';', '\t', '|'}

// ErrUnsupportedFormat is returned for uploads that are neither delimited text nor a workbook.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Parse reads an uploaded file into a table, choosing the reader from the file content.
// Input without a header line yields an empty table and no error.
func Parse(fileName string, content []byte) (model.Table, error) {
	if len(bytes.TrimSpace(content)) == 0 {
		return model.Table{}, nil
	}

	mtype := mimetype.Detect(content)
	switch {
	case mtype.Is(mimeXLSX):
		return ParseWorkbook(content)
	case mtype.Is(mimeZip) && strings.EqualFold(filepath.Ext(fileName), ".xlsx"):
		return ParseWorkbook(content)
	case isText(mtype):
		return ParseCSV(content)
	default:
		return model.Table{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, mtype.String())
	}
}

func isText(mtype *mimetype.MIME) bool {
	for m := mtype; m != nil; m = m.Parent() {
		if m.Is(mimeTextPlain) {
			return true
		}
	}
	return false
}

// ParseCSV reads delimited text using the first non-blank line as the header.
func ParseCSV(content []byte) (model.Table, error) {
	content = bytes.TrimPrefix(content, utf8BOM)
	if !utf8.Valid(content) {
		decoded, err := charmap.Windows1252.NewDecoder().Bytes(content)
		if err != nil {
			return model.Table{}, fmt.Errorf("failed to decode input as windows-1252: %w", err)
		}
		content = decoded
	}

	reader := csv.NewReader(bytes.NewReader(content))
	reader.Comma = sniffDelimiter(content)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return model.Table{}, err
	}
	return buildTable(records), nil
}

// sniffDelimiter picks the candidate that occurs most often outside quotes on the first non-blank line.
func sniffDelimiter(content []byte) rune {
	line := firstNonBlankLine(content)
	counts := make(map[rune]int, len(candidateDelimiters))
	inQuotes := false
	for _, r := range line {
		if r == '"' {
			inQuotes = !inQuotes
			continue
		}
		if !inQuotes {
			counts[r]++
		}
	}

	best := candidateDelimiters[0]
	for _, d := range candidateDelimiters[1:] {
		if counts[d] > counts[best] {
			best = d
		}
	}
	return best
}

func firstNonBlankLine(content []byte) string {
	for _, line := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(line) != "" {
			return line
		}
	}
	return ""
}

// buildTable turns raw records into rows keyed by the header record. Short records are padded
// with empty values, surplus values are dropped, blank records are skipped.
func buildTable(records [][]string) model.Table {
	headerIdx := -1
	for i, record := range records {
		if !isBlank(record) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return model.Table{}
	}

	headers := normalizeHeaders(records[headerIdx])
	table := model.Table{Headers: headers, Rows: []model.Row{}}
	for _, record := range records[headerIdx+1:] {
		if isBlank(record) {
			continue
		}
		row := model.NewRow(len(headers))
		for i, header := range headers {
			value := ""
			if i < len(record) {
				value = strings.TrimSpace(record[i])
			}
			row.Set(header, value)
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

func isBlank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

// normalizeHeaders trims header cells, names blank ones column_<n> and suffixes repeats with _<k>.
func normalizeHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	seen := make(map[string]bool, len(raw))
	for i, cell := range raw {
		header := strings.TrimSpace(cell)
		if header == "" {
			header = "column_" + strconv.Itoa(i+1)
		}
		if seen[header] {
			base := header
			for k := 2; seen[header]; k++ {
				header = base + "_" + strconv.Itoa(k)
			}
		}
		seen[header] = true
		headers[i] = header
	}
	return headers
}
