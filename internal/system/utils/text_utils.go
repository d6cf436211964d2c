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

package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// NormalizeText applies NFKC, folds case, turns punctuation and symbols into spaces and
// collapses runs of whitespace.
func NormalizeText(s string) string {
	folded := cases.Fold().String(norm.NFKC.String(s))

	var b strings.Builder
	b.Grow(len(folded))
	pendingSpace := false
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
			continue
		}
		// Apostrophes join words: "O'Brien" and "OBrien" normalise alike.
		if r == '\'' || r == '’' {
			continue
		}
		pendingSpace = true
	}
	return b.String()
}

// CompactText is NormalizeText with the spaces removed.
func CompactText(s string) string {
	return strings.ReplaceAll(NormalizeText(s), " ", "")
}
