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
	"bytes"
	"encoding/json"
	"fmt"
)

// Row is one parsed line keyed by column header. Keys keep the order in which they were first set.
type Row struct {
	keys   []string
	values map[string]string
}

// NewRow returns an empty row with room for n columns.
func NewRow(n int) Row {
	return Row{
		keys:   make([]string, 0, n),
		values: make(map[string]string, n),
	}
}

// RowOf builds a row from alternating key, value pairs. It panics on an odd argument count.
func RowOf(pairs ...string) Row {
	if len(pairs)%2 != 0 {
		panic("model.RowOf: odd number of arguments")
	}
	row := NewRow(len(pairs) / 2)
	for i := 0; i < len(pairs); i += 2 {
		row.Set(pairs[i], pairs[i+1])
	}
	return row
}

// Get returns the value stored under key and whether the key is present.
func (r Row) Get(key string) (string, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Value returns the value stored under key, or "" when absent.
func (r Row) Value(key string) string {
	return r.values[key]
}

// Set stores value under key. New keys are appended, existing keys keep their position.
func (r *Row) Set(key, value string) {
	if r.values == nil {
		r.values = make(map[string]string)
	}
	if _, exists := r.values[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Keys returns the keys in column order.
func (r Row) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

func (r Row) Len() int {
	return len(r.keys)
}

// Clone returns a deep copy of the row.
func (r Row) Clone() Row {
	out := NewRow(len(r.keys))
	for _, k := range r.keys {
		out.Set(k, r.values[k])
	}
	return out
}

// MarshalJSON writes the row as a JSON object with keys in column order.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object of string values, keeping the document's key order.
func (r *Row) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("row must be a JSON object")
	}
	row := NewRow(0)
	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("row key must be a string")
		}
		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("row value for '%s': %w", key, err)
		}
		row.Set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*r = row
	return nil
}

// Table is the parsed content of an uploaded file.
type Table struct {
	Headers []string `json:"headers"`
	Rows    []Row    `json:"rows"`
}
