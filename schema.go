// Licensed to the Apache Software Foundation (ASF) under one
// or more contributor license agreements.  See the NOTICE file
// distributed with this work for additional information
// regarding copyright ownership.  The ASF licenses this file
// to you under the Apache License, Version 2.0 (the
// "License"); you may not use this file except in compliance
// with the License.  You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package iceberg

import (
	"encoding/json"
	"slices"
	"strings"
	"sync/atomic"
)

// Schema is a table schema, represented as a flat struct with multiple
// fields. The fields are only exported via accessor methods rather than
// exposing the slice directly in order to keep a schema immutable.
type Schema struct {
	ID int `json:"schema-id"`

	fields []NestedField

	// the following maps are lazily populated as needed.
	// rather than have lock contention with a mutex, we can use
	// atomic pointers to Store/Load the values.
	idToName      atomic.Pointer[map[int]string]
	idToField     atomic.Pointer[map[int]NestedField]
	nameToID      atomic.Pointer[map[string]int]
	nameToIDLower atomic.Pointer[map[string]int]
	idToAccessor  atomic.Pointer[map[int]accessor]
}

// NewSchema constructs a new schema with the provided ID
// and list of fields.
func NewSchema(id int, fields ...NestedField) *Schema {
	return &Schema{ID: id, fields: fields}
}

func (s *Schema) String() string {
	var b strings.Builder
	b.WriteString("table {")
	for _, f := range s.fields {
		b.WriteString("\n\t")
		b.WriteString(f.String())
	}
	b.WriteString("\n}")

	return b.String()
}

func (s *Schema) lazyNameToID() map[string]int {
	index := s.nameToID.Load()
	if index != nil {
		return *index
	}

	idx := make(map[string]int, len(s.fields))
	for _, f := range s.fields {
		idx[f.Name] = f.ID
	}
	s.nameToID.Store(&idx)

	return idx
}

func (s *Schema) lazyIDToField() map[int]NestedField {
	index := s.idToField.Load()
	if index != nil {
		return *index
	}

	idx := make(map[int]NestedField, len(s.fields))
	for _, f := range s.fields {
		idx[f.ID] = f
	}
	s.idToField.Store(&idx)

	return idx
}

func (s *Schema) lazyIDToName() map[int]string {
	index := s.idToName.Load()
	if index != nil {
		return *index
	}

	idx := make(map[int]string, len(s.fields))
	for _, f := range s.fields {
		idx[f.ID] = f.Name
	}
	s.idToName.Store(&idx)

	return idx
}

func (s *Schema) lazyNameToIDLower() map[string]int {
	index := s.nameToIDLower.Load()
	if index != nil {
		return *index
	}

	idx := make(map[string]int, len(s.fields))
	for _, f := range s.fields {
		idx[strings.ToLower(f.Name)] = f.ID
	}
	s.nameToIDLower.Store(&idx)

	return idx
}

func (s *Schema) lazyIDToAccessor() map[int]accessor {
	index := s.idToAccessor.Load()
	if index != nil {
		return *index
	}

	idx := make(map[int]accessor, len(s.fields))
	for pos, f := range s.fields {
		idx[f.ID] = accessor{pos: pos}
	}
	s.idToAccessor.Store(&idx)

	return idx
}

func (s *Schema) Type() string { return "struct" }

// AsStruct returns a Struct with the same fields as the schema which can
// then be used as a Type.
func (s *Schema) AsStruct() StructType    { return StructType{FieldList: s.fields} }
func (s *Schema) NumFields() int          { return len(s.fields) }
func (s *Schema) Field(i int) NestedField { return s.fields[i] }
func (s *Schema) Fields() []NestedField   { return slices.Clone(s.fields) }

func (s *Schema) UnmarshalJSON(b []byte) error {
	type Alias Schema
	aux := struct {
		Fields []NestedField `json:"fields"`
		*Alias
	}{Alias: (*Alias)(s)}

	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	s.fields = aux.Fields

	return nil
}

func (s *Schema) MarshalJSON() ([]byte, error) {
	type Alias Schema

	return json.Marshal(struct {
		Type   string        `json:"type"`
		Fields []NestedField `json:"fields"`
		*Alias
	}{Type: "struct", Fields: s.fields, Alias: (*Alias)(s)})
}

// FindColumnName returns the name of the column identified by the
// passed in field id. The second return value reports whether or
// not the field id was found in the schema.
func (s *Schema) FindColumnName(fieldID int) (string, bool) {
	col, ok := s.lazyIDToName()[fieldID]

	return col, ok
}

// FindFieldByName returns the field identified by the name given,
// the second return value will be false if no field by this name
// is found.
//
// Note: This search is done in a case sensitive manner. To perform
// a case insensitive search, use [*Schema.FindFieldByNameCaseInsensitive].
func (s *Schema) FindFieldByName(name string) (NestedField, bool) {
	id, ok := s.lazyNameToID()[name]
	if !ok {
		return NestedField{}, false
	}

	return s.FindFieldByID(id)
}

// FindFieldByNameCaseInsensitive is like [*Schema.FindFieldByName],
// but performs a case insensitive search.
func (s *Schema) FindFieldByNameCaseInsensitive(name string) (NestedField, bool) {
	id, ok := s.lazyNameToIDLower()[strings.ToLower(name)]
	if !ok {
		return NestedField{}, false
	}

	return s.FindFieldByID(id)
}

// FindFieldByID is like [*Schema.FindColumnName], but returns the whole
// field rather than just the field name.
func (s *Schema) FindFieldByID(id int) (NestedField, bool) {
	f, ok := s.lazyIDToField()[id]

	return f, ok
}

// FindTypeByID is like [*Schema.FindFieldByID], but returns only the data
// type of the field.
func (s *Schema) FindTypeByID(id int) (Type, bool) {
	f, ok := s.FindFieldByID(id)
	if !ok {
		return nil, false
	}

	return f.Type, true
}

func (s *Schema) accessorForField(id int) (accessor, bool) {
	acc, ok := s.lazyIDToAccessor()[id]

	return acc, ok
}

// Equals compares the fields, but does not compare the schema ID itself.
func (s *Schema) Equals(other *Schema) bool {
	if other == nil {
		return false
	}

	if s == other {
		return true
	}

	if len(s.fields) != len(other.fields) {
		return false
	}

	return slices.EqualFunc(s.fields, other.fields, func(a, b NestedField) bool {
		return a.Equals(b)
	})
}

// HighestFieldID returns the value of the numerically highest field ID
// in this schema.
func (s *Schema) HighestFieldID() int {
	id := 0
	for _, f := range s.fields {
		if f.ID > id {
			id = f.ID
		}
	}

	return id
}
