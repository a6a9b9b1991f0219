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

package iceberg_test

import (
	"encoding/json"
	"testing"

	"github.com/manishmalhotrawork/incubator-iceberg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableSchemaSimple() *iceberg.Schema {
	return iceberg.NewSchema(1,
		iceberg.NestedField{ID: 1, Name: "foo", Type: iceberg.PrimitiveTypes.String},
		iceberg.NestedField{ID: 2, Name: "Bar", Type: iceberg.PrimitiveTypes.Int32, Required: true},
		iceberg.NestedField{ID: 7, Name: "baz", Type: iceberg.PrimitiveTypes.Bool},
	)
}

func TestSchemaFields(t *testing.T) {
	s := tableSchemaSimple()

	assert.Equal(t, 3, s.NumFields())
	assert.Equal(t, "Bar", s.Field(1).Name)

	fields := s.Fields()
	assert.Len(t, fields, 3)

	// Fields returns a copy, mutating it leaves the schema untouched
	fields[0].Name = "mutated"
	assert.Equal(t, "foo", s.Field(0).Name)
}

func TestSchemaAsStruct(t *testing.T) {
	s := tableSchemaSimple()

	st := s.AsStruct()
	assert.Len(t, st.FieldList, 3)
	assert.True(t, st.Equals(&iceberg.StructType{FieldList: []iceberg.NestedField{
		{ID: 1, Name: "foo", Type: iceberg.PrimitiveTypes.String},
		{ID: 2, Name: "Bar", Type: iceberg.PrimitiveTypes.Int32, Required: true},
		{ID: 7, Name: "baz", Type: iceberg.PrimitiveTypes.Bool},
	}}))
}

func TestSchemaHighestFieldID(t *testing.T) {
	assert.Equal(t, 7, tableSchemaSimple().HighestFieldID())
	assert.Equal(t, 0, iceberg.NewSchema(0).HighestFieldID())
}

func TestSchemaFindField(t *testing.T) {
	s := tableSchemaSimple()

	tests := []struct {
		id    int
		field iceberg.NestedField
	}{
		{1, iceberg.NestedField{ID: 1, Name: "foo", Type: iceberg.PrimitiveTypes.String}},
		{2, iceberg.NestedField{ID: 2, Name: "Bar", Type: iceberg.PrimitiveTypes.Int32, Required: true}},
		{7, iceberg.NestedField{ID: 7, Name: "baz", Type: iceberg.PrimitiveTypes.Bool}},
	}

	for _, tt := range tests {
		t.Run(tt.field.Name, func(t *testing.T) {
			byID, ok := s.FindFieldByID(tt.id)
			require.True(t, ok)
			assert.True(t, byID.Equals(tt.field))

			byName, ok := s.FindFieldByName(tt.field.Name)
			require.True(t, ok)
			assert.True(t, byName.Equals(tt.field))

			typ, ok := s.FindTypeByID(tt.id)
			require.True(t, ok)
			assert.True(t, typ.Equals(tt.field.Type))

			name, ok := s.FindColumnName(tt.id)
			require.True(t, ok)
			assert.Equal(t, tt.field.Name, name)
		})
	}

	_, ok := s.FindFieldByID(99)
	assert.False(t, ok)

	_, ok = s.FindColumnName(99)
	assert.False(t, ok)
}

func TestSchemaFindFieldCaseSensitivity(t *testing.T) {
	s := tableSchemaSimple()

	_, ok := s.FindFieldByName("bar")
	assert.False(t, ok)

	f, ok := s.FindFieldByNameCaseInsensitive("bar")
	require.True(t, ok)
	assert.Equal(t, 2, f.ID)

	f, ok = s.FindFieldByNameCaseInsensitive("BAZ")
	require.True(t, ok)
	assert.Equal(t, 7, f.ID)
}

func TestSchemaEquality(t *testing.T) {
	s := tableSchemaSimple()

	assert.True(t, s.Equals(s))
	assert.True(t, s.Equals(tableSchemaSimple()))
	assert.False(t, s.Equals(nil))

	// the schema ID does not participate in equality
	withOtherID := iceberg.NewSchema(42, s.Fields()...)
	assert.True(t, s.Equals(withOtherID))

	fewerFields := iceberg.NewSchema(1, s.Fields()[:2]...)
	assert.False(t, s.Equals(fewerFields))

	changedType := iceberg.NewSchema(1,
		iceberg.NestedField{ID: 1, Name: "foo", Type: iceberg.PrimitiveTypes.Int64},
		iceberg.NestedField{ID: 2, Name: "Bar", Type: iceberg.PrimitiveTypes.Int32, Required: true},
		iceberg.NestedField{ID: 7, Name: "baz", Type: iceberg.PrimitiveTypes.Bool},
	)
	assert.False(t, s.Equals(changedType))
}

func TestSchemaJSONRoundTrip(t *testing.T) {
	s := tableSchemaSimple()

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var back iceberg.Schema
	require.NoError(t, json.Unmarshal(data, &back))

	assert.Equal(t, s.ID, back.ID)
	assert.True(t, s.Equals(&back))
	assert.Equal(t, s.HighestFieldID(), back.HighestFieldID())
}

func TestSchemaString(t *testing.T) {
	s := iceberg.NewSchema(1,
		iceberg.NestedField{ID: 1, Name: "foo", Type: iceberg.PrimitiveTypes.String},
	)
	assert.Equal(t, "table {\n\t1: foo: optional string\n}", s.String())
}
