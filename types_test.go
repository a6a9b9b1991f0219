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
	"time"

	"github.com/manishmalhotrawork/incubator-iceberg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeNames(t *testing.T) {
	tests := []struct {
		typ      iceberg.Type
		expected string
	}{
		{iceberg.PrimitiveTypes.Bool, "boolean"},
		{iceberg.PrimitiveTypes.Int32, "int"},
		{iceberg.PrimitiveTypes.Int64, "long"},
		{iceberg.PrimitiveTypes.Float32, "float"},
		{iceberg.PrimitiveTypes.Float64, "double"},
		{iceberg.PrimitiveTypes.Date, "date"},
		{iceberg.PrimitiveTypes.Time, "time"},
		{iceberg.PrimitiveTypes.Timestamp, "timestamp"},
		{iceberg.PrimitiveTypes.TimestampTz, "timestamptz"},
		{iceberg.PrimitiveTypes.String, "string"},
		{iceberg.PrimitiveTypes.UUID, "uuid"},
		{iceberg.PrimitiveTypes.Binary, "binary"},
		{iceberg.FixedTypeOf(16), "fixed[16]"},
		{iceberg.DecimalTypeOf(9, 2), "decimal(9, 2)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.typ.Type())
			assert.Equal(t, tt.expected, tt.typ.String())
		})
	}
}

func TestTypeEquality(t *testing.T) {
	assert.True(t, iceberg.PrimitiveTypes.Int32.Equals(iceberg.Int32Type{}))
	assert.False(t, iceberg.PrimitiveTypes.Int32.Equals(iceberg.PrimitiveTypes.Int64))
	assert.False(t, iceberg.PrimitiveTypes.Timestamp.Equals(iceberg.PrimitiveTypes.TimestampTz))

	assert.True(t, iceberg.FixedTypeOf(8).Equals(iceberg.FixedTypeOf(8)))
	assert.False(t, iceberg.FixedTypeOf(8).Equals(iceberg.FixedTypeOf(16)))

	assert.True(t, iceberg.DecimalTypeOf(9, 2).Equals(iceberg.DecimalTypeOf(9, 2)))
	assert.False(t, iceberg.DecimalTypeOf(9, 2).Equals(iceberg.DecimalTypeOf(9, 4)))
	assert.False(t, iceberg.DecimalTypeOf(9, 2).Equals(iceberg.DecimalTypeOf(18, 2)))
}

func TestDecimalFixedAccessors(t *testing.T) {
	dec := iceberg.DecimalTypeOf(18, 4)
	assert.Equal(t, 18, dec.Precision())
	assert.Equal(t, 4, dec.Scale())

	assert.Equal(t, 12, iceberg.FixedTypeOf(12).Len())
}

func TestTypeJSONRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		typename string
		typ      iceberg.Type
	}{
		{"boolean", `"boolean"`, iceberg.PrimitiveTypes.Bool},
		{"int", `"int"`, iceberg.PrimitiveTypes.Int32},
		{"long", `"long"`, iceberg.PrimitiveTypes.Int64},
		{"float", `"float"`, iceberg.PrimitiveTypes.Float32},
		{"double", `"double"`, iceberg.PrimitiveTypes.Float64},
		{"date", `"date"`, iceberg.PrimitiveTypes.Date},
		{"time", `"time"`, iceberg.PrimitiveTypes.Time},
		{"timestamp", `"timestamp"`, iceberg.PrimitiveTypes.Timestamp},
		{"timestamptz", `"timestamptz"`, iceberg.PrimitiveTypes.TimestampTz},
		{"string", `"string"`, iceberg.PrimitiveTypes.String},
		{"uuid", `"uuid"`, iceberg.PrimitiveTypes.UUID},
		{"binary", `"binary"`, iceberg.PrimitiveTypes.Binary},
		{"fixed", `"fixed[22]"`, iceberg.FixedTypeOf(22)},
		{"decimal", `"decimal(19, 25)"`, iceberg.DecimalTypeOf(19, 25)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := []byte(`{"id": 1, "name": "test", "required": false, "type": ` + tt.typename + `}`)

			var n iceberg.NestedField
			require.NoError(t, json.Unmarshal(data, &n))
			assert.True(t, n.Type.Equals(tt.typ))

			out, err := json.Marshal(n)
			require.NoError(t, err)

			var back iceberg.NestedField
			require.NoError(t, json.Unmarshal(out, &back))
			assert.True(t, back.Equals(n))
		})
	}

	badTests := []struct {
		name string
		data string
	}{
		{"unknown type", `{"id": 1, "name": "x", "required": true, "type": "unknown"}`},
		{"bad fixed", `{"id": 1, "name": "x", "required": true, "type": "fixed[]"}`},
		{"bad decimal", `{"id": 1, "name": "x", "required": true, "type": "decimal(9)"}`},
	}

	for _, tt := range badTests {
		t.Run(tt.name, func(t *testing.T) {
			var n iceberg.NestedField
			assert.Error(t, json.Unmarshal([]byte(tt.data), &n))
		})
	}
}

func TestNestedFieldString(t *testing.T) {
	n := iceberg.NestedField{
		ID: 1, Name: "foo", Type: iceberg.PrimitiveTypes.String, Required: true, Doc: "a doc",
	}
	assert.Equal(t, "1: foo: required string (a doc)", n.String())

	n = iceberg.NestedField{ID: 2, Name: "bar", Type: iceberg.PrimitiveTypes.Int32}
	assert.Equal(t, "2: bar: optional int", n.String())
}

func TestStructTypeEquality(t *testing.T) {
	st := iceberg.StructType{FieldList: []iceberg.NestedField{
		{ID: 1, Name: "a", Type: iceberg.PrimitiveTypes.Int64, Required: true},
		{ID: 2, Name: "b", Type: iceberg.PrimitiveTypes.String},
	}}

	same := iceberg.StructType{FieldList: []iceberg.NestedField{
		{ID: 1, Name: "a", Type: iceberg.PrimitiveTypes.Int64, Required: true},
		{ID: 2, Name: "b", Type: iceberg.PrimitiveTypes.String},
	}}
	assert.True(t, st.Equals(&same))

	reordered := iceberg.StructType{FieldList: []iceberg.NestedField{
		{ID: 2, Name: "b", Type: iceberg.PrimitiveTypes.String},
		{ID: 1, Name: "a", Type: iceberg.PrimitiveTypes.Int64, Required: true},
	}}
	assert.False(t, st.Equals(&reordered))

	assert.False(t, st.Equals(iceberg.PrimitiveTypes.String))
}

func TestDateTimeConversions(t *testing.T) {
	d := iceberg.Date(17486)
	assert.Equal(t, time.Date(2017, 11, 16, 0, 0, 0, 0, time.UTC), d.ToTime())

	ts := iceberg.Timestamp(1510871468000000)
	assert.Equal(t, time.Date(2017, 11, 16, 22, 31, 8, 0, time.UTC), ts.ToTime())
	assert.Equal(t, d, ts.ToDate())

	// timestamps before the epoch floor toward the previous day
	assert.Equal(t, iceberg.Date(-1), iceberg.Timestamp(-1).ToDate())

	tm := iceberg.Time(81068000000)
	assert.Equal(t, 22, tm.ToTime().Hour())
	assert.Equal(t, 31, tm.ToTime().Minute())
	assert.Equal(t, 8, tm.ToTime().Second())
}
