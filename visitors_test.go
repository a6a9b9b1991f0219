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
	"math"
	"testing"

	"github.com/manishmalhotrawork/incubator-iceberg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var visitorSchema = iceberg.NewSchema(1,
	iceberg.NestedField{ID: 1, Name: "id", Type: iceberg.PrimitiveTypes.Int64, Required: true},
	iceberg.NestedField{ID: 2, Name: "name", Type: iceberg.PrimitiveTypes.String},
	iceberg.NestedField{ID: 3, Name: "ratio", Type: iceberg.PrimitiveTypes.Float64},
)

func TestBindExpr(t *testing.T) {
	expr := iceberg.NewAnd(
		iceberg.EqualTo(iceberg.Reference("name"), "alice"),
		iceberg.GreaterThan(iceberg.Reference("id"), int64(10)))

	bound, err := iceberg.BindExpr(visitorSchema, expr, true)
	require.NoError(t, err)
	assert.Equal(t, iceberg.OpAnd, bound.Op())

	_, err = iceberg.BindExpr(visitorSchema,
		iceberg.EqualTo(iceberg.Reference("nope"), "x"), true)
	assert.ErrorIs(t, err, iceberg.ErrInvalidSchema)
}

func TestRewriteNot(t *testing.T) {
	p1 := iceberg.EqualTo(iceberg.Reference("name"), "alice")
	p2 := iceberg.LessThan(iceberg.Reference("id"), int64(5))

	tests := []struct {
		name     string
		expr     iceberg.BooleanExpression
		expected iceberg.BooleanExpression
	}{
		{"not pred", iceberg.NewNot(p1), p1.Negate()},
		{
			"de morgan and",
			iceberg.NewNot(iceberg.NewAnd(p1, p2)),
			iceberg.NewOr(p1.Negate(), p2.Negate()),
		},
		{
			"de morgan or",
			iceberg.NewNot(iceberg.NewOr(p1, p2)),
			iceberg.NewAnd(p1.Negate(), p2.Negate()),
		},
		{"no not untouched", iceberg.NewAnd(p1, p2), iceberg.NewAnd(p1, p2)},
		{"constant", iceberg.NewNot(iceberg.AlwaysTrue{}), iceberg.AlwaysFalse{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := iceberg.RewriteNotExpr(tt.expr)
			require.NoError(t, err)
			assert.True(t, tt.expected.Equals(out), "expected %s, got %s", tt.expected, out)
		})
	}
}

func TestExpressionEvaluator(t *testing.T) {
	expr := iceberg.NewAnd(
		iceberg.EqualTo(iceberg.Reference("name"), "alice"),
		iceberg.GreaterThan(iceberg.Reference("id"), int64(10)))

	eval, err := iceberg.ExpressionEvaluator(visitorSchema, expr, true)
	require.NoError(t, err)

	match, err := eval(iceberg.Row{int64(11), "alice", 0.5})
	require.NoError(t, err)
	assert.True(t, match)

	match, err = eval(iceberg.Row{int64(11), "bob", 0.5})
	require.NoError(t, err)
	assert.False(t, match)

	match, err = eval(iceberg.Row{int64(10), "alice", 0.5})
	require.NoError(t, err)
	assert.False(t, match)

	// null values never match comparisons
	match, err = eval(iceberg.Row{int64(11), nil, 0.5})
	require.NoError(t, err)
	assert.False(t, match)
}

func TestExpressionEvaluatorNaN(t *testing.T) {
	eval, err := iceberg.ExpressionEvaluator(visitorSchema,
		iceberg.IsNaN(iceberg.Reference("ratio")), true)
	require.NoError(t, err)

	match, err := eval(iceberg.Row{int64(1), "x", math.NaN()})
	require.NoError(t, err)
	assert.True(t, match)

	match, err = eval(iceberg.Row{int64(1), "x", 0.5})
	require.NoError(t, err)
	assert.False(t, match)
}

func TestExpressionEvaluatorStartsWith(t *testing.T) {
	eval, err := iceberg.ExpressionEvaluator(visitorSchema,
		iceberg.StartsWith(iceberg.Reference("name"), "al"), true)
	require.NoError(t, err)

	match, err := eval(iceberg.Row{int64(1), "alice", 0.5})
	require.NoError(t, err)
	assert.True(t, match)

	match, err = eval(iceberg.Row{int64(1), "bob", 0.5})
	require.NoError(t, err)
	assert.False(t, match)
}

func TestExpressionEvaluatorIn(t *testing.T) {
	eval, err := iceberg.ExpressionEvaluator(visitorSchema,
		iceberg.IsIn(iceberg.Reference("id"), int64(1), int64(2), int64(3)), true)
	require.NoError(t, err)

	match, err := eval(iceberg.Row{int64(2), "x", 0.5})
	require.NoError(t, err)
	assert.True(t, match)

	match, err = eval(iceberg.Row{int64(4), "x", 0.5})
	require.NoError(t, err)
	assert.False(t, match)
}
