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
	"testing"

	"github.com/manishmalhotrawork/incubator-iceberg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var exprSchema = iceberg.NewSchema(1,
	iceberg.NestedField{ID: 1, Name: "a", Type: iceberg.PrimitiveTypes.Int32, Required: true},
	iceberg.NestedField{ID: 2, Name: "b", Type: iceberg.PrimitiveTypes.String},
	iceberg.NestedField{ID: 3, Name: "f", Type: iceberg.PrimitiveTypes.Float64},
)

func TestConstantFolding(t *testing.T) {
	pred := iceberg.EqualTo(iceberg.Reference("b"), "hello")

	assert.Equal(t, iceberg.AlwaysFalse{},
		iceberg.NewAnd(iceberg.AlwaysFalse{}, pred))
	assert.Equal(t, pred, iceberg.NewAnd(iceberg.AlwaysTrue{}, pred))
	assert.Equal(t, iceberg.AlwaysTrue{},
		iceberg.NewOr(iceberg.AlwaysTrue{}, pred))
	assert.Equal(t, pred, iceberg.NewOr(iceberg.AlwaysFalse{}, pred))

	assert.Equal(t, iceberg.AlwaysFalse{}, iceberg.NewNot(iceberg.AlwaysTrue{}))
	assert.Equal(t, iceberg.AlwaysTrue{}, iceberg.NewNot(iceberg.AlwaysFalse{}))
	assert.Equal(t, pred, iceberg.NewNot(iceberg.NewNot(pred)))
}

func TestMultiArgFolding(t *testing.T) {
	p1 := iceberg.EqualTo(iceberg.Reference("b"), "hello")
	p2 := iceberg.GreaterThan(iceberg.Reference("a"), int32(5))
	p3 := iceberg.IsNull(iceberg.Reference("b"))

	expected := iceberg.NewAnd(iceberg.NewAnd(p1, p2), p3)
	assert.True(t, expected.Equals(iceberg.NewAnd(p1, p2, p3)))

	assert.Equal(t, iceberg.AlwaysFalse{},
		iceberg.NewAnd(p1, p2, iceberg.AlwaysFalse{}))
	assert.Equal(t, iceberg.AlwaysTrue{},
		iceberg.NewOr(p1, p2, iceberg.AlwaysTrue{}))
}

func TestNegationRoundTrip(t *testing.T) {
	exprs := []iceberg.BooleanExpression{
		iceberg.EqualTo(iceberg.Reference("b"), "hello"),
		iceberg.NotEqualTo(iceberg.Reference("b"), "hello"),
		iceberg.LessThan(iceberg.Reference("a"), int32(3)),
		iceberg.GreaterThanEqual(iceberg.Reference("a"), int32(3)),
		iceberg.IsNull(iceberg.Reference("b")),
		iceberg.NotNaN(iceberg.Reference("f")),
		iceberg.StartsWith(iceberg.Reference("b"), "he"),
		iceberg.IsIn(iceberg.Reference("a"), int32(1), int32(2), int32(3)),
		iceberg.NewAnd(
			iceberg.EqualTo(iceberg.Reference("b"), "hello"),
			iceberg.LessThan(iceberg.Reference("a"), int32(3))),
		iceberg.NewOr(
			iceberg.EqualTo(iceberg.Reference("b"), "hello"),
			iceberg.LessThan(iceberg.Reference("a"), int32(3))),
	}

	for _, e := range exprs {
		t.Run(e.String(), func(t *testing.T) {
			assert.True(t, e.Equals(e.Negate().Negate()))
		})
	}
}

func TestOpNegation(t *testing.T) {
	tests := []struct {
		op       iceberg.Operation
		expected iceberg.Operation
	}{
		{iceberg.OpIsNull, iceberg.OpNotNull},
		{iceberg.OpIsNan, iceberg.OpNotNan},
		{iceberg.OpLT, iceberg.OpGTEQ},
		{iceberg.OpLTEQ, iceberg.OpGT},
		{iceberg.OpGT, iceberg.OpLTEQ},
		{iceberg.OpGTEQ, iceberg.OpLT},
		{iceberg.OpEQ, iceberg.OpNEQ},
		{iceberg.OpIn, iceberg.OpNotIn},
		{iceberg.OpStartsWith, iceberg.OpNotStartsWith},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.op.Negate())
		assert.Equal(t, tt.op, tt.expected.Negate())
	}

	assert.Panics(t, func() { iceberg.OpTrue.Negate() })
}

func TestAndOrEqualsCommutes(t *testing.T) {
	p1 := iceberg.EqualTo(iceberg.Reference("b"), "hello")
	p2 := iceberg.GreaterThan(iceberg.Reference("a"), int32(5))

	assert.True(t, iceberg.NewAnd(p1, p2).Equals(iceberg.NewAnd(p2, p1)))
	assert.True(t, iceberg.NewOr(p1, p2).Equals(iceberg.NewOr(p2, p1)))
	assert.False(t, iceberg.NewAnd(p1, p2).Equals(iceberg.NewOr(p1, p2)))
}

func TestSetPredicateReduction(t *testing.T) {
	assert.Equal(t, iceberg.AlwaysFalse{}, iceberg.IsIn[int32](iceberg.Reference("a")))
	assert.Equal(t, iceberg.AlwaysTrue{}, iceberg.NotIn[int32](iceberg.Reference("a")))

	assert.True(t, iceberg.EqualTo(iceberg.Reference("a"), int32(7)).Equals(
		iceberg.IsIn(iceberg.Reference("a"), int32(7))))
	assert.True(t, iceberg.NotEqualTo(iceberg.Reference("a"), int32(7)).Equals(
		iceberg.NotIn(iceberg.Reference("a"), int32(7))))

	// duplicates fold away during binding
	dup, ok := iceberg.IsIn(iceberg.Reference("a"),
		int32(7), int32(7), int32(7)).(iceberg.UnboundPredicate)
	require.True(t, ok)
	bound, err := dup.Bind(exprSchema, true)
	require.NoError(t, err)
	assert.Equal(t, iceberg.OpEQ, bound.Op())
}

func TestBindSimplifications(t *testing.T) {
	// null checks on required fields fold during binding
	bound, err := iceberg.IsNull(iceberg.Reference("a")).Bind(exprSchema, true)
	require.NoError(t, err)
	assert.Equal(t, iceberg.AlwaysFalse{}, bound)

	bound, err = iceberg.NotNull(iceberg.Reference("a")).Bind(exprSchema, true)
	require.NoError(t, err)
	assert.Equal(t, iceberg.AlwaysTrue{}, bound)

	// NaN checks on non-floating point columns fold during binding
	bound, err = iceberg.IsNaN(iceberg.Reference("a")).Bind(exprSchema, true)
	require.NoError(t, err)
	assert.Equal(t, iceberg.AlwaysFalse{}, bound)

	bound, err = iceberg.NotNaN(iceberg.Reference("a")).Bind(exprSchema, true)
	require.NoError(t, err)
	assert.Equal(t, iceberg.AlwaysTrue{}, bound)

	// but not on floats
	bound, err = iceberg.IsNaN(iceberg.Reference("f")).Bind(exprSchema, true)
	require.NoError(t, err)
	_, ok := bound.(iceberg.BoundPredicate)
	assert.True(t, ok)
}

func TestBindAboveMaxBelowMin(t *testing.T) {
	// an int32 column compared against an out-of-range int64 literal
	// resolves during binding
	bound, err := iceberg.LessThan(iceberg.Reference("a"), int64(1)<<40).Bind(exprSchema, true)
	require.NoError(t, err)
	assert.Equal(t, iceberg.AlwaysTrue{}, bound)

	bound, err = iceberg.GreaterThan(iceberg.Reference("a"), int64(1)<<40).Bind(exprSchema, true)
	require.NoError(t, err)
	assert.Equal(t, iceberg.AlwaysFalse{}, bound)
}

func TestBindErrors(t *testing.T) {
	_, err := iceberg.EqualTo(iceberg.Reference("missing"), "v").Bind(exprSchema, true)
	assert.ErrorIs(t, err, iceberg.ErrInvalidSchema)

	_, err = iceberg.EqualTo(iceberg.Reference("B"), "v").Bind(exprSchema, true)
	assert.ErrorIs(t, err, iceberg.ErrInvalidSchema)

	bound, err := iceberg.EqualTo(iceberg.Reference("B"), "v").Bind(exprSchema, false)
	require.NoError(t, err)
	pred, ok := bound.(iceberg.BoundPredicate)
	require.True(t, ok)
	assert.Equal(t, "b", pred.Ref().Field().Name)

	_, err = iceberg.StartsWith(iceberg.Reference("a"), "v").Bind(exprSchema, true)
	assert.ErrorIs(t, err, iceberg.ErrType)
}

func TestOperationString(t *testing.T) {
	tests := []struct {
		op       iceberg.Operation
		expected string
	}{
		{iceberg.OpTrue, "True"},
		{iceberg.OpFalse, "False"},
		{iceberg.OpIsNull, "IsNull"},
		{iceberg.OpNotNull, "NotNull"},
		{iceberg.OpIsNan, "IsNaN"},
		{iceberg.OpNotNan, "NotNaN"},
		{iceberg.OpLT, "LessThan"},
		{iceberg.OpLTEQ, "LessThanEqual"},
		{iceberg.OpGT, "GreaterThan"},
		{iceberg.OpGTEQ, "GreaterThanEqual"},
		{iceberg.OpEQ, "Equal"},
		{iceberg.OpNEQ, "NotEqual"},
		{iceberg.OpStartsWith, "StartsWith"},
		{iceberg.OpNotStartsWith, "NotStartsWith"},
		{iceberg.OpIn, "In"},
		{iceberg.OpNotIn, "NotIn"},
		{iceberg.OpNot, "Not"},
		{iceberg.OpAnd, "And"},
		{iceberg.OpOr, "Or"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.op.String())
		})
	}

	assert.Equal(t, "Operation(99)", iceberg.Operation(99).String())
}

func TestBoundPredicateAsUnbound(t *testing.T) {
	bound, err := iceberg.EqualTo(iceberg.Reference("b"), "hello").Bind(exprSchema, true)
	require.NoError(t, err)

	blp, ok := bound.(iceberg.BoundLiteralPredicate)
	require.True(t, ok)

	unbound := blp.AsUnbound(iceberg.Reference("part"), blp.Literal())
	assert.True(t, iceberg.EqualTo(iceberg.Reference("part"), "hello").Equals(unbound))
}
