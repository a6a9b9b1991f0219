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

import "fmt"

// projectionEvaluator is the base for the partition projection visitors.
// The row expression must have Not nodes rewritten away before visiting,
// since neither projection distributes over negation.
type projectionEvaluator struct {
	spec          PartitionSpec
	schema        *Schema
	caseSensitive bool
}

func (*projectionEvaluator) VisitTrue() BooleanExpression  { return AlwaysTrue{} }
func (*projectionEvaluator) VisitFalse() BooleanExpression { return AlwaysFalse{} }
func (*projectionEvaluator) VisitNot(BooleanExpression) BooleanExpression {
	panic(fmt.Errorf("%w: Not expressions are not supported for projection, must be rewritten",
		ErrInvalidArgument))
}

func (*projectionEvaluator) VisitAnd(left, right BooleanExpression) BooleanExpression {
	return NewAnd(left, right)
}

func (*projectionEvaluator) VisitOr(left, right BooleanExpression) BooleanExpression {
	return NewOr(left, right)
}

func (*projectionEvaluator) VisitUnbound(UnboundPredicate) BooleanExpression {
	panic(fmt.Errorf("%w: found unbound predicate when evaluating projection",
		ErrInvalidArgument))
}

func (p *projectionEvaluator) project(expr BooleanExpression, visitor BooleanExprVisitor[BooleanExpression]) (BooleanExpression, error) {
	rewritten, err := RewriteNotExpr(expr)
	if err != nil {
		return nil, err
	}

	bound, err := BindExpr(p.schema, rewritten, p.caseSensitive)
	if err != nil {
		return nil, err
	}

	return VisitExpr(bound, visitor)
}

// inclusiveProjection projects a row filter to a filter on partition values
// that matches every partition which may contain matching rows. The
// resulting predicates are unbound, referencing the partition field names.
type inclusiveProjection struct {
	projectionEvaluator
}

func (p *inclusiveProjection) Project(expr BooleanExpression) (BooleanExpression, error) {
	return p.project(expr, p)
}

func (p *inclusiveProjection) VisitBound(pred BoundPredicate) BooleanExpression {
	parts := p.spec.FieldsBySourceID(pred.Ref().Field().ID)

	var result BooleanExpression = AlwaysTrue{}
	for _, part := range parts {
		// consider (d = 2023-01-01) with bucket(7, d) and bucket(5, d)
		// projections: b1 = bucket(7, '2023-01-01') = 2, b2 = bucket(5,
		// '2023-01-01') = 0. every partition field that can project the
		// predicate refines the partition filter
		projected, err := part.Transform.Project(part.Name, pred)
		if err != nil {
			panic(err)
		}

		if projected != nil {
			result = NewAnd(result, projected)
		}
	}

	return result
}

// NewInclusiveProjection returns a function which projects a row filter
// expression to an inclusive expression on the partition values produced by
// the given spec. If the returned expression evaluates false against a
// partition tuple, no row in that partition can match the original filter.
func NewInclusiveProjection(s *Schema, spec PartitionSpec, caseSensitive bool) func(BooleanExpression) (BooleanExpression, error) {
	project := &inclusiveProjection{projectionEvaluator{
		spec: spec, schema: s, caseSensitive: caseSensitive,
	}}

	return project.Project
}

// strictProjection projects a row filter to a filter on partition values
// that only matches partitions where every row matches the original filter.
type strictProjection struct {
	projectionEvaluator
}

func (p *strictProjection) Project(expr BooleanExpression) (BooleanExpression, error) {
	return p.project(expr, p)
}

func (p *strictProjection) VisitBound(pred BoundPredicate) BooleanExpression {
	parts := p.spec.FieldsBySourceID(pred.Ref().Field().ID)

	// any strict projection through one of the partition fields is
	// sufficient: if the projected predicate matches the partition then
	// every row in the partition matches pred
	var result BooleanExpression = AlwaysFalse{}
	for _, part := range parts {
		projected, err := part.Transform.ProjectStrict(part.Name, pred)
		if err != nil {
			panic(err)
		}

		if projected != nil {
			result = NewOr(result, projected)
		}
	}

	return result
}

// NewStrictProjection returns a function which projects a row filter
// expression to a strict expression on the partition values produced by the
// given spec. If the returned expression evaluates true against a partition
// tuple, every row in that partition matches the original filter.
func NewStrictProjection(s *Schema, spec PartitionSpec, caseSensitive bool) func(BooleanExpression) (BooleanExpression, error) {
	project := &strictProjection{projectionEvaluator{
		spec: spec, schema: s, caseSensitive: caseSensitive,
	}}

	return project.Project
}
