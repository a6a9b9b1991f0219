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
	"fmt"
	"math"
	"strings"
)

// ResidualEvaluator computes the part of a row filter that still needs to
// be evaluated against individual rows of a partition, given the concrete
// partition values.
//
// For example, if a table is partitioned by day(utc_timestamp) and the
// filter is utc_timestamp >= a and utc_timestamp <= b, then there are
// three cases for a partition between a and b:
//
//   - the partition is outside [day(a), day(b)]: the residual is
//     AlwaysFalse, no row can match
//   - the partition lies strictly between day(a) and day(b): the residual
//     is AlwaysTrue, every row matches without further checks
//   - the partition is day(a) or day(b): the corresponding timestamp
//     comparison remains in the residual and must run per row
type ResidualEvaluator interface {
	// ResidualFor returns the residual expression for the given tuple of
	// partition values.
	ResidualFor(partition StructLike) (BooleanExpression, error)
}

// NewResidualEvaluator creates a residual evaluator for the given partition
// spec and row filter expression. Unbound references in the expression are
// bound against the provided table schema.
func NewResidualEvaluator(spec PartitionSpec, s *Schema, expr BooleanExpression, caseSensitive bool) ResidualEvaluator {
	if spec.IsUnpartitioned() {
		return NewUnpartitionedResidualEvaluator(expr)
	}

	partType := spec.PartitionType(s)

	return &residualEvaluator{residualVisitor{
		spec:          spec,
		schema:        s,
		caseSensitive: caseSensitive,
		expr:          expr,
		partSchema:    NewSchema(spec.ID(), partType.FieldList...),
	}}
}

// NewUnpartitionedResidualEvaluator returns an evaluator whose residual is
// always the full expression: without partition values nothing can be
// eliminated up front.
func NewUnpartitionedResidualEvaluator(expr BooleanExpression) ResidualEvaluator {
	return unpartitionedResidual{expr: expr}
}

type unpartitionedResidual struct {
	expr BooleanExpression
}

func (u unpartitionedResidual) ResidualFor(StructLike) (BooleanExpression, error) {
	return u.expr, nil
}

type residualEvaluator struct {
	residualVisitor
}

func (r *residualEvaluator) ResidualFor(partition StructLike) (BooleanExpression, error) {
	// copy the visitor so that concurrent calls don't share the tuple
	v := r.residualVisitor
	v.st = partition

	return VisitExpr(v.expr, &v)
}

// residualVisitor produces the residual of the expression for the partition
// tuple in st. Predicates on partitioned columns are projected through each
// partition field: a strict projection matching the tuple proves the
// predicate holds for every row (AlwaysTrue), an inclusive projection
// rejecting the tuple proves no row can match (AlwaysFalse). Predicates
// that neither projection can decide stay in the residual.
type residualVisitor struct {
	spec          PartitionSpec
	schema        *Schema
	caseSensitive bool
	expr          BooleanExpression
	partSchema    *Schema
	st            StructLike
}

func (*residualVisitor) VisitTrue() BooleanExpression  { return AlwaysTrue{} }
func (*residualVisitor) VisitFalse() BooleanExpression { return AlwaysFalse{} }
func (*residualVisitor) VisitNot(child BooleanExpression) BooleanExpression {
	return NewNot(child)
}

func (*residualVisitor) VisitAnd(left, right BooleanExpression) BooleanExpression {
	return NewAnd(left, right)
}

func (*residualVisitor) VisitOr(left, right BooleanExpression) BooleanExpression {
	return NewOr(left, right)
}

func (v *residualVisitor) VisitBound(pred BoundPredicate) BooleanExpression {
	for _, part := range v.spec.FieldsBySourceID(pred.Ref().Field().ID) {
		strict, err := part.Transform.ProjectStrict(part.Name, pred)
		if err != nil {
			panic(err)
		}

		if strict != nil {
			if _, ok := v.evalProjected(strict).(AlwaysTrue); ok {
				return AlwaysTrue{}
			}
		}

		inclusive, err := part.Transform.Project(part.Name, pred)
		if err != nil {
			panic(err)
		}

		if inclusive != nil {
			if _, ok := v.evalProjected(inclusive).(AlwaysFalse); ok {
				return AlwaysFalse{}
			}
		}
	}

	// no partition field could decide the predicate for this tuple,
	// it has to be checked per row
	return pred
}

func (v *residualVisitor) VisitUnbound(pred UnboundPredicate) BooleanExpression {
	bound, err := pred.Bind(v.schema, v.caseSensitive)
	if err != nil {
		panic(err)
	}

	switch b := bound.(type) {
	case AlwaysTrue, AlwaysFalse:
		return b
	case BoundPredicate:
		result := v.VisitBound(b)
		switch result.(type) {
		case AlwaysTrue, AlwaysFalse:
			return result
		}

		// the predicate survives, keep the original unbound form so the
		// residual can be bound again later
		return pred
	}
	panic(fmt.Errorf("%w: binding produced neither constant nor predicate: %s",
		ErrInvalidArgument, bound))
}

// evalProjected binds a projected predicate to the partition schema and
// evaluates it against the partition tuple.
func (v *residualVisitor) evalProjected(pred UnboundPredicate) BooleanExpression {
	bound, err := pred.Bind(v.partSchema, v.caseSensitive)
	if err != nil {
		panic(err)
	}

	if bp, ok := bound.(BoundPredicate); ok {
		return VisitBoundPredicate(bp, v)
	}

	// binding folded the predicate to a constant
	return bound
}

func asExpression(b bool) BooleanExpression {
	if b {
		return AlwaysTrue{}
	}

	return AlwaysFalse{}
}

func (v *residualVisitor) VisitIn(term BoundTerm, lits Set[Literal]) BooleanExpression {
	val := term.evalToLiteral(v.st)
	if !val.Valid {
		return AlwaysFalse{}
	}

	return asExpression(lits.Contains(val.Val))
}

func (v *residualVisitor) VisitNotIn(term BoundTerm, lits Set[Literal]) BooleanExpression {
	return v.VisitIn(term, lits).Negate()
}

func (v *residualVisitor) VisitIsNan(term BoundTerm) BooleanExpression {
	switch term.Type().(type) {
	case Float32Type:
		val := term.(bound[float32]).eval(v.st)
		if val.Valid {
			return asExpression(math.IsNaN(float64(val.Val)))
		}
	case Float64Type:
		val := term.(bound[float64]).eval(v.st)
		if val.Valid {
			return asExpression(math.IsNaN(val.Val))
		}
	}

	return AlwaysFalse{}
}

func (v *residualVisitor) VisitNotNan(term BoundTerm) BooleanExpression {
	return v.VisitIsNan(term).Negate()
}

func (v *residualVisitor) VisitIsNull(term BoundTerm) BooleanExpression {
	return asExpression(term.evalIsNull(v.st))
}

func (v *residualVisitor) VisitNotNull(term BoundTerm) BooleanExpression {
	return asExpression(!term.evalIsNull(v.st))
}

func (v *residualVisitor) VisitEqual(term BoundTerm, lit Literal) BooleanExpression {
	return asExpression(doCmp(v.st, term, lit) == 0)
}

func (v *residualVisitor) VisitNotEqual(term BoundTerm, lit Literal) BooleanExpression {
	return asExpression(doCmp(v.st, term, lit) != 0)
}

func (v *residualVisitor) VisitGreaterEqual(term BoundTerm, lit Literal) BooleanExpression {
	return asExpression(doCmp(v.st, term, lit) >= 0)
}

func (v *residualVisitor) VisitGreater(term BoundTerm, lit Literal) BooleanExpression {
	return asExpression(doCmp(v.st, term, lit) > 0)
}

func (v *residualVisitor) VisitLessEqual(term BoundTerm, lit Literal) BooleanExpression {
	return asExpression(doCmp(v.st, term, lit) <= 0)
}

func (v *residualVisitor) VisitLess(term BoundTerm, lit Literal) BooleanExpression {
	return asExpression(doCmp(v.st, term, lit) < 0)
}

func (v *residualVisitor) VisitStartsWith(term BoundTerm, lit Literal) BooleanExpression {
	val := term.(bound[string]).eval(v.st)
	if !val.Valid {
		return AlwaysFalse{}
	}

	return asExpression(strings.HasPrefix(val.Val, lit.(StringLiteral).Value()))
}

func (v *residualVisitor) VisitNotStartsWith(term BoundTerm, lit Literal) BooleanExpression {
	return v.VisitStartsWith(term, lit).Negate()
}
