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

// IsNull returns an unbound predicate matching rows where the term is null.
//
// Will panic if t is nil
func IsNull(t UnboundTerm) UnboundPredicate {
	return UnaryPredicate(OpIsNull, t)
}

// NotNull returns an unbound predicate matching rows where the term is non-null.
//
// Will panic if t is nil
func NotNull(t UnboundTerm) UnboundPredicate {
	return UnaryPredicate(OpNotNull, t)
}

// IsNaN returns an unbound predicate matching rows where the term is NaN.
// Binding it against a non-floating-point column reduces to AlwaysFalse.
//
// Will panic if t is nil
func IsNaN(t UnboundTerm) UnboundPredicate {
	return UnaryPredicate(OpIsNan, t)
}

// NotNaN returns an unbound predicate matching rows where the term is not NaN.
// Binding it against a non-floating-point column reduces to AlwaysTrue.
//
// Will panic if t is nil
func NotNaN(t UnboundTerm) UnboundPredicate {
	return UnaryPredicate(OpNotNan, t)
}

// IsIn constructs a set membership predicate from the given values. The
// return type is BooleanExpression rather than UnboundPredicate because the
// construction can reduce: no values produces AlwaysFalse and a single value
// produces EqualTo.
//
// Will panic if t is nil
func IsIn[T LiteralType](t UnboundTerm, vals ...T) BooleanExpression {
	lits := make([]Literal, 0, len(vals))
	for _, v := range vals {
		lits = append(lits, NewLiteral(v))
	}

	return SetPredicate(OpIn, t, lits)
}

// NotIn constructs the inverse of IsIn. As with IsIn the construction can
// reduce: no values produces AlwaysTrue and a single value produces
// NotEqualTo.
//
// Will panic if t is nil
func NotIn[T LiteralType](t UnboundTerm, vals ...T) BooleanExpression {
	lits := make([]Literal, 0, len(vals))
	for _, v := range vals {
		lits = append(lits, NewLiteral(v))
	}

	return SetPredicate(OpNotIn, t, lits)
}

// EqualTo returns an unbound equality predicate on the term and value.
//
// Will panic if t is nil
func EqualTo[T LiteralType](t UnboundTerm, v T) UnboundPredicate {
	return LiteralPredicate(OpEQ, t, NewLiteral(v))
}

// NotEqualTo returns an unbound inequality predicate on the term and value.
//
// Will panic if t is nil
func NotEqualTo[T LiteralType](t UnboundTerm, v T) UnboundPredicate {
	return LiteralPredicate(OpNEQ, t, NewLiteral(v))
}

// GreaterThanEqual returns an unbound predicate for term >= v.
//
// Will panic if t is nil
func GreaterThanEqual[T LiteralType](t UnboundTerm, v T) UnboundPredicate {
	return LiteralPredicate(OpGTEQ, t, NewLiteral(v))
}

// GreaterThan returns an unbound predicate for term > v.
//
// Will panic if t is nil
func GreaterThan[T LiteralType](t UnboundTerm, v T) UnboundPredicate {
	return LiteralPredicate(OpGT, t, NewLiteral(v))
}

// LessThanEqual returns an unbound predicate for term <= v.
//
// Will panic if t is nil
func LessThanEqual[T LiteralType](t UnboundTerm, v T) UnboundPredicate {
	return LiteralPredicate(OpLTEQ, t, NewLiteral(v))
}

// LessThan returns an unbound predicate for term < v.
//
// Will panic if t is nil
func LessThan[T LiteralType](t UnboundTerm, v T) UnboundPredicate {
	return LiteralPredicate(OpLT, t, NewLiteral(v))
}

// StartsWith returns an unbound predicate matching string values that
// begin with v.
//
// Will panic if t is nil
func StartsWith(t UnboundTerm, v string) UnboundPredicate {
	return LiteralPredicate(OpStartsWith, t, NewLiteral(v))
}

// NotStartsWith returns an unbound predicate matching string values that
// do not begin with v.
//
// Will panic if t is nil
func NotStartsWith(t UnboundTerm, v string) UnboundPredicate {
	return LiteralPredicate(OpNotStartsWith, t, NewLiteral(v))
}
