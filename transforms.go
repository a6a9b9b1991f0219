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
	"encoding"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/apache/arrow-go/v18/arrow/decimal128"
	"github.com/google/uuid"
	"github.com/twmb/murmur3"
)

const (
	microsPerHour = int64(time.Hour / time.Microsecond)
	microsPerDay  = 24 * microsPerHour
)

// floorDiv returns the quotient of a/b rounded towards negative infinity,
// so that values before the epoch land in the correct partition.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}

	return q
}

// ParseTransform takes the string representation of a transform as
// defined in the iceberg spec, and produces the appropriate Transform
// object or an error if the string is not a valid transform string.
func ParseTransform(s string) (Transform, error) {
	s = strings.ToLower(s)
	switch {
	case strings.HasPrefix(s, "bucket"):
		matches := regexFromBrackets.FindStringSubmatch(s)
		if len(matches) != 2 {
			break
		}

		n, _ := strconv.Atoi(matches[1])

		return BucketTransform{NumBuckets: n}, nil
	case strings.HasPrefix(s, "truncate"):
		matches := regexFromBrackets.FindStringSubmatch(s)
		if len(matches) != 2 {
			break
		}

		n, _ := strconv.Atoi(matches[1])

		return TruncateTransform{Width: n}, nil
	default:
		switch s {
		case "identity":
			return IdentityTransform{}, nil
		case "void":
			return VoidTransform{}, nil
		case "year":
			return YearTransform{}, nil
		case "month":
			return MonthTransform{}, nil
		case "day":
			return DayTransform{}, nil
		case "hour":
			return HourTransform{}, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrInvalidTransform, s)
}

// Transform is an interface for the various transformation types
// in partition specs.
type Transform interface {
	fmt.Stringer
	encoding.TextMarshaler
	// Equals reports whether other is the same transform with the
	// same parameters.
	Equals(other Transform) bool
	// CanTransform reports whether values of the given source type can
	// be transformed.
	CanTransform(src Type) bool
	// ResultType returns the type produced by applying the transform to
	// a source value of type t.
	ResultType(t Type) Type
	// Apply transforms a source literal into its partition value. An
	// invalid Optional represents null and is passed through untouched.
	// Will panic when given a literal of a type the transform cannot
	// handle, so check CanTransform first.
	Apply(value Optional[Literal]) Optional[Literal]
	// Project converts a bound predicate on the transform's source column
	// into an inclusive predicate on the partition values: any row that
	// matches pred lands in a partition matching the returned predicate.
	// A nil result with no error means the predicate cannot be projected.
	Project(name string, pred BoundPredicate) (UnboundPredicate, error)
	// ProjectStrict converts a bound predicate on the transform's source
	// column into a strict predicate on the partition values: if the
	// returned predicate matches a partition, then pred matches every row
	// in it. A nil result with no error means no strict projection exists.
	ProjectStrict(name string, pred BoundPredicate) (UnboundPredicate, error)
	// ToHumanStr formats a transformed partition value for use in a
	// partition path.
	ToHumanStr(val any) string
}

// removeTransform rebinds the predicate onto a plain reference so that
// the partition field name replaces the transformed term.
func removeTransform(name string, pred BoundPredicate) (UnboundPredicate, error) {
	switch p := pred.(type) {
	case BoundUnaryPredicate:
		return p.AsUnbound(Reference(name)), nil
	case BoundLiteralPredicate:
		return p.AsUnbound(Reference(name), p.Literal()), nil
	case BoundSetPredicate:
		return p.AsUnbound(Reference(name), p.Literals().Members()), nil
	}

	return nil, fmt.Errorf("%w: cannot replace transform in unknown predicate: %s",
		ErrInvalidArgument, pred)
}

// projectTransformPredicate handles predicates whose term is already the
// transform itself, e.g. day(ts) == 17501. If the transforms match, the
// predicate carries over to the partition column unchanged.
func projectTransformPredicate(t Transform, name string, pred BoundPredicate) (UnboundPredicate, error) {
	bt := asBoundTransform(pred.Term())
	if bt == nil || !t.Equals(bt.Transform()) {
		return nil, nil
	}

	return removeTransform(name, pred)
}

// transformLiteral applies t to a source-space boundary literal. The bool
// return is false when the boundary overflowed the source type's range or
// the transform produced null, meaning the projection should be skipped.
func transformLiteral(t Transform, lit Literal) (Literal, bool) {
	switch lit.(type) {
	case AboveMaxLiteral, BelowMinLiteral:
		return nil, false
	}

	out := t.Apply(Optional[Literal]{Val: lit, Valid: true})
	if !out.Valid {
		return nil, false
	}

	return out.Val, true
}

func setApplyTransform(name string, pred BoundSetPredicate, t Transform) (UnboundPredicate, error) {
	members := pred.Literals().Members()
	lits := make([]Literal, 0, len(members))
	for _, m := range members {
		out, ok := transformLiteral(t, m)
		if !ok {
			return nil, nil
		}
		lits = append(lits, out)
	}

	return pred.AsUnbound(Reference(name), lits), nil
}

// truncateNumber projects an inclusive range predicate through an
// order-preserving transform. Exclusive bounds are converted to inclusive
// ones in the source space before transforming, since the transformed
// space is coarser than the source space.
func truncateNumber(name string, pred BoundLiteralPredicate, t Transform) (UnboundPredicate, error) {
	boundary, ok := pred.Literal().(NumericLiteral)
	if !ok {
		return nil, fmt.Errorf("%w: expected numeric literal for range projection, got %s",
			ErrInvalidArgument, pred.Literal().Type())
	}

	switch pred.Op() {
	case OpLT:
		if lit, ok := transformLiteral(t, boundary.Decrement()); ok {
			return LiteralPredicate(OpLTEQ, Reference(name), lit), nil
		}
	case OpLTEQ:
		if lit, ok := transformLiteral(t, boundary); ok {
			return LiteralPredicate(OpLTEQ, Reference(name), lit), nil
		}
	case OpGT:
		if lit, ok := transformLiteral(t, boundary.Increment()); ok {
			return LiteralPredicate(OpGTEQ, Reference(name), lit), nil
		}
	case OpGTEQ:
		if lit, ok := transformLiteral(t, boundary); ok {
			return LiteralPredicate(OpGTEQ, Reference(name), lit), nil
		}
	case OpEQ:
		if lit, ok := transformLiteral(t, boundary); ok {
			return LiteralPredicate(OpEQ, Reference(name), lit), nil
		}
	}

	return nil, nil
}

// truncateNumberStrict is the strict counterpart of truncateNumber. The
// bounds move in the opposite direction: a partition only strictly matches
// when it lies entirely beyond the transformed boundary.
func truncateNumberStrict(name string, pred BoundLiteralPredicate, t Transform) (UnboundPredicate, error) {
	boundary, ok := pred.Literal().(NumericLiteral)
	if !ok {
		return nil, fmt.Errorf("%w: expected numeric literal for range projection, got %s",
			ErrInvalidArgument, pred.Literal().Type())
	}

	switch pred.Op() {
	case OpLT:
		if lit, ok := transformLiteral(t, boundary); ok {
			return LiteralPredicate(OpLT, Reference(name), lit), nil
		}
	case OpLTEQ:
		if lit, ok := transformLiteral(t, boundary.Increment()); ok {
			return LiteralPredicate(OpLT, Reference(name), lit), nil
		}
	case OpGT:
		if lit, ok := transformLiteral(t, boundary); ok {
			return LiteralPredicate(OpGT, Reference(name), lit), nil
		}
	case OpGTEQ:
		if lit, ok := transformLiteral(t, boundary.Decrement()); ok {
			return LiteralPredicate(OpGT, Reference(name), lit), nil
		}
	case OpNEQ:
		if lit, ok := transformLiteral(t, boundary); ok {
			return LiteralPredicate(OpNEQ, Reference(name), lit), nil
		}
	}

	// equality can never be projected strictly: a partition with the
	// matching transformed value still holds rows with other source values
	return nil, nil
}

func transformHumanDefault(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case []byte:
		return base64.StdEncoding.EncodeToString(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func asInt64(v any) (int64, bool) {
	switch v := v.(type) {
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case Date:
		return int64(v), true
	case Timestamp:
		return int64(v), true
	}

	return 0, false
}

// IdentityTransform uses the identity function, performing no transformation
// but instead partitioning on the value itself.
type IdentityTransform struct{}

func (t IdentityTransform) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (IdentityTransform) String() string { return "identity" }

func (IdentityTransform) Equals(other Transform) bool {
	_, ok := other.(IdentityTransform)

	return ok
}

func (IdentityTransform) CanTransform(src Type) bool {
	_, ok := src.(PrimitiveType)

	return ok
}

func (IdentityTransform) ResultType(t Type) Type { return t }

func (IdentityTransform) Apply(value Optional[Literal]) Optional[Literal] {
	return value
}

func (t IdentityTransform) Project(name string, pred BoundPredicate) (UnboundPredicate, error) {
	if asBoundTransform(pred.Term()) != nil {
		return projectTransformPredicate(t, name, pred)
	}

	return removeTransform(name, pred)
}

// ProjectStrict is identical to Project for identity: each partition holds
// exactly one source value, so inclusive and strict projections coincide.
func (t IdentityTransform) ProjectStrict(name string, pred BoundPredicate) (UnboundPredicate, error) {
	return t.Project(name, pred)
}

func (IdentityTransform) ToHumanStr(v any) string {
	switch v := v.(type) {
	case Date:
		return v.ToTime().Format("2006-01-02")
	case Time:
		return v.ToTime().Format("15:04:05.000000")
	case Timestamp:
		return v.ToTime().Format("2006-01-02T15:04:05.000000")
	}

	return transformHumanDefault(v)
}

// VoidTransform is a transformation that always returns nil.
type VoidTransform struct{}

func (t VoidTransform) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (VoidTransform) String() string { return "void" }

func (VoidTransform) Equals(other Transform) bool {
	_, ok := other.(VoidTransform)

	return ok
}

func (VoidTransform) CanTransform(Type) bool { return true }

func (VoidTransform) ResultType(t Type) Type { return t }

func (VoidTransform) Apply(Optional[Literal]) Optional[Literal] {
	return Optional[Literal]{}
}

func (VoidTransform) Project(string, BoundPredicate) (UnboundPredicate, error) {
	return nil, nil
}

func (VoidTransform) ProjectStrict(string, BoundPredicate) (UnboundPredicate, error) {
	return nil, nil
}

func (VoidTransform) ToHumanStr(any) string { return "null" }

// BucketTransform transforms values into a bucket partition value. It is
// parameterized by a number of buckets. Bucket partition transforms use
// a 32-bit hash of the source value to produce a positive value by mod
// the bucket number.
type BucketTransform struct {
	NumBuckets int
}

func (t BucketTransform) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t BucketTransform) String() string { return fmt.Sprintf("bucket[%d]", t.NumBuckets) }

func (t BucketTransform) Equals(other Transform) bool {
	rhs, ok := other.(BucketTransform)

	return ok && t.NumBuckets == rhs.NumBuckets
}

func (BucketTransform) CanTransform(src Type) bool {
	switch src.(type) {
	case Int32Type, Int64Type, DateType, TimeType, TimestampType, TimestampTzType,
		DecimalType, StringType, FixedType, BinaryType, UUIDType:
		return true
	}

	return false
}

func (BucketTransform) ResultType(Type) Type { return PrimitiveTypes.Int32 }

// hashLiteral produces the 32-bit murmur3 hash of the single-value binary
// representation: integer and date/time values hash as little-endian longs,
// strings as UTF-8 bytes, uuids as their big-endian bytes and decimals as
// the minimal two's-complement form of the unscaled value.
func (BucketTransform) hashLiteral(lit Literal) (int32, error) {
	var b []byte
	switch v := lit.(type) {
	case Int32Literal:
		b = binary.LittleEndian.AppendUint64(nil, uint64(int64(v)))
	case Int64Literal:
		b = binary.LittleEndian.AppendUint64(nil, uint64(int64(v)))
	case DateLiteral:
		b = binary.LittleEndian.AppendUint64(nil, uint64(int64(v)))
	case TimeLiteral:
		b = binary.LittleEndian.AppendUint64(nil, uint64(int64(v)))
	case TimestampLiteral:
		b = binary.LittleEndian.AppendUint64(nil, uint64(int64(v)))
	case StringLiteral:
		b = []byte(v)
	case BinaryLiteral:
		b = v
	case FixedLiteral:
		b = v
	case UUIDLiteral:
		u := uuid.UUID(v)
		b = u[:]
	case DecimalLiteral:
		var err error
		if b, err = v.MarshalBinary(); err != nil {
			return 0, err
		}
	default:
		return 0, fmt.Errorf("%w: bucket transform does not accept %s",
			ErrType, lit.Type())
	}

	return int32(murmur3.Sum32(b)), nil
}

func (t BucketTransform) Apply(value Optional[Literal]) Optional[Literal] {
	if !value.Valid {
		return Optional[Literal]{}
	}

	h, err := t.hashLiteral(value.Val)
	if err != nil {
		panic(err)
	}

	return Optional[Literal]{
		Val:   Int32Literal((h & math.MaxInt32) % int32(t.NumBuckets)),
		Valid: true,
	}
}

// Project can only handle unary, equality and set membership predicates:
// bucketing does not preserve ordering, so range predicates have no
// projection onto the bucket number.
func (t BucketTransform) Project(name string, pred BoundPredicate) (UnboundPredicate, error) {
	if asBoundTransform(pred.Term()) != nil {
		return projectTransformPredicate(t, name, pred)
	}

	if !t.CanTransform(pred.Term().Type()) {
		return nil, nil
	}

	switch p := pred.(type) {
	case BoundUnaryPredicate:
		return p.AsUnbound(Reference(name)), nil
	case BoundLiteralPredicate:
		if p.Op() == OpEQ {
			if lit, ok := transformLiteral(t, p.Literal()); ok {
				return p.AsUnbound(Reference(name), lit), nil
			}
		}
	case BoundSetPredicate:
		if p.Op() == OpIn {
			return setApplyTransform(name, p, t)
		}
	}

	return nil, nil
}

func (t BucketTransform) ProjectStrict(name string, pred BoundPredicate) (UnboundPredicate, error) {
	if asBoundTransform(pred.Term()) != nil {
		return projectTransformPredicate(t, name, pred)
	}

	if !t.CanTransform(pred.Term().Type()) {
		return nil, nil
	}

	switch p := pred.(type) {
	case BoundUnaryPredicate:
		return p.AsUnbound(Reference(name)), nil
	case BoundLiteralPredicate:
		if p.Op() == OpNEQ {
			if lit, ok := transformLiteral(t, p.Literal()); ok {
				return p.AsUnbound(Reference(name), lit), nil
			}
		}
	case BoundSetPredicate:
		if p.Op() == OpNotIn {
			return setApplyTransform(name, p, t)
		}
	}

	return nil, nil
}

func (BucketTransform) ToHumanStr(v any) string { return transformHumanDefault(v) }

// TruncateTransform is a transformation for truncating a value to a specified width.
type TruncateTransform struct {
	Width int
}

func (t TruncateTransform) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t TruncateTransform) String() string { return fmt.Sprintf("truncate[%d]", t.Width) }

func (t TruncateTransform) Equals(other Transform) bool {
	rhs, ok := other.(TruncateTransform)

	return ok && t.Width == rhs.Width
}

func (TruncateTransform) CanTransform(src Type) bool {
	switch src.(type) {
	case Int32Type, Int64Type, DecimalType, StringType, BinaryType:
		return true
	}

	return false
}

func (TruncateTransform) ResultType(t Type) Type { return t }

func (t TruncateTransform) Apply(value Optional[Literal]) Optional[Literal] {
	if !value.Valid {
		return Optional[Literal]{}
	}

	switch v := value.Val.(type) {
	case Int32Literal:
		w := Int32Literal(t.Width)

		return Optional[Literal]{Val: v - (v%w+w)%w, Valid: true}
	case Int64Literal:
		w := Int64Literal(t.Width)

		return Optional[Literal]{Val: v - (v%w+w)%w, Valid: true}
	case StringLiteral:
		if utf8.RuneCountInString(string(v)) <= t.Width {
			return value
		}

		return Optional[Literal]{
			Val:   StringLiteral([]rune(string(v))[:t.Width]),
			Valid: true,
		}
	case BinaryLiteral:
		if len(v) <= t.Width {
			return value
		}

		return Optional[Literal]{Val: v[:t.Width], Valid: true}
	case DecimalLiteral:
		// truncate the unscaled value, big.Int Mod is always non-negative
		// for a positive modulus so negatives round down
		unscaled := v.Val.BigInt()
		rem := new(big.Int).Mod(unscaled, big.NewInt(int64(t.Width)))

		return Optional[Literal]{
			Val: DecimalLiteral{
				Val:   decimal128.FromBigInt(unscaled.Sub(unscaled, rem)),
				Scale: v.Scale,
			},
			Valid: true,
		}
	}
	panic(fmt.Errorf("%w: truncate transform does not accept %s",
		ErrType, value.Val.Type()))
}

// truncateLitLength returns the comparable length of the predicate's
// string or binary literal, counting code points for strings.
func truncateLitLength(lit Literal) int {
	switch v := lit.(type) {
	case StringLiteral:
		return utf8.RuneCountInString(string(v))
	case BinaryLiteral:
		return len(v)
	case FixedLiteral:
		return len(v)
	}

	return -1
}

func (t TruncateTransform) truncateArray(name string, pred BoundLiteralPredicate) (UnboundPredicate, error) {
	lit := pred.Literal()

	switch pred.Op() {
	case OpLT, OpLTEQ:
		if out, ok := transformLiteral(t, lit); ok {
			return LiteralPredicate(OpLTEQ, Reference(name), out), nil
		}
	case OpGT, OpGTEQ:
		if out, ok := transformLiteral(t, lit); ok {
			return LiteralPredicate(OpGTEQ, Reference(name), out), nil
		}
	case OpEQ:
		if out, ok := transformLiteral(t, lit); ok {
			return LiteralPredicate(OpEQ, Reference(name), out), nil
		}
	case OpStartsWith:
		switch length := truncateLitLength(lit); {
		case length < t.Width:
			return LiteralPredicate(OpStartsWith, Reference(name), lit), nil
		case length == t.Width:
			return LiteralPredicate(OpEQ, Reference(name), lit), nil
		default:
			if out, ok := transformLiteral(t, lit); ok {
				return LiteralPredicate(OpEQ, Reference(name), out), nil
			}
		}
	case OpNotStartsWith:
		switch length := truncateLitLength(lit); {
		case length < t.Width:
			return LiteralPredicate(OpNotStartsWith, Reference(name), lit), nil
		case length == t.Width:
			return LiteralPredicate(OpNEQ, Reference(name), lit), nil
		}
		// a longer prefix cannot exclude any partition: values sharing the
		// truncated prefix may or may not start with the full prefix
	}

	return nil, nil
}

func (t TruncateTransform) truncateArrayStrict(name string, pred BoundLiteralPredicate) (UnboundPredicate, error) {
	lit := pred.Literal()

	switch pred.Op() {
	case OpLT, OpLTEQ:
		if out, ok := transformLiteral(t, lit); ok {
			return LiteralPredicate(OpLT, Reference(name), out), nil
		}
	case OpGT, OpGTEQ:
		if out, ok := transformLiteral(t, lit); ok {
			return LiteralPredicate(OpGT, Reference(name), out), nil
		}
	case OpNEQ:
		if out, ok := transformLiteral(t, lit); ok {
			return LiteralPredicate(OpNEQ, Reference(name), out), nil
		}
	case OpStartsWith:
		switch length := truncateLitLength(lit); {
		case length < t.Width:
			return LiteralPredicate(OpStartsWith, Reference(name), lit), nil
		case length == t.Width:
			return LiteralPredicate(OpEQ, Reference(name), lit), nil
		}
	case OpNotStartsWith:
		switch length := truncateLitLength(lit); {
		case length < t.Width:
			return LiteralPredicate(OpNotStartsWith, Reference(name), lit), nil
		case length == t.Width:
			return LiteralPredicate(OpNEQ, Reference(name), lit), nil
		default:
			// partitions whose value differs from the truncated prefix
			// cannot hold any value starting with the full prefix
			if out, ok := transformLiteral(t, lit); ok {
				return LiteralPredicate(OpNEQ, Reference(name), out), nil
			}
		}
	}

	return nil, nil
}

func (t TruncateTransform) Project(name string, pred BoundPredicate) (UnboundPredicate, error) {
	if asBoundTransform(pred.Term()) != nil {
		return projectTransformPredicate(t, name, pred)
	}

	if !t.CanTransform(pred.Term().Type()) {
		return nil, nil
	}

	switch p := pred.(type) {
	case BoundUnaryPredicate:
		return p.AsUnbound(Reference(name)), nil
	case BoundSetPredicate:
		if p.Op() == OpIn {
			return setApplyTransform(name, p, t)
		}
	case BoundLiteralPredicate:
		switch pred.Term().Type().(type) {
		case Int32Type, Int64Type, DecimalType:
			return truncateNumber(name, p, t)
		case StringType, BinaryType:
			return t.truncateArray(name, p)
		}
	}

	return nil, nil
}

func (t TruncateTransform) ProjectStrict(name string, pred BoundPredicate) (UnboundPredicate, error) {
	if asBoundTransform(pred.Term()) != nil {
		return projectTransformPredicate(t, name, pred)
	}

	if !t.CanTransform(pred.Term().Type()) {
		return nil, nil
	}

	switch p := pred.(type) {
	case BoundUnaryPredicate:
		return p.AsUnbound(Reference(name)), nil
	case BoundSetPredicate:
		if p.Op() == OpNotIn {
			return setApplyTransform(name, p, t)
		}
	case BoundLiteralPredicate:
		switch pred.Term().Type().(type) {
		case Int32Type, Int64Type, DecimalType:
			return truncateNumberStrict(name, p, t)
		case StringType, BinaryType:
			return t.truncateArrayStrict(name, p)
		}
	}

	return nil, nil
}

func (TruncateTransform) ToHumanStr(v any) string { return transformHumanDefault(v) }

// projectTimePredicate is the shared inclusive projection for the datetime
// transforms, which are all order preserving.
func projectTimePredicate(t Transform, name string, pred BoundPredicate) (UnboundPredicate, error) {
	if asBoundTransform(pred.Term()) != nil {
		return projectTransformPredicate(t, name, pred)
	}

	if !t.CanTransform(pred.Term().Type()) {
		return nil, nil
	}

	switch p := pred.(type) {
	case BoundUnaryPredicate:
		return p.AsUnbound(Reference(name)), nil
	case BoundLiteralPredicate:
		return truncateNumber(name, p, t)
	case BoundSetPredicate:
		if p.Op() == OpIn {
			return setApplyTransform(name, p, t)
		}
	}

	return nil, nil
}

func projectTimePredicateStrict(t Transform, name string, pred BoundPredicate) (UnboundPredicate, error) {
	if asBoundTransform(pred.Term()) != nil {
		return projectTransformPredicate(t, name, pred)
	}

	if !t.CanTransform(pred.Term().Type()) {
		return nil, nil
	}

	switch p := pred.(type) {
	case BoundUnaryPredicate:
		return p.AsUnbound(Reference(name)), nil
	case BoundLiteralPredicate:
		return truncateNumberStrict(name, p, t)
	case BoundSetPredicate:
		if p.Op() == OpNotIn {
			return setApplyTransform(name, p, t)
		}
	}

	return nil, nil
}

// YearTransform transforms a datetime value into a year value, as the
// number of years from 1970.
type YearTransform struct{}

func (t YearTransform) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (YearTransform) String() string { return "year" }

func (YearTransform) Equals(other Transform) bool {
	_, ok := other.(YearTransform)

	return ok
}

func (YearTransform) CanTransform(src Type) bool {
	switch src.(type) {
	case DateType, TimestampType, TimestampTzType:
		return true
	}

	return false
}

func (YearTransform) ResultType(Type) Type { return PrimitiveTypes.Int32 }

func (YearTransform) Apply(value Optional[Literal]) Optional[Literal] {
	if !value.Valid {
		return Optional[Literal]{}
	}

	var out int32
	switch v := value.Val.(type) {
	case DateLiteral:
		out = int32(Date(v).ToTime().Year() - 1970)
	case TimestampLiteral:
		out = int32(Timestamp(v).ToTime().Year() - 1970)
	default:
		panic(fmt.Errorf("%w: year transform does not accept %s",
			ErrType, value.Val.Type()))
	}

	return Optional[Literal]{Val: Int32Literal(out), Valid: true}
}

func (t YearTransform) Project(name string, pred BoundPredicate) (UnboundPredicate, error) {
	return projectTimePredicate(t, name, pred)
}

func (t YearTransform) ProjectStrict(name string, pred BoundPredicate) (UnboundPredicate, error) {
	return projectTimePredicateStrict(t, name, pred)
}

func (YearTransform) ToHumanStr(v any) string {
	if y, ok := asInt64(v); ok {
		return fmt.Sprintf("%04d", 1970+y)
	}

	return transformHumanDefault(v)
}

// MonthTransform transforms a datetime value into a month value, as the
// number of months from 1970-01.
type MonthTransform struct{}

func (t MonthTransform) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (MonthTransform) String() string { return "month" }

func (MonthTransform) Equals(other Transform) bool {
	_, ok := other.(MonthTransform)

	return ok
}

func (MonthTransform) CanTransform(src Type) bool {
	switch src.(type) {
	case DateType, TimestampType, TimestampTzType:
		return true
	}

	return false
}

func (MonthTransform) ResultType(Type) Type { return PrimitiveTypes.Int32 }

func (MonthTransform) Apply(value Optional[Literal]) Optional[Literal] {
	if !value.Valid {
		return Optional[Literal]{}
	}

	var tm time.Time
	switch v := value.Val.(type) {
	case DateLiteral:
		tm = Date(v).ToTime()
	case TimestampLiteral:
		tm = Timestamp(v).ToTime()
	default:
		panic(fmt.Errorf("%w: month transform does not accept %s",
			ErrType, value.Val.Type()))
	}

	out := int32((tm.Year()-1970)*12 + int(tm.Month()) - 1)

	return Optional[Literal]{Val: Int32Literal(out), Valid: true}
}

func (t MonthTransform) Project(name string, pred BoundPredicate) (UnboundPredicate, error) {
	return projectTimePredicate(t, name, pred)
}

func (t MonthTransform) ProjectStrict(name string, pred BoundPredicate) (UnboundPredicate, error) {
	return projectTimePredicateStrict(t, name, pred)
}

func (MonthTransform) ToHumanStr(v any) string {
	if m, ok := asInt64(v); ok {
		y := floorDiv(m, 12)

		return fmt.Sprintf("%04d-%02d", 1970+y, m-y*12+1)
	}

	return transformHumanDefault(v)
}

// DayTransform transforms a datetime value into a date value, as the
// number of days from 1970-01-01.
type DayTransform struct{}

func (t DayTransform) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (DayTransform) String() string { return "day" }

func (DayTransform) Equals(other Transform) bool {
	_, ok := other.(DayTransform)

	return ok
}

func (DayTransform) CanTransform(src Type) bool {
	switch src.(type) {
	case DateType, TimestampType, TimestampTzType:
		return true
	}

	return false
}

func (DayTransform) ResultType(Type) Type { return PrimitiveTypes.Date }

func (DayTransform) Apply(value Optional[Literal]) Optional[Literal] {
	if !value.Valid {
		return Optional[Literal]{}
	}

	switch v := value.Val.(type) {
	case DateLiteral:
		return value
	case TimestampLiteral:
		return Optional[Literal]{
			Val:   DateLiteral(Timestamp(v).ToDate()),
			Valid: true,
		}
	}
	panic(fmt.Errorf("%w: day transform does not accept %s",
		ErrType, value.Val.Type()))
}

func (t DayTransform) Project(name string, pred BoundPredicate) (UnboundPredicate, error) {
	return projectTimePredicate(t, name, pred)
}

func (t DayTransform) ProjectStrict(name string, pred BoundPredicate) (UnboundPredicate, error) {
	return projectTimePredicateStrict(t, name, pred)
}

func (DayTransform) ToHumanStr(v any) string {
	if d, ok := asInt64(v); ok {
		return Date(d).ToTime().Format("2006-01-02")
	}

	return transformHumanDefault(v)
}

// HourTransform transforms a datetime value into an hour value, as the
// number of hours from 1970-01-01 00:00:00.
type HourTransform struct{}

func (t HourTransform) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (HourTransform) String() string { return "hour" }

func (HourTransform) Equals(other Transform) bool {
	_, ok := other.(HourTransform)

	return ok
}

func (HourTransform) CanTransform(src Type) bool {
	switch src.(type) {
	case TimestampType, TimestampTzType:
		return true
	}

	return false
}

func (HourTransform) ResultType(Type) Type { return PrimitiveTypes.Int32 }

func (HourTransform) Apply(value Optional[Literal]) Optional[Literal] {
	if !value.Valid {
		return Optional[Literal]{}
	}

	if v, ok := value.Val.(TimestampLiteral); ok {
		return Optional[Literal]{
			Val:   Int32Literal(int32(floorDiv(int64(v), microsPerHour))),
			Valid: true,
		}
	}
	panic(fmt.Errorf("%w: hour transform does not accept %s",
		ErrType, value.Val.Type()))
}

func (t HourTransform) Project(name string, pred BoundPredicate) (UnboundPredicate, error) {
	return projectTimePredicate(t, name, pred)
}

func (t HourTransform) ProjectStrict(name string, pred BoundPredicate) (UnboundPredicate, error) {
	return projectTimePredicateStrict(t, name, pred)
}

func (HourTransform) ToHumanStr(v any) string {
	if h, ok := asInt64(v); ok {
		return time.Unix(h*3600, 0).UTC().Format("2006-01-02-15")
	}

	return transformHumanDefault(v)
}
