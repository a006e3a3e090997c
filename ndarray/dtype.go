// SPDX-License-Identifier: MIT
// Package ndarray: element types and value casting.
//
// Purpose:
//   - Enumerate the supported element types (DType) and memory orders (Order).
//   - Provide the single casting kernel used by constructors, conversions and
//     the sparse package (CastValues).
//
// Casting policy:
//   - Float64: identity.
//   - Float32: rounds through float32 (large values become ±Inf, as in IEEE).
//   - Int64/Int32/Uint8: truncate toward zero; NaN/±Inf ⇒ ErrNaNInf,
//     out-of-range ⇒ ErrOverflow.
//   - Bool: v != 0 ⇒ 1, else 0 (NaN is truthy).

package ndarray

import (
	"fmt"
	"math"
	"strings"
)

// DType identifies the element type of an Array.
// The zero value Unspecified means "keep the existing type" in conversions.
type DType uint8

const (
	// Unspecified is not a storage type; conversions treat it as "no change".
	Unspecified DType = iota
	Float64
	Float32
	Int64
	Int32
	Uint8
	Bool
)

// dtypeNames maps each concrete DType to its canonical name.
var dtypeNames = map[DType]string{
	Float64: "float64",
	Float32: "float32",
	Int64:   "int64",
	Int32:   "int32",
	Uint8:   "uint8",
	Bool:    "bool",
}

// dtypeAliases lists every accepted spelling for ParseDType.
var dtypeAliases = map[string]DType{
	"float64": Float64, "float": Float64, "double": Float64, "f8": Float64,
	"float32": Float32, "single": Float32, "f4": Float32,
	"int64": Int64, "int": Int64, "i8": Int64,
	"int32": Int32, "i4": Int32,
	"uint8": Uint8, "u1": Uint8,
	"bool": Bool, "bool_": Bool,
}

// String returns the canonical dtype name ("float64", …) or "unspecified".
func (d DType) String() string {
	if name, ok := dtypeNames[d]; ok {
		return name
	}
	if d == Unspecified {
		return "unspecified"
	}

	return fmt.Sprintf("dtype(%d)", uint8(d))
}

// Valid reports whether d is a concrete storage type.
func (d DType) Valid() bool {
	_, ok := dtypeNames[d]
	return ok
}

// IsInteger reports whether d stores integral values (Bool excluded).
func (d DType) IsInteger() bool {
	return d == Int64 || d == Int32 || d == Uint8
}

// ParseDType resolves a dtype name (case-insensitive, common aliases allowed).
// The empty string yields Unspecified.
func ParseDType(name string) (DType, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return Unspecified, nil
	}
	if d, ok := dtypeAliases[key]; ok {
		return d, nil
	}

	return Unspecified, fmt.Errorf("ParseDType(%q): %w", name, ErrUnknownDType)
}

// Order is the memory layout of an Array's flat buffer.
type Order uint8

const (
	// RowMajor stores the last axis contiguously (C order).
	RowMajor Order = iota
	// ColMajor stores the first axis contiguously (Fortran order).
	ColMajor
)

// String returns "C" or "F".
func (o Order) String() string {
	if o == ColMajor {
		return "F"
	}

	return "C"
}

// ParseOrder resolves "C"/"F" (case-insensitive); the empty string is RowMajor.
func ParseOrder(name string) (Order, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "", "C":
		return RowMajor, nil
	case "F":
		return ColMajor, nil
	default:
		return RowMajor, fmt.Errorf("ParseOrder(%q): %w", name, ErrUnknownOrder)
	}
}

// integer bounds expressed in float64; the upper bounds are exclusive.
const (
	minInt64 = -9223372036854775808.0
	maxInt64 = 9223372036854775808.0
	minInt32 = -2147483648.0
	maxInt32 = 2147483648.0
	maxUint8 = 256.0
)

// castValue converts v into the value space of dtype to.
// Complexity: O(1).
func castValue(v float64, to DType) (float64, error) {
	switch to {
	case Float64:
		return v, nil
	case Float32:
		return float64(float32(v)), nil
	case Bool:
		if v != 0 { // NaN != 0 holds, so NaN is truthy
			return 1, nil
		}
		return 0, nil
	case Int64, Int32, Uint8:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, ErrNaNInf
		}
		t := math.Trunc(v)
		lo, hi := integerBounds(to)
		if t < lo || t >= hi {
			return 0, ErrOverflow
		}
		return t, nil
	default:
		return 0, ErrUnknownDType
	}
}

// integerBounds returns [lo, hi) for an integer dtype.
func integerBounds(d DType) (float64, float64) {
	switch d {
	case Int32:
		return minInt32, maxInt32
	case Uint8:
		return 0, maxUint8
	default:
		return minInt64, maxInt64
	}
}

// CastValues returns a new slice holding values cast to dtype to.
// The first failing element is reported with its flat position.
// Time: O(n). Space: O(n).
func CastValues(values []float64, to DType) ([]float64, error) {
	if !to.Valid() {
		return nil, arrayErrorf("CastValues", ErrUnknownDType)
	}
	out := make([]float64, len(values))
	for i, v := range values {
		c, err := castValue(v, to)
		if err != nil {
			return nil, fmt.Errorf("CastValues: element %d (%g) to %s: %w", i, v, to, err)
		}
		out[i] = c
	}

	return out, nil
}
