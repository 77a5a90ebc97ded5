// Copyright (C) 2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

// Package quantity provides unit-safe physical quantities.
//
// A Quantity stores its magnitude as a fixed-point integer in the canonical
// sub-unit of its dimension (micro-kelvin, milli-pascal, milli-joule per
// kilogram). The unit type parameter only decides how plain numbers are
// interpreted on the way in and produced on the way out, so quantities of the
// same dimension can be compared and converted regardless of their unit,
// while quantities of different dimensions cannot be mixed at all.
//
// Scaling is anchored at the zero point of the quantity's unit:
//
//	NewTemperature[Celsius](10).Mul(2) // 20 °C, not 2 * 283.15 K
//
// For linear units the anchor is the dimension's zero and this reduces to
// plain scaling of the magnitude.
//
// Numbers can be added to, subtracted from, multiplied with and divided by a
// quantity (Add, Sub, Mul, Div) and the mirrored number + Quantity, number *
// Quantity and number / Quantity exist as Plus, Times and Over. There is no
// number - Quantity; write Plus(n, q.Mul(-1)).
package quantity

import (
	"cmp"
	"math"
)

// Number is any built-in integer or floating-point type.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// Quantity is a value of dimension D, expressed in unit U.
//
// The int64 magnitude is not checked for overflow. Values converted from
// numbers outside of roughly ±9.2e18 canonical sub-units are undefined.
type Quantity[D Dimension, U Unit[D]] struct {
	canonical int64
}

type (
	Temperature[U TemperatureUnit]           = Quantity[TemperatureDimension, U]
	Pressure[U PressureUnit]                 = Quantity[PressureDimension, U]
	SpecificEnthalpy[U SpecificEnthalpyUnit] = Quantity[SpecificEnthalpyDimension, U]
)

func round(x float64) int64 {
	return int64(math.Round(x))
}

// New returns the quantity n U.
func New[D Dimension, U Unit[D], N Number](n N) Quantity[D, U] {
	var u U
	return Quantity[D, U]{canonical: round(float64(n)*float64(u.Scale()) + float64(u.Offset()))}
}

func NewTemperature[U TemperatureUnit, N Number](n N) Temperature[U] {
	return New[TemperatureDimension, U](n)
}

func NewPressure[U PressureUnit, N Number](n N) Pressure[U] {
	return New[PressureDimension, U](n)
}

func NewSpecificEnthalpy[U SpecificEnthalpyUnit, N Number](n N) SpecificEnthalpy[U] {
	return New[SpecificEnthalpyDimension, U](n)
}

// Convert re-tags q with the unit To. The canonical magnitude is unchanged.
func Convert[To Unit[D], D Dimension, From Unit[D]](q Quantity[D, From]) Quantity[D, To] {
	return Quantity[D, To]{canonical: q.canonical}
}

// Float64 returns the magnitude of q in its unit U.
func (q Quantity[D, U]) Float64() float64 {
	var u U
	return float64(q.canonical-u.Offset()) / float64(u.Scale())
}

// Canonical returns the magnitude of q in the canonical sub-unit of D.
func (q Quantity[D, U]) Canonical() int64 {
	return q.canonical
}

// Unit returns the descriptor of the unit q is expressed in.
func (q Quantity[D, U]) Unit() U {
	var u U
	return u
}

// Add returns q increased by n units of U.
func (q Quantity[D, U]) Add(n float64) Quantity[D, U] {
	var u U
	return Quantity[D, U]{canonical: q.canonical + round(n*float64(u.Scale()))}
}

// Sub returns q decreased by n units of U.
func (q Quantity[D, U]) Sub(n float64) Quantity[D, U] {
	var u U
	return Quantity[D, U]{canonical: q.canonical - round(n*float64(u.Scale()))}
}

// Mul scales q by factor relative to the zero point of U.
func (q Quantity[D, U]) Mul(factor float64) Quantity[D, U] {
	var u U
	offset := u.Offset()
	return Quantity[D, U]{canonical: offset + round(factor*float64(q.canonical-offset))}
}

// Div divides q by divisor relative to the zero point of U.
func (q Quantity[D, U]) Div(divisor float64) Quantity[D, U] {
	var u U
	offset := u.Offset()
	return Quantity[D, U]{canonical: offset + round(float64(q.canonical-offset)/divisor)}
}

// Equal reports whether q and other differ by less than the tolerance of D.
func (q Quantity[D, U]) Equal(other Quantity[D, U]) bool {
	return Equal(q, other)
}

// Less reports whether q is strictly smaller than other. The comparison is
// exact and ignores the equality tolerance.
func (q Quantity[D, U]) Less(other Quantity[D, U]) bool {
	return q.canonical < other.canonical
}

// Plus returns n units of U added to q. It is identical to q.Add(n). There is
// no subtracting counterpart; n - q is written as Plus(n, q.Mul(-1)).
func Plus[D Dimension, U Unit[D], N Number](n N, q Quantity[D, U]) Quantity[D, U] {
	return q.Add(float64(n))
}

// Times returns q scaled by factor. It is identical to q.Mul(factor).
func Times[D Dimension, U Unit[D], N Number](factor N, q Quantity[D, U]) Quantity[D, U] {
	return q.Mul(float64(factor))
}

// Over returns n divided by the magnitude of q in U, i.e. relative to the
// same zero point Mul and Div use. A quantity at that zero point yields ±Inf
// (or NaN for n == 0).
func Over[D Dimension, U Unit[D], N Number](n N, q Quantity[D, U]) float64 {
	return float64(n) / q.Float64()
}

// Equal reports whether a and b differ by less than the tolerance of D,
// regardless of their units. Equality is not transitive: chaining values
// that are each just inside the tolerance can reach values that are not.
func Equal[D Dimension, U1 Unit[D], U2 Unit[D]](a Quantity[D, U1], b Quantity[D, U2]) bool {
	var d D
	diff := a.canonical - b.canonical
	if diff < 0 {
		diff = -diff
	}
	return diff < d.Tolerance()
}

// Compare returns -1, 0 or +1 depending on whether a is less than, equal to
// or greater than b. Unlike Equal it compares the canonical magnitudes
// exactly.
func Compare[D Dimension, U1 Unit[D], U2 Unit[D]](a Quantity[D, U1], b Quantity[D, U2]) int {
	return cmp.Compare(a.canonical, b.canonical)
}

// Ratio returns the dimensionless ratio a / b of the canonical magnitudes.
func Ratio[D Dimension, U1 Unit[D], U2 Unit[D]](a Quantity[D, U1], b Quantity[D, U2]) float64 {
	return float64(a.canonical) / float64(b.canonical)
}
