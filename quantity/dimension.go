// Copyright (C) 2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package quantity

// Dimension describes the canonical representation shared by all units of
// one physical dimension.
type Dimension interface {
	// CanonicalUnit returns the abbreviation of the fixed-point sub-unit the
	// magnitude is stored in.
	CanonicalUnit() string
	// Tolerance returns the largest difference (exclusive) in canonical
	// sub-units for which two quantities still compare equal.
	Tolerance() int64
}

// TemperatureDimension is stored in micro-kelvin.
type TemperatureDimension struct{}

func (TemperatureDimension) CanonicalUnit() string { return "µK" }
func (TemperatureDimension) Tolerance() int64      { return 200 }

// Dimension lets units embed the tag to satisfy Unit[TemperatureDimension].
func (d TemperatureDimension) Dimension() TemperatureDimension { return d }

// PressureDimension is stored in milli-pascal.
type PressureDimension struct{}

func (PressureDimension) CanonicalUnit() string          { return "mPa" }
func (PressureDimension) Tolerance() int64               { return 200 }
func (d PressureDimension) Dimension() PressureDimension { return d }

// SpecificEnthalpyDimension is stored in milli-joule per kilogram.
type SpecificEnthalpyDimension struct{}

func (SpecificEnthalpyDimension) CanonicalUnit() string { return "mJ kg⁻¹" }
func (SpecificEnthalpyDimension) Tolerance() int64      { return 200 }
func (d SpecificEnthalpyDimension) Dimension() SpecificEnthalpyDimension {
	return d
}
