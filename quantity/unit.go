// Copyright (C) 2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package quantity

// Unit is a stateless descriptor of one concrete unit of dimension D.
//
// Scale is the number of canonical sub-units in one unit. Offset locates the
// unit's zero point in canonical sub-units, measured from the dimension's
// zero. Units are used only as type arguments; their zero value must be
// usable.
type Unit[D Dimension] interface {
	Dimension() D
	Name() string
	Abbreviation() string
	Scale() int64
	Offset() int64
}

// LinearUnit is a Unit whose zero point coincides with the dimension's zero.
// It can only be satisfied by embedding Linear.
type LinearUnit[D Dimension] interface {
	Unit[D]
	linear()
}

// Linear is embedded by unit descriptors of linear dimensions and pins their
// offset to zero.
type Linear struct{}

func (Linear) Offset() int64 { return 0 }
func (Linear) linear()       {}

// Unit constraints per dimension.
type (
	TemperatureUnit      = Unit[TemperatureDimension]
	PressureUnit         = LinearUnit[PressureDimension]
	SpecificEnthalpyUnit = LinearUnit[SpecificEnthalpyDimension]
)
