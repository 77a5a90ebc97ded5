// Copyright (C) 2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package quantity

// Temperature units. The canonical sub-unit is the micro-kelvin.
type (
	Kelvin     struct{ TemperatureDimension }
	Celsius    struct{ TemperatureDimension }
	Fahrenheit struct{ TemperatureDimension }
)

func (Kelvin) Name() string         { return "kelvin" }
func (Kelvin) Abbreviation() string { return "K" }
func (Kelvin) Scale() int64         { return 1_000_000 }
func (Kelvin) Offset() int64        { return 0 }

func (Celsius) Name() string         { return "celsius" }
func (Celsius) Abbreviation() string { return "°C" }
func (Celsius) Scale() int64         { return 1_000_000 }
func (Celsius) Offset() int64        { return 273_150_000 }

func (Fahrenheit) Name() string         { return "fahrenheit" }
func (Fahrenheit) Abbreviation() string { return "°F" }

// Scale is 1e6 / 1.8 rounded to the nearest micro-kelvin.
func (Fahrenheit) Scale() int64 { return 555_556 }

// Offset places 32 °F exactly on 273.15 K, so the rounding error of the
// scale grows with the distance from the freezing point of water.
func (Fahrenheit) Offset() int64 { return 273_150_000 - 32*555_556 }

// Pressure units. The canonical sub-unit is the milli-pascal.
type (
	Pascal      struct{ PressureDimension; Linear }
	Hectopascal struct{ PressureDimension; Linear }
	Kilopascal  struct{ PressureDimension; Linear }
	Atmosphere  struct{ PressureDimension; Linear }
	Psi         struct{ PressureDimension; Linear }
)

func (Pascal) Name() string         { return "pascal" }
func (Pascal) Abbreviation() string { return "Pa" }
func (Pascal) Scale() int64         { return 1_000 }

func (Hectopascal) Name() string         { return "hectopascal" }
func (Hectopascal) Abbreviation() string { return "hPa" }
func (Hectopascal) Scale() int64         { return 100_000 }

func (Kilopascal) Name() string         { return "kilopascal" }
func (Kilopascal) Abbreviation() string { return "kPa" }
func (Kilopascal) Scale() int64         { return 1_000_000 }

func (Atmosphere) Name() string         { return "atmosphere" }
func (Atmosphere) Abbreviation() string { return "atm" }
func (Atmosphere) Scale() int64         { return 101_325_000 }

func (Psi) Name() string         { return "pound per square inch" }
func (Psi) Abbreviation() string { return "psi" }
func (Psi) Scale() int64         { return 6_894_757 }

// Specific enthalpy units. The canonical sub-unit is the milli-joule per
// kilogram.
type (
	JoulePerKilogram     struct{ SpecificEnthalpyDimension; Linear }
	KilojoulePerKilogram struct{ SpecificEnthalpyDimension; Linear }
	BtuPerPound          struct{ SpecificEnthalpyDimension; Linear }
)

func (JoulePerKilogram) Name() string         { return "joule per kilogram" }
func (JoulePerKilogram) Abbreviation() string { return "J kg⁻¹" }
func (JoulePerKilogram) Scale() int64         { return 1_000 }

func (KilojoulePerKilogram) Name() string         { return "kilojoule per kilogram" }
func (KilojoulePerKilogram) Abbreviation() string { return "kJ kg⁻¹" }
func (KilojoulePerKilogram) Scale() int64         { return 1_000_000 }

// BtuPerPound uses the international table Btu (1 Btu/lb = 2326 J/kg).
func (BtuPerPound) Name() string         { return "Btu per pound" }
func (BtuPerPound) Abbreviation() string { return "Btu lb⁻¹" }
func (BtuPerPound) Scale() int64         { return 2_326_000 }
