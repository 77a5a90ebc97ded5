// Copyright (C) 2021-2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package main

import (
	"github.com/bdrung/psychrometric-exporter/psychrometry"
	q "github.com/bdrung/psychrometric-exporter/quantity"
)

const (
	gasConstant      = 8.31446261815324             // molar gas constant R in kg * m² / (s² * K * mol)
	molarMassWater   = 0.01801528                   // molar mass of water M(H2O) in kg / mol
	gasConstantWater = gasConstant / molarMassWater // specific gas constant for water vapor in m² / (s² * K)
)

// moistAir is the psychrometric state derived from a temperature and humidity reading.
type moistAir struct {
	SaturationVaporPressure q.Pressure[q.Pascal]
	VaporPressure           q.Pressure[q.Pascal]
	AbsoluteHumidity        float64 // g/m³
	HumidityRatio           float64 // kg water vapor / kg dry air
	Enthalpy                q.SpecificEnthalpy[q.JoulePerKilogram]
}

// absoluteHumidity calculates the absolute humidity in g/m³ from the partial
// vapor pressure of water with the ideal gas law:
// absoluteHumidity = partialVaporPressureWater / (gasConstantWater * temperatureKelvin)
func absoluteHumidity(vaporPressure q.Pressure[q.Pascal], temperature q.Temperature[q.Celsius]) float64 {
	temperatureKelvin := q.Convert[q.Kelvin](temperature).Float64()
	return 1000 * vaporPressure.Float64() / (gasConstantWater * temperatureKelvin)
}

// Relative2AbsoluteHumidity calculates the absolute humidity in g/m³ for a given
// relative humidity in percent and temperature.
//
// The humidity definitions and the ideal gas law were used for deriving the formula:
// 1. absoluteHumidity = massWaterVapor / VolumeAirAndWater
// 2. relativehumidity = partialVaporPressureWater / saturationVaporPressureWater
// 3. partialVaporPressureWater = (massWaterVapor / VolumeAirAndWater) * gasConstantWater * temperatureKelvin
//
// Resulting formula:
// absoluteHumidity = relativehumidity * saturationVaporPressureWater / (gasConstantWater * temperatureKelvin)
//
// The saturation vapour pressure is taken over ice below the triple point of water.
func Relative2AbsoluteHumidity(relativeHumidity float64, temperature q.Temperature[q.Celsius]) (float64, error) {
	vaporPressure, err := psychrometry.VapPresFromRelHum[q.Pascal](temperature, relativeHumidity/100)
	if err != nil {
		return 0, err
	}
	return absoluteHumidity(vaporPressure, temperature), nil
}

// newMoistAir derives the psychrometric state from the temperature, the
// relative humidity in percent and the ambient pressure.
func newMoistAir(
	temperature q.Temperature[q.Celsius],
	relativeHumidity float64,
	pressure q.Pressure[q.Pascal],
) (moistAir, error) {
	var air moistAir
	var err error

	air.SaturationVaporPressure, err = psychrometry.SatVapPres[q.Pascal](temperature)
	if err != nil {
		return air, err
	}
	air.VaporPressure, err = psychrometry.VapPresFromRelHum[q.Pascal](temperature, relativeHumidity/100)
	if err != nil {
		return air, err
	}
	air.HumidityRatio, err = psychrometry.HumRatioFromVapPres(air.VaporPressure, pressure)
	if err != nil {
		return air, err
	}
	air.Enthalpy, err = psychrometry.MoistAirEnthalpy[q.JoulePerKilogram](temperature, air.HumidityRatio)
	if err != nil {
		return air, err
	}
	air.AbsoluteHumidity = absoluteHumidity(air.VaporPressure, temperature)
	return air, nil
}
