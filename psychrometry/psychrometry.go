// Copyright (C) 2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

// Package psychrometry calculates properties of moist air with the
// correlations of the ASHRAE Handbook - Fundamentals (2017) ch. 1, derived
// from PsychroLib <https://github.com/psychrometrics/psychrolib>.
//
// All functions take unit-tagged quantities and return their result in the
// unit given as first type argument, for example:
//
//	p, err := psychrometry.SatVapPres[quantity.Psi](quantity.NewTemperature[quantity.Fahrenheit](86))
//
// Humidity ratios (kg water per kg dry air) and relative humidities (0 to 1)
// are plain numbers.
package psychrometry

import (
	"math"

	"github.com/bdrung/psychrometric-exporter/quantity"
)

// MinHumRatio is the smallest humidity ratio used or returned by any
// function. Smaller positive humidity ratios are raised to it.
const MinHumRatio = 1e-7

// molarMassRatio is the ratio of the molar masses of water vapor and dry air.
const molarMassRatio = 0.621945

var (
	// MinDryBulb and MaxDryBulb bound the validity of SatVapPres
	// (-100 °C to 200 °C, -148 °F to 392 °F).
	MinDryBulb = quantity.NewTemperature[quantity.Kelvin](173.15)
	MaxDryBulb = quantity.NewTemperature[quantity.Kelvin](473.15)

	// triplePoint separates the correlations over ice and over liquid water.
	triplePoint = quantity.NewTemperature[quantity.Kelvin](273.16)
)

// outside reports whether t lies outside [lo, hi]. Temperatures equal to a
// bound within the tolerance are inside, so that bounds given in Fahrenheit
// survive the rounding of the Fahrenheit scale.
func outside[T quantity.TemperatureUnit](t quantity.Temperature[T], lo, hi quantity.Temperature[quantity.Kelvin]) bool {
	if quantity.Equal(t, lo) || quantity.Equal(t, hi) {
		return false
	}
	return quantity.Compare(t, lo) < 0 || quantity.Compare(t, hi) > 0
}

// lnSatVapPresIce returns ln of the saturation vapor pressure over ice in Pa
// (ASHRAE eqn. 5) for t in K.
func lnSatVapPresIce(t float64) float64 {
	return -5.6745359e+03/t + 6.3925247 - 9.677843e-03*t +
		6.2215701e-07*t*t + 2.0747825e-09*math.Pow(t, 3) -
		9.484024e-13*math.Pow(t, 4) + 4.1635019*math.Log(t)
}

// lnSatVapPresWater returns ln of the saturation vapor pressure over liquid
// water in Pa (ASHRAE eqn. 6) for t in K.
func lnSatVapPresWater(t float64) float64 {
	return -5.8002206e+03/t + 1.3914993 - 4.8640239e-02*t +
		4.1764768e-05*t*t - 1.4452093e-08*math.Pow(t, 3) +
		6.5459673*math.Log(t)
}

// SatVapPres returns the saturation vapor pressure given the dry-bulb
// temperature.
//
// The ASHRAE formulae are split at the triple point of water instead of the
// freezing point, where both agree and the function is continuous.
//
// Temperatures outside of MinDryBulb and MaxDryBulb are a range error. The
// bounds are compared with quantity.Equal, so temperatures less than 200 µK
// beyond a bound are still accepted (e.g. -148 °F, which the rounded
// Fahrenheit scale places 80 µK below -100 °C).
func SatVapPres[P quantity.PressureUnit, T quantity.TemperatureUnit](
	tDryBulb quantity.Temperature[T],
) (quantity.Pressure[P], error) {
	if outside(tDryBulb, MinDryBulb, MaxDryBulb) {
		return quantity.Pressure[P]{}, rangeError("dry bulb temperature is outside range -100 to 200 °C")
	}

	t := quantity.Convert[quantity.Kelvin](tDryBulb).Float64()
	var lnPws float64
	if quantity.Compare(tDryBulb, triplePoint) <= 0 {
		lnPws = lnSatVapPresIce(t)
	} else {
		lnPws = lnSatVapPresWater(t)
	}
	return quantity.Convert[P](quantity.NewPressure[quantity.Pascal](math.Exp(lnPws))), nil
}

// MoistAirEnthalpy returns the specific enthalpy of moist air per mass of dry
// air given the dry-bulb temperature and the humidity ratio (ASHRAE eqn. 30).
func MoistAirEnthalpy[H quantity.SpecificEnthalpyUnit, T quantity.TemperatureUnit](
	tDryBulb quantity.Temperature[T],
	humRatio float64,
) (quantity.SpecificEnthalpy[H], error) {
	if humRatio <= 0 {
		return quantity.SpecificEnthalpy[H]{}, valueError("humidity ratio is not positive")
	}
	humRatio = max(humRatio, MinHumRatio)

	t := quantity.Convert[quantity.Celsius](tDryBulb).Float64()
	h := (1.006*t + humRatio*(2501.0+1.86*t)) * 1000.0
	return quantity.Convert[H](quantity.NewSpecificEnthalpy[quantity.JoulePerKilogram](h)), nil
}

// VapPresFromHumRatio returns the partial pressure of water vapor given the
// humidity ratio and the ambient pressure (ASHRAE eqn. 20 solved for p_w).
func VapPresFromHumRatio[P quantity.PressureUnit, PA quantity.PressureUnit](
	humRatio float64,
	pressure quantity.Pressure[PA],
) (quantity.Pressure[P], error) {
	if humRatio <= 0 {
		return quantity.Pressure[P]{}, valueError("humidity ratio is not positive")
	}
	humRatio = max(humRatio, MinHumRatio)

	return quantity.Convert[P](pressure.Mul(humRatio / (molarMassRatio + humRatio))), nil
}

// VapPresFromRelHum returns the partial pressure of water vapor given the
// dry-bulb temperature and the relative humidity in [0, 1] (ASHRAE eqn. 12,
// 22).
func VapPresFromRelHum[P quantity.PressureUnit, T quantity.TemperatureUnit](
	tDryBulb quantity.Temperature[T],
	relHum float64,
) (quantity.Pressure[P], error) {
	// Written as a negated range check so that NaN is rejected.
	if !(relHum >= 0 && relHum <= 1) {
		return quantity.Pressure[P]{}, rangeError("relative humidity is outside range 0 to 1")
	}
	satVapPres, err := SatVapPres[P](tDryBulb)
	if err != nil {
		return quantity.Pressure[P]{}, err
	}
	return satVapPres.Mul(relHum), nil
}

// RelHumFromVapPres returns the relative humidity in [0, 1] given the
// dry-bulb temperature and the partial pressure of water vapor (ASHRAE eqn.
// 12, 22).
func RelHumFromVapPres[T quantity.TemperatureUnit, P quantity.PressureUnit](
	tDryBulb quantity.Temperature[T],
	vapPres quantity.Pressure[P],
) (float64, error) {
	if vapPres.Canonical() <= 0 {
		return 0, valueError("partial pressure of water vapor is not positive")
	}
	satVapPres, err := SatVapPres[quantity.Pascal](tDryBulb)
	if err != nil {
		return 0, err
	}
	return quantity.Ratio(vapPres, satVapPres), nil
}

// HumRatioFromVapPres returns the humidity ratio given the partial pressure
// of water vapor and the ambient pressure (ASHRAE eqn. 20). The result is
// never smaller than MinHumRatio.
func HumRatioFromVapPres[PV quantity.PressureUnit, PA quantity.PressureUnit](
	vapPres quantity.Pressure[PV],
	pressure quantity.Pressure[PA],
) (float64, error) {
	if vapPres.Canonical() <= 0 {
		return 0, valueError("partial pressure of water vapor is not positive")
	}
	pw := vapPres.Canonical()
	humRatio := molarMassRatio * float64(pw) / float64(pressure.Canonical()-pw)
	return max(humRatio, MinHumRatio), nil
}

// HumRatioFromRelHum returns the humidity ratio given the dry-bulb
// temperature, the relative humidity in [0, 1] and the ambient pressure.
func HumRatioFromRelHum[T quantity.TemperatureUnit, P quantity.PressureUnit](
	tDryBulb quantity.Temperature[T],
	relHum float64,
	pressure quantity.Pressure[P],
) (float64, error) {
	vapPres, err := VapPresFromRelHum[quantity.Pascal](tDryBulb, relHum)
	if err != nil {
		return 0, err
	}
	return HumRatioFromVapPres(vapPres, pressure)
}

// MoistAirEnthalpyFromRelHum returns the specific enthalpy of moist air given
// the dry-bulb temperature, the relative humidity in [0, 1] and the ambient
// pressure.
func MoistAirEnthalpyFromRelHum[H quantity.SpecificEnthalpyUnit, T quantity.TemperatureUnit, P quantity.PressureUnit](
	tDryBulb quantity.Temperature[T],
	relHum float64,
	pressure quantity.Pressure[P],
) (quantity.SpecificEnthalpy[H], error) {
	humRatio, err := HumRatioFromRelHum(tDryBulb, relHum, pressure)
	if err != nil {
		return quantity.SpecificEnthalpy[H]{}, err
	}
	return MoistAirEnthalpy[H](tDryBulb, humRatio)
}
