// Copyright (C) 2021-2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package main

import (
	"fmt"
	"html"
	"math"
	"net/http"

	logger "github.com/d2r2/go-logger"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	versioncollector "github.com/prometheus/client_golang/prometheus/collectors/version"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	q "github.com/bdrung/psychrometric-exporter/quantity"
)

type sensorCollector struct {
	Sensor                  Sensor
	Up                      *prometheus.Desc
	TemperatureC            *prometheus.Desc
	HumidityRH              *prometheus.Desc
	HumidityGram            *prometheus.Desc
	PressurePa              *prometheus.Desc
	SaturationVaporPressure *prometheus.Desc
	VaporPressure           *prometheus.Desc
	HumidityRatio           *prometheus.Desc
	Enthalpy                *prometheus.Desc
	RawTemperatureC         *prometheus.Desc
	RawHumidityRH           *prometheus.Desc
	RawHumidityGram         *prometheus.Desc
	RawPressurePa           *prometheus.Desc
	TempOffset              float64
	HumidityOffset          float64
	PressureOffset          float64
	// AmbientPressure is used for sensors that do not measure pressure.
	AmbientPressure q.Pressure[q.Hectopascal]
}

func NewSensorCollector(
	s Sensor,
	tempOffset float64,
	humidityOffset float64,
	pressureOffset float64,
	ambientPressure q.Pressure[q.Hectopascal],
) *sensorCollector {
	labels := s.Labels()
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc("sensor_"+name, help, nil, labels)
	}
	return &sensorCollector{
		Sensor:                  s,
		TemperatureC:            desc("temperature_celsius", "Temperature in Celsius"),
		HumidityRH:              desc("humidity_percent", "Relative humidity in percent"),
		HumidityGram:            desc("humidity_grams_per_cubic_meter", "Absolute humidity in gram / cubic meter"),
		PressurePa:              desc("pressure_pascals", "Air pressure in pascal"),
		SaturationVaporPressure: desc("saturation_vapor_pressure_pascals", "Saturation vapor pressure of water in pascal"),
		VaporPressure:           desc("vapor_pressure_pascals", "Partial pressure of water vapor in pascal"),
		HumidityRatio:           desc("humidity_ratio", "Humidity ratio in kilogram water vapor / kilogram dry air"),
		Enthalpy:                desc("enthalpy_joules_per_kilogram", "Specific enthalpy of moist air in joule / kilogram dry air"),
		Up:                      desc("up", "Value is 1 if reading sensor date was successful, 0 otherwise."),
		RawTemperatureC:         desc("raw_temperature_celsius", "Uncorrected temperature in Celsius"),
		RawHumidityRH:           desc("raw_humidity_percent", "Uncorrected relative humidity in percent"),
		RawHumidityGram:         desc("raw_humidity_grams_per_cubic_meter", "Uncorrected absolute humidity in gram / cubic meter"),
		RawPressurePa:           desc("raw_pressure_pascals", "Uncorrected air pressure in pascal"),
		TempOffset:              tempOffset,
		HumidityOffset:          humidityOffset,
		PressureOffset:          pressureOffset,
		AmbientPressure:         ambientPressure,
	}
}

func gauge(ch chan<- prometheus.Metric, desc *prometheus.Desc, value float64) {
	ch <- prometheus.MustNewConstMetric(desc, prometheus.GaugeValue, value)
}

func (collector *sensorCollector) Collect(ch chan<- prometheus.Metric) {
	readings, err := collector.Sensor.Poll()
	if err != nil {
		logrus.Print(err)
		gauge(ch, collector.Up, 0.0)
	} else {
		gauge(ch, collector.Up, 1)
	}

	pressure := collector.AmbientPressure
	if readings.pressure != nil {
		pressure = q.Convert[q.Hectopascal](*readings.pressure).Add(collector.PressureOffset)
		gauge(ch, collector.PressurePa, round64(q.Convert[q.Pascal](pressure).Float64(), 1))
		gauge(ch, collector.RawPressurePa, readings.pressure.Float64())
	}

	if readings.temperature == nil {
		if readings.humidity != nil {
			gauge(ch, collector.HumidityRH, *readings.humidity+collector.HumidityOffset)
			gauge(ch, collector.RawHumidityRH, *readings.humidity)
		}
		return
	}
	temperature := readings.temperature.Add(collector.TempOffset)
	gauge(ch, collector.TemperatureC, temperature.Float64())
	gauge(ch, collector.RawTemperatureC, readings.temperature.Float64())

	if readings.humidity == nil {
		return
	}
	humidity := *readings.humidity + collector.HumidityOffset
	gauge(ch, collector.HumidityRH, humidity)
	gauge(ch, collector.RawHumidityRH, *readings.humidity)

	air, err := newMoistAir(temperature, humidity, q.Convert[q.Pascal](pressure))
	if err != nil {
		logrus.Warnf("Failed to derive psychrometric values for %v: %s", collector.Sensor.Labels(), err)
	} else {
		lg.Debugf(
			"%.2f °C, %.2f %%, %.2f hPa: vapor pressure %.2f Pa, humidity ratio %.6f, enthalpy %.1f J/kg",
			temperature.Float64(), humidity, pressure.Float64(),
			air.VaporPressure.Float64(), air.HumidityRatio, air.Enthalpy.Float64(),
		)
		gauge(ch, collector.HumidityGram, round64(air.AbsoluteHumidity, 2))
		gauge(ch, collector.SaturationVaporPressure, round64(air.SaturationVaporPressure.Float64(), 2))
		gauge(ch, collector.VaporPressure, round64(air.VaporPressure.Float64(), 2))
		gauge(ch, collector.HumidityRatio, round64(air.HumidityRatio, 6))
		gauge(ch, collector.Enthalpy, round64(air.Enthalpy.Float64(), 1))
	}

	rawAbsoluteHumidity, err := Relative2AbsoluteHumidity(*readings.humidity, *readings.temperature)
	if err != nil {
		logrus.Warnf("Failed to calculate raw absolute humidity for %v: %s", collector.Sensor.Labels(), err)
		return
	}
	gauge(ch, collector.RawHumidityGram, round64(rawAbsoluteHumidity, 2))
}

func (collector *sensorCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.TemperatureC
	ch <- collector.HumidityRH
	ch <- collector.HumidityGram
	ch <- collector.PressurePa
	ch <- collector.SaturationVaporPressure
	ch <- collector.VaporPressure
	ch <- collector.HumidityRatio
	ch <- collector.Enthalpy
	ch <- collector.Up
	ch <- collector.RawTemperatureC
	ch <- collector.RawHumidityRH
	ch <- collector.RawHumidityGram
	ch <- collector.RawPressurePa
}

func round64(value float64, precision int) float64 {
	return math.Round(value*math.Pow10(precision)) / math.Pow10(precision)
}

func newRouter(metricsPath string, metrics http.Handler) *mux.Router {
	page := fmt.Sprintf(`<html>
<head><title>Sensor Exporter</title></head>
<body>
<h1>Sensor Exporter</h1>
<p><a href="%s">Metrics</a></p>
</body>
</html>
`, html.EscapeString(metricsPath))

	router := mux.NewRouter()
	router.Handle(metricsPath, metrics).Methods(http.MethodGet)
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	}).Methods(http.MethodGet)
	return router
}

func main() {
	listenAddress := pflag.String(
		"web.listen-address", ":9775", "Address on which to expose metrics and web interface.",
	)
	metricsPath := pflag.String(
		"web.telemetry-path", "/metrics", "Path under which to expose metrics.",
	)
	ambientPressure := pflag.Float64(
		"ambient-pressure", 1013.25,
		"Air pressure in hPa for sensors that do not measure pressure.",
	)
	debug := pflag.Bool("debug", false, "Log derived psychrometric values of every poll.")
	pflag.Parse()
	sensors, err := parseSensors(pflag.Args())
	if err != nil {
		logrus.Fatal(err)
	}

	logger.ChangePackageLogLevel("bsbmp", logger.InfoLevel)
	logger.ChangePackageLogLevel("i2c", logger.InfoLevel)
	logger.ChangePackageLogLevel("sht3x", logger.InfoLevel)
	if *debug {
		logrus.SetLevel(logrus.DebugLevel)
		logger.ChangePackageLogLevel("sensor", logger.DebugLevel)
	}

	for _, flags := range sensors {
		sensor, err := flags.NewSensor()
		if err != nil {
			logrus.Fatal(err)
		}
		collector := NewSensorCollector(
			sensor,
			flags.TempOffset,
			flags.HumidityOffset,
			flags.PressureOffset,
			q.NewPressure[q.Hectopascal](*ambientPressure),
		)
		prometheus.MustRegister(collector)
	}
	prometheus.MustRegister(versioncollector.NewCollector("sensor_exporter"))

	logrus.Infof(
		"Serving Prometheus sensor exporter on %s%s - for example http://localhost%s%s",
		*listenAddress,
		*metricsPath,
		*listenAddress,
		*metricsPath,
	)
	logrus.Fatal(http.ListenAndServe(*listenAddress, newRouter(*metricsPath, promhttp.Handler())))
}
