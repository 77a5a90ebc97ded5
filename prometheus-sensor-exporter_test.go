// Copyright (C) 2021-2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package main

import (
	"errors"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	q "github.com/bdrung/psychrometric-exporter/quantity"
)

func intptr(v int) *int {
	return &v
}

func uint8ptr(v uint8) *uint8 {
	return &v
}

func TestParseSensorFlags(t *testing.T) {
	flags, err := parseSensorFlags(
		"SHT35,bus=1,address=0x45,repeatability=high,temp_offset=-0.5,humidity_offset=2.5,pressure_offset=1.2")
	if err != nil {
		t.Errorf("Failed to parse flags: %s", err)
	}
	if flags.String() != "SHT35,address=0x45,bus=1,repeatability=high,temp_offset=-0.5,humidity_offset=2.5,pressure_offset=1.2" {
		t.Errorf("String representation is incorrect: %s", flags)
	}
}

func TestParseSensorFlagsFailure(t *testing.T) {
	tests := []struct {
		name      string
		sensor    string
		wantedErr string
	}{
		{"model", "SHT35,foo=bar", "Unknown sensor option 'foo'."},
		{"address", "SHT35,address=-42", "Specified address '-42' is not an unsigned integer: "},
		{"bus", "SHT35,bus=foo", "Specified bus 'foo' is not an integer: "},
		{"temp_offset", "SHT35,temp_offset=caffee", "Failed to parse temperature offset 'caffee': "},
		{"humidity_offset", "SHT35,humidity_offset=hum", "Failed to parse humidity offset 'hum': "},
		{"pressure_offset", "BME280,pressure_offset=hPa", "Failed to parse pressure offset 'hPa': "},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := parseSensorFlags(test.sensor)
			if err == nil || !strings.Contains(err.Error(), test.wantedErr) {
				t.Errorf(
					"Incorrect error for sensor '%s', got: %v, want: %s.",
					test.sensor, err, test.wantedErr)
			}
		})
	}
}

func TestParseSensors(t *testing.T) {
	args := []string{"SHT35,bus=1,address=0x46", "BME280,bus=0"}
	want := []SensorFlags{
		{Model: "SHT35", Address: uint8ptr(0x46), Bus: intptr(1)},
		{Model: "BME280", Bus: intptr(0)},
	}

	got, err := parseSensors(args)
	if err != nil {
		t.Fatalf("parseSensors() unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseSensors() = %v, want %v", got, want)
	}
}

func TestParseSensorsInvalid(t *testing.T) {
	args := []string{"SHT31,badflag"}
	wantedErr := "sensor 1 'SHT31,badflag': Unknown sensor option 'badflag'"

	_, err := parseSensors(args)
	if err == nil || !strings.Contains(err.Error(), wantedErr) {
		t.Fatalf("parseSensors() expected error '%s', got %v", wantedErr, err)
	}
}

func TestRound64(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		precision int
		want      float64
	}{
		{"round up", 3.14159, 2, 3.14},
		{"round down", 2.71828, 2, 2.72},
		{"zero precision", 2.71828, 0, 3},
		{"negative number", -1.2345, 2, -1.23},
		{"no rounding needed", 5.0, 2, 5.0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := round64(test.value, test.precision)
			if got != test.want {
				t.Errorf("round64(%v, %d) = %v, want %v", test.value, test.precision, got, test.want)
			}
		})
	}
}

func float64ptr(v float64) *float64 {
	return &v
}

func celsiusptr(v float64) *q.Temperature[q.Celsius] {
	t := q.NewTemperature[q.Celsius](v)
	return &t
}

func pascalptr(v float64) *q.Pressure[q.Pascal] {
	p := q.NewPressure[q.Pascal](v)
	return &p
}

type fakeSensor struct {
	readings Readings
	err      error
}

func (s fakeSensor) Poll() (Readings, error) {
	return s.readings, s.err
}

func (s fakeSensor) Labels() prometheus.Labels {
	return prometheus.Labels{"model": "fake"}
}

func gather(t *testing.T, collector prometheus.Collector) map[string]float64 {
	t.Helper()
	registry := prometheus.NewRegistry()
	registry.MustRegister(collector)
	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("Gather() unexpected error: %v", err)
	}
	values := make(map[string]float64)
	for _, family := range families {
		values[family.GetName()] = family.GetMetric()[0].GetGauge().GetValue()
	}
	return values
}

func TestSensorCollector(t *testing.T) {
	tests := []struct {
		name           string
		sensor         fakeSensor
		tempOffset     float64
		humidityOffset float64
		pressureOffset float64
		want           map[string]float64
	}{
		{
			name: "ambient pressure",
			sensor: fakeSensor{readings: Readings{
				temperature: celsiusptr(20.0),
				humidity:    float64ptr(50.0),
			}},
			want: map[string]float64{
				"sensor_up":                                 1,
				"sensor_temperature_celsius":                20.0,
				"sensor_raw_temperature_celsius":            20.0,
				"sensor_humidity_percent":                   50.0,
				"sensor_raw_humidity_percent":               50.0,
				"sensor_humidity_grams_per_cubic_meter":     8.64,
				"sensor_raw_humidity_grams_per_cubic_meter": 8.64,
				"sensor_saturation_vapor_pressure_pascals":  2338.80,
				"sensor_vapor_pressure_pascals":             1169.40,
				"sensor_humidity_ratio":                     0.007262,
				"sensor_enthalpy_joules_per_kilogram":       38551.7,
			},
		},
		{
			name: "measured pressure with offsets",
			sensor: fakeSensor{readings: Readings{
				temperature: celsiusptr(22.0),
				humidity:    float64ptr(38.0),
				pressure:    pascalptr(94900.0),
			}},
			tempOffset:     -0.5,
			humidityOffset: 2.0,
			pressureOffset: 1.0,
			want: map[string]float64{
				"sensor_up":                                 1,
				"sensor_temperature_celsius":                21.5,
				"sensor_raw_temperature_celsius":            22.0,
				"sensor_humidity_percent":                   40.0,
				"sensor_raw_humidity_percent":               38.0,
				"sensor_pressure_pascals":                   95000.0,
				"sensor_raw_pressure_pascals":               94900.0,
				"sensor_humidity_grams_per_cubic_meter":     7.55,
				"sensor_saturation_vapor_pressure_pascals":  2565.16,
				"sensor_vapor_pressure_pascals":             1026.06,
				"sensor_humidity_ratio":                     0.006791,
				"sensor_enthalpy_joules_per_kilogram":       38884.3,
				"sensor_raw_humidity_grams_per_cubic_meter": 7.38,
			},
		},
		{
			name: "corrected humidity above saturation",
			sensor: fakeSensor{readings: Readings{
				temperature: celsiusptr(15.0),
				humidity:    float64ptr(99.0),
			}},
			humidityOffset: 3.0,
			want: map[string]float64{
				"sensor_up":                                 1,
				"sensor_temperature_celsius":                15.0,
				"sensor_raw_temperature_celsius":            15.0,
				"sensor_humidity_percent":                   102.0,
				"sensor_raw_humidity_percent":               99.0,
				"sensor_raw_humidity_grams_per_cubic_meter": 12.7,
			},
		},
		{
			name:   "poll failure",
			sensor: fakeSensor{err: errors.New("i2c read failed")},
			want:   map[string]float64{"sensor_up": 0},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			collector := NewSensorCollector(
				test.sensor,
				test.tempOffset,
				test.humidityOffset,
				test.pressureOffset,
				q.NewPressure[q.Hectopascal](1013.25),
			)
			if count := testutil.CollectAndCount(collector); count != len(test.want) {
				t.Errorf("CollectAndCount() = %d, want %d", count, len(test.want))
			}
			got := gather(t, collector)
			for name, want := range test.want {
				value, ok := got[name]
				if !ok {
					t.Errorf("Metric %s missing", name)
					continue
				}
				if math.Abs(value-want) > 0.011 {
					t.Errorf("Metric %s = %v, want %v", name, value, want)
				}
			}
		})
	}
}

func TestRouter(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "sensor_up 1\n")
	})
	router := newRouter("/metrics", metrics)

	tests := []struct {
		path       string
		wantStatus int
		wantBody   string
	}{
		{"/", http.StatusOK, `<a href="/metrics">Metrics</a>`},
		{"/metrics", http.StatusOK, "sensor_up 1"},
		{"/unknown", http.StatusNotFound, ""},
	}

	for _, test := range tests {
		t.Run(test.path, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, test.path, nil))
			if recorder.Code != test.wantStatus {
				t.Errorf("GET %s status = %d, want %d", test.path, recorder.Code, test.wantStatus)
			}
			if !strings.Contains(recorder.Body.String(), test.wantBody) {
				t.Errorf("GET %s body = %q, want it to contain %q", test.path, recorder.Body.String(), test.wantBody)
			}
		})
	}
}
