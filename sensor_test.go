// Copyright (C) 2021-2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package main

import (
	"reflect"
	"strings"
	"testing"

	sht3x "github.com/d2r2/go-sht3x"
	"github.com/prometheus/client_golang/prometheus"
)

func TestReadingsRounding(t *testing.T) {
	var readings Readings
	readings.setTemperature(21.23456)
	readings.setHumidity(45.6789)
	readings.setPressure(94912.345)

	if got := readings.temperature.Float64(); got != 21.23 {
		t.Errorf("temperature = %v, want 21.23", got)
	}
	if *readings.humidity != 45.68 {
		t.Errorf("humidity = %v, want 45.68", *readings.humidity)
	}
	if got := readings.pressure.Float64(); got != 94912.3 {
		t.Errorf("pressure = %v, want 94912.3", got)
	}
}

func TestSensorLabels(t *testing.T) {
	bmp := &BMPSensor{i2cDevice: i2cDevice{Address: 0x77, Bus: 1, Model: "BME280"}}
	want := prometheus.Labels{"address": "0x77", "bus": "1", "model": "BME280"}
	if got := bmp.Labels(); !reflect.DeepEqual(got, want) {
		t.Errorf("BMPSensor.Labels() = %v, want %v", got, want)
	}

	sht := &SHT3xSensor{
		i2cDevice:     i2cDevice{Address: 0x45, Model: "SHT35"},
		repeatability: repeatability{"medium", sht3x.RepeatabilityMedium},
	}
	want = prometheus.Labels{"address": "0x45", "bus": "0", "model": "SHT35", "repeatability": "medium"}
	if got := sht.Labels(); !reflect.DeepEqual(got, want) {
		t.Errorf("SHT3xSensor.Labels() = %v, want %v", got, want)
	}
}

func TestLookupRepeatability(t *testing.T) {
	tests := []struct {
		name string
		want sht3x.MeasureRepeatability
	}{
		{"", sht3x.RepeatabilityHigh},
		{"low", sht3x.RepeatabilityLow},
		{"medium", sht3x.RepeatabilityMedium},
		{"high", sht3x.RepeatabilityHigh},
	}
	for _, test := range tests {
		got, err := lookupRepeatability(test.name)
		if err != nil {
			t.Errorf("lookupRepeatability(%q) unexpected error: %v", test.name, err)
			continue
		}
		if got.value != test.want {
			t.Errorf("lookupRepeatability(%q) = %v, want %v", test.name, got.value, test.want)
		}
	}

	_, err := lookupRepeatability("extreme")
	if err == nil || err.Error() != "Unknown repeatability: extreme" {
		t.Errorf("lookupRepeatability(\"extreme\") error = %v", err)
	}
}

func TestSensorDevice(t *testing.T) {
	tests := []struct {
		sensor      string
		wantAddress uint8
		wantBus     int
	}{
		{"BME280", 0x76, 0},
		{"BMP388,bus=1", 0x76, 1},
		{"SHT31", 0x45, 0},
		{"SHT30,address=0x44,bus=2", 0x44, 2},
	}
	for _, test := range tests {
		t.Run(test.sensor, func(t *testing.T) {
			flags, err := parseSensorFlags(test.sensor)
			if err != nil {
				t.Fatalf("parseSensorFlags() unexpected error: %v", err)
			}
			_, address, bus, err := flags.device()
			if err != nil {
				t.Fatalf("device() unexpected error: %v", err)
			}
			if address != test.wantAddress || bus != test.wantBus {
				t.Errorf("device() = 0x%x, %d, want 0x%x, %d", address, bus, test.wantAddress, test.wantBus)
			}
		})
	}
}

func TestNewSensorUnsupportedModel(t *testing.T) {
	_, err := SensorFlags{Model: "DHT22"}.NewSensor()
	want := "Invalid/Unsupported sensor model 'DHT22'!"
	if err == nil || err.Error() != want {
		t.Errorf("NewSensor() error = %v, want %s", err, want)
	}
}

func TestSensorFlagsStringRoundTrip(t *testing.T) {
	for _, sensor := range []string{
		"BME280",
		"BMP280,bus=3",
		"SHT31,address=0x44,repeatability=low,humidity_offset=-1.5",
	} {
		flags, err := parseSensorFlags(sensor)
		if err != nil {
			t.Fatalf("parseSensorFlags(%q) unexpected error: %v", sensor, err)
		}
		if flags.String() != sensor {
			t.Errorf("parseSensorFlags(%q).String() = %s", sensor, flags)
		}
	}

	_, err := parseSensorFlags("SHT35,")
	if err == nil || !strings.Contains(err.Error(), "Unknown sensor option ''.") {
		t.Errorf("parseSensorFlags(\"SHT35,\") error = %v", err)
	}
}
