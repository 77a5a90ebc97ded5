// Copyright (C) 2021-2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package main

import (
	"fmt"
	"strconv"
	"strings"
)

// SensorFlags is one sensor given on the command line as
// MODEL[,option=value...].
type SensorFlags struct {
	Model          string
	Address        *uint8
	Bus            *int
	Repeatability  string
	TempOffset     float64
	HumidityOffset float64
	PressureOffset float64 // hPa
}

// sensorOption parses one option into the flags and formats it back. The
// order of sensorOptions is the order of SensorFlags.String.
type sensorOption struct {
	key    string
	parse  func(flags *SensorFlags, value string) error
	format func(flags SensorFlags) string
}

func offsetOption(key, what string, field func(*SensorFlags) *float64) sensorOption {
	return sensorOption{
		key: key,
		parse: func(flags *SensorFlags, value string) error {
			offset, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return fmt.Errorf("Failed to parse %s offset '%s': %s", what, value, err)
			}
			*field(flags) = offset
			return nil
		},
		format: func(flags SensorFlags) string {
			if offset := *field(&flags); offset != 0.0 {
				return fmt.Sprintf("%g", offset)
			}
			return ""
		},
	}
}

var sensorOptions = []sensorOption{
	{
		key: "address",
		parse: func(flags *SensorFlags, value string) error {
			address, err := strconv.ParseUint(value, 0, 8)
			if err != nil {
				return fmt.Errorf("Specified address '%s' is not an unsigned integer: %s", value, err)
			}
			flags.Address = new(uint8)
			*flags.Address = uint8(address)
			return nil
		},
		format: func(flags SensorFlags) string {
			if flags.Address == nil {
				return ""
			}
			return fmt.Sprintf("0x%x", *flags.Address)
		},
	},
	{
		key: "bus",
		parse: func(flags *SensorFlags, value string) error {
			bus, err := strconv.ParseInt(value, 0, 32)
			if err != nil {
				return fmt.Errorf("Specified bus '%s' is not an integer: %s", value, err)
			}
			flags.Bus = new(int)
			*flags.Bus = int(bus)
			return nil
		},
		format: func(flags SensorFlags) string {
			if flags.Bus == nil {
				return ""
			}
			return strconv.Itoa(*flags.Bus)
		},
	},
	{
		key: "repeatability",
		parse: func(flags *SensorFlags, value string) error {
			flags.Repeatability = value
			return nil
		},
		format: func(flags SensorFlags) string { return flags.Repeatability },
	},
	offsetOption("temp_offset", "temperature", func(f *SensorFlags) *float64 { return &f.TempOffset }),
	offsetOption("humidity_offset", "humidity", func(f *SensorFlags) *float64 { return &f.HumidityOffset }),
	offsetOption("pressure_offset", "pressure", func(f *SensorFlags) *float64 { return &f.PressureOffset }),
}

func lookupSensorOption(key string) (sensorOption, bool) {
	for _, option := range sensorOptions {
		if option.key == key {
			return option, true
		}
	}
	return sensorOption{}, false
}

func parseSensorFlags(sensor string) (SensorFlags, error) {
	model, options, found := strings.Cut(sensor, ",")
	flags := SensorFlags{Model: model}
	if !found {
		return flags, nil
	}
	for _, field := range strings.Split(options, ",") {
		key, value, _ := strings.Cut(field, "=")
		option, ok := lookupSensorOption(key)
		if !ok {
			return flags, fmt.Errorf("Unknown sensor option '%s'.", key)
		}
		if err := option.parse(&flags, value); err != nil {
			return flags, err
		}
	}
	return flags, nil
}

// parseSensors parses the positional command line arguments.
func parseSensors(args []string) ([]SensorFlags, error) {
	sensors := make([]SensorFlags, len(args))
	for i, arg := range args {
		sensor, err := parseSensorFlags(arg)
		if err != nil {
			return nil, fmt.Errorf("sensor %d '%s': %w", i+1, arg, err)
		}
		sensors[i] = sensor
	}
	return sensors, nil
}

func (s SensorFlags) String() string {
	var b strings.Builder
	b.WriteString(s.Model)
	for _, option := range sensorOptions {
		if value := option.format(s); value != "" {
			fmt.Fprintf(&b, ",%s=%s", option.key, value)
		}
	}
	return b.String()
}
