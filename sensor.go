// Copyright (C) 2021-2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package main

import (
	"fmt"
	"sync"

	bsbmp "github.com/d2r2/go-bsbmp"
	i2c "github.com/d2r2/go-i2c"
	sht3x "github.com/d2r2/go-sht3x"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	q "github.com/bdrung/psychrometric-exporter/quantity"
)

// Readings holds one poll of a sensor. Quantities the sensor does not
// measure stay nil.
type Readings struct {
	temperature *q.Temperature[q.Celsius]
	humidity    *float64
	pressure    *q.Pressure[q.Pascal]
}

func (r *Readings) setTemperature(celsius float64) {
	t := q.NewTemperature[q.Celsius](round64(celsius, 2))
	r.temperature = &t
}

func (r *Readings) setHumidity(percent float64) {
	rh := round64(percent, 2)
	r.humidity = &rh
}

func (r *Readings) setPressure(pascal float64) {
	p := q.NewPressure[q.Pascal](round64(pascal, 1))
	r.pressure = &p
}

type Sensor interface {
	Poll() (Readings, error)
	Labels() prometheus.Labels
}

// i2cDevice is the part shared by all sensors attached to an I2C bus.
// The mutex serializes bus transactions of one device.
type i2cDevice struct {
	Address uint8
	Bus     int
	Model   string
	mutex   sync.Mutex
}

func (d *i2cDevice) Labels() prometheus.Labels {
	return prometheus.Labels{
		"address": fmt.Sprintf("0x%x", d.Address),
		"bus":     fmt.Sprintf("%d", d.Bus),
		"model":   d.Model,
	}
}

func (d *i2cDevice) locked(read func() error) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return read()
}

func (d *i2cDevice) open() (*i2c.I2C, error) {
	return i2c.NewI2C(d.Address, d.Bus)
}

// BMPSensor covers the Bosch BMP180, BMP280, BMP388 and BME280. Only the
// BME280 measures humidity.
type BMPSensor struct {
	i2cDevice
	bmp *bsbmp.BMP
}

func NewBMPSensor(address uint8, bus int, model string, sensorType bsbmp.SensorType) (*BMPSensor, error) {
	logrus.Infof("New BMP sensor: %s,address=0x%x,bus=%d", model, address, bus)
	s := &BMPSensor{i2cDevice: i2cDevice{Address: address, Bus: bus, Model: model}}
	conn, err := s.open()
	if err != nil {
		return nil, err
	}
	s.bmp, err = bsbmp.NewBMP(sensorType, conn)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (s *BMPSensor) Poll() (Readings, error) {
	var readings Readings

	err := s.locked(func() error {
		temp, err := s.bmp.ReadTemperatureC(bsbmp.ACCURACY_STANDARD)
		if err == nil {
			readings.setTemperature(float64(temp))
		}
		return err
	})
	if err != nil {
		return readings, err
	}

	err = s.locked(func() error {
		pres, err := s.bmp.ReadPressurePa(bsbmp.ACCURACY_STANDARD)
		if err == nil {
			readings.setPressure(float64(pres))
		}
		return err
	})
	if err != nil {
		return readings, err
	}

	// TODO: read temperature and humidity in one go for BME280
	err = s.locked(func() error {
		supported, rh, err := s.bmp.ReadHumidityRH(bsbmp.ACCURACY_STANDARD)
		if err == nil && supported {
			readings.setHumidity(float64(rh))
		}
		return err
	})
	return readings, err
}

// SHT3xSensor covers the Sensirion SHT30, SHT31 and SHT35.
type SHT3xSensor struct {
	i2cDevice
	conn          *i2c.I2C
	sht           *sht3x.SHT3X
	repeatability repeatability
}

func NewSHT3xSensor(address uint8, bus int, model string, rep repeatability) (*SHT3xSensor, error) {
	logrus.Infof(
		"New SHT3x sensor: %s,address=0x%x,bus=%d,repeatability=%s",
		model, address, bus, rep.name,
	)
	s := &SHT3xSensor{
		i2cDevice:     i2cDevice{Address: address, Bus: bus, Model: model},
		sht:           sht3x.NewSHT3X(),
		repeatability: rep,
	}
	var err error
	s.conn, err = s.open()
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SHT3xSensor) Labels() prometheus.Labels {
	labels := s.i2cDevice.Labels()
	labels["repeatability"] = s.repeatability.name
	return labels
}

func (s *SHT3xSensor) Poll() (Readings, error) {
	var readings Readings
	err := s.locked(func() error {
		temp, rh, err := s.sht.ReadTemperatureAndRelativeHumidity(s.conn, s.repeatability.value)
		if err == nil {
			readings.setTemperature(float64(temp))
			readings.setHumidity(float64(rh))
		}
		return err
	})
	return readings, err
}

type repeatability struct {
	name  string
	value sht3x.MeasureRepeatability
}

var repeatabilities = []repeatability{
	{"low", sht3x.RepeatabilityLow},
	{"medium", sht3x.RepeatabilityMedium},
	{"high", sht3x.RepeatabilityHigh},
}

// lookupRepeatability maps the repeatability option to the SHT3x setting.
// An empty name selects high repeatability.
func lookupRepeatability(name string) (repeatability, error) {
	if name == "" {
		name = "high"
	}
	for _, r := range repeatabilities {
		if r.name == name {
			return r, nil
		}
	}
	return repeatability{}, fmt.Errorf("Unknown repeatability: %s", name)
}

// sensorModel describes how to open a supported sensor model.
type sensorModel struct {
	defaultAddress uint8
	open           func(flags SensorFlags, address uint8, bus int) (Sensor, error)
}

func bmpModel(sensorType bsbmp.SensorType) sensorModel {
	return sensorModel{
		defaultAddress: 0x76,
		open: func(flags SensorFlags, address uint8, bus int) (Sensor, error) {
			return NewBMPSensor(address, bus, flags.Model, sensorType)
		},
	}
}

var sht3xModel = sensorModel{
	defaultAddress: 0x45,
	open: func(flags SensorFlags, address uint8, bus int) (Sensor, error) {
		rep, err := lookupRepeatability(flags.Repeatability)
		if err != nil {
			return nil, err
		}
		return NewSHT3xSensor(address, bus, flags.Model, rep)
	},
}

var sensorModels = map[string]sensorModel{
	"BME280": bmpModel(bsbmp.BME280),
	"BMP180": bmpModel(bsbmp.BMP180),
	"BMP280": bmpModel(bsbmp.BMP280),
	"BMP388": bmpModel(bsbmp.BMP388),
	"SHT30":  sht3xModel,
	"SHT31":  sht3xModel,
	"SHT35":  sht3xModel,
}

// device returns the model of the sensor and the I2C address and bus to
// open it on, filling in the model's defaults.
func (s SensorFlags) device() (sensorModel, uint8, int, error) {
	model, ok := sensorModels[s.Model]
	if !ok {
		return sensorModel{}, 0, 0, fmt.Errorf("Invalid/Unsupported sensor model '%s'!", s.Model)
	}
	address := model.defaultAddress
	if s.Address != nil {
		address = *s.Address
	}
	bus := 0
	if s.Bus != nil {
		bus = *s.Bus
	}
	return model, address, bus, nil
}

func (s SensorFlags) NewSensor() (Sensor, error) {
	model, address, bus, err := s.device()
	if err != nil {
		return nil, err
	}
	return model.open(s, address, bus)
}
