/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package models contains the shared data types for the air quality monitor.
package models

import (
	"net"
	"strconv"
)

// Reading is one telemetry snapshot from the device's /measures/current
// endpoint. Fields not consumed by classification are carried through
// untouched for forward compatibility.
type Reading struct {
	Boot            int     `json:"boot"`
	Wifi            float64 `json:"wifi"`
	SerialNo        string  `json:"serialno"`
	CO2             float64 `json:"rco2"`       // ppm
	PM01            float64 `json:"pm01"`       // µg/m³
	PM25            float64 `json:"pm02"`       // µg/m³
	PM10            float64 `json:"pm10"`       // µg/m³
	PM003Count      float64 `json:"pm003Count"` // particles/0.1L
	Temperature     float64 `json:"atmp"`       // °C
	Humidity        float64 `json:"rhum"`       // %
	TVOCIndex       float64 `json:"tvocIndex"`
	TVOCRaw         float64 `json:"tvoc_raw"`
	NOxIndex        float64 `json:"noxIndex"`
	NOxRaw          float64 `json:"nox_raw"`
	LEDMode         string  `json:"ledMode"`
	FirmwareVersion string  `json:"firmwareVersion"`
	FirmwareMode    string  `json:"fwMode"`
}

// Booting reports whether the device is still initializing. A reading taken
// before the first boot cycle completes carries no usable measurements and
// must be ignored rather than applied.
func (r *Reading) Booting() bool {
	return r.Boot == 0
}

// Model derives a device model string from the firmware mode reported by the
// device, falling back to the bare product name when the mode is absent.
func (r *Reading) Model() string {
	if r.FirmwareMode == "" {
		return "AirGradient"
	}

	return "AirGradient " + r.FirmwareMode
}

// DeviceAddress is a resolved host+port pair for a discovered device.
// It is immutable after resolution; re-resolution is not attempted.
type DeviceAddress struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

func (a DeviceAddress) String() string {
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}
