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

package models

import (
	"errors"
	"fmt"
)

var ErrUnknownMetric = errors.New("unknown metric")

// Metric identifies one of the normalized quality indicators the monitor
// exposes to external consumers.
type Metric string

const (
	MetricAirQuality  Metric = "air_quality"
	MetricPM25        Metric = "pm25"
	MetricPM10        Metric = "pm10"
	MetricCO2         Metric = "co2"
	MetricTemperature Metric = "temperature"
)

// Metrics returns every exposed metric in push order.
func Metrics() []Metric {
	return []Metric{MetricAirQuality, MetricPM25, MetricPM10, MetricCO2, MetricTemperature}
}

// ParseMetric converts an external metric name into a Metric.
func ParseMetric(s string) (Metric, error) {
	switch Metric(s) {
	case MetricAirQuality, MetricPM25, MetricPM10, MetricCO2, MetricTemperature:
		return Metric(s), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownMetric, s)
	}
}

// Unit returns the measurement unit for the metric, empty for unitless ones.
func (m Metric) Unit() string {
	switch m {
	case MetricPM25, MetricPM10:
		return "µg/m³"
	case MetricCO2:
		return "ppm"
	case MetricTemperature:
		return "°C"
	case MetricAirQuality:
		return ""
	default:
		return ""
	}
}
