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

package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/airmon/pkg/airquality"
	"github.com/carverauto/airmon/pkg/logger"
	"github.com/carverauto/airmon/pkg/models"
	"github.com/carverauto/airmon/pkg/monitor"
)

type fakeReader struct {
	values    map[models.Metric]float64
	connected bool
	status    monitor.Status
}

func (f *fakeReader) CurrentValue(metric models.Metric) (float64, error) {
	if !f.connected {
		return 0, monitor.ErrCommunicationFailure
	}

	value, ok := f.values[metric]
	if !ok {
		return 0, models.ErrUnknownMetric
	}

	return value, nil
}

func (f *fakeReader) CurrentStatus() monitor.Status {
	return f.status
}

func connectedReader() *fakeReader {
	lastSample := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	return &fakeReader{
		connected: true,
		values: map[models.Metric]float64{
			models.MetricAirQuality:  float64(airquality.RankGood),
			models.MetricPM25:        8.2,
			models.MetricPM10:        11.5,
			models.MetricCO2:         640,
			models.MetricTemperature: 22.4,
		},
		status: monitor.Status{
			DeviceName:      "Office Sensor",
			Connected:       true,
			Address:         "192.168.1.50:80",
			FirmwareVersion: "3.1.9",
			Model:           "AirGradient I-9PSL",
			Rank:            airquality.RankGood,
			RankLabel:       "good",
			LastSample:      &lastSample,
		},
	}
}

func doRequest(t *testing.T, reader StateReader, path string) *httptest.ResponseRecorder {
	t.Helper()

	s := NewServer("127.0.0.1:0", reader, logger.NewTestLogger())

	req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)

	return w
}

func TestHealthz(t *testing.T) {
	w := doRequest(t, connectedReader(), "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetMeasurement(t *testing.T) {
	tests := []struct {
		kind string
		want float64
		unit string
	}{
		{kind: "air_quality", want: 2, unit: ""},
		{kind: "pm25", want: 8.2, unit: "µg/m³"},
		{kind: "pm10", want: 11.5, unit: "µg/m³"},
		{kind: "co2", want: 640, unit: "ppm"},
		{kind: "temperature", want: 22.4, unit: "°C"},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			w := doRequest(t, connectedReader(), "/api/v1/measurements/"+tt.kind)
			require.Equal(t, http.StatusOK, w.Code)

			var body struct {
				Metric string  `json:"metric"`
				Value  float64 `json:"value"`
				Unit   string  `json:"unit"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

			assert.Equal(t, tt.kind, body.Metric)
			assert.InDelta(t, tt.want, body.Value, 0.001)
			assert.Equal(t, tt.unit, body.Unit)
		})
	}
}

func TestGetMeasurementUnknownKind(t *testing.T) {
	w := doRequest(t, connectedReader(), "/api/v1/measurements/radon")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetMeasurementDeviceUnreachable(t *testing.T) {
	reader := &fakeReader{connected: false}

	w := doRequest(t, reader, "/api/v1/measurements/co2")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.Error, "not reachable")
}

func TestGetStatus(t *testing.T) {
	w := doRequest(t, connectedReader(), "/api/v1/status")
	require.Equal(t, http.StatusOK, w.Code)

	var status monitor.Status
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))

	assert.Equal(t, "Office Sensor", status.DeviceName)
	assert.True(t, status.Connected)
	assert.Equal(t, airquality.RankGood, status.Rank)
	assert.Equal(t, "good", status.RankLabel)
}

func TestGetStatusDisconnectedRetainsState(t *testing.T) {
	reader := connectedReader()
	reader.status.Connected = false

	w := doRequest(t, reader, "/api/v1/status")
	require.Equal(t, http.StatusOK, w.Code)

	var status monitor.Status
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))

	assert.False(t, status.Connected)
	assert.Equal(t, "3.1.9", status.FirmwareVersion)
}
