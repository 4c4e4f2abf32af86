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

package telemetry

import (
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/airmon/pkg/logger"
	"github.com/carverauto/airmon/pkg/models"
)

func deviceAddrFromServer(t *testing.T, srv *httptest.Server) models.DeviceAddress {
	t.Helper()

	host, portStr, err := net.SplitHostPort(srv.Listener.Addr().String())
	require.NoError(t, err)

	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	return models.DeviceAddress{Host: host, Port: port}
}

func TestFetchCurrent(t *testing.T) {
	payload := `{
		"boot": 184,
		"wifi": -59,
		"serialno": "84fce612eff4",
		"rco2": 620,
		"pm01": 3,
		"pm02": 7.5,
		"pm10": 8,
		"pm003Count": 442,
		"atmp": 23.6,
		"rhum": 47,
		"tvocIndex": 117,
		"tvoc_raw": 30707,
		"noxIndex": 1,
		"nox_raw": 16442,
		"ledMode": "co2",
		"firmwareVersion": "3.1.1",
		"fwMode": "I-9PSL"
	}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/measures/current", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}))
	defer srv.Close()

	client := NewClient(time.Second, logger.NewTestLogger())

	reading, err := client.FetchCurrent(t.Context(), deviceAddrFromServer(t, srv))
	require.NoError(t, err)

	assert.Equal(t, 184, reading.Boot)
	assert.False(t, reading.Booting())
	assert.InDelta(t, 7.5, reading.PM25, 0.001)
	assert.InDelta(t, 8.0, reading.PM10, 0.001)
	assert.InDelta(t, 620.0, reading.CO2, 0.001)
	assert.InDelta(t, 23.6, reading.Temperature, 0.001)
	assert.Equal(t, "3.1.1", reading.FirmwareVersion)
	assert.Equal(t, "AirGradient I-9PSL", reading.Model())
}

func TestFetchCurrentConnectionRefused(t *testing.T) {
	client := NewClient(time.Second, logger.NewTestLogger())

	_, err := client.FetchCurrent(t.Context(), models.DeviceAddress{Host: "127.0.0.1", Port: 1})
	assert.ErrorIs(t, err, ErrTransport)
}

func TestFetchCurrentServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(time.Second, logger.NewTestLogger())

	_, err := client.FetchCurrent(t.Context(), deviceAddrFromServer(t, srv))
	assert.ErrorIs(t, err, ErrTransport)
}

func TestFetchCurrentMalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	client := NewClient(time.Second, logger.NewTestLogger())

	_, err := client.FetchCurrent(t.Context(), deviceAddrFromServer(t, srv))
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestFetchCurrentTimeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-block
	}))
	defer func() {
		close(block)
		srv.Close()
	}()

	client := NewClient(50*time.Millisecond, logger.NewTestLogger())

	_, err := client.FetchCurrent(t.Context(), deviceAddrFromServer(t, srv))
	assert.ErrorIs(t, err, ErrTransport)
}
