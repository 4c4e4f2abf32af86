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

package monitor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/airmon/pkg/discovery"
	"github.com/carverauto/airmon/pkg/models"
	"github.com/carverauto/airmon/pkg/sink"
)

func TestConfigValidateDefaults(t *testing.T) {
	cfg := &Config{
		DeviceName:   "Office Sensor",
		DeviceSerial: "84fce612a389",
	}

	require.NoError(t, cfg.Validate())

	assert.Equal(t, discovery.DefaultServiceType, cfg.ServiceType)
	assert.Equal(t, discovery.DefaultDomain, cfg.DiscoveryDomain)
	assert.Equal(t, discovery.DefaultNotFoundAfter, time.Duration(cfg.DiscoveryTimeout))
	assert.Equal(t, 30*time.Second, time.Duration(cfg.PollInterval))
	assert.Equal(t, 10*time.Second, time.Duration(cfg.FetchTimeout))
}

func TestConfigValidateFetchTimeoutDerivedFromInterval(t *testing.T) {
	cfg := &Config{
		DeviceName:   "Office Sensor",
		DeviceSerial: "84fce612a389",
		PollInterval: models.Duration(4 * time.Second),
	}

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 2*time.Second, time.Duration(cfg.FetchTimeout))
}

func TestConfigValidateErrors(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "missing device name",
			config:  Config{DeviceSerial: "84fce612a389"},
			wantErr: errDeviceNameRequired,
		},
		{
			name:    "missing device serial",
			config:  Config{DeviceName: "Office Sensor"},
			wantErr: errDeviceSerialRequired,
		},
		{
			name: "fetch timeout equals poll interval",
			config: Config{
				DeviceName:   "Office Sensor",
				DeviceSerial: "84fce612a389",
				PollInterval: models.Duration(10 * time.Second),
				FetchTimeout: models.Duration(10 * time.Second),
			},
			wantErr: errFetchTimeoutTooLong,
		},
		{
			name: "fetch timeout exceeds poll interval",
			config: Config{
				DeviceName:   "Office Sensor",
				DeviceSerial: "84fce612a389",
				PollInterval: models.Duration(10 * time.Second),
				FetchTimeout: models.Duration(30 * time.Second),
			},
			wantErr: errFetchTimeoutTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestConfigValidatePropagatesNATSConfig(t *testing.T) {
	cfg := &Config{
		DeviceName:   "Office Sensor",
		DeviceSerial: "84fce612a389",
		NATS:         &sink.NATSConfig{},
	}

	require.Error(t, cfg.Validate())

	cfg.NATS.URL = "nats://127.0.0.1:4222"
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "AIRMON", cfg.NATS.Stream)
	assert.Equal(t, "airmon", cfg.NATS.SubjectPrefix)
}
