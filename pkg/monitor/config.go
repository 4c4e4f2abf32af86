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
	"time"

	"github.com/carverauto/airmon/pkg/discovery"
	"github.com/carverauto/airmon/pkg/logger"
	"github.com/carverauto/airmon/pkg/models"
	"github.com/carverauto/airmon/pkg/sink"
)

const (
	defaultPollInterval = 30 * time.Second
	maxFetchTimeout     = 10 * time.Second
)

// Config represents monitor configuration.
type Config struct {
	DeviceName       string           `json:"device_name"`
	DeviceSerial     string           `json:"device_serial"`
	ServiceType      string           `json:"service_type,omitempty"`
	DiscoveryDomain  string           `json:"discovery_domain,omitempty"`
	DiscoveryTimeout models.Duration  `json:"discovery_timeout,omitempty"`
	PollInterval     models.Duration  `json:"poll_interval"`
	FetchTimeout     models.Duration  `json:"fetch_timeout,omitempty"`
	ListenAddr       string           `json:"listen_addr,omitempty"`
	NATS             *sink.NATSConfig `json:"nats,omitempty"`
	Logging          *logger.Config   `json:"logging,omitempty"`
}

// Validate implements config.Validator interface.
func (c *Config) Validate() error {
	if c.DeviceName == "" {
		return errDeviceNameRequired
	}

	if c.DeviceSerial == "" {
		return errDeviceSerialRequired
	}

	if c.ServiceType == "" {
		c.ServiceType = discovery.DefaultServiceType
	}

	if c.DiscoveryDomain == "" {
		c.DiscoveryDomain = discovery.DefaultDomain
	}

	if time.Duration(c.DiscoveryTimeout) == 0 {
		c.DiscoveryTimeout = models.Duration(discovery.DefaultNotFoundAfter)
	}

	if time.Duration(c.PollInterval) == 0 {
		c.PollInterval = models.Duration(defaultPollInterval)
	}

	// The per-fetch timeout must stay strictly shorter than the poll
	// interval so ticks can never overlap a fetch still in flight.
	if time.Duration(c.FetchTimeout) == 0 {
		timeout := time.Duration(c.PollInterval) / 2
		if timeout > maxFetchTimeout {
			timeout = maxFetchTimeout
		}

		c.FetchTimeout = models.Duration(timeout)
	}

	if time.Duration(c.FetchTimeout) >= time.Duration(c.PollInterval) {
		return errFetchTimeoutTooLong
	}

	if c.NATS != nil {
		if err := c.NATS.Validate(); err != nil {
			return err
		}
	}

	return nil
}
