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
	"sync"
	"time"

	"github.com/carverauto/airmon/pkg/airquality"
	"github.com/carverauto/airmon/pkg/logger"
	"github.com/carverauto/airmon/pkg/models"
)

// Monitor tracks a single device: discovery, the poll loop, and the last
// known good state. State is mutated only by the poll loop and the discovery
// callback; accessor reads take a consistent snapshot under the lock.
type Monitor struct {
	config  Config
	locator Locator
	fetcher TelemetryFetcher
	sink    Sink
	clock   Clock
	logger  logger.Logger

	mu         sync.RWMutex
	latest     *models.Reading
	rank       airquality.Rank
	connected  bool
	address    *models.DeviceAddress
	firmware   string
	lastSample time.Time

	addressCh chan models.DeviceAddress
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
	ticker    Ticker
}

// Status is a consistent snapshot of the monitor's device state.
type Status struct {
	DeviceName      string          `json:"device_name"`
	Connected       bool            `json:"connected"`
	Address         string          `json:"address,omitempty"`
	FirmwareVersion string          `json:"firmware_version,omitempty"`
	Model           string          `json:"model,omitempty"`
	Rank            airquality.Rank `json:"rank,omitempty"`
	RankLabel       string          `json:"rank_label,omitempty"`
	LastSample      *time.Time      `json:"last_sample,omitempty"`
	Reading         *models.Reading `json:"reading,omitempty"`
}
