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

//go:generate mockgen -destination=mock_monitor.go -package=monitor github.com/carverauto/airmon/pkg/monitor Clock,Ticker,TelemetryFetcher,Locator,Sink

import (
	"context"
	"time"

	"github.com/carverauto/airmon/pkg/models"
)

// Clock abstracts time-related operations.
type Clock interface {
	Now() time.Time
	Ticker(d time.Duration) Ticker
}

// Ticker abstracts the ticker behavior.
type Ticker interface {
	Chan() <-chan time.Time
	Stop()
}

// TelemetryFetcher performs one telemetry fetch against a resolved device.
type TelemetryFetcher interface {
	FetchCurrent(ctx context.Context, addr models.DeviceAddress) (*models.Reading, error)
}

// Locator resolves the device address from the local network, invoking
// onFound exactly once on the first match.
type Locator interface {
	Locate(ctx context.Context, identity string, notFoundAfter time.Duration, onFound func(models.DeviceAddress)) error
}

// Sink receives accepted measurements and device metadata updates.
type Sink interface {
	PushMeasurement(ctx context.Context, metric models.Metric, value float64) error
	PushDeviceInfo(ctx context.Context, firmwareVersion, model string) error
}
