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

// Package sink delivers accepted measurements and device metadata to
// downstream consumers.
package sink

import (
	"context"
	"errors"

	"github.com/carverauto/airmon/pkg/models"
)

// Sink receives accepted measurements and device metadata updates. Delivery
// is best effort; a failing sink never blocks the poll loop.
type Sink interface {
	PushMeasurement(ctx context.Context, metric models.Metric, value float64) error
	PushDeviceInfo(ctx context.Context, firmwareVersion, model string) error
}

// Fanout delivers each push to every child sink, collecting errors instead
// of stopping at the first failure.
type Fanout []Sink

// PushMeasurement implements Sink.
func (f Fanout) PushMeasurement(ctx context.Context, metric models.Metric, value float64) error {
	var errs []error

	for _, s := range f {
		if err := s.PushMeasurement(ctx, metric, value); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// PushDeviceInfo implements Sink.
func (f Fanout) PushDeviceInfo(ctx context.Context, firmwareVersion, model string) error {
	var errs []error

	for _, s := range f {
		if err := s.PushDeviceInfo(ctx, firmwareVersion, model); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
