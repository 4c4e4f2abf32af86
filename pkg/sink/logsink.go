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

package sink

import (
	"context"

	"github.com/carverauto/airmon/pkg/logger"
	"github.com/carverauto/airmon/pkg/models"
)

// LogSink records every accepted measurement to the structured log. It is
// always installed so a run without NATS configured still leaves a usable
// trail of what the device reported.
type LogSink struct {
	logger logger.Logger
}

// NewLogSink creates a sink that writes measurements to the given logger.
func NewLogSink(log logger.Logger) *LogSink {
	return &LogSink{logger: log}
}

// PushMeasurement implements Sink.
func (s *LogSink) PushMeasurement(_ context.Context, metric models.Metric, value float64) error {
	s.logger.Info().
		Str("metric", string(metric)).
		Float64("value", value).
		Str("unit", metric.Unit()).
		Msg("Measurement")

	return nil
}

// PushDeviceInfo implements Sink.
func (s *LogSink) PushDeviceInfo(_ context.Context, firmwareVersion, model string) error {
	s.logger.Info().
		Str("firmware_version", firmwareVersion).
		Str("model", model).
		Msg("Device info")

	return nil
}
