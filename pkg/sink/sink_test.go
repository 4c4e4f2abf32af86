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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/airmon/pkg/logger"
	"github.com/carverauto/airmon/pkg/models"
)

type recordingSink struct {
	measurements []models.Metric
	deviceInfos  int
	err          error
}

func (r *recordingSink) PushMeasurement(_ context.Context, metric models.Metric, _ float64) error {
	r.measurements = append(r.measurements, metric)
	return r.err
}

func (r *recordingSink) PushDeviceInfo(_ context.Context, _, _ string) error {
	r.deviceInfos++
	return r.err
}

func TestFanoutDeliversToAllSinks(t *testing.T) {
	first := &recordingSink{}
	second := &recordingSink{}
	fanout := Fanout{first, second}

	err := fanout.PushMeasurement(t.Context(), models.MetricCO2, 640)
	require.NoError(t, err)

	assert.Equal(t, []models.Metric{models.MetricCO2}, first.measurements)
	assert.Equal(t, []models.Metric{models.MetricCO2}, second.measurements)

	err = fanout.PushDeviceInfo(t.Context(), "3.1.9", "AirGradient I-9PSL")
	require.NoError(t, err)

	assert.Equal(t, 1, first.deviceInfos)
	assert.Equal(t, 1, second.deviceInfos)
}

func TestFanoutContinuesPastFailingSink(t *testing.T) {
	failing := &recordingSink{err: errors.New("stream unavailable")}
	healthy := &recordingSink{}
	fanout := Fanout{failing, healthy}

	err := fanout.PushMeasurement(t.Context(), models.MetricPM25, 8.2)
	require.Error(t, err)

	// The healthy sink still received the measurement.
	assert.Equal(t, []models.Metric{models.MetricPM25}, healthy.measurements)
}

func TestLogSinkAcceptsPushes(t *testing.T) {
	s := NewLogSink(logger.NewTestLogger())

	require.NoError(t, s.PushMeasurement(t.Context(), models.MetricAirQuality, 2))
	require.NoError(t, s.PushDeviceInfo(t.Context(), "3.1.9", "AirGradient I-9PSL"))
}

func TestNATSConfigValidate(t *testing.T) {
	cfg := &NATSConfig{}
	require.ErrorIs(t, cfg.Validate(), errNATSURLRequired)

	cfg.URL = "nats://127.0.0.1:4222"
	require.NoError(t, cfg.Validate())
	assert.Equal(t, defaultStream, cfg.Stream)
	assert.Equal(t, defaultSubjectPrefix, cfg.SubjectPrefix)

	custom := &NATSConfig{
		URL:           "nats://127.0.0.1:4222",
		Stream:        "SENSORS",
		SubjectPrefix: "sensors.office",
	}
	require.NoError(t, custom.Validate())
	assert.Equal(t, "SENSORS", custom.Stream)
	assert.Equal(t, "sensors.office", custom.SubjectPrefix)
}
