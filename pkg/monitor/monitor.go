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

// Package monitor owns the device tracking state machine: discovery, the
// telemetry poll loop, and the last known good state exposed to accessors.
package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/carverauto/airmon/pkg/airquality"
	"github.com/carverauto/airmon/pkg/logger"
	"github.com/carverauto/airmon/pkg/models"
)

// New creates a new monitor instance. A nil clock defaults to the real clock.
func New(config *Config, locator Locator, fetcher TelemetryFetcher, snk Sink, clock Clock, log logger.Logger) (*Monitor, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid monitor config: %w", err)
	}

	if clock == nil {
		clock = realClock{}
	}

	return &Monitor{
		config:    *config,
		locator:   locator,
		fetcher:   fetcher,
		sink:      snk,
		clock:     clock,
		logger:    log,
		addressCh: make(chan models.DeviceAddress, 1),
		done:      make(chan struct{}),
	}, nil
}

// Start implements the lifecycle.Service interface. It blocks in the
// discovery wait and then in the poll loop until the context ends or Stop is
// called. Poll ticks run inline so overlapping fetches against the device are
// never issued.
func (m *Monitor) Start(ctx context.Context) error {
	m.logger.Info().
		Str("device", m.config.DeviceName).
		Str("serial", m.config.DeviceSerial).
		Msg("Starting device monitor")

	err := m.locator.Locate(ctx, m.config.DeviceSerial, time.Duration(m.config.DiscoveryTimeout), m.onDeviceFound)
	if err != nil {
		return fmt.Errorf("failed to start discovery: %w", err)
	}

	m.wg.Add(1)
	defer m.wg.Done()

	var addr models.DeviceAddress

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-m.done:
		return nil
	case addr = <-m.addressCh:
	}

	m.mu.Lock()
	m.address = &addr
	m.mu.Unlock()

	interval := time.Duration(m.config.PollInterval)

	m.logger.Info().
		Str("address", addr.String()).
		Dur("interval", interval).
		Msg("Device resolved, starting poll loop")

	m.poll(ctx, addr)

	m.ticker = m.clock.Ticker(interval)
	defer m.ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-m.done:
			return nil
		case <-m.ticker.Chan():
			m.poll(ctx, addr)
		}
	}
}

// Stop implements the lifecycle.Service interface.
func (m *Monitor) Stop(_ context.Context) error {
	m.closeOnce.Do(func() {
		close(m.done)
	})

	m.wg.Wait()

	return nil
}

// onDeviceFound is the discovery callback. The locator guarantees it fires
// at most once.
func (m *Monitor) onDeviceFound(addr models.DeviceAddress) {
	select {
	case m.addressCh <- addr:
	default:
		m.logger.Debug().Str("address", addr.String()).Msg("Discarding duplicate device resolution")
	}
}

// poll performs one fetch cycle. Errors never propagate: a failed fetch only
// flips the connectivity flag, keeping the prior reading available as stale
// state.
func (m *Monitor) poll(ctx context.Context, addr models.DeviceAddress) {
	fetchCtx, cancel := context.WithTimeout(ctx, time.Duration(m.config.FetchTimeout))
	defer cancel()

	reading, err := m.fetcher.FetchCurrent(fetchCtx, addr)
	if err != nil {
		m.markDisconnected(err)
		return
	}

	if reading.Booting() {
		m.logger.Debug().Msg("Device still booting, ignoring reading")
		return
	}

	m.apply(ctx, reading)
}

func (m *Monitor) apply(ctx context.Context, reading *models.Reading) {
	rank := airquality.Classify(reading.PM25, reading.PM10, reading.CO2)

	m.mu.Lock()
	firmwareChanged := reading.FirmwareVersion != "" && reading.FirmwareVersion != m.firmware
	if firmwareChanged {
		m.firmware = reading.FirmwareVersion
	}

	wasConnected := m.connected
	m.latest = reading
	m.rank = rank
	m.connected = true
	m.lastSample = m.clock.Now()
	m.mu.Unlock()

	if !wasConnected {
		m.logger.Info().Str("rank", rank.String()).Msg("Device connected")
	}

	if firmwareChanged {
		m.logger.Info().Str("firmware", reading.FirmwareVersion).Msg("Device firmware updated")

		if err := m.sink.PushDeviceInfo(ctx, reading.FirmwareVersion, reading.Model()); err != nil {
			m.logger.Warn().Err(err).Msg("Failed to push device info to sink")
		}
	}

	m.pushMeasurements(ctx, reading, rank)
}

func (m *Monitor) pushMeasurements(ctx context.Context, reading *models.Reading, rank airquality.Rank) {
	measurements := []struct {
		metric models.Metric
		value  float64
	}{
		{models.MetricAirQuality, float64(rank)},
		{models.MetricPM25, reading.PM25},
		{models.MetricPM10, reading.PM10},
		{models.MetricCO2, reading.CO2},
		{models.MetricTemperature, reading.Temperature},
	}

	for _, mv := range measurements {
		if err := m.sink.PushMeasurement(ctx, mv.metric, mv.value); err != nil {
			m.logger.Warn().
				Err(err).
				Str("metric", string(mv.metric)).
				Msg("Failed to push measurement to sink")
		}
	}
}

func (m *Monitor) markDisconnected(err error) {
	m.mu.Lock()
	wasConnected := m.connected
	m.connected = false
	m.mu.Unlock()

	if wasConnected {
		m.logger.Warn().Err(err).Msg("Device unreachable, keeping last known state")
	} else {
		m.logger.Debug().Err(err).Msg("Device still unreachable")
	}
}

// CurrentValue returns the last stored value for the metric. While the
// device is unreachable it fails with ErrCommunicationFailure instead of
// serving stale data as live.
func (m *Monitor) CurrentValue(metric models.Metric) (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.connected {
		return 0, ErrCommunicationFailure
	}

	if m.latest == nil {
		return 0, errNoReading
	}

	switch metric {
	case models.MetricAirQuality:
		return float64(m.rank), nil
	case models.MetricPM25:
		return m.latest.PM25, nil
	case models.MetricPM10:
		return m.latest.PM10, nil
	case models.MetricCO2:
		return m.latest.CO2, nil
	case models.MetricTemperature:
		return m.latest.Temperature, nil
	default:
		return 0, fmt.Errorf("%w: %s", models.ErrUnknownMetric, metric)
	}
}

// CurrentStatus returns a consistent snapshot of the device state, including
// retained stale state while disconnected.
func (m *Monitor) CurrentStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()

	st := Status{
		DeviceName:      m.config.DeviceName,
		Connected:       m.connected,
		FirmwareVersion: m.firmware,
	}

	if m.address != nil {
		st.Address = m.address.String()
	}

	if m.latest != nil {
		reading := *m.latest
		st.Reading = &reading
		st.Model = reading.Model()
		st.Rank = m.rank
		st.RankLabel = m.rank.String()

		lastSample := m.lastSample
		st.LastSample = &lastSample
	}

	return st
}
