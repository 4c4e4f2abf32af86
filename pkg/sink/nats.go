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
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/carverauto/airmon/pkg/logger"
	"github.com/carverauto/airmon/pkg/models"
)

const (
	defaultStream        = "AIRMON"
	defaultSubjectPrefix = "airmon"

	eventSource          = "airmon/monitor"
	measurementEventType = "com.carverauto.airmon.measurement"
	deviceInfoEventType  = "com.carverauto.airmon.device.info"
)

var errNATSURLRequired = errors.New("nats url is required")

// NATSConfig holds the JetStream sink configuration.
type NATSConfig struct {
	URL           string `json:"url"`
	Stream        string `json:"stream,omitempty"`
	SubjectPrefix string `json:"subject_prefix,omitempty"`
}

// Validate implements config.Validator interface.
func (c *NATSConfig) Validate() error {
	if c.URL == "" {
		return errNATSURLRequired
	}

	if c.Stream == "" {
		c.Stream = defaultStream
	}

	if c.SubjectPrefix == "" {
		c.SubjectPrefix = defaultSubjectPrefix
	}

	return nil
}

// CloudEvent is the envelope published to JetStream, following the
// CloudEvents 1.0 JSON format.
type CloudEvent struct {
	SpecVersion     string     `json:"specversion"`
	ID              string     `json:"id"`
	Source          string     `json:"source"`
	Type            string     `json:"type"`
	DataContentType string     `json:"datacontenttype"`
	Subject         string     `json:"subject,omitempty"`
	Time            *time.Time `json:"time,omitempty"`
	Data            any        `json:"data,omitempty"`
}

// MeasurementEventData is the data payload of a measurement event.
type MeasurementEventData struct {
	Metric    models.Metric `json:"metric"`
	Value     float64       `json:"value"`
	Unit      string        `json:"unit,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// DeviceInfoEventData is the data payload of a device info event.
type DeviceInfoEventData struct {
	FirmwareVersion string    `json:"firmware_version"`
	Model           string    `json:"model"`
	Timestamp       time.Time `json:"timestamp"`
}

// NATSSink publishes measurements as CloudEvents to a JetStream stream.
type NATSSink struct {
	config NATSConfig
	nc     *nats.Conn
	js     jetstream.JetStream
	logger logger.Logger
}

// NewNATSSink connects to NATS and ensures the target stream exists.
func NewNATSSink(ctx context.Context, config *NATSConfig, log logger.Logger) (*NATSSink, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	nc, err := nats.Connect(config.URL,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	s := &NATSSink{
		config: *config,
		nc:     nc,
		js:     js,
		logger: log,
	}

	if err := s.ensureStream(ctx); err != nil {
		nc.Close()
		return nil, err
	}

	return s, nil
}

func (s *NATSSink) ensureStream(ctx context.Context) error {
	_, err := s.js.Stream(ctx, s.config.Stream)
	if errors.Is(err, jetstream.ErrStreamNotFound) {
		sc := jetstream.StreamConfig{
			Name:     s.config.Stream,
			Subjects: []string{s.config.SubjectPrefix + ".>"},
		}

		if _, err = s.js.CreateOrUpdateStream(ctx, sc); err != nil {
			return fmt.Errorf("failed to create stream %s: %w", s.config.Stream, err)
		}

		return nil
	} else if err != nil {
		return fmt.Errorf("failed to get stream %s: %w", s.config.Stream, err)
	}

	return nil
}

// PushMeasurement implements Sink.
func (s *NATSSink) PushMeasurement(ctx context.Context, metric models.Metric, value float64) error {
	now := time.Now()

	return s.publish(ctx, s.config.SubjectPrefix+".measurements."+string(metric), measurementEventType, MeasurementEventData{
		Metric:    metric,
		Value:     value,
		Unit:      metric.Unit(),
		Timestamp: now,
	}, now)
}

// PushDeviceInfo implements Sink.
func (s *NATSSink) PushDeviceInfo(ctx context.Context, firmwareVersion, model string) error {
	now := time.Now()

	return s.publish(ctx, s.config.SubjectPrefix+".device.info", deviceInfoEventType, DeviceInfoEventData{
		FirmwareVersion: firmwareVersion,
		Model:           model,
		Timestamp:       now,
	}, now)
}

func (s *NATSSink) publish(ctx context.Context, subject, eventType string, data any, ts time.Time) error {
	event := CloudEvent{
		SpecVersion:     "1.0",
		ID:              uuid.New().String(),
		Source:          eventSource,
		Type:            eventType,
		DataContentType: "application/json",
		Subject:         subject,
		Time:            &ts,
		Data:            data,
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	ack, err := s.js.Publish(ctx, subject, eventBytes)
	if err != nil {
		return fmt.Errorf("failed to publish event to %s: %w", subject, err)
	}

	s.logger.Debug().
		Str("subject", subject).
		Str("event_id", event.ID).
		Uint64("seq", ack.Sequence).
		Msg("Published event")

	return nil
}

// Close drains the NATS connection.
func (s *NATSSink) Close() {
	if s.nc != nil {
		s.nc.Close()
	}
}
