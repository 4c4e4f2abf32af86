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

// Package telemetry fetches current measurements from a device's local HTTP
// endpoint.
package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/carverauto/airmon/pkg/logger"
	"github.com/carverauto/airmon/pkg/models"
)

const (
	measuresPath        = "/measures/current"
	defaultFetchTimeout = 10 * time.Second
)

// Client performs single-shot telemetry fetches. Retry policy belongs to the
// caller's poll loop, not here.
type Client struct {
	httpClient *http.Client
	logger     logger.Logger
}

// NewClient creates a telemetry client. The timeout bounds each fetch; the
// caller should keep it strictly shorter than its poll interval so fetches
// never overlap.
func NewClient(timeout time.Duration, log logger.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		logger:     log,
	}
}

// FetchCurrent retrieves one measurement snapshot from the device.
func (c *Client) FetchCurrent(ctx context.Context, addr models.DeviceAddress) (*models.Reading, error) {
	url := "http://" + addr.String() + measuresPath

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer c.closeResponse(resp)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status code %d", ErrTransport, resp.StatusCode)
	}

	var reading models.Reading

	if err := json.NewDecoder(resp.Body).Decode(&reading); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	return &reading, nil
}

// closeResponse closes the HTTP response body, logging any errors.
func (c *Client) closeResponse(resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to close response body")
	}
}
