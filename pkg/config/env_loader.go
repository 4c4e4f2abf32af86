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

package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/carverauto/airmon/pkg/logger"
)

// ErrConfigJSONNotSet indicates the expected env var was absent.
var ErrConfigJSONNotSet = errors.New("environment config not set")

// EnvConfigLoader loads a complete JSON configuration from a single
// environment variable, <prefix>CONFIG_JSON. Useful for containerized
// deployments where mounting a config file is inconvenient.
type EnvConfigLoader struct {
	logger logger.Logger
	prefix string
}

// NewEnvConfigLoader creates a new environment variable config loader.
func NewEnvConfigLoader(log logger.Logger, prefix string) *EnvConfigLoader {
	return &EnvConfigLoader{
		logger: log,
		prefix: prefix,
	}
}

// Load implements ConfigLoader by reading from environment variables.
func (e *EnvConfigLoader) Load(_ context.Context, _ string, dst interface{}) error {
	key := e.prefix + "CONFIG_JSON"

	jsonConfig := os.Getenv(key)
	if jsonConfig == "" {
		return fmt.Errorf("%w: %s", ErrConfigJSONNotSet, key)
	}

	if err := json.Unmarshal([]byte(jsonConfig), dst); err != nil {
		if e.logger != nil {
			e.logger.Error().Err(err).Str("var", key).Msg("Failed to unmarshal environment config")
		}

		return fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}

	if e.logger != nil {
		e.logger.Info().Str("var", key).Msg("Loaded configuration from environment")
	}

	return nil
}
