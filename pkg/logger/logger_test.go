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

package logger

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithDefaults(t *testing.T) {
	l, err := New(t.Context(), nil)
	require.NoError(t, err)
	assert.NotNil(t, l)
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(t.Context(), &Config{Level: "loud"})
	assert.Error(t, err)
}

func TestDurationUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{name: "duration string", input: `"10s"`, want: 10 * time.Second},
		{name: "nanosecond number", input: `5000000000`, want: 5 * time.Second},
		{name: "bad string", input: `"soon"`, wantErr: true},
		{name: "bool", input: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration

			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, time.Duration(d))
		})
	}
}

func TestMapZerologLevelToOTEL(t *testing.T) {
	assert.Equal(t, mapZerologLevelToOTEL("debug"), mapZerologLevelToOTEL("debug"))
	assert.NotEqual(t, mapZerologLevelToOTEL("debug"), mapZerologLevelToOTEL("error"))
	assert.Equal(t, mapZerologLevelToOTEL("info"), mapZerologLevelToOTEL("unknown-level"))
}

func TestNewOTELWriterValidation(t *testing.T) {
	_, err := NewOTELWriter(t.Context(), OTelConfig{Enabled: false})
	assert.ErrorIs(t, err, ErrOTelLoggingDisabled)

	_, err = NewOTELWriter(t.Context(), OTelConfig{Enabled: true})
	assert.ErrorIs(t, err, ErrOTelEndpointRequired)
}
