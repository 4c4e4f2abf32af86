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

package airquality

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		pm25 float64
		pm10 float64
		co2  float64
		want Rank
	}{
		{name: "all zero", pm25: 0, pm10: 0, co2: 0, want: RankExcellent},
		{name: "pm25 ceiling short-circuit", pm25: 101, pm10: 0, co2: 0, want: RankPoor},
		{name: "pm10 ceiling short-circuit", pm25: 0, pm10: 355, co2: 0, want: RankPoor},
		{name: "co2 ceiling short-circuit", pm25: 0, pm10: 0, co2: 2001, want: RankPoor},
		{name: "pm25 good band", pm25: 13, pm10: 0, co2: 0, want: RankGood},
		{name: "pm25 exactly at threshold stays excellent", pm25: 12, pm10: 0, co2: 0, want: RankExcellent},
		{name: "co2 has no inferior band", pm25: 0, pm10: 0, co2: 1500, want: RankFair},
		{name: "co2 exactly 500 stays excellent", pm25: 0, pm10: 0, co2: 500, want: RankExcellent},
		{name: "co2 above 500 rates good", pm25: 0, pm10: 0, co2: 999, want: RankGood},
		{name: "co2 exactly 1000 does not reach fair", pm25: 0, pm10: 0, co2: 1000, want: RankGood},
		{name: "worst scale wins", pm25: 56, pm10: 160, co2: 600, want: RankInferior},
		{name: "pm10 fair", pm25: 0, pm10: 155, co2: 0, want: RankFair},
		{name: "ceiling beats lower later scales", pm25: 101, pm10: 10, co2: 400, want: RankPoor},
		{name: "late ceiling beats earlier mild ranks", pm25: 13, pm10: 60, co2: 2500, want: RankPoor},
		{name: "pm25 exactly at ceiling is inferior not poor", pm25: 100, pm10: 0, co2: 0, want: RankInferior},
		{name: "co2 exactly at ceiling is fair not poor", pm25: 0, pm10: 0, co2: 2000, want: RankFair},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.pm25, tt.pm10, tt.co2)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.Valid())
		})
	}
}

func TestClassifyTotalOverRange(t *testing.T) {
	// Classification must be total and within the ordinal range for any
	// non-negative inputs.
	values := []float64{0, 0.1, 12, 12.1, 35.4, 54, 55.5, 100, 154, 254.5, 354, 500, 999, 1000.5, 2000, 5000}

	for _, pm25 := range values {
		for _, pm10 := range values {
			for _, co2 := range values {
				got := Classify(pm25, pm10, co2)
				assert.True(t, got.Valid(), "Classify(%v, %v, %v) = %v", pm25, pm10, co2, got)
			}
		}
	}
}

func TestRankString(t *testing.T) {
	assert.Equal(t, "excellent", RankExcellent.String())
	assert.Equal(t, "poor", RankPoor.String())
	assert.Equal(t, "unknown", Rank(0).String())
	assert.False(t, Rank(6).Valid())
}
