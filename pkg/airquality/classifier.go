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

// Package airquality classifies raw pollutant and CO2 readings into a single
// ordinal air quality rank.
package airquality

// Rank is the ordinal air quality classification, 1 (best) to 5 (worst).
type Rank int

const (
	RankExcellent Rank = iota + 1
	RankGood
	RankFair
	RankInferior
	RankPoor
)

func (r Rank) String() string {
	switch r {
	case RankExcellent:
		return "excellent"
	case RankGood:
		return "good"
	case RankFair:
		return "fair"
	case RankInferior:
		return "inferior"
	case RankPoor:
		return "poor"
	default:
		return "unknown"
	}
}

// Valid reports whether the rank is within the defined ordinal range.
func (r Rank) Valid() bool {
	return r >= RankExcellent && r <= RankPoor
}

// band maps a strictly-exceeded threshold to the rank it produces.
type band struct {
	over float64
	rank Rank
}

// Breakpoints per scale. Values strictly greater than the ceiling force
// RankPoor for the whole classification; values strictly greater than a band
// threshold take that band's rank. CO2 deliberately has no RankInferior band:
// values between 1000 and 2000 ppm rate RankFair.
const (
	pm25Ceiling = 100.0 // µg/m³
	pm10Ceiling = 354.0 // µg/m³
	co2Ceiling  = 2000.0 // ppm
)

var (
	pm25Bands = []band{
		{over: 55.4, rank: RankInferior},
		{over: 35.4, rank: RankFair},
		{over: 12, rank: RankGood},
	}

	pm10Bands = []band{
		{over: 254, rank: RankInferior},
		{over: 154, rank: RankFair},
		{over: 54, rank: RankGood},
	}

	co2Bands = []band{
		{over: 1000, rank: RankFair},
		{over: 500, rank: RankGood},
	}
)

// Classify maps PM2.5 (µg/m³), PM10 (µg/m³), and CO2 (ppm) readings to a
// single Rank. Each scale is rated independently and the worst rating wins,
// except that any scale exceeding its ceiling short-circuits the whole
// result to RankPoor. Scales are evaluated in order PM2.5, PM10, CO2.
func Classify(pm25, pm10, co2 float64) Rank {
	scales := []struct {
		value   float64
		ceiling float64
		bands   []band
	}{
		{pm25, pm25Ceiling, pm25Bands},
		{pm10, pm10Ceiling, pm10Bands},
		{co2, co2Ceiling, co2Bands},
	}

	worst := RankExcellent

	for _, s := range scales {
		if s.value > s.ceiling {
			return RankPoor
		}

		if r := rate(s.value, s.bands); r > worst {
			worst = r
		}
	}

	return worst
}

func rate(value float64, bands []band) Rank {
	for _, b := range bands {
		if value > b.over {
			return b.rank
		}
	}

	return RankExcellent
}
