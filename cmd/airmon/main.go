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

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/carverauto/airmon/pkg/api"
	"github.com/carverauto/airmon/pkg/config"
	"github.com/carverauto/airmon/pkg/discovery"
	"github.com/carverauto/airmon/pkg/lifecycle"
	"github.com/carverauto/airmon/pkg/logger"
	"github.com/carverauto/airmon/pkg/monitor"
	"github.com/carverauto/airmon/pkg/sink"
	"github.com/carverauto/airmon/pkg/telemetry"
)

var errFailedToLoadConfig = fmt.Errorf("failed to load config")

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configPath := flag.String("config", "/etc/airmon/airmon.json", "Path to airmon config file")
	flag.Parse()

	ctx := context.Background()

	cfgLoader := config.NewConfig(nil)

	var cfg monitor.Config

	if err := cfgLoader.LoadAndValidate(ctx, *configPath, &cfg); err != nil {
		return fmt.Errorf("%w: %w", errFailedToLoadConfig, err)
	}

	logConfig := cfg.Logging
	if logConfig == nil {
		logConfig = &logger.Config{
			Level:  "info",
			Output: "stdout",
		}
	}

	monLogger, err := lifecycle.CreateComponentLogger(ctx, "airmon", logConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	sinks := sink.Fanout{sink.NewLogSink(monLogger)}

	if cfg.NATS != nil {
		natsSink, err := sink.NewNATSSink(ctx, cfg.NATS, monLogger)
		if err != nil {
			return fmt.Errorf("failed to initialize NATS sink: %w", err)
		}

		defer natsSink.Close()

		sinks = append(sinks, natsSink)
	}

	locator := discovery.NewLocator(cfg.ServiceType, cfg.DiscoveryDomain, monLogger)
	fetcher := telemetry.NewClient(time.Duration(cfg.FetchTimeout), monLogger)

	m, err := monitor.New(&cfg, locator, fetcher, sinks, nil, monLogger) // nil clock defaults to realClock
	if err != nil {
		return err
	}

	services := []lifecycle.Service{m}

	if cfg.ListenAddr != "" {
		services = append(services, api.NewServer(cfg.ListenAddr, m, monLogger))
	}

	return lifecycle.Run(ctx, monLogger, services...)
}
