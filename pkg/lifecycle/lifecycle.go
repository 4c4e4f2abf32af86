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

// Package lifecycle runs long-lived services and handles graceful shutdown.
package lifecycle

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/carverauto/airmon/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// Service is a long-running component with a blocking Start and an
// idempotent Stop.
type Service interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Run starts every service and blocks until one of them fails or the process
// receives SIGINT/SIGTERM, then stops them all. The first service error, if
// any, is returned; context cancellation during shutdown is not treated as
// an error.
func Run(ctx context.Context, log logger.Logger, services ...Service) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, len(services))

	for _, svc := range services {
		go func(s Service) {
			if err := s.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				errCh <- err
			}
		}(svc)
	}

	var runErr error

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutdown signal received")
	case runErr = <-errCh:
		log.Error().Err(runErr).Msg("Service failed, shutting down")
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	for _, svc := range services {
		if err := svc.Stop(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Error stopping service")
		}
	}

	if err := ShutdownLogger(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error shutting down logger")
	}

	return runErr
}
