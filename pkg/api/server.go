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

// Package api exposes the monitor's device state over a small REST surface.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/carverauto/airmon/pkg/logger"
	"github.com/carverauto/airmon/pkg/models"
	"github.com/carverauto/airmon/pkg/monitor"
)

const shutdownTimeout = 10 * time.Second

// StateReader is the view of the monitor the API serves from.
type StateReader interface {
	CurrentValue(metric models.Metric) (float64, error)
	CurrentStatus() monitor.Status
}

// Server bundles router and dependencies for the REST API.
type Server struct {
	addr   string
	reader StateReader
	engine *gin.Engine
	srv    *http.Server
	logger logger.Logger
}

// NewServer constructs a server with routes and middleware.
func NewServer(addr string, reader StateReader, log logger.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		addr:   addr,
		reader: reader,
		engine: engine,
		logger: log,
	}
	s.registerRoutes()

	s.srv = &http.Server{
		Addr:    addr,
		Handler: engine,
	}

	return s
}

// Engine exposes the underlying gin engine (for tests).
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Start implements the lifecycle.Service interface. It returns once the
// listener is running; serve errors surface asynchronously through the log.
func (s *Server) Start(_ context.Context) error {
	s.logger.Info().Str("addr", s.addr).Msg("Starting API server")

	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error().Err(err).Msg("API server failed")
		}
	}()

	return nil
}

// Stop implements the lifecycle.Service interface.
func (s *Server) Stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	return s.srv.Shutdown(shutdownCtx)
}

func (s *Server) registerRoutes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := s.engine.Group("/api/v1")
	v1.GET("/status", s.handleStatus)
	v1.GET("/measurements/:kind", s.handleMeasurement)
}

func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.reader.CurrentStatus())
}

func (s *Server) handleMeasurement(c *gin.Context) {
	metric, err := models.ParseMetric(c.Param("kind"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	value, err := s.reader.CurrentValue(metric)

	switch {
	case errors.Is(err, monitor.ErrCommunicationFailure):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	case errors.Is(err, models.ErrUnknownMetric):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"metric": metric,
		"value":  value,
		"unit":   metric.Unit(),
	})
}
