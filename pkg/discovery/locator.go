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

// Package discovery locates a device on the local network by its advertised
// mDNS service instance name.
package discovery

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/libp2p/zeroconf/v2"

	"github.com/carverauto/airmon/pkg/logger"
	"github.com/carverauto/airmon/pkg/models"
)

const (
	DefaultServiceType   = "_airgradient._tcp"
	DefaultDomain        = "local."
	DefaultNotFoundAfter = 5 * time.Second
)

// BrowseFunc starts an mDNS browse and streams advertisements into entries.
// It must return once the browse is running; entries is closed when ctx ends.
type BrowseFunc func(ctx context.Context, service, domain string, entries chan<- *zeroconf.ServiceEntry) error

// Locator resolves a device address from local-network service
// advertisements. The browse listener stays open for the process lifetime of
// the monitor; there is no teardown beyond context cancellation.
type Locator struct {
	serviceType string
	domain      string
	browse      BrowseFunc
	logger      logger.Logger
	matched     atomic.Bool
}

// NewLocator creates a locator for the given service type and domain,
// falling back to the AirGradient defaults when they are empty.
func NewLocator(serviceType, domain string, log logger.Logger) *Locator {
	if serviceType == "" {
		serviceType = DefaultServiceType
	}

	if domain == "" {
		domain = DefaultDomain
	}

	return &Locator{
		serviceType: serviceType,
		domain:      domain,
		browse:      asyncBrowse(zeroconf.Browse, log),
		logger:      log,
	}
}

// asyncBrowse adapts a blocking browse call with the zeroconf.Browse
// signature to the BrowseFunc contract. zeroconf.Browse blocks until its
// context ends, so it runs on its own goroutine; its eventual error is
// logged, leaving the advisory timer to report a device that never appears.
func asyncBrowse(blocking func(ctx context.Context, service, domain string, entries chan<- *zeroconf.ServiceEntry, opts ...zeroconf.ClientOption) error, log logger.Logger) BrowseFunc {
	return func(ctx context.Context, service, domain string, entries chan<- *zeroconf.ServiceEntry) error {
		go func() {
			if err := blocking(ctx, service, domain, entries); err != nil && ctx.Err() == nil {
				log.Error().Err(err).Msg("mDNS browse failed")
			}
		}()

		return nil
	}
}

// Locate starts passive discovery and invokes onFound exactly once, with the
// first advertisement whose instance name contains identity. Subsequent
// matches are ignored; the address is never re-resolved. If nothing matches
// within notFoundAfter, a warning is logged once; it is advisory only, the
// listener keeps running and a late device is still picked up.
func (l *Locator) Locate(ctx context.Context, identity string, notFoundAfter time.Duration, onFound func(models.DeviceAddress)) error {
	if notFoundAfter <= 0 {
		notFoundAfter = DefaultNotFoundAfter
	}

	entries := make(chan *zeroconf.ServiceEntry, 8)

	if err := l.browse(ctx, l.serviceType, l.domain, entries); err != nil {
		return fmt.Errorf("failed to start mDNS browse: %w", err)
	}

	l.logger.Info().
		Str("service_type", l.serviceType).
		Str("identity", identity).
		Msg("Started device discovery")

	timer := time.AfterFunc(notFoundAfter, func() {
		if !l.matched.Load() {
			l.logger.Warn().
				Str("identity", identity).
				Dur("waited", notFoundAfter).
				Msg("Device not found on the local network, still listening")
		}
	})

	go func() {
		defer timer.Stop()

		// The browse may fail without closing entries, so watch the
		// context as well.
		for {
			select {
			case <-ctx.Done():
				return
			case entry, ok := <-entries:
				if !ok {
					return
				}

				l.handleEntry(entry, identity, onFound)
			}
		}
	}()

	return nil
}

func (l *Locator) handleEntry(entry *zeroconf.ServiceEntry, identity string, onFound func(models.DeviceAddress)) {
	if !strings.Contains(entry.Instance, identity) {
		l.logger.Debug().
			Str("instance", entry.Instance).
			Msg("Ignoring advertisement for different device")

		return
	}

	addr, ok := addressFromEntry(entry)
	if !ok {
		l.logger.Warn().
			Str("instance", entry.Instance).
			Msg("Matching advertisement carried no usable address")

		return
	}

	if !l.matched.CompareAndSwap(false, true) {
		// First match wins; the device is never re-resolved.
		l.logger.Debug().
			Str("instance", entry.Instance).
			Msg("Device already resolved, ignoring advertisement")

		return
	}

	l.logger.Info().
		Str("instance", entry.Instance).
		Str("address", addr.String()).
		Msg("Device resolved")

	onFound(addr)
}

func addressFromEntry(entry *zeroconf.ServiceEntry) (models.DeviceAddress, bool) {
	switch {
	case len(entry.AddrIPv4) > 0:
		return models.DeviceAddress{Host: entry.AddrIPv4[0].String(), Port: entry.Port}, true
	case len(entry.AddrIPv6) > 0:
		return models.DeviceAddress{Host: entry.AddrIPv6[0].String(), Port: entry.Port}, true
	case entry.HostName != "":
		return models.DeviceAddress{Host: strings.TrimSuffix(entry.HostName, "."), Port: entry.Port}, true
	default:
		return models.DeviceAddress{}, false
	}
}
