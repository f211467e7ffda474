// Package handlers provides HTTP request handlers for the homepage API.
package handlers

import (
	"time"

	"github.com/agentstation/utc"
	"github.com/rs/zerolog"

	"github.com/anxiangsir/homepage/cmd/application"
	"github.com/anxiangsir/homepage/internal/server/cache"
)

// Metrics receives domain events from the handlers.
type Metrics interface {
	ChatMessage(outcome string)
	ScholarLookup(source string)
	StarFetch(ok bool)
}

type nopMetrics struct{}

func (nopMetrics) ChatMessage(string) {}
func (nopMetrics) ScholarLookup(string) {}
func (nopMetrics) StarFetch(bool) {}

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	app       application.Application
	cache     *cache.Cache
	metrics   Metrics
	logger    *zerolog.Logger
	startTime time.Time
	now       func() time.Time
}

// New creates a new Handlers instance. metrics may be nil.
func New(app application.Application, cache *cache.Cache, metrics Metrics, logger *zerolog.Logger) *Handlers {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	now := func() time.Time { return utc.Now().Time }
	return &Handlers{
		app:       app,
		cache:     cache,
		metrics:   metrics,
		logger:    logger,
		startTime: now(),
		now:       now,
	}
}
