package application

import (
	"github.com/rs/zerolog"

	"github.com/anxiangsir/homepage/internal/config"
	"github.com/anxiangsir/homepage/internal/scholar"
	"github.com/anxiangsir/homepage/internal/store"
	"github.com/anxiangsir/homepage/internal/transport"
	"github.com/anxiangsir/homepage/pkg/render"
	"github.com/anxiangsir/homepage/pkg/stars"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
//
// Example Usage:
//
//	mock := &application.Mock{
//	    ScholarFunc: func() (*scholar.Service, error) {
//	        return scholar.New(scholar.Config{URL: srv.URL}, transport.New(), nil), nil
//	    },
//	}
//	srv, err := server.New(mock, server.DefaultConfig())
type Mock struct {
	ConfigFunc       func() *config.Config
	LoggerFunc       func() *zerolog.Logger
	HTTPClientFunc   func() *transport.Client
	StarsFunc        func() (*stars.Loader, error)
	ScholarFunc      func() (*scholar.Service, error)
	StoreFunc        func() (store.Store, error)
	RendererFunc     func(mode render.PageMode) *render.Renderer
	OutputFormatFunc func() string
	VersionFunc      func() string
}

// Config returns the mock config or Defaults.
func (m *Mock) Config() *config.Config {
	if m.ConfigFunc != nil {
		return m.ConfigFunc()
	}
	return config.Defaults()
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// HTTPClient returns the mock client or a default transport client.
func (m *Mock) HTTPClient() *transport.Client {
	if m.HTTPClientFunc != nil {
		return m.HTTPClientFunc()
	}
	return transport.New()
}

// Stars returns the mock loader or nil.
func (m *Mock) Stars() (*stars.Loader, error) {
	if m.StarsFunc != nil {
		return m.StarsFunc()
	}
	return nil, nil
}

// Scholar returns the mock service or nil.
func (m *Mock) Scholar() (*scholar.Service, error) {
	if m.ScholarFunc != nil {
		return m.ScholarFunc()
	}
	return nil, nil
}

// Store returns the mock store or nil.
func (m *Mock) Store() (store.Store, error) {
	if m.StoreFunc != nil {
		return m.StoreFunc()
	}
	return nil, nil
}

// Renderer returns the mock renderer or nil.
func (m *Mock) Renderer(mode render.PageMode) *render.Renderer {
	if m.RendererFunc != nil {
		return m.RendererFunc(mode)
	}
	return nil
}

// OutputFormat returns the mock format or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Version returns the mock version or "test".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "test"
}

// Commit returns "unknown".
func (m *Mock) Commit() string { return "unknown" }

// Date returns "unknown".
func (m *Mock) Date() string { return "unknown" }

// BuiltBy returns "test".
func (m *Mock) BuiltBy() string { return "test" }
