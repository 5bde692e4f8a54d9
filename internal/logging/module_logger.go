package logging

import (
	"context"
	"strings"

	"github.com/beintranet/go-translatable/pkg/interfaces"
)

const (
	rootModule     = "translatable"
	resolverModule = "translatable.resolver"
	flushModule    = "translatable.flush"
	slugModule     = "translatable.slug"
	storeModule    = "translatable.store"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if strings.TrimSpace(module) == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// ResolverLogger returns the logger namespace reserved for load-time resolution.
func ResolverLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, resolverModule)
}

// FlushLogger returns the logger namespace reserved for flush synchronization.
func FlushLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, flushModule)
}

// SlugLogger returns the logger namespace reserved for slug back-propagation.
func SlugLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, slugModule)
}

// StoreLogger returns the logger namespace reserved for translation stores.
func StoreLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, storeModule)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so the engine can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
