package logging

import (
	"context"
	"testing"

	"github.com/beintranet/go-translatable/pkg/interfaces"
)

type recordingLogger struct {
	fields map[string]any
}

func (r *recordingLogger) Trace(string, ...any) {}
func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(string, ...any)  {}
func (r *recordingLogger) Error(string, ...any) {}
func (r *recordingLogger) Fatal(string, ...any) {}

func (r *recordingLogger) WithContext(context.Context) interfaces.Logger { return r }

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	merged := make(map[string]any, len(r.fields)+len(fields))
	for k, v := range r.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &recordingLogger{fields: merged}
}

type recordingProvider struct {
	requested []string
	logger    *recordingLogger
}

func (p *recordingProvider) GetLogger(name string) interfaces.Logger {
	p.requested = append(p.requested, name)
	return p.logger
}

func TestModuleLoggerWithoutProvider(t *testing.T) {
	logger := ModuleLogger(nil, "translatable.resolver")
	if logger == nil {
		t.Fatal("expected no-op logger, got nil")
	}
	logger.Debug("drop me")
}

func TestModuleLoggerAttachesModuleField(t *testing.T) {
	provider := &recordingProvider{logger: &recordingLogger{}}

	logger := ModuleLogger(provider, "translatable.flush")
	if len(provider.requested) != 1 || provider.requested[0] != "translatable.flush" {
		t.Fatalf("provider requested = %v", provider.requested)
	}

	recorded, ok := logger.(*recordingLogger)
	if !ok {
		t.Fatalf("expected fields-aware logger, got %T", logger)
	}
	if recorded.fields["module"] != "translatable.flush" {
		t.Fatalf("module field = %v", recorded.fields["module"])
	}
}

func TestModuleLoggerDefaultsEmptyName(t *testing.T) {
	provider := &recordingProvider{logger: &recordingLogger{}}
	ModuleLogger(provider, "  ")
	if len(provider.requested) != 1 || provider.requested[0] != "translatable" {
		t.Fatalf("provider requested = %v", provider.requested)
	}
}

func TestWithFieldsCopiesInput(t *testing.T) {
	fields := map[string]any{"kind": "page"}
	logger := WithFields(&recordingLogger{}, fields).(*recordingLogger)

	fields["kind"] = "mutated"
	if logger.fields["kind"] != "page" {
		t.Fatalf("fields not copied, got %v", logger.fields["kind"])
	}
}

func TestWithFieldsSkipsUnsupportedLoggers(t *testing.T) {
	base := plainLogger{}
	if got := WithFields(base, map[string]any{"kind": "page"}); got != base {
		t.Fatalf("expected original logger back, got %T", got)
	}
}

type plainLogger struct{}

func (plainLogger) Trace(string, ...any) {}
func (plainLogger) Debug(string, ...any) {}
func (plainLogger) Info(string, ...any)  {}
func (plainLogger) Warn(string, ...any)  {}
func (plainLogger) Error(string, ...any) {}
func (plainLogger) Fatal(string, ...any) {}

func (p plainLogger) WithContext(context.Context) interfaces.Logger { return p }
