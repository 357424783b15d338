package llmprovider

import (
	"context"
	"errors"
	"testing"
	"time"
)

// mockProvider is a test implementation of the Provider interface
type mockProvider struct {
	name       string
	model      string
	shouldFail bool
	response   *Response
	callCount  int
}

func (m *mockProvider) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	m.callCount++
	if m.shouldFail {
		return nil, errors.New("mock provider error")
	}
	return m.response, nil
}

func (m *mockProvider) Name() string {
	return m.name
}

func (m *mockProvider) Model() string {
	return m.model
}

// mockLogger is a test implementation of the Logger interface
type mockLogger struct {
	infoCount int
	warnCount int
}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     { m.infoCount++ }
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   { m.infoCount++ }
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     { m.warnCount++ }
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   { m.warnCount++ }
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}

func testConfig() *Config {
	return &Config{
		FallbackEnabled: true,
		RetryAttempts:   2,
		RetryDelay:      time.Millisecond,
	}
}

func TestGenerateContent_SuccessWithPrimaryProvider(t *testing.T) {
	expected := &Response{
		Text:         "hello from primary",
		ProviderName: "primary",
		ModelName:    "primary-model",
		Usage:        &Usage{InputTokens: 100, OutputTokens: 50, TotalTokens: 150},
	}

	primary := &mockProvider{name: "primary", model: "primary-model", response: expected}
	manager := NewManager([]Provider{primary}, testConfig(), &mockLogger{})

	resp, err := manager.GenerateContent(context.Background(), &Request{
		Messages: []Message{{Role: "user", Content: "hello"}},
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if resp.Text != expected.Text {
		t.Errorf("expected text %q, got %q", expected.Text, resp.Text)
	}
	if primary.callCount != 1 {
		t.Errorf("expected 1 call to primary, got %d", primary.callCount)
	}
}

func TestGenerateContent_FallbackToSecondary(t *testing.T) {
	primary := &mockProvider{name: "primary", model: "m1", shouldFail: true}
	secondary := &mockProvider{
		name:  "secondary",
		model: "m2",
		response: &Response{
			Text:         "hello from secondary",
			ProviderName: "secondary",
			ModelName:    "m2",
			Usage:        &Usage{},
		},
	}

	logger := &mockLogger{}
	manager := NewManager([]Provider{primary, secondary}, testConfig(), logger)

	resp, err := manager.GenerateContent(context.Background(), &Request{})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if resp.ProviderName != "secondary" {
		t.Errorf("expected response from secondary, got %q", resp.ProviderName)
	}
	if primary.callCount != 2 {
		t.Errorf("expected primary retried twice, got %d calls", primary.callCount)
	}
	if logger.warnCount == 0 {
		t.Error("expected failure to be logged")
	}
}

func TestGenerateContent_AllProvidersFail(t *testing.T) {
	primary := &mockProvider{name: "primary", model: "m1", shouldFail: true}
	secondary := &mockProvider{name: "secondary", model: "m2", shouldFail: true}

	manager := NewManager([]Provider{primary, secondary}, testConfig(), &mockLogger{})

	_, err := manager.GenerateContent(context.Background(), &Request{})
	if !errors.Is(err, ErrAllProvidersFailed) {
		t.Fatalf("expected ErrAllProvidersFailed, got: %v", err)
	}
	if secondary.callCount == 0 {
		t.Error("expected secondary to be tried after primary failed")
	}
}

func TestGenerateContent_FallbackDisabled(t *testing.T) {
	primary := &mockProvider{name: "primary", model: "m1", shouldFail: true}
	secondary := &mockProvider{name: "secondary", model: "m2"}

	cfg := testConfig()
	cfg.FallbackEnabled = false
	manager := NewManager([]Provider{primary, secondary}, cfg, &mockLogger{})

	_, err := manager.GenerateContent(context.Background(), &Request{})
	if err == nil {
		t.Fatal("expected error when primary fails and fallback is disabled")
	}
	if secondary.callCount != 0 {
		t.Errorf("expected secondary never tried, got %d calls", secondary.callCount)
	}
}

func TestGenerateContent_NoProviders(t *testing.T) {
	manager := NewManager(nil, testConfig(), &mockLogger{})

	_, err := manager.GenerateContent(context.Background(), &Request{})
	if !errors.Is(err, ErrNoProvidersConfigured) {
		t.Fatalf("expected ErrNoProvidersConfigured, got: %v", err)
	}
}

func TestGenerateContent_ContextCancelled(t *testing.T) {
	primary := &mockProvider{name: "primary", model: "m1", shouldFail: true}
	manager := NewManager([]Provider{primary}, testConfig(), &mockLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := manager.GenerateContent(ctx, &Request{})
	if err == nil {
		t.Fatal("expected error from cancelled context")
	}
}

func TestInitializeProviders(t *testing.T) {
	t.Run("none enabled", func(t *testing.T) {
		_, err := InitializeProviders([]ProviderConfig{
			{Name: "openai", Enabled: false, APIKey: "k", Model: "m"},
		})
		if !errors.Is(err, ErrNoProvidersConfigured) {
			t.Fatalf("expected ErrNoProvidersConfigured, got: %v", err)
		}
	})

	t.Run("sorted by priority", func(t *testing.T) {
		providers, err := InitializeProviders([]ProviderConfig{
			{Name: "gemini", Enabled: true, Priority: 2, APIKey: "k", Model: "g"},
			{Name: "openai", Enabled: true, Priority: 1, APIKey: "k", Model: "o"},
		})
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if len(providers) != 2 {
			t.Fatalf("expected 2 providers, got %d", len(providers))
		}
		if providers[0].Name() != "openai" || providers[1].Name() != "gemini" {
			t.Errorf("expected priority order openai, gemini; got %s, %s",
				providers[0].Name(), providers[1].Name())
		}
	})

	t.Run("skips broken entries", func(t *testing.T) {
		providers, err := InitializeProviders([]ProviderConfig{
			{Name: "openai", Enabled: true, Priority: 1, APIKey: "", Model: "m"},
			{Name: "gemini", Enabled: true, Priority: 2, APIKey: "k", Model: "g"},
		})
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if len(providers) != 1 || providers[0].Name() != "gemini" {
			t.Fatalf("expected only gemini to survive, got %d providers", len(providers))
		}
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := InitializeProviders([]ProviderConfig{
			{Name: "mystery", Enabled: true, APIKey: "k", Model: "m"},
		})
		if err == nil {
			t.Fatal("expected error for unknown provider name")
		}
	})
}
