package llmprovider

import (
	"fmt"
	"sort"

	"ai-task-scheduler/pkg/gemini"
)

// ProviderConfig describes one provider entry in the configured chain.
type ProviderConfig struct {
	Name     string
	Enabled  bool
	Priority int
	APIKey   string
	Model    string
	BaseURL  string
}

// InitializeProviders creates Provider instances from the configured chain.
// Returns providers sorted by priority (ascending) with disabled providers
// filtered out. A provider that fails to initialize is skipped so a single
// misconfigured entry does not take down the whole chain.
func InitializeProviders(configs []ProviderConfig) ([]Provider, error) {
	var enabled []ProviderConfig
	for _, p := range configs {
		if p.Enabled {
			enabled = append(enabled, p)
		}
	}

	if len(enabled) == 0 {
		return nil, ErrNoProvidersConfigured
	}

	sort.Slice(enabled, func(i, j int) bool {
		return enabled[i].Priority < enabled[j].Priority
	})

	var providers []Provider
	var initErrs []error

	for _, p := range enabled {
		provider, err := createProvider(p)
		if err != nil {
			initErrs = append(initErrs, fmt.Errorf("provider %s (priority %d): %w", p.Name, p.Priority, err))
			continue
		}
		providers = append(providers, provider)
	}

	if len(providers) == 0 {
		return nil, fmt.Errorf("no providers successfully initialized: %v", initErrs)
	}

	return providers, nil
}

func createProvider(cfg ProviderConfig) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	switch cfg.Name {
	case "openai":
		if cfg.Model == "" {
			return nil, fmt.Errorf("model is required")
		}
		return NewOpenAIAdapter(cfg.APIKey, cfg.Model, cfg.BaseURL), nil

	case "gemini":
		return NewGeminiAdapter(gemini.NewClient(gemini.Config{
			APIKey: cfg.APIKey,
			Model:  cfg.Model,
			APIURL: cfg.BaseURL,
		})), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Name)
	}
}
