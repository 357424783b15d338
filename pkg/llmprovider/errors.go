package llmprovider

import "errors"

var (
	ErrNoProvidersConfigured = errors.New("no LLM providers configured")
	ErrAllProvidersFailed    = errors.New("all LLM providers failed")
	ErrUnknownProvider       = errors.New("unknown LLM provider name")
)
