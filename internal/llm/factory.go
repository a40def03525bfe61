package llm

import (
	"fmt"

	"claimproc/internal/config"
	"claimproc/internal/port"
)

// ProviderFactory is a function that creates a ChatCompleter from an LLM config.
type ProviderFactory func(cfg *config.LLMConfig) (port.ChatCompleter, error)

// registry of completer provider factories, populated by init() in each
// provider package or explicitly via RegisterProvider.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a completer provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewCompleter creates a ChatCompleter from an LLM config using the registered factory.
func NewCompleter(cfg *config.LLMConfig) (port.ChatCompleter, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
