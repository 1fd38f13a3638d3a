package providers

import (
	"fmt"
	"strings"

	"papernotes/internal/config"
)

type NamedToolCaller struct {
	Ref      ProviderRef
	Provider ToolCaller
}

type NamedEmbedder struct {
	Ref      ProviderRef
	Provider Embedder
}

type Manager struct {
	llmProviders   []NamedToolCaller
	embedProviders []NamedEmbedder
}

func NewManager(cfg config.Config) (*Manager, error) {
	llmRefs := ParseProviderList(cfg.LLMProviders)
	embedRefs := ParseProviderList(cfg.EmbedProviders)

	m := &Manager{}
	for _, ref := range llmRefs {
		p, err := buildProvider(ref, cfg.EmbedDim)
		if err != nil {
			return nil, err
		}
		llm, ok := p.(ToolCaller)
		if !ok {
			return nil, fmt.Errorf("provider %s does not support tool calls", ref.Raw)
		}
		m.llmProviders = append(m.llmProviders, NamedToolCaller{Ref: ref, Provider: llm})
	}
	for _, ref := range embedRefs {
		p, err := buildProvider(ref, cfg.EmbedDim)
		if err != nil {
			return nil, err
		}
		embed, ok := p.(Embedder)
		if !ok {
			return nil, fmt.Errorf("provider %s does not support embeddings", ref.Raw)
		}
		m.embedProviders = append(m.embedProviders, NamedEmbedder{Ref: ref, Provider: embed})
	}
	return m, nil
}

func (m *Manager) FirstToolCaller() ToolCaller {
	if len(m.llmProviders) == 0 {
		return NewMockProvider(0)
	}
	return m.llmProviders[0].Provider
}

func (m *Manager) FirstEmbedder() Embedder {
	if len(m.embedProviders) == 0 {
		return NewMockProvider(0)
	}
	return m.embedProviders[0].Provider
}

func buildProvider(ref ProviderRef, dim int) (any, error) {
	switch strings.ToLower(ref.Name) {
	case "mock":
		return NewMockProvider(dim), nil
	case "openai":
		return NewOpenAIProvider(ref.KeyAlias), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", ref.Name)
	}
}
