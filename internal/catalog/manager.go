package catalog

import (
	"fmt"
	"sort"
	"sync"

	"github.com/cesargomez89/meting-gateway/internal/logger"
)

// ProviderManager is the registry of providers addressable by name.
type ProviderManager struct {
	providers map[string]Provider
	logger    *logger.Logger
	mu        sync.RWMutex
}

func NewProviderManager(log *logger.Logger) *ProviderManager {
	if log == nil {
		log = logger.Default()
	}
	return &ProviderManager{
		providers: make(map[string]Provider),
		logger:    log.WithComponent("providers"),
	}
}

// Register adds p under its name, replacing any provider already registered there.
func (m *ProviderManager) Register(p Provider) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logger.Info("Registering provider", "provider", p.Name())
	m.providers[p.Name()] = p
}

func (m *ProviderManager) Get(name string) (Provider, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.providers[name]
	if !ok {
		return nil, &UnknownProviderError{Name: name}
	}
	return p, nil
}

// Names returns the registered provider names in sorted order.
func (m *ProviderManager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.providers))
	for name := range m.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type UnknownProviderError struct {
	Name string
}

func (e *UnknownProviderError) Error() string {
	return fmt.Sprintf("unknown provider %q", e.Name)
}
