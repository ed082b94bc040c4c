package asset

import (
	"fmt"
	"sync"
)

// Registry is a thread-safe registry of known assets.
type Registry struct {
	byContract map[string]*Asset
	byIssuer   map[string]*Asset
	bySymbol   map[string]*Asset
	mu         sync.RWMutex
}

// NewRegistry creates a new empty asset registry.
func NewRegistry() *Registry {
	return &Registry{
		byContract: make(map[string]*Asset),
		byIssuer:   make(map[string]*Asset),
		bySymbol:   make(map[string]*Asset),
	}
}

// Register adds an asset to the registry.
// Panics if an asset with the same contract id is already registered.
func (r *Registry) Register(a *Asset) {
	if a == nil {
		panic("asset: cannot register nil asset")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byContract[a.ContractID]; exists {
		panic(fmt.Sprintf("asset: %s already registered", a.ContractID))
	}

	r.byContract[a.ContractID] = a
	if a.Issuer != "" {
		r.byIssuer[a.Issuer] = a
	}
	r.bySymbol[a.Symbol] = a
}

// ByContract retrieves an asset by SAC contract id.
func (r *Registry) ByContract(contractID string) (*Asset, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byContract[contractID]
	return a, ok
}

// ByIssuer retrieves an asset by its classic issuer address.
func (r *Registry) ByIssuer(issuer string) (*Asset, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byIssuer[issuer]
	return a, ok
}

// BySymbol retrieves an asset by ticker symbol.
func (r *Registry) BySymbol(symbol string) (*Asset, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.bySymbol[symbol]
	return a, ok
}

// Resolve maps any identifier a balance map may be keyed by: a SAC
// contract id, a classic issuer address, or a bare symbol. Unknown
// identifiers fall back to a placeholder asset so balances never get
// dropped.
func (r *Registry) Resolve(identifier string) *Asset {
	if a, ok := r.ByContract(identifier); ok {
		return a
	}
	if a, ok := r.ByIssuer(identifier); ok {
		return a
	}
	if a, ok := r.BySymbol(identifier); ok {
		return a
	}

	return &Asset{
		ContractID: identifier,
		Symbol:     shortIdentifier(identifier),
		Name:       "Unknown Token",
	}
}

// All returns all registered assets.
func (r *Registry) All() []*Asset {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Asset, 0, len(r.byContract))
	for _, a := range r.byContract {
		result = append(result, a)
	}
	return result
}

// Count returns the number of registered assets.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byContract)
}

func shortIdentifier(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:4] + ".." + id[len(id)-4:]
}
