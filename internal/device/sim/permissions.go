package sim

import (
	"context"
	"sync"

	"guardian/internal/domain"
)

// Permissions is a mutable grant table.
type Permissions struct {
	mu             sync.Mutex
	granted        map[domain.Capability]bool
	grantOnRequest bool
	requests       map[domain.Capability]int
}

// NewPermissions returns a table with the given capabilities granted.
// Requests for anything else are denied until SetGrantOnRequest(true).
func NewPermissions(granted ...domain.Capability) *Permissions {
	p := &Permissions{
		granted:  make(map[domain.Capability]bool),
		requests: make(map[domain.Capability]int),
	}
	for _, c := range granted {
		p.granted[c] = true
	}
	return p
}

// SetGrantOnRequest makes Request grant whatever is asked for.
func (p *Permissions) SetGrantOnRequest(v bool) {
	p.mu.Lock()
	p.grantOnRequest = v
	p.mu.Unlock()
}

// Grant marks c as granted.
func (p *Permissions) Grant(c domain.Capability) {
	p.mu.Lock()
	p.granted[c] = true
	p.mu.Unlock()
}

// Revoke marks c as denied.
func (p *Permissions) Revoke(c domain.Capability) {
	p.mu.Lock()
	delete(p.granted, c)
	p.mu.Unlock()
}

// Granted implements domain.PermissionGate.
func (p *Permissions) Granted(_ context.Context, c domain.Capability) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.granted[c], nil
}

// Request implements domain.PermissionGate.
func (p *Permissions) Request(_ context.Context, c domain.Capability) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.requests[c]++
	if p.grantOnRequest {
		p.granted[c] = true
	}
	return p.granted[c], nil
}

// Requests returns how often c was requested.
func (p *Permissions) Requests(c domain.Capability) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.requests[c]
}

var _ domain.PermissionGate = (*Permissions)(nil)
