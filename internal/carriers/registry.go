package carriers

import (
	"log/slog"
	"strings"
)

// Registry is an ordered dispatch table of carrier backends. A tracking
// number is routed to the first registered backend whose Identify predicate
// matches it, so registration order matters when formats overlap.
type Registry struct {
	carriers []Carrier
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends a backend to the dispatch table.
func (r *Registry) Register(c Carrier) {
	r.carriers = append(r.carriers, c)
}

// Find returns the first backend that recognizes the tracking number.
func (r *Registry) Find(trackingNumber string) (Carrier, bool) {
	for _, c := range r.carriers {
		if c.Identify(trackingNumber) {
			return c, true
		}
	}
	return nil, false
}

// Get returns a backend by its short name, case-insensitively.
func (r *Registry) Get(shortName string) (Carrier, bool) {
	for _, c := range r.carriers {
		if strings.EqualFold(c.ShortName(), shortName) {
			return c, true
		}
	}
	return nil, false
}

// Carriers returns the registered backends in dispatch order.
func (r *Registry) Carriers() []Carrier {
	out := make([]Carrier, len(r.carriers))
	copy(out, r.carriers)
	return out
}

// DefaultRegistry builds a registry with every supported carrier. The Amazon
// backend takes its own configuration; the credential-gated carriers need
// none for identification and URL building.
//
// Canada Post is registered before USPS: both accept 13-char international
// labels, and the CA-suffix predicate is the more specific of the two.
func DefaultRegistry(amazonCfg AmazonConfig, logger *slog.Logger) *Registry {
	r := NewRegistry()
	r.Register(NewAmazon(amazonCfg, logger))
	r.Register(NewUPS())
	r.Register(NewCanadaPost())
	r.Register(NewUSPS())
	r.Register(NewDHL())
	return r
}
