// Package packagetrack is a simple, generic interface to track packages.
//
// Supported carriers: Amazon Logistics, UPS, U.S. Postal Service, DHL,
// CanadaPost. All carriers support tracking-number identification and
// tracking URLs; live tracking is available where the carrier exposes it
// without API credentials.
package packagetrack

import (
	"context"
	"fmt"

	"github.com/aheadley/packagetrack/internal/carriers"
)

// UnsupportedNumberError means no registered carrier recognizes the
// tracking number's format.
type UnsupportedNumberError struct {
	TrackingNumber string
}

func (e *UnsupportedNumberError) Error() string {
	return fmt.Sprintf("no carrier recognizes tracking number %q", e.TrackingNumber)
}

// Package is a shipment to be tracked. The carrier is resolved lazily from
// the tracking number's format the first time it is needed.
type Package struct {
	TrackingNumber string

	registry *carriers.Registry
	carrier  carriers.Carrier
}

// NewPackage creates a package whose carrier is resolved from the registry.
func NewPackage(trackingNumber string, registry *carriers.Registry) *Package {
	return &Package{TrackingNumber: trackingNumber, registry: registry}
}

// Carrier returns the backend that recognizes this package's tracking
// number.
func (p *Package) Carrier() (carriers.Carrier, error) {
	if p.carrier == nil {
		c, ok := p.registry.Find(p.TrackingNumber)
		if !ok {
			return nil, &UnsupportedNumberError{TrackingNumber: p.TrackingNumber}
		}
		p.carrier = c
	}
	return p.carrier, nil
}

// Track fetches the tracking info for this package.
func (p *Package) Track(ctx context.Context) (*carriers.TrackingInfo, error) {
	c, err := p.Carrier()
	if err != nil {
		return nil, err
	}
	return c.Track(ctx, p.TrackingNumber)
}

// URL returns the carrier's web tracking page for this package.
func (p *Package) URL() (string, error) {
	c, err := p.Carrier()
	if err != nil {
		return "", err
	}
	return c.TrackingURL(p.TrackingNumber), nil
}
