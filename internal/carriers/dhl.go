package carriers

import (
	"context"
	"net/url"
)

const dhlShortName = "DHL"

// DHL recognizes DHL Express air waybill numbers and builds tracking URLs.
// Live tracking goes through the DHL XML-PI service, which needs a site id
// and password this tool does not carry.
type DHL struct{}

// NewDHL creates the DHL backend.
func NewDHL() *DHL { return &DHL{} }

func (d *DHL) ShortName() string { return dhlShortName }
func (d *DHL) LongName() string  { return dhlShortName }

// Identify matches 10- or 11-digit air waybill numbers.
func (d *DHL) Identify(trackingNumber string) bool {
	switch len(trackingNumber) {
	case 10, 11:
		return isDigits(trackingNumber)
	default:
		return false
	}
}

// Track requires DHL API credentials, which are not configured.
func (d *DHL) Track(ctx context.Context, trackingNumber string) (*TrackingInfo, error) {
	return nil, credentialsError(dhlShortName)
}

// IsDelivered requires DHL API credentials, which are not configured.
func (d *DHL) IsDelivered(ctx context.Context, trackingNumber string) (bool, error) {
	return false, credentialsError(dhlShortName)
}

// TrackingURL returns the DHL web tracking page for a number.
func (d *DHL) TrackingURL(trackingNumber string) string {
	return "http://www.dhl.com/content/g0/en/express/tracking.shtml?brand=DHL&AWB=" +
		url.QueryEscape(trackingNumber)
}
