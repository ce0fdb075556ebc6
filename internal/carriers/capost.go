package carriers

import (
	"context"
	"net/url"
	"strings"
)

const (
	capostShortName = "CAPost"
	capostLongName  = "CanadaPost"
)

// CanadaPost recognizes Canada Post tracking numbers and builds tracking
// URLs. Live tracking goes through the Canada Post SOAP service, which needs
// account credentials this tool does not carry.
type CanadaPost struct{}

// NewCanadaPost creates the Canada Post backend.
func NewCanadaPost() *CanadaPost { return &CanadaPost{} }

func (c *CanadaPost) ShortName() string { return capostShortName }
func (c *CanadaPost) LongName() string  { return capostLongName }

// Identify matches 11- and 13-char international labels ending in CA, and
// 16-digit domestic PINs.
func (c *CanadaPost) Identify(trackingNumber string) bool {
	switch len(trackingNumber) {
	case 11, 13:
		return isAlpha(trackingNumber[0:2]) && strings.HasSuffix(trackingNumber, "CA")
	case 16:
		return isDigits(trackingNumber)
	default:
		return false
	}
}

// Track requires Canada Post API credentials, which are not configured.
func (c *CanadaPost) Track(ctx context.Context, trackingNumber string) (*TrackingInfo, error) {
	return nil, credentialsError(capostShortName)
}

// IsDelivered requires Canada Post API credentials, which are not configured.
func (c *CanadaPost) IsDelivered(ctx context.Context, trackingNumber string) (bool, error) {
	return false, credentialsError(capostShortName)
}

// TrackingURL returns the Canada Post web tracking page for a number.
func (c *CanadaPost) TrackingURL(trackingNumber string) string {
	return "http://www.canadapost.ca/cpotools/apps/track/personal/findByTrackNumber?trackingNumber=" +
		url.QueryEscape(trackingNumber) + "&LOCALE=en"
}
