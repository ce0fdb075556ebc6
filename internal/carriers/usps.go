package carriers

import (
	"context"
	"net/url"
	"strings"
)

const (
	uspsShortName = "USPS"
	uspsLongName  = "U.S. Postal Service"
)

// USPS recognizes USPS tracking numbers and builds tracking URLs. Live
// tracking goes through the USPS TrackV2 API, which needs a registered user
// id this tool does not carry.
type USPS struct{}

// NewUSPS creates the USPS backend.
func NewUSPS() *USPS { return &USPS{} }

func (u *USPS) ShortName() string { return uspsShortName }
func (u *USPS) LongName() string  { return uspsLongName }

// Identify dispatches on length: 13-char international labels
// (XX#########XX), 20-digit numbers starting with 0 or 7, and 22- or
// 30-digit IMpb numbers.
func (u *USPS) Identify(trackingNumber string) bool {
	switch len(trackingNumber) {
	case 13:
		return isAlpha(trackingNumber[0:2]) &&
			isDigits(trackingNumber[2:9]) &&
			isAlpha(trackingNumber[11:13])
	case 20:
		return isDigits(trackingNumber) &&
			(strings.HasPrefix(trackingNumber, "0") || strings.HasPrefix(trackingNumber, "7"))
	case 22, 30:
		return isDigits(trackingNumber)
	default:
		return false
	}
}

// Track requires USPS API credentials, which are not configured.
func (u *USPS) Track(ctx context.Context, trackingNumber string) (*TrackingInfo, error) {
	return nil, credentialsError(uspsShortName)
}

// IsDelivered requires USPS API credentials, which are not configured.
func (u *USPS) IsDelivered(ctx context.Context, trackingNumber string) (bool, error) {
	return false, credentialsError(uspsShortName)
}

// TrackingURL returns the USPS web tracking page for a number.
func (u *USPS) TrackingURL(trackingNumber string) string {
	return "https://tools.usps.com/go/TrackConfirmAction.action?tLabels=" +
		url.QueryEscape(trackingNumber)
}
