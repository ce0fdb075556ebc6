package carriers

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"unicode"
)

const upsShortName = "UPS"

// UPS recognizes UPS tracking numbers and builds tracking URLs. Live
// tracking goes through the UPS XML API, which needs account credentials
// this tool does not carry.
type UPS struct{}

// NewUPS creates the UPS backend.
func NewUPS() *UPS { return &UPS{} }

func (u *UPS) ShortName() string { return upsShortName }
func (u *UPS) LongName() string  { return upsShortName }

// Identify matches 1Z numbers with a valid check digit, and 18-digit Mail
// Innovations numbers.
func (u *UPS) Identify(trackingNumber string) bool {
	if isMailInnovationsNumber(trackingNumber) {
		return true
	}
	if len(trackingNumber) < 4 || trackingNumber[:2] != "1Z" {
		return false
	}
	last := rune(trackingNumber[len(trackingNumber)-1])
	if !unicode.IsDigit(last) || !isAlphanumeric(trackingNumber) {
		return false
	}
	return upsCheckDigitValid(trackingNumber[2:])
}

func isMailInnovationsNumber(trackingNumber string) bool {
	return len(trackingNumber) == 18 && isDigits(trackingNumber)
}

// upsCheckDigitValid verifies the mod-10 check digit over the code following
// the 1Z prefix. Letters map to digits as (ord - 63) mod 10.
func upsCheckDigitValid(code string) bool {
	total := 0
	for i, r := range code[:len(code)-1] {
		var d int
		if unicode.IsDigit(r) {
			d = int(r - '0')
		} else {
			d = (int(unicode.ToUpper(r)) - 63) % 10
		}
		if i%2 == 1 {
			d *= 2
		}
		total += d
	}
	check := 0
	if total%10 != 0 {
		check = 10 - total%10
	}
	want, err := strconv.Atoi(code[len(code)-1:])
	if err != nil {
		return false
	}
	return check == want
}

// Track requires UPS API credentials, which are not configured.
func (u *UPS) Track(ctx context.Context, trackingNumber string) (*TrackingInfo, error) {
	return nil, credentialsError(upsShortName)
}

// IsDelivered requires UPS API credentials, which are not configured.
func (u *UPS) IsDelivered(ctx context.Context, trackingNumber string) (bool, error) {
	return false, credentialsError(upsShortName)
}

// TrackingURL returns the UPS web tracking page for a number.
func (u *UPS) TrackingURL(trackingNumber string) string {
	return "http://wwwapps.ups.com/WebTracking/processInputRequest?TypeOfInquiryNumber=T&InquiryNumber1=" +
		url.QueryEscape(trackingNumber)
}

func credentialsError(carrier string) *APIError {
	return &APIError{
		Carrier: carrier,
		Message: fmt.Sprintf("%s tracking requires API credentials which are not configured", carrier),
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func isAlphanumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
