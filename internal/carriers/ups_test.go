package carriers

import (
	"context"
	"errors"
	"testing"
)

func TestUPS_Identify(t *testing.T) {
	u := NewUPS()

	tests := []struct {
		name           string
		trackingNumber string
		want           bool
	}{
		{"valid 1Z with check digit", "1Z1111111111111118", true},
		{"wrong check digit", "1Z1111111111111119", false},
		{"mail innovations 18 digits", "123456789012345678", true},
		{"17 digits", "12345678901234567", false},
		{"missing 1Z prefix", "2Z1111111111111118", false},
		{"non-alphanumeric", "1Z11111111111111-8", false},
		{"check position not a digit", "1Z111111111111111A", false},
		{"too short", "1Z8", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := u.Identify(tt.trackingNumber); got != tt.want {
				t.Errorf("Identify(%q) = %v, want %v", tt.trackingNumber, got, tt.want)
			}
		})
	}
}

func TestUPS_TrackingURL(t *testing.T) {
	u := NewUPS()
	got := u.TrackingURL("1Z1111111111111118")
	want := "http://wwwapps.ups.com/WebTracking/processInputRequest?TypeOfInquiryNumber=T&InquiryNumber1=1Z1111111111111118"
	if got != want {
		t.Errorf("TrackingURL() = %q, want %q", got, want)
	}
}

func TestUPS_Track_NeedsCredentials(t *testing.T) {
	u := NewUPS()
	_, err := u.Track(context.Background(), "1Z1111111111111118")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Track() error = %v, want *APIError", err)
	}
	if apiErr.Carrier != "UPS" {
		t.Errorf("Carrier = %q", apiErr.Carrier)
	}

	if _, err := u.IsDelivered(context.Background(), "1Z1111111111111118"); !errors.As(err, &apiErr) {
		t.Fatalf("IsDelivered() error = %v, want *APIError", err)
	}
}
