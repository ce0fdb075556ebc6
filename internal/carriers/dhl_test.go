package carriers

import "testing"

func TestDHL_Identify(t *testing.T) {
	d := NewDHL()

	tests := []struct {
		name           string
		trackingNumber string
		want           bool
	}{
		{"10 digits", "1234567890", true},
		{"11 digits", "12345678901", true},
		{"9 digits", "123456789", false},
		{"12 digits", "123456789012", false},
		{"10 chars with letter", "12345678A0", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.Identify(tt.trackingNumber); got != tt.want {
				t.Errorf("Identify(%q) = %v, want %v", tt.trackingNumber, got, tt.want)
			}
		})
	}
}

func TestDHL_TrackingURL(t *testing.T) {
	d := NewDHL()
	got := d.TrackingURL("1234567890")
	want := "http://www.dhl.com/content/g0/en/express/tracking.shtml?brand=DHL&AWB=1234567890"
	if got != want {
		t.Errorf("TrackingURL() = %q, want %q", got, want)
	}
}
