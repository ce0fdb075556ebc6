package carriers

import (
	"context"
	"fmt"
	"time"
)

// TrackingEvent is a single entry in a shipment's history, like a status change.
type TrackingEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Location  string    `json:"location"`
	Detail    string    `json:"detail"`
}

// TrackingInfo is the carrier-agnostic result of a tracking lookup.
//
// Events are kept in the order the carrier reports them, which is
// most-recent-first. Index 0 is therefore the latest known event and is what
// Status, Location and LastUpdate read.
type TrackingInfo struct {
	TrackingNumber string          `json:"tracking_number"`
	Carrier        string          `json:"carrier"`
	IsDelivered    bool            `json:"is_delivered"`
	DeliveryDate   *time.Time      `json:"delivery_date,omitempty"`
	Events         []TrackingEvent `json:"events"`
}

// NewTrackingInfo creates an empty tracking record for a tracking number.
func NewTrackingInfo(carrier, trackingNumber string) *TrackingInfo {
	return &TrackingInfo{
		TrackingNumber: trackingNumber,
		Carrier:        carrier,
		Events:         []TrackingEvent{},
	}
}

// AddEvent appends an event. Callers append in carrier order (most recent
// first); events are never re-sorted.
func (i *TrackingInfo) AddEvent(location string, timestamp time.Time, detail string) {
	i.Events = append(i.Events, TrackingEvent{
		Timestamp: timestamp,
		Location:  location,
		Detail:    detail,
	})
}

// Status returns the detail text of the most recent event, or "" if no events
// were recorded.
func (i *TrackingInfo) Status() string {
	if len(i.Events) == 0 {
		return ""
	}
	return i.Events[0].Detail
}

// Location returns the location of the most recent event.
func (i *TrackingInfo) Location() string {
	if len(i.Events) == 0 {
		return ""
	}
	return i.Events[0].Location
}

// LastUpdate returns the timestamp of the most recent event, zero if none.
func (i *TrackingInfo) LastUpdate() time.Time {
	if len(i.Events) == 0 {
		return time.Time{}
	}
	return i.Events[0].Timestamp
}

// Carrier is the capability set every backend implements. Identify and
// TrackingURL are pure; Track and IsDelivered hit the carrier.
type Carrier interface {
	// ShortName returns the carrier code, e.g. "AMZL".
	ShortName() string

	// LongName returns the human-readable carrier name.
	LongName() string

	// Identify reports whether the tracking number has this carrier's format.
	Identify(trackingNumber string) bool

	// Track fetches and normalizes the tracking record for a number.
	Track(ctx context.Context, trackingNumber string) (*TrackingInfo, error)

	// IsDelivered reports whether the shipment has been delivered. This
	// performs a full Track call.
	IsDelivered(ctx context.Context, trackingNumber string) (bool, error)

	// TrackingURL returns the carrier's web tracking page for a number.
	TrackingURL(trackingNumber string) string
}

// APIError means the lookup could not be completed: the fetch failed at the
// transport level or the carrier answered with a non-success status. The
// condition may be transient; callers can retry later.
type APIError struct {
	Carrier    string
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Carrier, e.Message, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: %s (HTTP %d)", e.Carrier, e.Message, e.StatusCode)
	default:
		return fmt.Sprintf("%s: %s", e.Carrier, e.Message)
	}
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// NumberError means the carrier answered but does not know the tracking
// number. Retrying will not help.
type NumberError struct {
	Carrier        string
	TrackingNumber string
	Message        string
}

func (e *NumberError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Carrier, e.TrackingNumber, e.Message)
}
