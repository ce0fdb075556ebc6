package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aheadley/packagetrack/internal/carriers"
	"github.com/aheadley/packagetrack/internal/database"
)

// stubCarrier is a canned backend for handler tests.
type stubCarrier struct {
	short string
	long  string
	info  *carriers.TrackingInfo
	err   error
}

func (s *stubCarrier) ShortName() string { return s.short }
func (s *stubCarrier) LongName() string  { return s.long }

func (s *stubCarrier) Identify(trackingNumber string) bool {
	return strings.HasPrefix(trackingNumber, s.short)
}

func (s *stubCarrier) Track(ctx context.Context, trackingNumber string) (*carriers.TrackingInfo, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.info, nil
}

func (s *stubCarrier) IsDelivered(ctx context.Context, trackingNumber string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.info.IsDelivered, nil
}

func (s *stubCarrier) TrackingURL(trackingNumber string) string {
	return "https://example.com/" + trackingNumber
}

func deliveredInfo(trackingNumber string) *carriers.TrackingInfo {
	info := carriers.NewTrackingInfo("STUB", trackingNumber)
	newest := time.Date(2024, time.June, 10, 15, 15, 0, 0, time.UTC)
	info.AddEvent("Front door", newest, "Delivered")
	info.AddEvent("Romulus, MI US", newest.Add(-16*time.Hour), "In transit")
	info.IsDelivered = true
	info.DeliveryDate = &newest
	return info
}

func newTestServer(t *testing.T, stub *stubCarrier) *httptest.Server {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	registry := carriers.NewRegistry()
	registry.Register(stub)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ts := httptest.NewServer(New(registry, db, logger).Router())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, url string, wantStatus int, v any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("GET %s status = %d, want %d: %s", url, resp.StatusCode, wantStatus, body)
	}
	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, &stubCarrier{short: "STUB", long: "Stub Carrier"})

	var body map[string]string
	getJSON(t, ts.URL+"/health", http.StatusOK, &body)
	if body["status"] != "ok" {
		t.Errorf("status = %q", body["status"])
	}
}

func TestListCarriers(t *testing.T) {
	ts := newTestServer(t, &stubCarrier{short: "STUB", long: "Stub Carrier"})

	var body []carrierInfo
	getJSON(t, ts.URL+"/api/carriers", http.StatusOK, &body)
	if len(body) != 1 || body[0].ShortName != "STUB" || body[0].LongName != "Stub Carrier" {
		t.Errorf("carriers = %+v", body)
	}
}

func TestTrack_Success(t *testing.T) {
	stub := &stubCarrier{short: "STUB", long: "Stub Carrier", info: deliveredInfo("STUB-1")}
	ts := newTestServer(t, stub)

	var info carriers.TrackingInfo
	getJSON(t, ts.URL+"/api/track/STUB-1", http.StatusOK, &info)

	if info.TrackingNumber != "STUB-1" || !info.IsDelivered || len(info.Events) != 2 {
		t.Errorf("tracking info = %+v", info)
	}

	// The lookup is stored as a snapshot.
	var detail shipmentDetail
	getJSON(t, ts.URL+"/api/shipments/STUB-1", http.StatusOK, &detail)
	if detail.Carrier != "STUB" || !detail.IsDelivered {
		t.Errorf("snapshot = %+v", detail.Shipment)
	}
	if len(detail.Events) != 2 || detail.Events[0].Detail != "Delivered" {
		t.Errorf("snapshot events = %+v", detail.Events)
	}
}

func TestTrack_UnrecognizedNumber(t *testing.T) {
	ts := newTestServer(t, &stubCarrier{short: "STUB", long: "Stub Carrier"})
	getJSON(t, ts.URL+"/api/track/OTHER-1", http.StatusBadRequest, nil)
}

func TestTrack_NumberNotFound(t *testing.T) {
	stub := &stubCarrier{short: "STUB", long: "Stub Carrier", err: &carriers.NumberError{
		Carrier: "STUB", TrackingNumber: "STUB-1", Message: "no shipment found",
	}}
	ts := newTestServer(t, stub)

	var body map[string]string
	getJSON(t, ts.URL+"/api/track/STUB-1", http.StatusNotFound, &body)
	if body["error"] != "no shipment found" {
		t.Errorf("error = %q", body["error"])
	}
}

func TestTrack_CarrierFailure(t *testing.T) {
	stub := &stubCarrier{short: "STUB", long: "Stub Carrier", err: &carriers.APIError{
		Carrier: "STUB", StatusCode: 503, Message: "carrier returned non-success status",
	}}
	ts := newTestServer(t, stub)
	getJSON(t, ts.URL+"/api/track/STUB-1", http.StatusBadGateway, nil)
}

func TestListShipments(t *testing.T) {
	stub := &stubCarrier{short: "STUB", long: "Stub Carrier", info: deliveredInfo("STUB-1")}
	ts := newTestServer(t, stub)

	var empty []database.Shipment
	getJSON(t, ts.URL+"/api/shipments", http.StatusOK, &empty)
	if len(empty) != 0 {
		t.Errorf("expected no shipments, got %+v", empty)
	}

	getJSON(t, ts.URL+"/api/track/STUB-1", http.StatusOK, nil)

	var shipments []database.Shipment
	getJSON(t, ts.URL+"/api/shipments", http.StatusOK, &shipments)
	if len(shipments) != 1 || shipments[0].TrackingNumber != "STUB-1" {
		t.Errorf("shipments = %+v", shipments)
	}
}

func TestGetShipment_Missing(t *testing.T) {
	ts := newTestServer(t, &stubCarrier{short: "STUB", long: "Stub Carrier"})
	getJSON(t, ts.URL+"/api/shipments/STUB-404", http.StatusNotFound, nil)
}
