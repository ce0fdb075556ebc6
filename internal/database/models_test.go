package database

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testShipment() (*Shipment, []TrackingEvent) {
	delivered := time.Date(2024, time.June, 10, 15, 15, 0, 0, time.UTC)
	older := time.Date(2024, time.June, 9, 23, 40, 0, 0, time.UTC)
	shipment := &Shipment{
		TrackingNumber: "111-2222222-3333333",
		Carrier:        "AMZL",
		Status:         "Delivered",
		IsDelivered:    true,
		DeliveryDate:   &delivered,
		LastUpdate:     &delivered,
	}
	events := []TrackingEvent{
		{Timestamp: delivered, Location: "Front door", Detail: "Delivered"},
		{Timestamp: older, Location: "Romulus, MI US", Detail: "Package arrived at a carrier facility"},
	}
	return shipment, events
}

func TestShipmentStore_UpsertAndGet(t *testing.T) {
	db := openTestDB(t)
	shipment, events := testShipment()

	if err := db.Shipments.Upsert(shipment, events); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if shipment.ID == 0 {
		t.Fatal("Upsert() did not set shipment ID")
	}

	got, err := db.Shipments.GetByTrackingNumber("111-2222222-3333333")
	if err != nil {
		t.Fatalf("GetByTrackingNumber() error = %v", err)
	}
	if got.Carrier != "AMZL" || !got.IsDelivered || got.Status != "Delivered" {
		t.Errorf("stored shipment = %+v", got)
	}
	if got.DeliveryDate == nil || !got.DeliveryDate.Equal(*shipment.DeliveryDate) {
		t.Errorf("DeliveryDate = %v, want %v", got.DeliveryDate, shipment.DeliveryDate)
	}

	stored, err := db.Shipments.EventsByShipment(got.ID)
	if err != nil {
		t.Fatalf("EventsByShipment() error = %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("got %d events, want 2", len(stored))
	}
	// Position preserves the most-recent-first order.
	if stored[0].Detail != "Delivered" || stored[1].Detail != "Package arrived at a carrier facility" {
		t.Errorf("events out of order: %+v", stored)
	}
}

func TestShipmentStore_UpsertReplaces(t *testing.T) {
	db := openTestDB(t)
	shipment, events := testShipment()

	if err := db.Shipments.Upsert(shipment, events[1:]); err != nil {
		t.Fatalf("first Upsert() error = %v", err)
	}

	// Second lookup found one more event; snapshot replaces the old one.
	if err := db.Shipments.Upsert(shipment, events); err != nil {
		t.Fatalf("second Upsert() error = %v", err)
	}

	all, err := db.Shipments.GetAll()
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("got %d shipments, want 1", len(all))
	}

	stored, err := db.Shipments.EventsByShipment(all[0].ID)
	if err != nil {
		t.Fatalf("EventsByShipment() error = %v", err)
	}
	if len(stored) != 2 {
		t.Errorf("got %d events after replace, want 2", len(stored))
	}
}

func TestShipmentStore_GetMissing(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Shipments.GetByTrackingNumber("nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByTrackingNumber() error = %v, want ErrNotFound", err)
	}
}

func TestShipmentStore_GetAllEmpty(t *testing.T) {
	db := openTestDB(t)

	all, err := db.Shipments.GetAll()
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if len(all) != 0 {
		t.Errorf("got %d shipments, want 0", len(all))
	}
}
