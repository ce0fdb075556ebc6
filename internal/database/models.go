package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a shipment does not exist.
var ErrNotFound = errors.New("shipment not found")

// Shipment is a stored snapshot of the last completed lookup for a tracking
// number.
type Shipment struct {
	ID             int64      `json:"id"`
	TrackingNumber string     `json:"tracking_number"`
	Carrier        string     `json:"carrier"`
	Status         string     `json:"status"`
	IsDelivered    bool       `json:"is_delivered"`
	DeliveryDate   *time.Time `json:"delivery_date,omitempty"`
	LastUpdate     *time.Time `json:"last_update,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// TrackingEvent is one stored history entry. Position preserves the
// carrier's most-recent-first ordering; position 0 is the latest event.
type TrackingEvent struct {
	ID         int64     `json:"id"`
	ShipmentID int64     `json:"shipment_id"`
	Position   int       `json:"position"`
	Timestamp  time.Time `json:"timestamp"`
	Location   string    `json:"location"`
	Detail     string    `json:"detail"`
}

// ShipmentStore handles database operations for shipments and their events.
type ShipmentStore struct {
	db *sql.DB
}

func NewShipmentStore(db *sql.DB) *ShipmentStore {
	return &ShipmentStore{db: db}
}

// Upsert stores a completed lookup, replacing any previous snapshot and its
// event history.
func (s *ShipmentStore) Upsert(shipment *Shipment, events []TrackingEvent) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO shipments (tracking_number, carrier, status, is_delivered, delivery_date, last_update)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(tracking_number) DO UPDATE SET
			carrier = excluded.carrier,
			status = excluded.status,
			is_delivered = excluded.is_delivered,
			delivery_date = excluded.delivery_date,
			last_update = excluded.last_update,
			updated_at = CURRENT_TIMESTAMP`,
		shipment.TrackingNumber, shipment.Carrier, shipment.Status,
		shipment.IsDelivered, shipment.DeliveryDate, shipment.LastUpdate)
	if err != nil {
		return fmt.Errorf("failed to upsert shipment: %w", err)
	}

	// LastInsertId is unreliable on conflict; read the row id back.
	var shipmentID int64
	if err := tx.QueryRow(`SELECT id FROM shipments WHERE tracking_number = ?`,
		shipment.TrackingNumber).Scan(&shipmentID); err != nil {
		return fmt.Errorf("failed to read shipment id: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM tracking_events WHERE shipment_id = ?`, shipmentID); err != nil {
		return fmt.Errorf("failed to clear events: %w", err)
	}
	for i, ev := range events {
		if _, err := tx.Exec(`
			INSERT INTO tracking_events (shipment_id, position, timestamp, location, detail)
			VALUES (?, ?, ?, ?, ?)`,
			shipmentID, i, ev.Timestamp, ev.Location, ev.Detail); err != nil {
			return fmt.Errorf("failed to insert event: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	shipment.ID = shipmentID
	return nil
}

// GetByTrackingNumber returns one stored shipment.
func (s *ShipmentStore) GetByTrackingNumber(trackingNumber string) (*Shipment, error) {
	row := s.db.QueryRow(`
		SELECT id, tracking_number, carrier, status, is_delivered,
		       delivery_date, last_update, created_at, updated_at
		FROM shipments WHERE tracking_number = ?`, trackingNumber)

	var shipment Shipment
	err := row.Scan(&shipment.ID, &shipment.TrackingNumber, &shipment.Carrier,
		&shipment.Status, &shipment.IsDelivered, &shipment.DeliveryDate,
		&shipment.LastUpdate, &shipment.CreatedAt, &shipment.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shipment: %w", err)
	}
	return &shipment, nil
}

// GetAll returns all stored shipments, most recently updated first.
func (s *ShipmentStore) GetAll() ([]Shipment, error) {
	rows, err := s.db.Query(`
		SELECT id, tracking_number, carrier, status, is_delivered,
		       delivery_date, last_update, created_at, updated_at
		FROM shipments ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list shipments: %w", err)
	}
	defer rows.Close()

	var shipments []Shipment
	for rows.Next() {
		var shipment Shipment
		if err := rows.Scan(&shipment.ID, &shipment.TrackingNumber, &shipment.Carrier,
			&shipment.Status, &shipment.IsDelivered, &shipment.DeliveryDate,
			&shipment.LastUpdate, &shipment.CreatedAt, &shipment.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan shipment: %w", err)
		}
		shipments = append(shipments, shipment)
	}
	return shipments, rows.Err()
}

// EventsByShipment returns a shipment's stored events in their original
// most-recent-first order.
func (s *ShipmentStore) EventsByShipment(shipmentID int64) ([]TrackingEvent, error) {
	rows, err := s.db.Query(`
		SELECT id, shipment_id, position, timestamp, location, detail
		FROM tracking_events WHERE shipment_id = ? ORDER BY position`, shipmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []TrackingEvent
	for rows.Next() {
		var ev TrackingEvent
		if err := rows.Scan(&ev.ID, &ev.ShipmentID, &ev.Position,
			&ev.Timestamp, &ev.Location, &ev.Detail); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
