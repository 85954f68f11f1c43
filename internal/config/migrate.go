package config

import "database/sql"

// Migrate creates the one table this subsystem owns. Everything else the
// engines touch stays in memory.
func Migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS reservation_tasks (
			id VARCHAR(36) PRIMARY KEY,
			itinerary_id VARCHAR(64) NOT NULL,
			segment_id VARCHAR(64) NOT NULL,
			status VARCHAR(20) NOT NULL,
			travel_date VARCHAR(10) NOT NULL,
			requirement JSON,
			booking_ref VARCHAR(64) NOT NULL DEFAULT '',
			realized_cost DECIMAL(10,2) NOT NULL DEFAULT 0,
			failure_reason VARCHAR(255) NOT NULL DEFAULT '',
			fallback_id VARCHAR(64) NOT NULL DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_itinerary (itinerary_id),
			INDEX idx_status_date (status, travel_date)
		)
	`)
	return err
}
