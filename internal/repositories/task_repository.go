package repositories

import (
	"database/sql"
	"encoding/json"

	"railpass/internal/domain"
)

// TaskRepository wraps DB access for reservation_tasks. The engine computes
// legal next states; this repository is where the monotonic lifecycle is
// actually enforced on write.
type TaskRepository struct {
	DB *sql.DB
}

// Save inserts a freshly planned task. The requirement snapshot is stored as
// JSON next to the queryable columns.
func (r TaskRepository) Save(itineraryID string, t domain.ReservationTask) error {
	raw, err := json.Marshal(t.Requirement)
	if err != nil {
		return domain.InternalError{Msg: "marshal requirement", Err: err}
	}
	_, err = r.DB.Exec(`
		INSERT INTO reservation_tasks
			(id, itinerary_id, segment_id, status, travel_date, requirement, booking_ref, realized_cost, failure_reason, fallback_id)
		VALUES (?, ?, ?, ?, ?, ?, '', 0, '', '')`,
		t.ID, itineraryID, t.SegmentID, string(t.Status), t.TravelDate, raw)
	return err
}

// SaveAll persists a planning batch in one transaction.
func (r TaskRepository) SaveAll(itineraryID string, tasks []domain.ReservationTask) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	for _, t := range tasks {
		raw, err := json.Marshal(t.Requirement)
		if err != nil {
			tx.Rollback()
			return domain.InternalError{Msg: "marshal requirement", Err: err}
		}
		if _, err := tx.Exec(`
			INSERT INTO reservation_tasks
				(id, itinerary_id, segment_id, status, travel_date, requirement, booking_ref, realized_cost, failure_reason, fallback_id)
			VALUES (?, ?, ?, ?, ?, ?, '', 0, '', '')`,
			t.ID, itineraryID, t.SegmentID, string(t.Status), t.TravelDate, raw); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// GetByID loads one task.
func (r TaskRepository) GetByID(id string) (domain.ReservationTask, error) {
	row := r.DB.QueryRow(`
		SELECT id, segment_id, status, travel_date, requirement, booking_ref, realized_cost, failure_reason, fallback_id
		FROM reservation_tasks WHERE id = ?`, id)
	return scanTask(row)
}

// ListByItinerary returns every task of one itinerary, oldest travel date first.
func (r TaskRepository) ListByItinerary(itineraryID string) ([]domain.ReservationTask, error) {
	rows, err := r.DB.Query(`
		SELECT id, segment_id, status, travel_date, requirement, booking_ref, realized_cost, failure_reason, fallback_id
		FROM reservation_tasks WHERE itinerary_id = ? ORDER BY travel_date ASC, id ASC`, itineraryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.ReservationTask
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// ListUnbooked returns NEEDED/PLANNED tasks traveling on or before the cutoff
// date. The reminder sweep feeds on this.
func (r TaskRepository) ListUnbooked(cutoffDate string) ([]domain.ReservationTask, error) {
	rows, err := r.DB.Query(`
		SELECT id, segment_id, status, travel_date, requirement, booking_ref, realized_cost, failure_reason, fallback_id
		FROM reservation_tasks
		WHERE status IN (?, ?) AND travel_date <= ?
		ORDER BY travel_date ASC`,
		string(domain.TaskNeeded), string(domain.TaskPlanned), cutoffDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.ReservationTask
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// TransitionInput carries the caller-supplied outcome of a booking attempt.
type TransitionInput struct {
	Status        domain.TaskStatus `json:"status"`
	BookingRef    string            `json:"bookingRef,omitempty"`
	RealizedCost  float64           `json:"realizedCost,omitempty"`
	FailureReason string            `json:"failureReason,omitempty"`
	FallbackID    string            `json:"fallbackId,omitempty"`
}

// Transition applies one lifecycle step. Rejects anything CanTransition
// forbids, so no write can ever walk a task back to NEEDED.
func (r TaskRepository) Transition(id string, in TransitionInput) (domain.ReservationTask, error) {
	task, err := r.GetByID(id)
	if err == sql.ErrNoRows {
		return domain.ReservationTask{}, domain.NotFoundError{Resource: "reservation task"}
	}
	if err != nil {
		return domain.ReservationTask{}, err
	}
	if !domain.CanTransition(task.Status, in.Status) {
		return domain.ReservationTask{}, domain.ConflictError{
			Resource: "reservation task",
			Msg:      string(task.Status) + " -> " + string(in.Status) + " is not a legal transition",
		}
	}

	_, err = r.DB.Exec(`
		UPDATE reservation_tasks
		SET status = ?, booking_ref = ?, realized_cost = ?, failure_reason = ?, fallback_id = ?
		WHERE id = ?`,
		string(in.Status), in.BookingRef, in.RealizedCost, in.FailureReason, in.FallbackID, id)
	if err != nil {
		return domain.ReservationTask{}, err
	}

	task.Status = in.Status
	task.BookingRef = in.BookingRef
	task.RealizedCost = in.RealizedCost
	task.FailureReason = in.FailureReason
	task.FallbackID = in.FallbackID
	return task, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (domain.ReservationTask, error) {
	var t domain.ReservationTask
	var status string
	var raw []byte
	if err := row.Scan(&t.ID, &t.SegmentID, &status, &t.TravelDate, &raw,
		&t.BookingRef, &t.RealizedCost, &t.FailureReason, &t.FallbackID); err != nil {
		return domain.ReservationTask{}, err
	}
	t.Status = domain.TaskStatus(status)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &t.Requirement); err != nil {
			return domain.ReservationTask{}, domain.InternalError{Msg: "unmarshal requirement", Err: err}
		}
	}
	return t, nil
}
