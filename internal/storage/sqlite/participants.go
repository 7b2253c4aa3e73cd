package sqlite

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/tripledger/internal/models"
	"github.com/mmynk/tripledger/internal/storage"
)

// AddParticipant appends a participant to a trip.
func (s *SQLiteStore) AddParticipant(ctx context.Context, tripID string, p *models.Participant) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := requireTrip(ctx, tx, tripID); err != nil {
		return err
	}
	if err := insertParticipant(ctx, tx, tripID, p); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// RemoveParticipant deletes a participant and the expenses they paid in one transaction.
// The paid_by foreign key cascades as well; the explicit delete is there to count them.
func (s *SQLiteStore) RemoveParticipant(ctx context.Context, tripID, participantID string) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"DELETE FROM expenses WHERE trip_id = ? AND paid_by = ?",
		tripID, participantID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete participant expenses: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	res, err = tx.ExecContext(ctx,
		"DELETE FROM participants WHERE trip_id = ? AND id = ?",
		tripID, participantID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete participant: %w", err)
	}
	if err := expectOneRow(res, "participant", participantID); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return int(removed), nil
}

func (s *SQLiteStore) listParticipants(ctx context.Context, tripID string) ([]models.Participant, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name FROM participants WHERE trip_id = ? ORDER BY seq",
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	var participants []models.Participant
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}
	return participants, nil
}

func requireTrip(ctx context.Context, db querier, tripID string) error {
	var exists int
	err := db.QueryRowContext(ctx, "SELECT COUNT(1) FROM trips WHERE id = ?", tripID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check trip existence: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("trip %s: %w", tripID, storage.ErrNotFound)
	}
	return nil
}

func insertParticipant(ctx context.Context, db execer, tripID string, p *models.Participant) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	_, err := db.ExecContext(ctx,
		"INSERT INTO participants (id, trip_id, name) VALUES (?, ?, ?)",
		p.ID, tripID, p.Name,
	)
	if err != nil {
		return fmt.Errorf("failed to insert participant: %w", err)
	}
	return nil
}
