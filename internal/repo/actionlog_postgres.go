package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/donlucho/ferreteria-api/internal/models"
)

type PostgresActionLogRepository struct {
	db *sql.DB
}

func NewPostgresActionLogRepository(db *sql.DB) *PostgresActionLogRepository {
	return &PostgresActionLogRepository{db: db}
}

func (r *PostgresActionLogRepository) Log(entry models.ActionLog) error {
	query := `INSERT INTO action_logs (user_id, action, entity_type, entity_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var details any
	if len(entry.Details) > 0 {
		details = []byte(entry.Details)
	}
	_, err := r.db.ExecContext(ctx, query,
		entry.UserID, entry.Action, entry.EntityType, entry.EntityID, details, time.Now().UTC().Format(time.RFC3339))
	return err
}

func (r *PostgresActionLogRepository) GetAll() ([]models.ActionLog, error) {
	query := `SELECT id, user_id, action, entity_type, entity_id, details, created_at FROM action_logs ORDER BY created_at DESC`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.ActionLog
	for rows.Next() {
		var entry models.ActionLog
		var entityID sql.NullInt64
		var details []byte
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Action, &entry.EntityType, &entityID, &details, &entry.CreatedAt); err != nil {
			return nil, err
		}
		if entityID.Valid {
			id := int(entityID.Int64)
			entry.EntityID = &id
		}
		entry.Details = details
		logs = append(logs, entry)
	}
	return logs, rows.Err()
}
