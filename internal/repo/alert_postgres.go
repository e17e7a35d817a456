package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/donlucho/ferreteria-api/internal/models"
)

type PostgresAlertRepository struct {
	db *sql.DB
}

func NewPostgresAlertRepository(db *sql.DB) *PostgresAlertRepository {
	return &PostgresAlertRepository{db: db}
}

func (r *PostgresAlertRepository) Create(a models.Alert) (models.Alert, error) {
	query := `INSERT INTO alerts (alert_type, title, message, read, created_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := r.db.QueryRowContext(ctx, query, a.AlertType, a.Title, a.Message, a.Read, a.CreatedAt).Scan(&a.ID)
	return a, err
}

func (r *PostgresAlertRepository) GetAll() ([]models.Alert, error) {
	query := `SELECT id, alert_type, title, message, read, created_at FROM alerts ORDER BY created_at DESC`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []models.Alert
	for rows.Next() {
		var a models.Alert
		if err := rows.Scan(&a.ID, &a.AlertType, &a.Title, &a.Message, &a.Read, &a.CreatedAt); err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

func (r *PostgresAlertRepository) MarkRead(id int) error {
	query := `UPDATE alerts SET read = TRUE WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrAlertNotFound
	}
	return nil
}

func (r *PostgresAlertRepository) Delete(id int) error {
	query := `DELETE FROM alerts WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrAlertNotFound
	}
	return nil
}
