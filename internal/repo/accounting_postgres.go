package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/donlucho/ferreteria-api/internal/models"
)

type PostgresAccountingRepository struct {
	db *sql.DB
}

func NewPostgresAccountingRepository(db *sql.DB) *PostgresAccountingRepository {
	return &PostgresAccountingRepository{db: db}
}

func (r *PostgresAccountingRepository) Create(rec models.AccountingRecord) (models.AccountingRecord, error) {
	query := `INSERT INTO accounting_records (description, amount, record_type, category, created_at)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := r.db.QueryRowContext(ctx, query, rec.Description, rec.Amount, rec.RecordType, rec.Category, rec.CreatedAt).Scan(&rec.ID)
	return rec, err
}

func (r *PostgresAccountingRepository) GetAll() ([]models.AccountingRecord, error) {
	query := `SELECT id, description, amount, record_type, category, created_at FROM accounting_records ORDER BY created_at DESC`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.AccountingRecord
	for rows.Next() {
		var rec models.AccountingRecord
		if err := rows.Scan(&rec.ID, &rec.Description, &rec.Amount, &rec.RecordType, &rec.Category, &rec.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *PostgresAccountingRepository) Delete(id int) error {
	query := `DELETE FROM accounting_records WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
