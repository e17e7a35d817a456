package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/donlucho/ferreteria-api/internal/models"
)

type PostgresSupplierRepository struct {
	db *sql.DB
}

func NewPostgresSupplierRepository(db *sql.DB) *PostgresSupplierRepository {
	return &PostgresSupplierRepository{db: db}
}

func (r *PostgresSupplierRepository) Create(s models.Supplier) (models.Supplier, error) {
	query := `INSERT INTO suppliers (name, email, phone, address, created_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := r.db.QueryRowContext(ctx, query, s.Name, s.Email, s.Phone, s.Address, s.CreatedAt).Scan(&s.ID)
	return s, err
}

func (r *PostgresSupplierRepository) GetAll() ([]models.Supplier, error) {
	query := `SELECT id, name, email, phone, address, created_at FROM suppliers ORDER BY id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var suppliers []models.Supplier
	for rows.Next() {
		var s models.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Phone, &s.Address, &s.CreatedAt); err != nil {
			return nil, err
		}
		suppliers = append(suppliers, s)
	}
	return suppliers, rows.Err()
}

func (r *PostgresSupplierRepository) GetByID(id int) (models.Supplier, error) {
	query := `SELECT id, name, email, phone, address, created_at FROM suppliers WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var s models.Supplier
	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.Name, &s.Email, &s.Phone, &s.Address, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Supplier{}, ErrSupplierNotFound
	}
	return s, err
}

func (r *PostgresSupplierRepository) Update(s models.Supplier) (models.Supplier, error) {
	query := `UPDATE suppliers SET name = $1, email = $2, phone = $3, address = $4 WHERE id = $5`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, s.Name, s.Email, s.Phone, s.Address, s.ID)
	if err != nil {
		return models.Supplier{}, err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return models.Supplier{}, ErrSupplierNotFound
	}
	return s, nil
}

func (r *PostgresSupplierRepository) Delete(id int) error {
	query := `DELETE FROM suppliers WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrSupplierNotFound
	}
	return nil
}
