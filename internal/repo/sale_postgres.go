package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/donlucho/ferreteria-api/internal/models"
)

type PostgresSaleRepository struct {
	db *sql.DB
}

func NewPostgresSaleRepository(db *sql.DB) *PostgresSaleRepository {
	return &PostgresSaleRepository{db: db}
}

const saleColumns = `id, sale_number, customer_name, document_type, items, total, user_id, created_at`

func scanSale(row interface{ Scan(...any) error }) (models.Sale, error) {
	var s models.Sale
	var items []byte
	err := row.Scan(&s.ID, &s.SaleNumber, &s.CustomerName, &s.DocumentType, &items, &s.Total, &s.UserID, &s.CreatedAt)
	if err != nil {
		return models.Sale{}, err
	}
	if err := json.Unmarshal(items, &s.Items); err != nil {
		return models.Sale{}, err
	}
	return s, nil
}

func (r *PostgresSaleRepository) Create(s models.Sale) (models.Sale, error) {
	items, err := json.Marshal(s.Items)
	if err != nil {
		return models.Sale{}, err
	}

	// sale_number carries a unique constraint; a lost allocation race fails
	// here instead of producing a duplicate number.
	query := `INSERT INTO sales (sale_number, customer_name, document_type, items, total, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = r.db.QueryRowContext(ctx, query,
		s.SaleNumber, s.CustomerName, s.DocumentType, items, s.Total, s.UserID, s.CreatedAt).
		Scan(&s.ID)
	if err != nil && strings.Contains(err.Error(), "unique constraint") {
		return models.Sale{}, ErrDuplicatedValueUnique
	}
	return s, err
}

func (r *PostgresSaleRepository) GetAll() ([]models.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales ORDER BY created_at DESC`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []models.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}

func (r *PostgresSaleRepository) GetByID(id int) (models.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	s, err := scanSale(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Sale{}, ErrSaleNotFound
	}
	return s, err
}

func (r *PostgresSaleRepository) GetLatest() (models.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales ORDER BY created_at DESC LIMIT 1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	s, err := scanSale(r.db.QueryRowContext(ctx, query))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Sale{}, ErrSaleNotFound
	}
	return s, err
}

func (r *PostgresSaleRepository) UpdateMetadata(id int, customerName, documentType string, total float64) (models.Sale, error) {
	query := `UPDATE sales SET customer_name = $1, document_type = $2, total = $3 WHERE id = $4
		RETURNING ` + saleColumns
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	s, err := scanSale(r.db.QueryRowContext(ctx, query, customerName, documentType, total, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Sale{}, ErrSaleNotFound
	}
	return s, err
}

func (r *PostgresSaleRepository) Delete(id int) error {
	query := `DELETE FROM sales WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrSaleNotFound
	}
	return nil
}
