package handlers

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/donlucho/ferreteria-api/internal/models"
	"github.com/donlucho/ferreteria-api/internal/repo"
)

// StockEntryHandler godoc
// @Summary Register a stock entry
// @Description Adds a positive quantity to a product's stock and records the movement.
// @Tags inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param entry body StockEntryRequest true "Quantity to add"
// @Success 200 {object} models.Product
// @Failure 400 {string} string "Invalid input"
// @Failure 404 {string} string "Not found"
// @Router /products/{id}/entries [post]
func StockEntryHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	var req StockEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if req.Quantity <= 0 {
		http.Error(w, "quantity must be positive", http.StatusBadRequest)
		return
	}

	product, err := productRepo.AdjustStock(id, req.Quantity)
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		writeRepoError(w, err, "could not adjust stock")
		return
	}

	if err := movementRepo.Log(id, models.MovementEntry, req.Quantity); err != nil {
		// The stock change is already applied; the missing ledger row is
		// logged but does not fail the request.
		logAction(r, "movement log failed", "product", &id, map[string]any{"quantity": req.Quantity})
	}

	logAction(r, "stock entry", "product", &id, req)
	invalidateDashboard()
	writeJSON(w, http.StatusOK, product)
}

// GetMovementsHandler godoc
// @Summary List stock movements for a product
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param since query string false "Created at or after (RFC3339)"
// @Param until query string false "Created at or before (RFC3339)"
// @Param offset query int false "Pagination offset"
// @Param limit query int false "Page size"
// @Success 200 {object} MovementsSearchResult
// @Failure 400 {string} string "Invalid filter"
// @Router /products/{id}/movements [get]
func GetMovementsHandler(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}
	q := r.URL.Query()

	filter, err := movementFilterFromQuery(q.Get("since"), q.Get("until"), q.Get("offset"), q.Get("limit"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	movements, total, err := movementRepo.GetByProductID(productID, filter)
	if err != nil {
		writeRepoError(w, err, "could not fetch movements")
		return
	}

	result := MovementsSearchResult{
		Data: make([]MovementResponse, 0, len(movements)),
		Meta: Meta{TotalCount: total},
	}
	for _, m := range movements {
		result.Data = append(result.Data, MovementResponse{
			ID:        m.ID,
			ProductID: m.ProductID,
			Kind:      m.Kind,
			Delta:     m.Delta,
			CreatedAt: m.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, result)
}

func movementFilterFromQuery(since, until, offset, limit string) (repo.MovementFilter, error) {
	var filter repo.MovementFilter

	if since != "" {
		ts, err := time.Parse(time.RFC3339, since)
		if err != nil {
			return filter, errors.New("invalid since date format")
		}
		filter.Since = &ts
	}
	if until != "" {
		ts, err := time.Parse(time.RFC3339, until)
		if err != nil {
			return filter, errors.New("invalid until date format")
		}
		filter.Until = &ts
	}
	if offset != "" {
		n, err := strconv.Atoi(offset)
		if err != nil || n < 0 {
			return filter, errors.New("invalid offset")
		}
		filter.Offset = &n
	}
	if limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n <= 0 {
			return filter, errors.New("invalid limit")
		}
		filter.Limit = &n
	}
	return filter, nil
}

// ExportMovementsHandler godoc
// @Summary Export a product's movements
// @Tags inventory
// @Produce text/csv, application/json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param format query string true "Export format (csv or json)"
// @Success 200 {file} file
// @Failure 400 {string} string "Invalid input"
// @Router /products/{id}/movements/export [get]
func ExportMovementsHandler(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	format := r.URL.Query().Get("format")
	if format != "csv" && format != "json" {
		http.Error(w, "format must be 'csv' or 'json'", http.StatusBadRequest)
		return
	}

	movements, _, err := movementRepo.GetByProductID(productID, repo.MovementFilter{})
	if err != nil {
		writeRepoError(w, err, "could not fetch movements")
		return
	}

	switch format {
	case "json":
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="movements.json"`)
		json.NewEncoder(w).Encode(movements)

	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="movements.csv"`)

		csvWriter := csv.NewWriter(w)
		_ = csvWriter.Write([]string{"id", "product_id", "kind", "delta", "created_at"})
		for _, m := range movements {
			_ = csvWriter.Write([]string{
				strconv.Itoa(m.ID),
				strconv.Itoa(m.ProductID),
				m.Kind,
				strconv.Itoa(m.Delta),
				m.CreatedAt,
			})
		}
		csvWriter.Flush()
	}
}
