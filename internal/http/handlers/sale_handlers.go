package handlers

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/donlucho/ferreteria-api/internal/models"
	"github.com/donlucho/ferreteria-api/internal/repo"
	"github.com/donlucho/ferreteria-api/internal/sales"
)

// CreateSaleHandler godoc
// @Summary Post a sale
// @Description Validates stock, allocates a document number, records the sale, and decrements stock.
// @Tags sales
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sale body SaleRequest true "Sale to post"
// @Success 201 {object} models.Sale
// @Failure 400 {string} string "Invalid input"
// @Failure 409 {string} string "Insufficient stock"
// @Router /sales [post]
func CreateSaleHandler(w http.ResponseWriter, r *http.Request) {
	var req SaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.CustomerName) == "" {
		http.Error(w, "customer name is required", http.StatusBadRequest)
		return
	}
	if !models.ValidDocumentType(req.DocumentType) {
		http.Error(w, "invalid document type", http.StatusBadRequest)
		return
	}

	sale, err := salePoster.Post(req.CustomerName, req.DocumentType, req.Items, GetUserIDFromContext(r))
	if err != nil {
		writeSalePostError(w, err)
		return
	}

	logAction(r, "post sale", "sale", &sale.ID, map[string]any{
		"sale_number": sale.SaleNumber,
		"total":       sale.Total,
	})
	invalidateDashboard()
	writeJSON(w, http.StatusCreated, sale)
}

// writeSalePostError maps posting failures onto statuses. A partial stock
// adjustment gets its own surface: the sale exists but the catalog no longer
// matches it, which the client must report distinctly.
func writeSalePostError(w http.ResponseWriter, err error) {
	var partial *sales.PartialAdjustmentError
	var insufficient *sales.InsufficientStockError
	var unknown *sales.UnknownProductError
	var invalidQty *sales.InvalidQuantityError

	switch {
	case errors.As(err, &partial):
		log.Printf("partial stock adjustment: %v", err)
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":       "stock adjustment partially applied",
			"sale_number": partial.SaleNumber,
			"applied":     partial.Applied,
			"failed":      partial.Failed,
			"remaining":   partial.Remaining,
		})
	case errors.As(err, &insufficient):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.As(err, &unknown), errors.As(err, &invalidQty), errors.Is(err, sales.ErrNoItems):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		writeRepoError(w, err, "could not post sale")
	}
}

// GetSalesHandler godoc
// @Summary List sales
// @Tags sales
// @Produce json
// @Security BearerAuth
// @Param customer query string false "Customer name substring"
// @Param product_id query int false "Sale must contain this product"
// @Param from query string false "Created at or after (RFC3339)"
// @Param to query string false "Created at or before (RFC3339)"
// @Success 200 {array} models.Sale
// @Failure 400 {string} string "Invalid filter"
// @Router /sales [get]
func GetSalesHandler(w http.ResponseWriter, r *http.Request) {
	all, err := saleRepo.GetAll()
	if err != nil {
		writeRepoError(w, err, "could not fetch sales")
		return
	}

	filter, err := saleFilterFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	filtered := filter.Apply(all)
	if filtered == nil {
		filtered = []models.Sale{}
	}
	writeJSON(w, http.StatusOK, filtered)
}

func saleFilterFromQuery(r *http.Request) (sales.Filter, error) {
	q := r.URL.Query()
	filter := sales.Filter{Customer: q.Get("customer")}

	if s := q.Get("product_id"); s != "" {
		id, err := strconv.Atoi(s)
		if err != nil {
			return sales.Filter{}, fmt.Errorf("invalid product_id")
		}
		filter.ProductID = id
	}
	if s := q.Get("from"); s != "" {
		ts, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return sales.Filter{}, fmt.Errorf("invalid from date format")
		}
		filter.From = &ts
	}
	if s := q.Get("to"); s != "" {
		ts, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return sales.Filter{}, fmt.Errorf("invalid to date format")
		}
		filter.To = &ts
	}
	return filter, nil
}

// UpdateSaleHandler godoc
// @Summary Update a posted sale's descriptive fields
// @Description Only customer name and document type change; items stay frozen and stock is untouched.
// @Tags sales
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Sale ID"
// @Param sale body SaleUpdateRequest true "New metadata"
// @Success 200 {object} models.Sale
// @Failure 400 {string} string "Invalid input"
// @Failure 404 {string} string "Not found"
// @Router /sales/{id} [put]
func UpdateSaleHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid sale ID", http.StatusBadRequest)
		return
	}

	var req SaleUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.CustomerName) == "" {
		http.Error(w, "customer name is required", http.StatusBadRequest)
		return
	}
	if !models.ValidDocumentType(req.DocumentType) {
		http.Error(w, "invalid document type", http.StatusBadRequest)
		return
	}

	updated, err := salePoster.EditMetadata(id, req.CustomerName, req.DocumentType)
	if err != nil {
		if errors.Is(err, repo.ErrSaleNotFound) {
			http.Error(w, "sale not found", http.StatusNotFound)
			return
		}
		writeRepoError(w, err, "could not update sale")
		return
	}

	logAction(r, "update sale", "sale", &id, req)
	invalidateDashboard()
	writeJSON(w, http.StatusOK, updated)
}

// DeleteSaleHandler godoc
// @Summary Delete a posted sale
// @Description Removes the row permanently. Stock is not restored and the document number is never reused.
// @Tags sales
// @Security BearerAuth
// @Param id path int true "Sale ID"
// @Success 204 "Deleted successfully"
// @Failure 404 {string} string "Not found"
// @Router /sales/{id} [delete]
func DeleteSaleHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid sale ID", http.StatusBadRequest)
		return
	}

	if err := salePoster.Delete(id); err != nil {
		if errors.Is(err, repo.ErrSaleNotFound) {
			http.Error(w, "sale not found", http.StatusNotFound)
			return
		}
		writeRepoError(w, err, "could not delete sale")
		return
	}

	logAction(r, "delete sale", "sale", &id, nil)
	invalidateDashboard()
	w.WriteHeader(http.StatusNoContent)
}

// ExportSalesHandler godoc
// @Summary Export sales
// @Tags sales
// @Produce text/csv, application/json
// @Security BearerAuth
// @Param format query string true "Export format (csv or json)"
// @Success 200 {file} file
// @Failure 400 {string} string "Invalid input"
// @Router /sales/export [get]
func ExportSalesHandler(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format != "csv" && format != "json" {
		http.Error(w, "format must be 'csv' or 'json'", http.StatusBadRequest)
		return
	}

	allSales, err := saleRepo.GetAll()
	if err != nil {
		writeRepoError(w, err, "could not fetch sales")
		return
	}

	switch format {
	case "json":
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="sales.json"`)
		json.NewEncoder(w).Encode(allSales)

	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="sales.csv"`)

		csvWriter := csv.NewWriter(w)
		_ = csvWriter.Write([]string{"id", "sale_number", "customer_name", "document_type", "total", "user_id", "created_at"})
		for _, s := range allSales {
			_ = csvWriter.Write([]string{
				strconv.Itoa(s.ID),
				s.SaleNumber,
				s.CustomerName,
				s.DocumentType,
				strconv.FormatFloat(s.Total, 'f', 2, 64),
				strconv.Itoa(s.UserID),
				s.CreatedAt,
			})
		}
		csvWriter.Flush()
	}
}
