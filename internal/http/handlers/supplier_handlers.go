package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/donlucho/ferreteria-api/internal/models"
	"github.com/donlucho/ferreteria-api/internal/repo"
)

// GetSuppliersHandler godoc
// @Summary List suppliers
// @Tags suppliers
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Supplier
// @Router /suppliers [get]
func GetSuppliersHandler(w http.ResponseWriter, r *http.Request) {
	suppliers, err := supplierRepo.GetAll()
	if err != nil {
		writeRepoError(w, err, "could not fetch suppliers")
		return
	}
	if suppliers == nil {
		suppliers = []models.Supplier{}
	}
	writeJSON(w, http.StatusOK, suppliers)
}

// CreateSupplierHandler godoc
// @Summary Create a supplier
// @Tags suppliers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param supplier body SupplierRequest true "Supplier to create"
// @Success 201 {object} models.Supplier
// @Failure 400 {string} string "Invalid input"
// @Router /suppliers [post]
func CreateSupplierHandler(w http.ResponseWriter, r *http.Request) {
	var req SupplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		http.Error(w, "supplier name is required", http.StatusBadRequest)
		return
	}

	supplier, err := supplierRepo.Create(models.Supplier{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		writeRepoError(w, err, "could not create supplier")
		return
	}

	logAction(r, "create supplier", "supplier", &supplier.ID, req)
	writeJSON(w, http.StatusCreated, supplier)
}

// UpdateSupplierHandler godoc
// @Summary Update a supplier
// @Tags suppliers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Supplier ID"
// @Param supplier body SupplierRequest true "New supplier data"
// @Success 200 {object} models.Supplier
// @Failure 404 {string} string "Not found"
// @Router /suppliers/{id} [put]
func UpdateSupplierHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid supplier ID", http.StatusBadRequest)
		return
	}

	var req SupplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		http.Error(w, "supplier name is required", http.StatusBadRequest)
		return
	}

	supplier, err := supplierRepo.Update(models.Supplier{
		ID:      id,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		if errors.Is(err, repo.ErrSupplierNotFound) {
			http.Error(w, "supplier not found", http.StatusNotFound)
			return
		}
		writeRepoError(w, err, "could not update supplier")
		return
	}

	logAction(r, "update supplier", "supplier", &id, req)
	writeJSON(w, http.StatusOK, supplier)
}

// DeleteSupplierHandler godoc
// @Summary Delete a supplier
// @Tags suppliers
// @Security BearerAuth
// @Param id path int true "Supplier ID"
// @Success 204 "Deleted successfully"
// @Failure 404 {string} string "Not found"
// @Router /suppliers/{id} [delete]
func DeleteSupplierHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid supplier ID", http.StatusBadRequest)
		return
	}

	if err := supplierRepo.Delete(id); err != nil {
		if errors.Is(err, repo.ErrSupplierNotFound) {
			http.Error(w, "supplier not found", http.StatusNotFound)
			return
		}
		writeRepoError(w, err, "could not delete supplier")
		return
	}

	logAction(r, "delete supplier", "supplier", &id, nil)
	w.WriteHeader(http.StatusNoContent)
}
