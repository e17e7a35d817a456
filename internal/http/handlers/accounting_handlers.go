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

// GetAccountingRecordsHandler godoc
// @Summary List accounting records
// @Tags accounting
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.AccountingRecord
// @Router /accounting [get]
func GetAccountingRecordsHandler(w http.ResponseWriter, r *http.Request) {
	records, err := accountingRepo.GetAll()
	if err != nil {
		writeRepoError(w, err, "could not fetch accounting records")
		return
	}
	if records == nil {
		records = []models.AccountingRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

// CreateAccountingRecordHandler godoc
// @Summary Create an accounting record
// @Tags accounting
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param record body AccountingRecordRequest true "Record to create"
// @Success 201 {object} models.AccountingRecord
// @Failure 400 {string} string "Invalid input"
// @Router /accounting [post]
func CreateAccountingRecordHandler(w http.ResponseWriter, r *http.Request) {
	var req AccountingRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Description) == "" {
		http.Error(w, "description is required", http.StatusBadRequest)
		return
	}
	if req.Amount <= 0 {
		http.Error(w, "amount must be positive", http.StatusBadRequest)
		return
	}
	if req.RecordType != models.RecordIncome && req.RecordType != models.RecordExpense {
		http.Error(w, "record type must be 'income' or 'expense'", http.StatusBadRequest)
		return
	}

	record, err := accountingRepo.Create(models.AccountingRecord{
		Description: req.Description,
		Amount:      req.Amount,
		RecordType:  req.RecordType,
		Category:    req.Category,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		writeRepoError(w, err, "could not create accounting record")
		return
	}

	logAction(r, "create accounting record", "accounting_record", &record.ID, req)
	writeJSON(w, http.StatusCreated, record)
}

// DeleteAccountingRecordHandler godoc
// @Summary Delete an accounting record
// @Tags accounting
// @Security BearerAuth
// @Param id path int true "Record ID"
// @Success 204 "Deleted successfully"
// @Failure 404 {string} string "Not found"
// @Router /accounting/{id} [delete]
func DeleteAccountingRecordHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid record ID", http.StatusBadRequest)
		return
	}

	if err := accountingRepo.Delete(id); err != nil {
		if errors.Is(err, repo.ErrRecordNotFound) {
			http.Error(w, "record not found", http.StatusNotFound)
			return
		}
		writeRepoError(w, err, "could not delete accounting record")
		return
	}

	logAction(r, "delete accounting record", "accounting_record", &id, nil)
	w.WriteHeader(http.StatusNoContent)
}
