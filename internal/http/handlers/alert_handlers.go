package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/donlucho/ferreteria-api/internal/models"
	"github.com/donlucho/ferreteria-api/internal/repo"
)

// GetAlertsHandler godoc
// @Summary List alerts
// @Tags alerts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Alert
// @Router /alerts [get]
func GetAlertsHandler(w http.ResponseWriter, r *http.Request) {
	alerts, err := alertRepo.GetAll()
	if err != nil {
		writeRepoError(w, err, "could not fetch alerts")
		return
	}
	if alerts == nil {
		alerts = []models.Alert{}
	}
	writeJSON(w, http.StatusOK, alerts)
}

// MarkAlertReadHandler godoc
// @Summary Mark an alert as read
// @Tags alerts
// @Security BearerAuth
// @Param id path int true "Alert ID"
// @Success 204 "Marked as read"
// @Failure 404 {string} string "Not found"
// @Router /alerts/{id}/read [post]
func MarkAlertReadHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid alert ID", http.StatusBadRequest)
		return
	}

	if err := alertRepo.MarkRead(id); err != nil {
		if errors.Is(err, repo.ErrAlertNotFound) {
			http.Error(w, "alert not found", http.StatusNotFound)
			return
		}
		writeRepoError(w, err, "could not update alert")
		return
	}
	invalidateDashboard()
	w.WriteHeader(http.StatusNoContent)
}

// DeleteAlertHandler godoc
// @Summary Delete an alert
// @Tags alerts
// @Security BearerAuth
// @Param id path int true "Alert ID"
// @Success 204 "Deleted successfully"
// @Failure 404 {string} string "Not found"
// @Router /alerts/{id} [delete]
func DeleteAlertHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid alert ID", http.StatusBadRequest)
		return
	}

	if err := alertRepo.Delete(id); err != nil {
		if errors.Is(err, repo.ErrAlertNotFound) {
			http.Error(w, "alert not found", http.StatusNotFound)
			return
		}
		writeRepoError(w, err, "could not delete alert")
		return
	}
	invalidateDashboard()
	w.WriteHeader(http.StatusNoContent)
}

// GetActionLogsHandler godoc
// @Summary List the audit trail
// @Tags logs
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.ActionLog
// @Router /logs [get]
func GetActionLogsHandler(w http.ResponseWriter, r *http.Request) {
	logs, err := actionLogRepo.GetAll()
	if err != nil {
		writeRepoError(w, err, "could not fetch action logs")
		return
	}
	if logs == nil {
		logs = []models.ActionLog{}
	}
	writeJSON(w, http.StatusOK, logs)
}
