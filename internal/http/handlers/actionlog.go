package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/donlucho/ferreteria-api/internal/models"
)

// logAction records an audit entry for a mutating request. Best effort: the
// audit trail never fails the action it describes.
func logAction(r *http.Request, action, entityType string, entityID *int, details any) {
	if actionLogRepo == nil {
		return
	}

	var payload json.RawMessage
	if details != nil {
		payload, _ = json.Marshal(details)
	}

	_ = actionLogRepo.Log(models.ActionLog{
		UserID:     GetUserIDFromContext(r),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    payload,
	})
}
