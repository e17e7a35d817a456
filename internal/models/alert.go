package models

// AlertLowStock marks alerts raised when a product falls to or below its minimum stock.
const AlertLowStock = "stock_bajo"

type Alert struct {
	ID        int    `json:"id"`
	AlertType string `json:"alert_type"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"created_at,omitempty"`
}
