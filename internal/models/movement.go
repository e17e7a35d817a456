package models

// Movement kinds. Entries add stock, sales remove it, adjustments can do either.
const (
	MovementEntry  = "entry"
	MovementSale   = "sale"
	MovementAdjust = "adjust"
)

// Movement is an append-only ledger entry recording a stock change.
type Movement struct {
	ID        int    `json:"id"`
	ProductID int    `json:"product_id"`
	Kind      string `json:"kind"`
	Delta     int    `json:"delta"`
	CreatedAt string `json:"created_at"`
}
