package dto

// AdjustInventoryRequest applies a signed manual correction to one
// inventory row. Zero adjustments are rejected.
type AdjustInventoryRequest struct {
	Adjustment int64 `json:"adjustment" binding:"required"`
}
