package repo

import "errors"

// Sentinel errors shared by all repository implementations.
var (
	ErrProductNotFound  = errors.New("product not found")
	ErrSaleNotFound     = errors.New("sale not found")
	ErrSupplierNotFound = errors.New("supplier not found")
	ErrAlertNotFound    = errors.New("alert not found")
	ErrRecordNotFound   = errors.New("accounting record not found")
	ErrUserNotFound     = errors.New("user not found")

	// ErrInsufficientStock is returned by the conditional stock update when
	// the adjustment would drive stock below zero.
	ErrInsufficientStock = errors.New("insufficient stock")

	ErrDuplicatedValueUnique = errors.New("duplicated value for unique column")
)
