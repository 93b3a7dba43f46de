package services

import "errors"

var (
	ErrNotFound          = errors.New("record not found")
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrOutOfStock        = errors.New("menu item out of stock")
	ErrUnavailable       = errors.New("menu item is not available")
	ErrEmptyOrder        = errors.New("order has no lines")
	ErrInvalidSource     = errors.New("unknown order source")
)
