// Package errors provides custom error types for product-related operations.
package errors

import "errors"

var ErrProductNotFound = errors.New("product not found")

// ErrNothingToUpdate is returned when an update request carries no fields to change.
var ErrNothingToUpdate = errors.New("nothing to update")
