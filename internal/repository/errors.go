// Package repository wraps the MongoDB collections behind small typed
// accessors. Sentinel errors let the workflow and handler layers
// distinguish failure modes without inspecting driver errors.
package repository

import "errors"

// ErrNotFound is returned when a referenced document does not exist.
var ErrNotFound = errors.New("document not found")

// ErrDuplicate is returned when an insert violates a unique index,
// such as selecting the same class twice.
var ErrDuplicate = errors.New("duplicate document")

// ErrSeatsExhausted is returned when a seat decrement finds no seats
// left to consume.
var ErrSeatsExhausted = errors.New("no available seats")
