package domain

import (
	"errors"
	"fmt"
)

// Error message string constants - single source of truth for error messages.
// Use these in assert.Contains() checks when testing error messages.
const (
	ErrMsgItemNotFound       = "item not found"
	ErrMsgCharacterNotFound  = "character not found"
	ErrMsgAllocationNotFound = "allocation not found"
	ErrMsgRecordNotFound     = "loot record not found"

	ErrMsgItemOccupied     = "item already allocated to another character"
	ErrMsgTemplateRequired = "merge template required"

	ErrMsgQuantityExceeded   = "allocation exceeds available quantity"
	ErrMsgAllocationOverflow = "allocation sum exceeds item quantity"

	ErrMsgNoRecipients = "no eligible recipients"
	ErrMsgUnknownRule  = "unknown distribution rule"
	ErrMsgInvalidInput = "invalid input"

	ErrMsgDuplicateName = "name already in use"

	ErrMsgTxClosed = "tx is closed"
)

// Common domain errors. Wrap with fmt.Errorf("%w: details", domain.ErrXxx)
// for additional context; callers match with errors.Is.
var (
	ErrItemNotFound       = errors.New(ErrMsgItemNotFound)
	ErrCharacterNotFound  = errors.New(ErrMsgCharacterNotFound)
	ErrAllocationNotFound = errors.New(ErrMsgAllocationNotFound)
	ErrRecordNotFound     = errors.New(ErrMsgRecordNotFound)

	// ErrItemOccupied is recoverable: the caller may retry the same
	// mutation with takeover mode after explicit confirmation.
	ErrItemOccupied = errors.New(ErrMsgItemOccupied)

	// ErrTemplateRequired means merge candidates disagree and a human
	// must pick the surviving record. Usually wrapped in a
	// TemplateRequiredError carrying the candidates.
	ErrTemplateRequired = errors.New(ErrMsgTemplateRequired)

	ErrQuantityExceeded   = errors.New(ErrMsgQuantityExceeded)
	ErrAllocationOverflow = errors.New(ErrMsgAllocationOverflow)

	ErrNoRecipients = errors.New(ErrMsgNoRecipients)
	ErrUnknownRule  = errors.New(ErrMsgUnknownRule)
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)

	ErrDuplicateName = errors.New(ErrMsgDuplicateName)
)

// TemplateRequiredError carries the full candidate set so a caller can let
// a human pick which record's attributes win the merge.
type TemplateRequiredError struct {
	Candidates []Item
}

func (e *TemplateRequiredError) Error() string {
	return fmt.Sprintf("%s: %d candidates", ErrMsgTemplateRequired, len(e.Candidates))
}

// Is lets errors.Is(err, ErrTemplateRequired) match.
func (e *TemplateRequiredError) Is(target error) bool {
	return target == ErrTemplateRequired
}

// AllocationOverflowError names the offending item of a loot publish.
type AllocationOverflowError struct {
	ItemName  string
	Quantity  float64
	Allocated float64
}

func (e *AllocationOverflowError) Error() string {
	return fmt.Sprintf("%s: item %q has %.4g allocated of %.4g", ErrMsgAllocationOverflow, e.ItemName, e.Allocated, e.Quantity)
}

// Is lets errors.Is(err, ErrAllocationOverflow) match.
func (e *AllocationOverflowError) Is(target error) bool {
	return target == ErrAllocationOverflow
}
