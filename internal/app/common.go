package app

import "github.com/alexanderramin/gantry/internal/domain"

type ErrorCode string

const (
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST"
	ErrItemNotFound   ErrorCode = "ITEM_NOT_FOUND"
	ErrNotWorkItem    ErrorCode = "NOT_WORK_ITEM"
	ErrCyclicGraph    ErrorCode = "CYCLIC_DEPENDENCIES"
)

// UseCaseError is returned for requests a use case rejects before touching
// the store.
type UseCaseError struct {
	Code    ErrorCode
	Message string
}

func (e *UseCaseError) Error() string {
	return string(e.Code) + ": " + e.Message
}

// ItemRef identifies a WBS item in responses.
type ItemRef struct {
	ID    string
	Code  string
	Title string
}

func RefOf(w *domain.WBSItem) ItemRef {
	return ItemRef{ID: w.ID, Code: w.Code, Title: w.Title}
}
