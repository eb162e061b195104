package contract

import "github.com/alexanderramin/gantry/internal/app"

type ErrorCode = app.ErrorCode

const (
	ErrInvalidRequest ErrorCode = app.ErrInvalidRequest
	ErrItemNotFound   ErrorCode = app.ErrItemNotFound
	ErrNotWorkItem    ErrorCode = app.ErrNotWorkItem
	ErrCyclicGraph    ErrorCode = app.ErrCyclicGraph
)

type UseCaseError = app.UseCaseError

type ItemRef = app.ItemRef
