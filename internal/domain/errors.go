package domain

import "errors"

// Доменные ошибки - используются во всех слоях приложения

// Owner errors
var (
	ErrOwnerNotFound      = errors.New("owner not found")
	ErrOwnerAlreadyExists = errors.New("owner already exists")
	ErrInvalidOwnerData   = errors.New("invalid owner data")
)

// Manager errors
var (
	ErrManagerNotFound    = errors.New("manager not found")
	ErrInvalidManagerData = errors.New("invalid manager data")
)

// Driver errors
var (
	ErrDriverNotFound    = errors.New("driver not found")
	ErrInvalidDriverData = errors.New("invalid driver data")
)

// Trailer errors
var (
	ErrTrailerNotFound      = errors.New("trailer not found")
	ErrTrailerAlreadyExists = errors.New("trailer already exists")
	ErrInvalidTrailerData   = errors.New("invalid trailer data")
)

// Truck errors
var (
	ErrTruckNotFound      = errors.New("truck not found")
	ErrTruckAlreadyExists = errors.New("truck already exists")
	ErrInvalidTruckData   = errors.New("invalid truck data")
	ErrInvalidPlate       = errors.New("invalid plate")
)

// Coupling errors - нарушения инвариантов агрегации
var (
	ErrClassificationMismatch = errors.New("truck and trailer classification mismatch")
	ErrTrailerAlreadyCoupled  = errors.New("trailer already coupled to another truck")
	ErrTruckAlreadyCoupled    = errors.New("truck already coupled to a trailer")
	ErrIncompatibleTruckType  = errors.New("truck type cannot carry a trailer")
	ErrInvalidStatus          = errors.New("invalid truck status")
)

// AggregationLog errors
var (
	ErrAggregationLogNotFound = errors.New("aggregation log not found")
	ErrInvalidLogData         = errors.New("invalid aggregation log data")
)

// Sync errors
var (
	ErrSyncDisabled    = errors.New("mirror sync is disabled")
	ErrSinkUnavailable = errors.New("mirror sink unavailable")
)

// General errors
var (
	ErrInternal   = errors.New("internal server error")
	ErrNotFound   = errors.New("not found")
	ErrBadRequest = errors.New("bad request")
	ErrConflict   = errors.New("conflict")
)
