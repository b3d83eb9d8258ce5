package domain

import "errors"

// Entity lookup errors
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrPatientNotFound     = errors.New("patient not found")
	ErrSeriesNotFound      = errors.New("series not found")
	ErrTherapyTypeNotFound = errors.New("therapy type not found")
	ErrNoActiveAssignment  = errors.New("no active series assignment")
)

// Validation errors
var (
	ErrInvalidRole      = errors.New("invalid role")
	ErrInvalidIntensity = errors.New("invalid intensity level")
	ErrTooFewPostures   = errors.New("series requires at least 6 postures")
	ErrDurationMismatch = errors.New("posture durations must match the posture sequence")
	ErrCommentsRequired = errors.New("comments are required")
)
