package service

import "errors"

// Sentinel errors surfaced to the transport layer. Handlers map these to
// HTTP statuses; anything else is an infrastructure failure.
var (
	ErrInvalidSpec       = errors.New("invalid heating specification")
	ErrRequestNotFound   = errors.New("heating request not found")
	ErrCandidateNotFound = errors.New("configuration candidate not found")
	ErrEquipmentNotFound = errors.New("equipment not found")
	ErrCandidateMismatch = errors.New("candidate does not belong to the given request")
	ErrInvalidEquipment  = errors.New("invalid equipment")
	ErrInvalidLead       = errors.New("invalid lead")
	ErrInvalidStatus     = errors.New("unknown request status")
)
