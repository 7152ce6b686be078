package domain

import "errors"

// -----------------------------------------------------------------------------
// Domain Errors
// These errors represent domain-level failures and are used by stores and
// services to communicate domain-specific error conditions.
// -----------------------------------------------------------------------------

// Profile errors
var (
	ErrProfileNotFound = errors.New("profile not found")
	// ErrNoSkills signals that a computation requiring a populated skill set
	// was requested for a profile that has none. Callers must be able to
	// distinguish "no data yet" from "computed empty".
	ErrNoSkills = errors.New("profile has no skills")
)

// Assessment errors
var (
	ErrAssessmentNotFound        = errors.New("assessment not found")
	ErrAssessmentAlreadyComplete = errors.New("assessment already completed")
)

// Module errors
var (
	ErrModuleNotFound   = errors.New("learning module not found")
	ErrProgressNotFound = errors.New("module progress not found")
)

// Hackathon errors
var (
	ErrHackathonNotFound = errors.New("hackathon not found")
	ErrAlreadyJoined     = errors.New("already joined hackathon")
)

// AI collaborator errors
var (
	// ErrMalformedAIResponse indicates the AI returned text that could not be
	// decoded into the expected JSON payload. Terminal for the enclosing
	// operation; no retry, no partial fallback.
	ErrMalformedAIResponse = errors.New("malformed AI response")
)

// General errors
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")
)
