package models

import (
	"errors"
	"fmt"
)

// Domain errors are typed so the HTTP layer can translate each kind to a
// caller-visible outcome instead of string-matching.
var (
	ErrNotFound     = errors.New("not found")
	ErrInactiveCode = errors.New("test code inactive")
	ErrForbidden    = errors.New("forbidden")
)

// AlreadyCompletedError is returned when a student starts a session for
// an assignment they already finished without requesting a restart. It
// carries enough identifying data to redirect to the existing result.
type AlreadyCompletedError struct {
	SessionID    int64
	AssignmentID int64
}

func (e *AlreadyCompletedError) Error() string {
	return fmt.Sprintf("session %d for assignment %d already completed", e.SessionID, e.AssignmentID)
}

type AlreadyCompletedResponse struct {
	Error        string `json:"error"`
	SessionID    int64  `json:"session_id"`
	AssignmentID int64  `json:"assignment_id"`
}
