package services

import (
	"errors"
	"fmt"

	"github.com/classroom-apps/qa-service/internal/validator"
)

// ValidationErrors is the request-rule failure type surfaced to handlers.
type ValidationErrors = validator.ValidationErrors

// Sentinel errors mapped to HTTP statuses by the handlers.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrAnswerNotFound   = errors.New("answer not found")
)

// PermissionError carries the context of a failed authorization check:
// which actor tried which action on which resource, and why it was refused.
type PermissionError struct {
	ActorID    uint
	ResourceID uint
	Resource   string
	Action     string
	Reason     string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("actor %d cannot %s %s %d: %s", e.ActorID, e.Action, e.Resource, e.ResourceID, e.Reason)
}

func NewPermissionError(actorID, resourceID uint, resource, action, reason string) *PermissionError {
	return &PermissionError{
		ActorID:    actorID,
		ResourceID: resourceID,
		Resource:   resource,
		Action:     action,
		Reason:     reason,
	}
}
