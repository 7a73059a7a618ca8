package model

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/sekolahub/sekolahub-backend/internal/authz"
)

// Question is a multiple-choice question belonging to an exam. Options is a
// JSON array of labelled choices; CorrectOption holds the winning label.
// SchoolID is denormalized from the owning exam so tenant scoping applies
// directly.
type Question struct {
	Base
	SchoolID      uuid.UUID       `json:"school_id"`
	ExamID        uuid.UUID       `json:"exam_id"`
	Text          string          `json:"text"`
	Options       json.RawMessage `json:"options"`
	CorrectOption string          `json:"correct_option"`
}

// EntityKind identifies the question entity kind.
func (q *Question) EntityKind() authz.Kind { return authz.KindQuestion }

// ScopeField exposes the fields scope predicates may reference.
func (q *Question) ScopeField(name string) (any, bool) {
	switch name {
	case authz.FieldID:
		return q.ID, true
	case authz.FieldSchoolID:
		return q.SchoolID, true
	}
	return nil, false
}

// CreateQuestionRequest is the payload for adding a question to an exam.
type CreateQuestionRequest struct {
	Text          string          `json:"text" binding:"required,min=2"`
	Options       json.RawMessage `json:"options" binding:"required"`
	CorrectOption string          `json:"correct_option" binding:"required,min=1,max=8"`
}
