package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventKind tells the variants of Event apart inside the shared events table.
type EventKind string

const (
	EventKindGeneric        EventKind = "GENERIC"
	EventKindQuestionReport EventKind = "QUESTION_REPORT"
)

// Event is an append-only record submitted by a user. Question reports carry
// the reported question in QuestionID; other kinds leave it nil.
type Event struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Kind        EventKind  `gorm:"size:32;index;not null"`
	UserID      uuid.UUID  `gorm:"type:uuid;index;not null"`
	Description string
	QuestionID  *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt   time.Time
}

func NewEvent(userID uuid.UUID, description string) *Event {
	return &Event{
		ID:          uuid.New(),
		Kind:        EventKindGeneric,
		UserID:      userID,
		Description: description,
	}
}

// NewQuestionReportEvent records that userID flagged questionID.
func NewQuestionReportEvent(userID, questionID uuid.UUID, description string) *Event {
	e := NewEvent(userID, description)
	e.Kind = EventKindQuestionReport
	e.QuestionID = &questionID
	return e
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

func (e Event) IsQuestionReport() bool {
	return e.Kind == EventKindQuestionReport && e.QuestionID != nil
}

func (e Event) String() string {
	if e.IsQuestionReport() {
		return fmt.Sprintf("QuestionReportEvent(eventID=%s, userID=%s, description=%q, questionID=%s)",
			e.ID, e.UserID, e.Description, *e.QuestionID)
	}
	return fmt.Sprintf("Event(eventID=%s, userID=%s, description=%q)", e.ID, e.UserID, e.Description)
}
