package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"opinion-collector/internal/model"
)

// EventStore is the append-only persistence contract for events.
type EventStore interface {
	Append(ctx context.Context, event *model.Event) error
	FindAll(ctx context.Context) ([]model.Event, error)
	FindByQuestion(ctx context.Context, questionID uuid.UUID) ([]model.Event, error)
}

// ReportNotifier tells moderators about a freshly recorded question report.
type ReportNotifier interface {
	NotifyQuestionReport(ctx context.Context, event model.Event) error
}

// EventService records user-submitted events.
type EventService struct {
	events   EventStore
	notifier ReportNotifier
	log      *zap.Logger
}

// NewEventService builds the service. notifier may be nil.
func NewEventService(events EventStore, notifier ReportNotifier, log *zap.Logger) *EventService {
	if log == nil {
		log = zap.NewNop()
	}
	return &EventService{events: events, notifier: notifier, log: log.Named("events")}
}

func (s *EventService) Record(ctx context.Context, userID uuid.UUID, description string) (*model.Event, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidEvent)
	}
	event := model.NewEvent(userID, strings.TrimSpace(description))
	if err := s.events.Append(ctx, event); err != nil {
		return nil, err
	}
	s.log.Info("event recorded", zap.Stringer("event_id", event.ID), zap.Stringer("user_id", userID))
	return event, nil
}

// RecordQuestionReport stores a report against a question and pings moderators.
// A failed notification is logged; the report itself stays recorded.
func (s *EventService) RecordQuestionReport(ctx context.Context, userID, questionID uuid.UUID, description string) (*model.Event, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidEvent)
	}
	if questionID == uuid.Nil {
		return nil, fmt.Errorf("%w: question id is required", ErrInvalidEvent)
	}

	event := model.NewQuestionReportEvent(userID, questionID, strings.TrimSpace(description))
	if err := s.events.Append(ctx, event); err != nil {
		return nil, err
	}
	s.log.Info("question reported",
		zap.Stringer("event_id", event.ID),
		zap.Stringer("user_id", userID),
		zap.Stringer("question_id", questionID))

	if s.notifier != nil {
		if err := s.notifier.NotifyQuestionReport(ctx, *event); err != nil {
			s.log.Warn("notify moderators", zap.Stringer("event_id", event.ID), zap.Error(err))
		}
	}
	return event, nil
}

func (s *EventService) ListEvents(ctx context.Context) ([]model.Event, error) {
	return s.events.FindAll(ctx)
}

func (s *EventService) ListQuestionReports(ctx context.Context, questionID uuid.UUID) ([]model.Event, error) {
	return s.events.FindByQuestion(ctx, questionID)
}
