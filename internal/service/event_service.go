package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"taskapp/internal/authz"
	"taskapp/internal/model"
	"taskapp/internal/repository"
)

// Accepted layouts for event dates. The short form matches what a
// datetime-local input submits.
var eventDateLayouts = []string{time.RFC3339, "2006-01-02T15:04"}

type EventService struct {
	events   repository.EventRepositoryInterface
	validate *validator.Validate
}

func NewEventService(events repository.EventRepositoryInterface) *EventService {
	return &EventService{
		events:   events,
		validate: newValidator(),
	}
}

// EventInput carries the user-suppliable event fields. CreatedBy is never
// taken from input.
type EventInput struct {
	Title       string `json:"title" validate:"required,max=150"`
	Description string `json:"description" validate:"required"`
	Date        string `json:"date" validate:"required"`
}

// ListAll returns every event, latest date first.
func (s *EventService) ListAll(ctx context.Context) ([]model.Event, error) {
	return s.events.ListAll(ctx)
}

// Get returns a single event or repository.ErrEventNotFound.
func (s *EventService) Get(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	return s.events.GetByID(ctx, id)
}

// Create validates the input and persists the event with the caller as
// creator.
func (s *EventService) Create(ctx context.Context, user *model.User, in EventInput) (*model.Event, error) {
	date, verr := s.checkInput(in)
	if verr != nil {
		return nil, verr
	}

	event := &model.Event{
		Title:       in.Title,
		Description: in.Description,
		Date:        date,
		CreatedByID: user.ID,
	}

	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// Update replaces the editable fields of an event. The forbidden check runs
// before validation so an unauthorized caller can never touch the record.
func (s *EventService) Update(ctx context.Context, user *model.User, id uuid.UUID, in EventInput) (*model.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !authz.CanModify(user, event.CreatedByID) {
		return nil, ErrForbidden
	}

	date, verr := s.checkInput(in)
	if verr != nil {
		return nil, verr
	}

	event.Title = in.Title
	event.Description = in.Description
	event.Date = date

	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// Delete permanently removes an event.
func (s *EventService) Delete(ctx context.Context, user *model.User, id uuid.UUID) error {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !authz.CanModify(user, event.CreatedByID) {
		return ErrForbidden
	}

	return s.events.Delete(ctx, id)
}

func (s *EventService) checkInput(in EventInput) (time.Time, *ValidationError) {
	verr := &ValidationError{}

	if err := s.validate.Struct(in); err != nil {
		collectViolations(err, verr)
	}

	var date time.Time
	if in.Date != "" {
		parsed, err := parseEventDate(in.Date)
		if err != nil {
			verr.add("date", "must be a valid date and time")
		} else {
			date = parsed
		}
	}

	if verr.hasAny() {
		return time.Time{}, verr
	}
	return date, nil
}

func parseEventDate(value string) (time.Time, error) {
	var err error
	for _, layout := range eventDateLayouts {
		var parsed time.Time
		if parsed, err = time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, err
}
