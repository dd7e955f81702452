package service

import (
	"context"
	"log"
	"time"

	"taskapp/internal/model"
	"taskapp/internal/repository"
)

const (
	upcomingWindow     = 7 * 24 * time.Hour
	upcomingEventLimit = 5
)

type DashboardService struct {
	tasks  repository.TaskRepositoryInterface
	events repository.EventRepositoryInterface
}

func NewDashboardService(
	tasks repository.TaskRepositoryInterface,
	events repository.EventRepositoryInterface,
) *DashboardService {
	return &DashboardService{
		tasks:  tasks,
		events: events,
	}
}

// MemberDashboard summarizes what a member sees after logging in.
type MemberDashboard struct {
	OpenTaskCount      int64         `json:"open_task_count"`
	UpcomingEvents     []model.Event `json:"upcoming_events"`
	UpcomingEventCount int64         `json:"upcoming_event_count"`
}

// AdminDashboard summarizes the whole system for staff users.
type AdminDashboard struct {
	TotalTaskCount     int64        `json:"total_task_count"`
	CompletedTaskCount int64        `json:"completed_task_count"`
	UpcomingEventCount int64        `json:"upcoming_event_count"`
	Tasks              []model.Task `json:"tasks"`
}

// Member computes the member dashboard. Query failures are logged and
// absorbed; the caller always gets a well-formed result, degrading to zero
// values when the store is unavailable.
func (s *DashboardService) Member(ctx context.Context, user *model.User) MemberDashboard {
	empty := MemberDashboard{UpcomingEvents: []model.Event{}}

	openTasks, err := s.tasks.CountOpenAssignedTo(ctx, user.ID)
	if err != nil {
		log.Printf("⚠️  Failed to fetch dashboard data: %v", err)
		return empty
	}

	cutoff := time.Now().Add(upcomingWindow)

	events, err := s.events.ListUpcoming(ctx, cutoff, upcomingEventLimit)
	if err != nil {
		log.Printf("⚠️  Failed to fetch dashboard data: %v", err)
		return empty
	}

	eventCount, err := s.events.CountUpcoming(ctx, cutoff)
	if err != nil {
		log.Printf("⚠️  Failed to fetch dashboard data: %v", err)
		return empty
	}

	if events == nil {
		events = []model.Event{}
	}

	return MemberDashboard{
		OpenTaskCount:      openTasks,
		UpcomingEvents:     events,
		UpcomingEventCount: eventCount,
	}
}

// Admin computes the staff dashboard. The caller is responsible for the admin
// gate; no authorization check happens here. The event count covers all
// events, matching what the admin page has always shown.
func (s *DashboardService) Admin(ctx context.Context) (AdminDashboard, error) {
	totalTasks, err := s.tasks.CountAll(ctx)
	if err != nil {
		return AdminDashboard{}, err
	}

	completedTasks, err := s.tasks.CountCompleted(ctx)
	if err != nil {
		return AdminDashboard{}, err
	}

	eventCount, err := s.events.CountAll(ctx)
	if err != nil {
		return AdminDashboard{}, err
	}

	tasks, err := s.tasks.ListAll(ctx)
	if err != nil {
		return AdminDashboard{}, err
	}
	if tasks == nil {
		tasks = []model.Task{}
	}

	return AdminDashboard{
		TotalTaskCount:     totalTasks,
		CompletedTaskCount: completedTasks,
		UpcomingEventCount: eventCount,
		Tasks:              tasks,
	}, nil
}
