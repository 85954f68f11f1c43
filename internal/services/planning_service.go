package services

import (
	"fmt"

	"railpass/internal/domain"
	"railpass/internal/engine"
	"railpass/internal/repositories"
	"railpass/internal/utils"
)

// PlanningService is the seam between the pure engines and the stateful task
// store. The orchestrator mints initial task state; all later transitions
// arrive here from the caller and are checked against the lifecycle.
type PlanningService struct {
	Orchestrator engine.ReservationOrchestrator
	TaskRepo     repositories.TaskRepository
	RequestID    string
}

// PlanAndPersist plans reservations for an itinerary and stores the tasks.
func (s PlanningService) PlanAndPersist(itineraryID string, segments []domain.RailSegment) (engine.PlanResult, error) {
	if itineraryID == "" {
		return engine.PlanResult{}, domain.ValidationError{Field: "itineraryId", Msg: "required"}
	}
	if err := domain.ValidateSegments(segments); err != nil {
		return engine.PlanResult{}, err
	}

	plan, err := s.Orchestrator.PlanReservations(segments)
	if err != nil {
		return engine.PlanResult{}, err
	}
	if s.TaskRepo.DB != nil && len(plan.Tasks) > 0 {
		if err := s.TaskRepo.SaveAll(itineraryID, plan.Tasks); err != nil {
			return engine.PlanResult{}, err
		}
	}
	utils.LogEvent(s.RequestID, "planning", "plan_reservations",
		fmt.Sprintf("itinerary=%s tasks=%d risk=%s", itineraryID, len(plan.Tasks), plan.OverallRisk))
	return plan, nil
}

// ApplyTransition applies one caller-driven lifecycle step to a stored task.
func (s PlanningService) ApplyTransition(taskID string, in repositories.TransitionInput) (domain.ReservationTask, error) {
	if taskID == "" {
		return domain.ReservationTask{}, domain.ValidationError{Field: "taskId", Msg: "required"}
	}
	task, err := s.TaskRepo.Transition(taskID, in)
	if err != nil {
		return domain.ReservationTask{}, err
	}
	utils.LogEvent(s.RequestID, "planning", "task_transition",
		fmt.Sprintf("task=%s status=%s", taskID, task.Status))
	return task, nil
}

// Tasks loads the stored tasks of one itinerary.
func (s PlanningService) Tasks(itineraryID string) ([]domain.ReservationTask, error) {
	if itineraryID == "" {
		return nil, domain.ValidationError{Field: "itineraryId", Msg: "required"}
	}
	return s.TaskRepo.ListByItinerary(itineraryID)
}
