package handlers

import (
	"railpass/internal/domain"
	"railpass/internal/http/middleware"
	"railpass/internal/repositories"
	"railpass/internal/services"

	"github.com/gin-gonic/gin"
)

// TaskHandlers wraps the stateful half: planning and task lifecycle.
type TaskHandlers struct {
	Planning services.PlanningService
}

type planRequest struct {
	ItineraryID string               `json:"itineraryId"`
	Segments    []domain.RailSegment `json:"segments"`
}

// POST /api/reservations/plan
func (h TaskHandlers) PlanReservations(c *gin.Context) {
	var req planRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	svc := h.Planning
	svc.RequestID = middleware.GetRequestID(c)
	res, err := svc.PlanAndPersist(req.ItineraryID, req.Segments)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, res)
}

// GET /api/itineraries/:id/tasks
func (h TaskHandlers) ListTasks(c *gin.Context) {
	tasks, err := h.Planning.Tasks(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, tasks)
}

// PUT /api/tasks/:id/status
func (h TaskHandlers) TransitionTask(c *gin.Context) {
	var in repositories.TransitionInput
	if !BindJSONOrError(c, &in) {
		return
	}
	svc := h.Planning
	svc.RequestID = middleware.GetRequestID(c)
	task, err := svc.ApplyTransition(c.Param("id"), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, task)
}

// GET /api/tasks/:id/next-states
func (h TaskHandlers) LegalNextStates(c *gin.Context) {
	task, err := h.Planning.TaskRepo.GetByID(c.Param("id"))
	if err != nil {
		RespondDomainError(c, domain.NotFoundError{Resource: "reservation task", Err: err})
		return
	}
	RespondOK(c, gin.H{"status": task.Status, "next": domain.LegalNextStates(task.Status)})
}
