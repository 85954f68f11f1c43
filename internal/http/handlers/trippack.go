package handlers

import (
	"net/http"

	"railpass/internal/domain"
	"railpass/internal/http/middleware"
	"railpass/internal/services"

	"github.com/gin-gonic/gin"
)

// TripPackHandlers serves the printable PDF pack.
type TripPackHandlers struct {
	TripPack services.TripPackService
}

type tripPackRequest struct {
	ItineraryID string                   `json:"itineraryId"`
	Profile     domain.PassProfile       `json:"profile"`
	Segments    []domain.RailSegment     `json:"segments"`
	Tasks       []domain.ReservationTask `json:"tasks,omitempty"`
}

// POST /api/trip-pack
func (h TripPackHandlers) GenerateTripPack(c *gin.Context) {
	var req tripPackRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	svc := h.TripPack
	svc.RequestID = middleware.GetRequestID(c)
	pdf, filename, err := svc.GenerateTripPack(req.ItineraryID, req.Segments, req.Profile, req.Tasks)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
