package handlers

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"
)

// ReportService runs the read-only due-date reports.
type ReportService interface {
	ProjectsWithTasksDueToday(ctx context.Context) ([]bson.M, error)
	TasksInProjectsDueToday(ctx context.Context) ([]bson.M, error)
}

type ReportHandler struct {
	service ReportService
}

func NewReportHandler(service ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) ProjectsDueToday(w http.ResponseWriter, r *http.Request) {
	results, err := h.service.ProjectsWithTasksDueToday(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, results)
}

func (h *ReportHandler) TasksDueToday(w http.ResponseWriter, r *http.Request) {
	results, err := h.service.TasksInProjectsDueToday(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, results)
}
