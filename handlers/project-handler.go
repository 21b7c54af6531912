package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"todo-project/task-manager/models"
	"todo-project/task-manager/validators"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ProjectService is the subset of project operations the handler needs.
type ProjectService interface {
	CreateProject(ctx context.Context, p validators.ProjectPayload) (*mongo.InsertOneResult, error)
	GetAllProjects(ctx context.Context) ([]models.Project, error)
	UpdateProject(ctx context.Context, projectID primitive.ObjectID, update bson.M) error
	DeleteProject(ctx context.Context, projectID primitive.ObjectID) error
	AssignTask(ctx context.Context, taskID, projectID primitive.ObjectID) error
	TasksByProjectName(ctx context.Context, projectName string) ([]models.Task, error)
	GetProjectsSortedByDate(ctx context.Context, sortBy string, order int) ([]models.Project, error)
}

type ProjectHandler struct {
	service ProjectService
}

func NewProjectHandler(service ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var payload validators.ProjectPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := validators.ValidateProjectCreation(payload); err != nil {
		respondError(w, err)
		return
	}

	result, err := h.service.CreateProject(r.Context(), payload)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, result)
}

func (h *ProjectHandler) GetAllProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.service.GetAllProjects(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, projects)
}

func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := validators.ValidateObjectID(mux.Vars(r)["id"], "project")
	if err != nil {
		respondError(w, err)
		return
	}

	var payload validators.ProjectPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	update, err := validators.BuildProjectUpdate(payload)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.service.UpdateProject(r.Context(), projectID, update); err != nil {
		respondError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "Project updated successfully")
}

func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := validators.ValidateObjectID(mux.Vars(r)["id"], "project")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.service.DeleteProject(r.Context(), projectID); err != nil {
		respondError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "Project deleted successfully")
}

func (h *ProjectHandler) AssignTask(w http.ResponseWriter, r *http.Request) {
	var request struct {
		TaskID    string `json:"taskId"`
		ProjectID string `json:"projectId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	projectID, err := validators.ValidateObjectID(request.ProjectID, "project")
	if err != nil {
		respondError(w, err)
		return
	}
	taskID, err := validators.ValidateObjectID(request.TaskID, "task")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.service.AssignTask(r.Context(), taskID, projectID); err != nil {
		respondError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "Task assigned to project successfully")
}

func (h *ProjectHandler) FilterTasksByProjectName(w http.ResponseWriter, r *http.Request) {
	projectName := r.URL.Query().Get("projectName")
	if err := validators.ValidateProjectName(projectName); err != nil {
		respondError(w, err)
		return
	}

	tasks, err := h.service.TasksByProjectName(r.Context(), projectName)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tasks)
}

func (h *ProjectHandler) GetProjectsSortedByDate(w http.ResponseWriter, r *http.Request) {
	sortBy := r.URL.Query().Get("sortBy")
	order := r.URL.Query().Get("order")

	if err := validators.ValidateProjectSort(sortBy, order); err != nil {
		respondError(w, err)
		return
	}

	projects, err := h.service.GetProjectsSortedByDate(r.Context(), sortBy, validators.SortOrder(order))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, projects)
}
