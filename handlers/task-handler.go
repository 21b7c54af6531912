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

// TaskService is the subset of task operations the handler needs. Declared
// here so tests can swap in a double.
type TaskService interface {
	CreateTask(ctx context.Context, p validators.TaskPayload) (*mongo.InsertOneResult, error)
	GetAllTasks(ctx context.Context) ([]models.Task, error)
	UpdateTask(ctx context.Context, taskID primitive.ObjectID, update bson.M) error
	DeleteTask(ctx context.Context, taskID primitive.ObjectID) error
	MarkTaskStatus(ctx context.Context, taskID primitive.ObjectID, status models.TaskStatus) (string, error)
	FilterTasksByStatus(ctx context.Context, status models.TaskStatus) ([]models.Task, error)
	SearchTasksByName(ctx context.Context, name string) ([]models.Task, error)
	GetTasksSortedByDate(ctx context.Context, sortBy string, order int) ([]models.Task, error)
}

type TaskHandler struct {
	service TaskService
}

func NewTaskHandler(service TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var payload validators.TaskPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := validators.ValidateTaskCreation(payload); err != nil {
		respondError(w, err)
		return
	}

	result, err := h.service.CreateTask(r.Context(), payload)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, result)
}

func (h *TaskHandler) GetAllTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.service.GetAllTasks(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := validators.ValidateObjectID(mux.Vars(r)["id"], "task")
	if err != nil {
		respondError(w, err)
		return
	}

	var payload validators.TaskPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	update, err := validators.BuildTaskUpdate(payload)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.service.UpdateTask(r.Context(), taskID, update); err != nil {
		respondError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "Task updated successfully.")
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := validators.ValidateObjectID(mux.Vars(r)["id"], "task")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.service.DeleteTask(r.Context(), taskID); err != nil {
		respondError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "Task deleted successfully.")
}

func (h *TaskHandler) MarkTaskStatus(w http.ResponseWriter, r *http.Request) {
	taskID, err := validators.ValidateObjectID(mux.Vars(r)["id"], "task")
	if err != nil {
		respondError(w, err)
		return
	}

	var request struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := validators.ValidateStatus(request.Status); err != nil {
		respondError(w, err)
		return
	}

	message, err := h.service.MarkTaskStatus(r.Context(), taskID, models.TaskStatus(request.Status))
	if err != nil {
		respondError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, message)
}

func (h *TaskHandler) FilterTasksByStatus(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if err := validators.ValidateStatus(status); err != nil {
		respondError(w, err)
		return
	}

	tasks, err := h.service.FilterTasksByStatus(r.Context(), models.TaskStatus(status))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) SearchTasksByName(w http.ResponseWriter, r *http.Request) {
	name, err := validators.ValidateSearchName(r.URL.Query().Get("name"))
	if err != nil {
		respondError(w, err)
		return
	}

	tasks, err := h.service.SearchTasksByName(r.Context(), name)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) GetTasksSortedByDate(w http.ResponseWriter, r *http.Request) {
	sortBy := r.URL.Query().Get("sortBy")
	order := r.URL.Query().Get("order")

	if err := validators.ValidateTaskSort(sortBy, order); err != nil {
		respondError(w, err)
		return
	}

	tasks, err := h.service.GetTasksSortedByDate(r.Context(), sortBy, validators.SortOrder(order))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tasks)
}
