package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"todo-project/task-manager/errs"
	"todo-project/task-manager/models"
	"todo-project/task-manager/validators"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// fakeTaskService satisfies TaskService with overridable function fields so
// each test controls exactly one behavior.
type fakeTaskService struct {
	createFn func(validators.TaskPayload) (*mongo.InsertOneResult, error)
	getAllFn func() ([]models.Task, error)
	updateFn func(primitive.ObjectID, bson.M) error
	deleteFn func(primitive.ObjectID) error
	markFn   func(primitive.ObjectID, models.TaskStatus) (string, error)
	filterFn func(models.TaskStatus) ([]models.Task, error)
	searchFn func(string) ([]models.Task, error)
	sortFn   func(string, int) ([]models.Task, error)
}

func (f *fakeTaskService) CreateTask(_ context.Context, p validators.TaskPayload) (*mongo.InsertOneResult, error) {
	return f.createFn(p)
}

func (f *fakeTaskService) GetAllTasks(_ context.Context) ([]models.Task, error) {
	return f.getAllFn()
}

func (f *fakeTaskService) UpdateTask(_ context.Context, id primitive.ObjectID, update bson.M) error {
	return f.updateFn(id, update)
}

func (f *fakeTaskService) DeleteTask(_ context.Context, id primitive.ObjectID) error {
	return f.deleteFn(id)
}

func (f *fakeTaskService) MarkTaskStatus(_ context.Context, id primitive.ObjectID, status models.TaskStatus) (string, error) {
	return f.markFn(id, status)
}

func (f *fakeTaskService) FilterTasksByStatus(_ context.Context, status models.TaskStatus) ([]models.Task, error) {
	return f.filterFn(status)
}

func (f *fakeTaskService) SearchTasksByName(_ context.Context, name string) ([]models.Task, error) {
	return f.searchFn(name)
}

func (f *fakeTaskService) GetTasksSortedByDate(_ context.Context, sortBy string, order int) ([]models.Task, error) {
	return f.sortFn(sortBy, order)
}

func taskRouter(h *TaskHandler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/task/filter", h.FilterTasksByStatus).Methods(http.MethodGet)
	r.HandleFunc("/api/task/search", h.SearchTasksByName).Methods(http.MethodGet)
	r.HandleFunc("/api/task/sort", h.GetTasksSortedByDate).Methods(http.MethodGet)
	r.HandleFunc("/api/task/mark/{id}", h.MarkTaskStatus).Methods(http.MethodPatch)
	r.HandleFunc("/api/task/{id}", h.UpdateTask).Methods(http.MethodPatch)
	r.HandleFunc("/api/task/{id}", h.DeleteTask).Methods(http.MethodDelete)
	r.HandleFunc("/api/task", h.CreateTask).Methods(http.MethodPost)
	r.HandleFunc("/api/task", h.GetAllTasks).Methods(http.MethodGet)
	return r
}

func doRequest(t *testing.T, r *mux.Router, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp messageResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Message
}

const validID = "507f1f77bcf86cd799439011"

func TestCreateTaskHandler(t *testing.T) {
	t.Run("valid payload inserts and returns 201", func(t *testing.T) {
		fake := &fakeTaskService{
			createFn: func(p validators.TaskPayload) (*mongo.InsertOneResult, error) {
				assert.Equal(t, "Write report", p.Name)
				return &mongo.InsertOneResult{InsertedID: primitive.NewObjectID()}, nil
			},
		}
		r := taskRouter(NewTaskHandler(fake))

		rec := doRequest(t, r, http.MethodPost, "/api/task",
			`{"status":"to-do","name":"Write report","startDate":"2024-06-01","dueDate":"2024-06-10"}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("validation failure stops before the service", func(t *testing.T) {
		called := false
		fake := &fakeTaskService{
			createFn: func(validators.TaskPayload) (*mongo.InsertOneResult, error) {
				called = true
				return nil, nil
			},
		}
		r := taskRouter(NewTaskHandler(fake))

		rec := doRequest(t, r, http.MethodPost, "/api/task",
			`{"status":"to-do","name":"Write report","startDate":"2024-06-01"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "status, name, start date, due date are required", decodeMessage(t, rec))
		assert.False(t, called)
	})

	t.Run("duplicate name maps to 400", func(t *testing.T) {
		fake := &fakeTaskService{
			createFn: func(validators.TaskPayload) (*mongo.InsertOneResult, error) {
				return nil, &errs.DuplicateNameError{Msg: "Another task exists having same name"}
			},
		}
		r := taskRouter(NewTaskHandler(fake))

		rec := doRequest(t, r, http.MethodPost, "/api/task",
			`{"status":"to-do","name":"Write report","startDate":"2024-06-01","dueDate":"2024-06-10"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Another task exists having same name", decodeMessage(t, rec))
	})

	t.Run("malformed json maps to 400", func(t *testing.T) {
		r := taskRouter(NewTaskHandler(&fakeTaskService{}))

		rec := doRequest(t, r, http.MethodPost, "/api/task", `{"status":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetAllTasksHandler(t *testing.T) {
	t.Run("empty store maps to 404", func(t *testing.T) {
		fake := &fakeTaskService{
			getAllFn: func() ([]models.Task, error) {
				return nil, errs.NewNotFound("No tasks found.")
			},
		}
		r := taskRouter(NewTaskHandler(fake))

		rec := doRequest(t, r, http.MethodGet, "/api/task", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "No tasks found.", decodeMessage(t, rec))
	})

	t.Run("tasks returned as json array", func(t *testing.T) {
		fake := &fakeTaskService{
			getAllFn: func() ([]models.Task, error) {
				return []models.Task{{Name: "a", DueDate: "2024-06-10"}}, nil
			},
		}
		r := taskRouter(NewTaskHandler(fake))

		rec := doRequest(t, r, http.MethodGet, "/api/task", "")

		assert.Equal(t, http.StatusOK, rec.Code)

		var tasks []models.Task
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&tasks))
		assert.Len(t, tasks, 1)
	})
}

func TestUpdateTaskHandler(t *testing.T) {
	t.Run("malformed id maps to 400", func(t *testing.T) {
		called := false
		fake := &fakeTaskService{
			updateFn: func(primitive.ObjectID, bson.M) error {
				called = true
				return nil
			},
		}
		r := taskRouter(NewTaskHandler(fake))

		rec := doRequest(t, r, http.MethodPatch, "/api/task/nope", `{"name":"x"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid task ID format", decodeMessage(t, rec))
		assert.False(t, called)
	})

	t.Run("empty update set maps to 400", func(t *testing.T) {
		r := taskRouter(NewTaskHandler(&fakeTaskService{}))

		rec := doRequest(t, r, http.MethodPatch, "/api/task/"+validID, `{}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "No valid fields provided for update.", decodeMessage(t, rec))
	})

	t.Run("unknown id maps to 404", func(t *testing.T) {
		fake := &fakeTaskService{
			updateFn: func(id primitive.ObjectID, _ bson.M) error {
				return errs.NewNotFound("Task not found belonging to given id: %s.", id.Hex())
			},
		}
		r := taskRouter(NewTaskHandler(fake))

		rec := doRequest(t, r, http.MethodPatch, "/api/task/"+validID, `{"name":"x"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("successful update returns 200", func(t *testing.T) {
		var gotUpdate bson.M
		fake := &fakeTaskService{
			updateFn: func(_ primitive.ObjectID, update bson.M) error {
				gotUpdate = update
				return nil
			},
		}
		r := taskRouter(NewTaskHandler(fake))

		rec := doRequest(t, r, http.MethodPatch, "/api/task/"+validID, `{"name":"x","dueDate":"2024-07-01"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Task updated successfully.", decodeMessage(t, rec))
		assert.Equal(t, bson.M{"name": "x", "dueDate": "2024-07-01"}, gotUpdate)
	})
}

func TestDeleteTaskHandler(t *testing.T) {
	t.Run("unknown id maps to 404", func(t *testing.T) {
		fake := &fakeTaskService{
			deleteFn: func(id primitive.ObjectID) error {
				return errs.NewNotFound("Task not found belonging to given id: %s.", id.Hex())
			},
		}
		r := taskRouter(NewTaskHandler(fake))

		rec := doRequest(t, r, http.MethodDelete, "/api/task/"+validID, "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("successful delete returns 200", func(t *testing.T) {
		fake := &fakeTaskService{
			deleteFn: func(primitive.ObjectID) error { return nil },
		}
		r := taskRouter(NewTaskHandler(fake))

		rec := doRequest(t, r, http.MethodDelete, "/api/task/"+validID, "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Task deleted successfully.", decodeMessage(t, rec))
	})
}

func TestMarkTaskStatusHandler(t *testing.T) {
	t.Run("invalid status maps to 400", func(t *testing.T) {
		r := taskRouter(NewTaskHandler(&fakeTaskService{}))

		rec := doRequest(t, r, http.MethodPatch, "/api/task/mark/"+validID, `{"status":"finished"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "status must be done or to-do", decodeMessage(t, rec))
	})

	t.Run("no-op mark still reports success", func(t *testing.T) {
		fake := &fakeTaskService{
			markFn: func(_ primitive.ObjectID, status models.TaskStatus) (string, error) {
				return "Task is already marked as done. No changes has been made.", nil
			},
		}
		r := taskRouter(NewTaskHandler(fake))

		rec := doRequest(t, r, http.MethodPatch, "/api/task/mark/"+validID, `{"status":"done"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Task is already marked as done. No changes has been made.", decodeMessage(t, rec))
	})

	t.Run("unknown id maps to 404", func(t *testing.T) {
		fake := &fakeTaskService{
			markFn: func(primitive.ObjectID, models.TaskStatus) (string, error) {
				return "", errs.NewNotFound("Task not found.")
			},
		}
		r := taskRouter(NewTaskHandler(fake))

		rec := doRequest(t, r, http.MethodPatch, "/api/task/mark/"+validID, `{"status":"done"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestFilterTasksByStatusHandler(t *testing.T) {
	t.Run("unknown status maps to 400", func(t *testing.T) {
		r := taskRouter(NewTaskHandler(&fakeTaskService{}))

		rec := doRequest(t, r, http.MethodGet, "/api/task/filter?status=paused", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("status forwarded to the service", func(t *testing.T) {
		var gotStatus models.TaskStatus
		fake := &fakeTaskService{
			filterFn: func(status models.TaskStatus) ([]models.Task, error) {
				gotStatus = status
				return []models.Task{{Name: "a"}}, nil
			},
		}
		r := taskRouter(NewTaskHandler(fake))

		rec := doRequest(t, r, http.MethodGet, "/api/task/filter?status=done", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, models.StatusDone, gotStatus)
	})
}

func TestSearchTasksByNameHandler(t *testing.T) {
	t.Run("blank term maps to 400", func(t *testing.T) {
		r := taskRouter(NewTaskHandler(&fakeTaskService{}))

		rec := doRequest(t, r, http.MethodGet, "/api/task/search?name=%20%20", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("term is trimmed before the service sees it", func(t *testing.T) {
		var gotName string
		fake := &fakeTaskService{
			searchFn: func(name string) ([]models.Task, error) {
				gotName = name
				return []models.Task{{Name: "Foo Bar"}}, nil
			},
		}
		r := taskRouter(NewTaskHandler(fake))

		rec := doRequest(t, r, http.MethodGet, "/api/task/search?name=%20foo%20", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "foo", gotName)
	})
}

func TestGetTasksSortedByDateHandler(t *testing.T) {
	t.Run("field outside allow-list maps to 400", func(t *testing.T) {
		r := taskRouter(NewTaskHandler(&fakeTaskService{}))

		rec := doRequest(t, r, http.MethodGet, "/api/task/sort?sortBy=name", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing order defaults to descending", func(t *testing.T) {
		var gotOrder int
		fake := &fakeTaskService{
			sortFn: func(sortBy string, order int) ([]models.Task, error) {
				gotOrder = order
				return []models.Task{{Name: "a"}}, nil
			},
		}
		r := taskRouter(NewTaskHandler(fake))

		rec := doRequest(t, r, http.MethodGet, "/api/task/sort?sortBy=dueDate", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, -1, gotOrder)
	})

	t.Run("asc maps to ascending", func(t *testing.T) {
		var gotOrder int
		fake := &fakeTaskService{
			sortFn: func(sortBy string, order int) ([]models.Task, error) {
				gotOrder = order
				return []models.Task{{Name: "a"}}, nil
			},
		}
		r := taskRouter(NewTaskHandler(fake))

		rec := doRequest(t, r, http.MethodGet, "/api/task/sort?sortBy=startDate&order=asc", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, gotOrder)
	})
}
