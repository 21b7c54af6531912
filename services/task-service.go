package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"todo-project/task-manager/db"
	"todo-project/task-manager/errs"
	"todo-project/task-manager/models"
	"todo-project/task-manager/validators"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TaskService struct {
	tasksCollection *mongo.Collection
	now             func() time.Time
}

func NewTaskService(database *mongo.Database) *TaskService {
	return &TaskService{
		tasksCollection: database.Collection(db.TasksCollection),
		now:             time.Now,
	}
}

// CreateTask inserts a pre-validated task after checking that no task
// already carries the same name.
func (s *TaskService) CreateTask(ctx context.Context, p validators.TaskPayload) (*mongo.InsertOneResult, error) {
	count, err := s.tasksCollection.CountDocuments(ctx, bson.M{"name": p.Name})
	if err != nil {
		return nil, fmt.Errorf("failed to check existing tasks: %v", err)
	}
	if count > 0 {
		return nil, &errs.DuplicateNameError{Msg: "Another task exists having same name"}
	}

	task := models.Task{
		Name:      p.Name,
		Status:    models.TaskStatus(p.Status),
		StartDate: &p.StartDate,
		DueDate:   p.DueDate,
	}
	if p.DoneDate != "" {
		task.DoneDate = &p.DoneDate
	}

	result, err := s.tasksCollection.InsertOne(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %v", err)
	}
	return result, nil
}

// GetAllTasks returns every task, or NotFoundError when none exist.
func (s *TaskService) GetAllTasks(ctx context.Context) ([]models.Task, error) {
	return s.findTasks(ctx, bson.M{}, nil, "No tasks found.")
}

// UpdateTask applies an update set built by the validators to one task.
func (s *TaskService) UpdateTask(ctx context.Context, taskID primitive.ObjectID, update bson.M) error {
	result, err := s.tasksCollection.UpdateOne(ctx, bson.M{"_id": taskID}, bson.M{"$set": update})
	if err != nil {
		return fmt.Errorf("failed to update task: %v", err)
	}
	if result.MatchedCount == 0 {
		return errs.NewNotFound("Task not found belonging to given id: %s.", taskID.Hex())
	}
	return nil
}

// DeleteTask removes one task by id.
func (s *TaskService) DeleteTask(ctx context.Context, taskID primitive.ObjectID) error {
	result, err := s.tasksCollection.DeleteOne(ctx, bson.M{"_id": taskID})
	if err != nil {
		return fmt.Errorf("failed to delete task: %v", err)
	}
	if result.DeletedCount == 0 {
		return errs.NewNotFound("Task not found belonging to given id: %s.", taskID.Hex())
	}
	return nil
}

// MarkTaskStatus flips a task to the target status and derives the related
// date fields. Marking a task that already has the target status changes
// nothing and reports that as a success.
func (s *TaskService) MarkTaskStatus(ctx context.Context, taskID primitive.ObjectID, status models.TaskStatus) (string, error) {
	var current models.Task
	if err := s.tasksCollection.FindOne(ctx, bson.M{"_id": taskID}).Decode(&current); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", errs.NewNotFound("Task not found.")
		}
		return "", fmt.Errorf("failed to fetch task: %v", err)
	}

	if current.Status == status {
		return fmt.Sprintf("Task is already marked as %s. No changes has been made.", status), nil
	}

	today := s.now().Format(models.DateLayout)
	update := statusTransitionUpdate(current, status, today)

	result, err := s.tasksCollection.UpdateOne(ctx, bson.M{"_id": taskID}, bson.M{"$set": update})
	if err != nil {
		return "", fmt.Errorf("failed to update task status: %v", err)
	}
	if result.MatchedCount == 0 {
		return "", errs.NewNotFound("Task not found.")
	}
	return fmt.Sprintf("Task marked as %s successfully.", status), nil
}

// statusTransitionUpdate computes the field set a status flip persists.
// Moving to done stamps the done date and backfills the start date only when
// it was never set; moving back to to-do clears both dates.
func statusTransitionUpdate(current models.Task, target models.TaskStatus, today string) bson.M {
	update := bson.M{"status": target}

	switch target {
	case models.StatusToDo:
		update["startDate"] = nil
		update["doneDate"] = nil
	case models.StatusDone:
		update["doneDate"] = today
		if current.StartDate == nil || *current.StartDate == "" {
			update["startDate"] = today
		}
	}
	return update
}

// FilterTasksByStatus returns tasks holding the given status.
func (s *TaskService) FilterTasksByStatus(ctx context.Context, status models.TaskStatus) ([]models.Task, error) {
	return s.findTasks(ctx, bson.M{"status": status}, nil, "No tasks found.")
}

// SearchTasksByName returns tasks whose name contains the trimmed term,
// case-insensitively. The term is quoted so regex metacharacters in user
// input match literally.
func (s *TaskService) SearchTasksByName(ctx context.Context, name string) ([]models.Task, error) {
	filter := bson.M{"name": primitive.Regex{Pattern: regexp.QuoteMeta(name), Options: "i"}}
	return s.findTasks(ctx, filter, nil, "No tasks found by given name.")
}

// GetTasksSortedByDate returns all tasks ordered by an allow-listed date field.
func (s *TaskService) GetTasksSortedByDate(ctx context.Context, sortBy string, order int) ([]models.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: sortBy, Value: order}})
	return s.findTasks(ctx, bson.M{}, opts, "No tasks found.")
}

func (s *TaskService) findTasks(ctx context.Context, filter bson.M, opts *options.FindOptions, emptyMsg string) ([]models.Task, error) {
	var tasks []models.Task

	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = s.tasksCollection.Find(ctx, filter, opts)
	} else {
		cursor, err = s.tasksCollection.Find(ctx, filter)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve tasks: %v", err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %v", err)
	}
	if len(tasks) == 0 {
		return nil, errs.NewNotFound("%s", emptyMsg)
	}
	return tasks, nil
}
