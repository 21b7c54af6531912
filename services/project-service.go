package services

import (
	"context"
	"errors"
	"fmt"

	"todo-project/task-manager/db"
	"todo-project/task-manager/errs"
	"todo-project/task-manager/models"
	"todo-project/task-manager/validators"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProjectService struct {
	projectsCollection *mongo.Collection
	tasksCollection    *mongo.Collection
}

func NewProjectService(database *mongo.Database) *ProjectService {
	return &ProjectService{
		projectsCollection: database.Collection(db.ProjectsCollection),
		tasksCollection:    database.Collection(db.TasksCollection),
	}
}

// CreateProject inserts a pre-validated project with an empty task list
// after checking that no project already carries the same name.
func (s *ProjectService) CreateProject(ctx context.Context, p validators.ProjectPayload) (*mongo.InsertOneResult, error) {
	err := s.projectsCollection.FindOne(ctx, bson.M{"name": p.Name}).Err()
	if err == nil {
		return nil, &errs.DuplicateNameError{Msg: "A project with the same name already exists"}
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to check existing projects: %v", err)
	}

	project := models.Project{
		Name:      p.Name,
		StartDate: p.StartDate,
		DueDate:   p.DueDate,
		Tasks:     []primitive.ObjectID{},
	}

	result, err := s.projectsCollection.InsertOne(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %v", err)
	}
	return result, nil
}

// GetAllProjects returns every project, or NotFoundError when none exist.
func (s *ProjectService) GetAllProjects(ctx context.Context) ([]models.Project, error) {
	return s.findProjects(ctx, nil)
}

// UpdateProject applies an update set built by the validators to one project.
func (s *ProjectService) UpdateProject(ctx context.Context, projectID primitive.ObjectID, update bson.M) error {
	result, err := s.projectsCollection.UpdateOne(ctx, bson.M{"_id": projectID}, bson.M{"$set": update})
	if err != nil {
		return fmt.Errorf("failed to update project: %v", err)
	}
	if result.MatchedCount == 0 {
		return errs.NewNotFound("Project not found with ID: %s", projectID.Hex())
	}
	return nil
}

// DeleteProject removes one project by id.
func (s *ProjectService) DeleteProject(ctx context.Context, projectID primitive.ObjectID) error {
	result, err := s.projectsCollection.DeleteOne(ctx, bson.M{"_id": projectID})
	if err != nil {
		return fmt.Errorf("failed to delete project: %v", err)
	}
	if result.DeletedCount == 0 {
		return errs.NewNotFound("Project not found with ID: %s", projectID.Hex())
	}
	return nil
}

// AssignTask links an existing task to an existing project. The task id is
// added with set semantics, so repeating the same assignment is a no-op.
func (s *ProjectService) AssignTask(ctx context.Context, taskID, projectID primitive.ObjectID) error {
	if err := s.tasksCollection.FindOne(ctx, bson.M{"_id": taskID}).Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return errs.NewNotFound("Task not found with ID: %s", taskID.Hex())
		}
		return fmt.Errorf("failed to fetch task: %v", err)
	}
	if err := s.projectsCollection.FindOne(ctx, bson.M{"_id": projectID}).Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return errs.NewNotFound("Project not found with ID: %s", projectID.Hex())
		}
		return fmt.Errorf("failed to fetch project: %v", err)
	}

	update := bson.M{"$addToSet": bson.M{"tasks": taskID}}
	result, err := s.projectsCollection.UpdateOne(ctx, bson.M{"_id": projectID}, update)
	if err != nil {
		return fmt.Errorf("failed to assign task to project: %v", err)
	}
	if result.MatchedCount == 0 {
		return errs.NewNotFound("Failed to assign task with ID: %s to project", taskID.Hex())
	}
	return nil
}

// TasksByProjectName resolves a project by its exact name and returns the
// full task records linked to it.
func (s *ProjectService) TasksByProjectName(ctx context.Context, projectName string) ([]models.Task, error) {
	var project models.Project
	if err := s.projectsCollection.FindOne(ctx, bson.M{"name": projectName}).Decode(&project); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, errs.NewNotFound("Project not found with name: %s", projectName)
		}
		return nil, fmt.Errorf("failed to fetch project: %v", err)
	}

	if len(project.Tasks) == 0 {
		return nil, errs.NewNotFound("No tasks found for project: %s", projectName)
	}

	cursor, err := s.tasksCollection.Find(ctx, bson.M{"_id": bson.M{"$in": project.Tasks}})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve tasks: %v", err)
	}
	defer cursor.Close(ctx)

	var tasks []models.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %v", err)
	}
	if len(tasks) == 0 {
		return nil, errs.NewNotFound("No tasks found for project: %s", projectName)
	}
	return tasks, nil
}

// GetProjectsSortedByDate returns all projects ordered by an allow-listed
// date field.
func (s *ProjectService) GetProjectsSortedByDate(ctx context.Context, sortBy string, order int) ([]models.Project, error) {
	opts := options.Find().SetSort(bson.D{{Key: sortBy, Value: order}})
	return s.findProjects(ctx, opts)
}

func (s *ProjectService) findProjects(ctx context.Context, opts *options.FindOptions) ([]models.Project, error) {
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = s.projectsCollection.Find(ctx, bson.M{}, opts)
	} else {
		cursor, err = s.projectsCollection.Find(ctx, bson.M{})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve projects: %v", err)
	}
	defer cursor.Close(ctx)

	var projects []models.Project
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("failed to decode projects: %v", err)
	}
	if len(projects) == 0 {
		return nil, errs.NewNotFound("No projects found")
	}
	return projects, nil
}
