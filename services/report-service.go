package services

import (
	"context"
	"fmt"
	"time"

	"todo-project/task-manager/db"
	"todo-project/task-manager/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ReportService runs the cross-collection due-date reports. Results are the
// joined documents as the aggregation produced them.
type ReportService struct {
	projectsCollection *mongo.Collection
	tasksCollection    *mongo.Collection
	now                func() time.Time
}

func NewReportService(database *mongo.Database) *ReportService {
	return &ReportService{
		projectsCollection: database.Collection(db.ProjectsCollection),
		tasksCollection:    database.Collection(db.TasksCollection),
		now:                time.Now,
	}
}

// ProjectsWithTasksDueToday joins each project to its tasks and keeps the
// pairs whose task is due on the current date.
func (s *ReportService) ProjectsWithTasksDueToday(ctx context.Context) ([]bson.M, error) {
	today := s.now().Format(models.DateLayout)

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         db.TasksCollection,
			"localField":   "tasks",
			"foreignField": "_id",
			"as":           "dueTasks",
		}}},
		bson.D{{Key: "$unwind", Value: "$dueTasks"}},
		bson.D{{Key: "$match", Value: bson.M{"dueTasks.dueDate": today}}},
	}

	return s.aggregate(ctx, s.projectsCollection, pipeline)
}

// TasksInProjectsDueToday joins each task to the projects referencing it and
// keeps the pairs whose project is due on the current date.
func (s *ReportService) TasksInProjectsDueToday(ctx context.Context) ([]bson.M, error) {
	today := s.now().Format(models.DateLayout)

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         db.ProjectsCollection,
			"localField":   "_id",
			"foreignField": "tasks",
			"as":           "dueProjects",
		}}},
		bson.D{{Key: "$unwind", Value: "$dueProjects"}},
		bson.D{{Key: "$match", Value: bson.M{"dueProjects.dueDate": today}}},
	}

	return s.aggregate(ctx, s.tasksCollection, pipeline)
}

func (s *ReportService) aggregate(ctx context.Context, collection *mongo.Collection, pipeline mongo.Pipeline) ([]bson.M, error) {
	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to run report aggregation: %v", err)
	}
	defer cursor.Close(ctx)

	results := []bson.M{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode report results: %v", err)
	}
	return results, nil
}
