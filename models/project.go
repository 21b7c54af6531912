package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Project struct {
	ID        primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Name      string               `json:"name" bson:"name"`
	StartDate string               `json:"startDate" bson:"startDate"`
	DueDate   string               `json:"dueDate" bson:"dueDate"`
	Tasks     []primitive.ObjectID `json:"tasks" bson:"tasks"`
}
