package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type TaskStatus string

const (
	StatusToDo TaskStatus = "to-do"
	StatusDone TaskStatus = "done"
)

// DateLayout is the only accepted layout for startDate, dueDate and doneDate.
const DateLayout = "2006-01-02"

type Task struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Status    TaskStatus         `json:"status" bson:"status"`
	StartDate *string            `json:"startDate" bson:"startDate"`
	DueDate   string             `json:"dueDate" bson:"dueDate"`
	DoneDate  *string            `json:"doneDate,omitempty" bson:"doneDate,omitempty"`
}
