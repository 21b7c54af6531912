package validators

import (
	"strings"
	"time"

	"todo-project/task-manager/errs"
	"todo-project/task-manager/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ProjectPayload is the decoded body of a project create or edit request.
// Empty string means the field was not supplied.
type ProjectPayload struct {
	Name      string `json:"name"`
	StartDate string `json:"startDate"`
	DueDate   string `json:"dueDate"`
}

func validateProjectDateFormat(date string) error {
	if !dateRegex.MatchString(date) {
		return errs.NewValidation("Date format must be YYYY-MM-DD")
	}
	return nil
}

func validateProjectDateOrder(startDate, dueDate string) error {
	start, err := time.Parse(models.DateLayout, startDate)
	if err != nil {
		return nil
	}
	if due, err := time.Parse(models.DateLayout, dueDate); err == nil && start.After(due) {
		return errs.NewValidation("Start date cannot be later than due date")
	}
	return nil
}

// ValidateProjectCreation checks a full project creation payload.
func ValidateProjectCreation(p ProjectPayload) error {
	if p.Name == "" || p.StartDate == "" || p.DueDate == "" {
		return errs.NewValidation("Project name, start date, and due date are required")
	}
	if err := validateProjectDateFormat(p.StartDate); err != nil {
		return err
	}
	if err := validateProjectDateFormat(p.DueDate); err != nil {
		return err
	}
	return validateProjectDateOrder(p.StartDate, p.DueDate)
}

// BuildProjectUpdate constructs the update set for a partial project edit.
func BuildProjectUpdate(p ProjectPayload) (bson.M, error) {
	update := bson.M{}

	if p.Name != "" {
		update["name"] = p.Name
	}
	if p.StartDate != "" {
		if err := validateProjectDateFormat(p.StartDate); err != nil {
			return nil, err
		}
		update["startDate"] = p.StartDate
	}
	if p.DueDate != "" {
		if err := validateProjectDateFormat(p.DueDate); err != nil {
			return nil, err
		}
		update["dueDate"] = p.DueDate
	}

	if len(update) == 0 {
		return nil, &errs.EmptyUpdateError{}
	}
	return update, nil
}

// ValidateProjectName checks the project name query parameter.
func ValidateProjectName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValidation("project name is not valid")
	}
	return nil
}

var projectSortFields = []string{"startDate", "dueDate"}

// ValidateProjectSort checks the sortBy allow-list and the optional order.
func ValidateProjectSort(sortBy, order string) error {
	return validateSort(sortBy, order, projectSortFields, "Invalid date type. Use startDate or dueDate.")
}
