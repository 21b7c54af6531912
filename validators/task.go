// Package validators holds the pure request checks and update-set builders
// applied before any database write. Every function returns an error value
// from the errs package; nothing here touches storage.
package validators

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"todo-project/task-manager/errs"
	"todo-project/task-manager/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// TaskPayload is the decoded body of a task create or edit request.
// Empty string means the field was not supplied.
type TaskPayload struct {
	Status    string `json:"status"`
	Name      string `json:"name"`
	StartDate string `json:"startDate"`
	DueDate   string `json:"dueDate"`
	DoneDate  string `json:"doneDate"`
}

// ValidateStatus checks the status enum.
func ValidateStatus(status string) error {
	if status != string(models.StatusToDo) && status != string(models.StatusDone) {
		return errs.NewValidation("status must be done or to-do")
	}
	return nil
}

// ValidateObjectID checks an opaque id against the driver's validity
// predicate and converts it. The entity name only shapes the message.
func ValidateObjectID(id, entity string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, &errs.InvalidIDError{Msg: fmt.Sprintf("Invalid %s ID format", entity)}
	}
	return oid, nil
}

func validateTaskDateFormat(date string) error {
	if !dateRegex.MatchString(date) {
		return errs.NewValidation("date format must be YYYY-MM-DD")
	}
	return nil
}

// validateDateOrder rejects a start date later than the due date, or later
// than the done date when one is supplied. Dates that slipped through the
// format check but do not parse as real calendar dates impose no ordering.
func validateDateOrder(startDate, dueDate, doneDate string) error {
	start, err := time.Parse(models.DateLayout, startDate)
	if err != nil {
		return nil
	}
	if due, err := time.Parse(models.DateLayout, dueDate); err == nil && start.After(due) {
		return errs.NewValidation("Start date cannot be later than due date or done date")
	}
	if doneDate == "" {
		return nil
	}
	if done, err := time.Parse(models.DateLayout, doneDate); err == nil && start.After(done) {
		return errs.NewValidation("Start date cannot be later than due date or done date")
	}
	return nil
}

// ValidateTaskCreation checks a full creation payload: required fields,
// status enum, status/doneDate consistency, date formats and date ordering.
func ValidateTaskCreation(p TaskPayload) error {
	if p.Status == "" || p.Name == "" || p.StartDate == "" || p.DueDate == "" {
		return errs.NewValidation("status, name, start date, due date are required")
	}
	if err := ValidateStatus(p.Status); err != nil {
		return err
	}
	if p.Status == string(models.StatusDone) && p.DoneDate == "" {
		return errs.NewValidation("done task must have done date")
	}
	if p.Status == string(models.StatusToDo) && p.DoneDate != "" {
		return errs.NewValidation("to-do task must not have done date")
	}
	if err := validateTaskDateFormat(p.StartDate); err != nil {
		return err
	}
	if err := validateTaskDateFormat(p.DueDate); err != nil {
		return err
	}
	if p.DoneDate != "" {
		if err := validateTaskDateFormat(p.DoneDate); err != nil {
			return err
		}
	}
	return validateDateOrder(p.StartDate, p.DueDate, p.DoneDate)
}

// BuildTaskUpdate constructs the update set for a partial task edit. Each
// supplied field is validated on its own; the first failure aborts the whole
// edit. An edit that supplies nothing fails with EmptyUpdateError.
func BuildTaskUpdate(p TaskPayload) (bson.M, error) {
	update := bson.M{}

	if p.Name != "" {
		update["name"] = p.Name
	}
	if p.Status != "" {
		if err := ValidateStatus(p.Status); err != nil {
			return nil, err
		}
		update["status"] = p.Status
	}
	if p.StartDate != "" {
		if err := validateTaskDateFormat(p.StartDate); err != nil {
			return nil, err
		}
		update["startDate"] = p.StartDate
	}
	if p.DueDate != "" {
		if err := validateTaskDateFormat(p.DueDate); err != nil {
			return nil, err
		}
		update["dueDate"] = p.DueDate
	}
	if p.DoneDate != "" {
		if err := validateTaskDateFormat(p.DoneDate); err != nil {
			return nil, err
		}
		update["doneDate"] = p.DoneDate
	}

	if len(update) == 0 {
		return nil, &errs.EmptyUpdateError{}
	}
	return update, nil
}

// ValidateSearchName trims a search term and rejects it when nothing is left.
func ValidateSearchName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errs.NewValidation("task name is not valid")
	}
	return name, nil
}

var taskSortFields = []string{"startDate", "dueDate", "doneDate"}

// ValidateTaskSort checks the sortBy allow-list and the optional order.
func ValidateTaskSort(sortBy, order string) error {
	return validateSort(sortBy, order, taskSortFields,
		fmt.Sprintf("Invalid or missing sort field. Must be one of: %s", strings.Join(taskSortFields, ",")))
}

func validateSort(sortBy, order string, fields []string, badFieldMsg string) error {
	valid := false
	for _, f := range fields {
		if sortBy == f {
			valid = true
			break
		}
	}
	if !valid {
		return errs.NewValidation("%s", badFieldMsg)
	}
	if order != "" && order != "asc" && order != "desc" {
		return errs.NewValidation("Invalid order. Use asc or desc.")
	}
	return nil
}

// SortOrder maps the order query parameter to a Mongo sort direction.
// Anything but asc sorts descending.
func SortOrder(order string) int {
	if order == "asc" {
		return 1
	}
	return -1
}
