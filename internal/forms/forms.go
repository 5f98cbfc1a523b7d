// Package forms implements the task and status editors: schema-driven
// validation that blocks submission, prefill from an existing entity, and
// create-vs-update routing.
package forms

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"taskboard/internal/api"
	"taskboard/internal/model"
)

var validate = validator.New()

// FieldErrors maps form field names to display messages. A non-empty map
// blocks submission; nothing reaches the network.
type FieldErrors map[string]string

// TaskForm mirrors the task editor's fields. Status and Assignee are raw ids;
// prefill normalizes embedded objects down to ids before they get here.
type TaskForm struct {
	Title       string `validate:"required,min=4"`
	Description string `validate:"required,min=5"`
	DueDate     string `validate:"required"`
	Priority    string `validate:"required,oneof=low medium high"`
	Status      string `validate:"required"`
	Assignee    string `validate:"required"`
}

// taskMessages mirrors the editor's inline error copy.
var taskMessages = map[string]map[string]string{
	"Title": {
		"required": "Title is required",
		"min":      "Title must be at least 4 characters",
	},
	"Description": {
		"required": "Description is required",
		"min":      "Description must be at least 5 characters",
	},
	"DueDate":  {"required": "DueDate is required"},
	"Priority": {"required": "Priority is required", "oneof": "Priority must be low, medium or high"},
	"Status":   {"required": "Status is required"},
	"Assignee": {"required": "Assignee is required"},
}

// NewTaskForm returns the editor defaults for the given viewer. Non-admin
// users are always their own assignee.
func NewTaskForm(viewer model.User) TaskForm {
	f := TaskForm{Priority: string(model.PriorityMedium)}
	if viewer.RoleName() != model.RoleAdmin {
		f.Assignee = viewer.ID
	}
	return f
}

// TaskFormFrom prefills the editor from an existing task, normalizing the
// status and assignee unions to raw ids.
func TaskFormFrom(t model.Task, viewer model.User) TaskForm {
	f := TaskForm{
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Priority:    string(t.Priority),
		Status:      t.StatusID(),
		Assignee:    t.Assignee.ID(),
	}
	if f.Assignee == "" && viewer.RoleName() != model.RoleAdmin {
		f.Assignee = viewer.ID
	}
	return f
}

// Validate checks the form; a nil result means it may be submitted.
func (f TaskForm) Validate() FieldErrors {
	return collectErrors(validate.Struct(f), taskMessages)
}

// payload builds the request body, forcing non-admin viewers onto their own
// assignee like the editor does on submit.
func (f TaskForm) payload(viewer model.User) api.TaskPayload {
	assignee := f.Assignee
	if viewer.RoleName() != model.RoleAdmin {
		assignee = viewer.ID
	}
	return api.TaskPayload{
		Title:       f.Title,
		Description: f.Description,
		DueDate:     f.DueDate,
		Priority:    model.Priority(f.Priority),
		Status:      f.Status,
		Assignee:    assignee,
	}
}

// StatusForm mirrors the status editor's fields.
type StatusForm struct {
	Name  string `validate:"required,min=2"`
	Order *int   `validate:"omitempty,min=0"`
}

var statusMessages = map[string]map[string]string{
	"Name": {
		"required": "Status name is required",
		"min":      "Status name must be at least 2 characters",
	},
	"Order": {"min": "Order must be a positive number"},
}

// StatusFormFrom prefills the editor from an existing status.
func StatusFormFrom(s model.Status) StatusForm {
	return StatusForm{Name: s.Name, Order: s.Order}
}

// Validate checks the form; a nil result means it may be submitted.
func (f StatusForm) Validate() FieldErrors {
	return collectErrors(validate.Struct(f), statusMessages)
}

func (f StatusForm) payload() api.StatusPayload {
	return api.StatusPayload{Name: f.Name, Order: f.Order}
}

// collectErrors maps validator violations onto display messages.
func collectErrors(err error, messages map[string]map[string]string) FieldErrors {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"_form": api.FallbackMessage}
	}
	fieldErrs := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		msg := messages[fe.Field()][fe.Tag()]
		if msg == "" {
			msg = fe.Field() + " is invalid"
		}
		fieldErrs[fe.Field()] = msg
	}
	return fieldErrs
}
