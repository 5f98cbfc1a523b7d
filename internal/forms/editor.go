package forms

import (
	"context"

	"taskboard/internal/api"
	"taskboard/internal/model"
)

// TaskEditor drives one create-or-edit session for a task. Editing is set
// when an existing task was opened; its id is attached on submit and the
// update endpoint is used instead of create.
type TaskEditor struct {
	API     *api.Client
	Viewer  model.User
	Editing *model.Task
	Form    TaskForm

	// OnSaved fires after a successful submission, before the editor closes;
	// the parent uses it to reload.
	OnSaved func()
}

// NewTaskEditor opens the editor, prefilled when editing is non-nil.
func NewTaskEditor(client *api.Client, viewer model.User, editing *model.Task) *TaskEditor {
	e := &TaskEditor{API: client, Viewer: viewer, Editing: editing}
	if editing != nil {
		e.Form = TaskFormFrom(*editing, viewer)
	} else {
		e.Form = NewTaskForm(viewer)
	}
	return e
}

// Submit validates and submits the form. Validation violations come back as
// field errors with no request issued. A request failure is returned as err
// and the editor keeps its state so the user can retry.
func (e *TaskEditor) Submit(ctx context.Context) (FieldErrors, error) {
	if fieldErrs := e.Form.Validate(); fieldErrs != nil {
		return fieldErrs, nil
	}

	payload := e.Form.payload(e.Viewer)
	var err error
	if e.Editing != nil {
		payload.ID = e.Editing.ID
		_, err = e.API.UpdateTask(ctx, payload)
	} else {
		_, err = e.API.CreateTask(ctx, payload)
	}
	if err != nil {
		return nil, err
	}
	if e.OnSaved != nil {
		e.OnSaved()
	}
	return nil, nil
}

// StatusEditor drives one create-or-edit session for a status.
type StatusEditor struct {
	API     *api.Client
	Editing *model.Status
	Form    StatusForm
	OnSaved func()
}

// NewStatusEditor opens the editor, prefilled when editing is non-nil.
func NewStatusEditor(client *api.Client, editing *model.Status) *StatusEditor {
	e := &StatusEditor{API: client, Editing: editing}
	if editing != nil {
		e.Form = StatusFormFrom(*editing)
	}
	return e
}

// Submit validates and submits the form; see TaskEditor.Submit for the
// error contract.
func (e *StatusEditor) Submit(ctx context.Context) (FieldErrors, error) {
	if fieldErrs := e.Form.Validate(); fieldErrs != nil {
		return fieldErrs, nil
	}

	payload := e.Form.payload()
	var err error
	if e.Editing != nil {
		payload.ID = e.Editing.ID
		_, err = e.API.UpdateStatus(ctx, payload)
	} else {
		_, err = e.API.CreateStatus(ctx, payload)
	}
	if err != nil {
		return nil, err
	}
	if e.OnSaved != nil {
		e.OnSaved()
	}
	return nil, nil
}
