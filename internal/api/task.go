package api

import (
	"context"
	"net/http"
	"net/url"

	"taskboard/internal/model"
)

// TaskPayload carries task fields for create and update. ID is set only for
// updates. Status and Assignee are raw ids; the normalization to raw-id form
// happens before this point.
type TaskPayload struct {
	ID          string         `json:"id,omitempty"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	DueDate     string         `json:"dueDate,omitempty"`
	Priority    model.Priority `json:"priority"`
	Status      string         `json:"status"`
	Assignee    string         `json:"assignee,omitempty"`
}

// PageQuery is the body of POST /task/pagination.
type PageQuery struct {
	Page     int               `json:"page"`
	PageSize int               `json:"pageSize"`
	Search   string            `json:"search,omitempty"`
	Filter   map[string]any    `json:"filter,omitempty"`
	Sort     map[string]string `json:"sort,omitempty"`
}

// TaskPage is a page of tasks plus the total record count.
type TaskPage struct {
	Tasks        []model.Task
	TotalRecords int
}

func (c *Client) CreateTask(ctx context.Context, req TaskPayload) (*model.Task, error) {
	var t model.Task
	if err := c.do(ctx, http.MethodPost, "/task/create", req, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) Tasks(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := c.do(ctx, http.MethodGet, "/task/getall", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) TaskByID(ctx context.Context, id string) (*model.Task, error) {
	var t model.Task
	if err := c.do(ctx, http.MethodGet, "/task/get/"+url.PathEscape(id), nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) UpdateTask(ctx context.Context, req TaskPayload) (*model.Task, error) {
	var t model.Task
	if err := c.do(ctx, http.MethodPut, "/task/update", req, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// DeleteTask issues DELETE /task/delete with the id in the body.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/task/delete", map[string]string{"id": id}, nil)
}

// MoveTask changes a task's status via PUT /task/move.
func (c *Client) MoveTask(ctx context.Context, id, statusID string) error {
	body := map[string]string{"id": id, "status": statusID}
	return c.do(ctx, http.MethodPut, "/task/move", body, nil)
}

// TaskPagination queries a page of tasks. The pagination endpoint wraps its
// payload one level deeper than the rest of the surface.
func (c *Client) TaskPagination(ctx context.Context, q PageQuery) (*TaskPage, error) {
	var res struct {
		Data       []model.Task `json:"data"`
		Pagination struct {
			TotalRecords int `json:"totalRecords"`
		} `json:"pagination"`
	}
	if err := c.doRaw(ctx, http.MethodPost, "/task/pagination", q, &res); err != nil {
		return nil, err
	}
	return &TaskPage{Tasks: res.Data, TotalRecords: res.Pagination.TotalRecords}, nil
}
