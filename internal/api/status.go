package api

import (
	"context"
	"net/http"
	"net/url"

	"taskboard/internal/model"
)

// StatusPayload carries status fields for create and update.
type StatusPayload struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Order *int   `json:"order,omitempty"`
}

func (c *Client) CreateStatus(ctx context.Context, req StatusPayload) (*model.Status, error) {
	var s model.Status
	if err := c.do(ctx, http.MethodPost, "/status/create", req, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) Statuses(ctx context.Context) ([]model.Status, error) {
	var statuses []model.Status
	if err := c.do(ctx, http.MethodGet, "/status/getall", nil, &statuses); err != nil {
		return nil, err
	}
	return statuses, nil
}

func (c *Client) StatusByID(ctx context.Context, id string) (*model.Status, error) {
	var s model.Status
	if err := c.do(ctx, http.MethodGet, "/status/get/"+url.PathEscape(id), nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) UpdateStatus(ctx context.Context, req StatusPayload) (*model.Status, error) {
	var s model.Status
	if err := c.do(ctx, http.MethodPut, "/status/update", req, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// DeleteStatus issues DELETE /status/delete with the id in the body.
func (c *Client) DeleteStatus(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/status/delete", map[string]string{"id": id}, nil)
}
