package api

import (
	"context"
	"net/http"
	"net/url"

	"taskboard/internal/model"
)

// Role endpoints exist on the backend but nothing in the UI consumes them
// beyond the type definitions. They are typed here for completeness.

type RolePayload struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (c *Client) CreateRole(ctx context.Context, req RolePayload) (*model.Role, error) {
	var r model.Role
	if err := c.do(ctx, http.MethodPost, "/role/create", req, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *Client) Roles(ctx context.Context) ([]model.Role, error) {
	var roles []model.Role
	if err := c.do(ctx, http.MethodGet, "/role/getall", nil, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

func (c *Client) RoleByID(ctx context.Context, id string) (*model.Role, error) {
	var r model.Role
	if err := c.do(ctx, http.MethodGet, "/role/get/"+url.PathEscape(id), nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *Client) UpdateRole(ctx context.Context, req RolePayload) (*model.Role, error) {
	var r model.Role
	if err := c.do(ctx, http.MethodPut, "/role/update", req, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *Client) DeleteRole(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/role/delete?id="+url.QueryEscape(id), nil, nil)
}
