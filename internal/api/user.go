package api

import (
	"context"
	"net/http"
	"net/url"

	"taskboard/internal/model"
)

// LoginRequest carries the credentials for POST /user/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the issued token plus the authenticated identity.
type LoginResult struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// RegisterRequest carries the fields for POST /user/register.
// ProfilePicture is an optional base64-encoded image.
type RegisterRequest struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name,omitempty"`
	Mobile         string `json:"mobile,omitempty"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	ProfilePicture string `json:"profile_picture,omitempty"`
}

// UpdateUserRequest carries the fields for PUT /user/update.
type UpdateUserRequest struct {
	ID             string `json:"id"`
	FirstName      string `json:"first_name,omitempty"`
	LastName       string `json:"last_name,omitempty"`
	Mobile         string `json:"mobile,omitempty"`
	Email          string `json:"email,omitempty"`
	ProfilePicture string `json:"profile_picture,omitempty"`
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	var res LoginResult
	if err := c.do(ctx, http.MethodPost, "/user/login", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	var u model.User
	if err := c.do(ctx, http.MethodPost, "/user/register", req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) Users(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := c.do(ctx, http.MethodGet, "/user/getall", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) UserByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	if err := c.do(ctx, http.MethodGet, "/user/get/"+url.PathEscape(id), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) UpdateUser(ctx context.Context, req UpdateUserRequest) (*model.User, error) {
	var u model.User
	if err := c.do(ctx, http.MethodPut, "/user/update", req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// DeleteUser issues DELETE /user/delete?id=. Unlike task and status deletes,
// the user endpoint takes the id as a query parameter.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/user/delete?id="+url.QueryEscape(id), nil, nil)
}
