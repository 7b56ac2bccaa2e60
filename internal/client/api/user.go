package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/zoowayss/cursorpool/internal/client/models"
)

type authResponse struct {
	respMeta
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type userResponse struct {
	respMeta
	User *models.User `json:"user"`
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`
}

// Login exchanges credentials for a bearer token and the user record.
func (c *Client) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	var resp authResponse
	err := c.do(ctx, http.MethodPost, "/login", nil, credentials{Username: username, Password: password}, &resp)
	if err != nil {
		return "", nil, err
	}
	return resp.Token, resp.User, nil
}

// Register creates a user and, like Login, returns a ready-to-use token.
// Email may be empty.
func (c *Client) Register(ctx context.Context, username, password, email string) (string, *models.User, error) {
	var resp authResponse
	err := c.do(ctx, http.MethodPost, "/register", nil, credentials{Username: username, Password: password, Email: email}, &resp)
	if err != nil {
		return "", nil, err
	}
	return resp.Token, resp.User, nil
}

// UserInfo resolves the identity behind the current bearer token.
func (c *Client) UserInfo(ctx context.Context) (*models.User, error) {
	var resp userResponse
	if err := c.do(ctx, http.MethodGet, "/user", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// ProfileUpdate carries the editable profile fields. A blank Password is
// omitted from the request body so the backend keeps the current one.
type ProfileUpdate struct {
	Email            string `json:"email,omitempty"`
	Domain           string `json:"domain"`
	TempEmailAddress string `json:"temp_email_address"`
	Password         string `json:"password,omitempty"`
}

// UpdateUser saves profile changes and returns the updated user record.
func (c *Client) UpdateUser(ctx context.Context, id int64, upd ProfileUpdate) (*models.User, error) {
	var resp userResponse
	path := fmt.Sprintf("/user/%d", id)
	if err := c.do(ctx, http.MethodPut, path, nil, upd, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}
