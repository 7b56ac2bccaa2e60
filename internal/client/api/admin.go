package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/zoowayss/cursorpool/internal/client/models"
)

// UserPage is one server page of users for the admin view.
type UserPage struct {
	Users   []*models.User
	Page    int
	PerPage int
	Total   int
}

type usersResponse struct {
	respMeta
	Users   []*models.User `json:"users"`
	Page    int            `json:"page"`
	PerPage int            `json:"per_page"`
	Total   int            `json:"total"`
}

// AdminAccounts lists every user's accounts. showDeleted includes
// soft-deleted rows, which render tagged in the admin screen.
func (c *Client) AdminAccounts(ctx context.Context, page, perPage int, showDeleted bool) (*AccountPage, error) {
	query := url.Values{
		"page":         {strconv.Itoa(page)},
		"per_page":     {strconv.Itoa(perPage)},
		"show_deleted": {strconv.FormatBool(showDeleted)},
	}
	var resp accountsResponse
	if err := c.do(ctx, http.MethodGet, "/admin/accounts", query, nil, &resp); err != nil {
		return nil, err
	}
	return &AccountPage{Accounts: resp.Accounts, Page: resp.Page, PerPage: resp.PerPage, Total: resp.Total}, nil
}

// AdminUsers lists all registered users.
func (c *Client) AdminUsers(ctx context.Context, page, perPage int) (*UserPage, error) {
	query := url.Values{
		"page":     {strconv.Itoa(page)},
		"per_page": {strconv.Itoa(perPage)},
	}
	var resp usersResponse
	if err := c.do(ctx, http.MethodGet, "/admin/users", query, nil, &resp); err != nil {
		return nil, err
	}
	return &UserPage{Users: resp.Users, Page: resp.Page, PerPage: resp.PerPage, Total: resp.Total}, nil
}
