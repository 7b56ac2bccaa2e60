package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/zoowayss/cursorpool/internal/client/models"
)

// AccountPage is one server page of accounts plus the echoed pagination
// values, which the caller must treat as authoritative.
type AccountPage struct {
	Accounts []*models.Account
	Page     int
	PerPage  int
	Total    int
}

type accountResponse struct {
	respMeta
	Account *models.Account `json:"account"`
}

type accountsResponse struct {
	respMeta
	Accounts []*models.Account `json:"accounts"`
	Page     int               `json:"page"`
	PerPage  int               `json:"per_page"`
	Total    int               `json:"total"`
}

// NewAccount provisions one fresh account for the caller. This is the slow
// call the client-wide timeout exists for.
func (c *Client) NewAccount(ctx context.Context) (*models.Account, error) {
	var resp accountResponse
	if err := c.do(ctx, http.MethodGet, "/account", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Account, nil
}

// Accounts lists the caller's accounts, server-paginated.
func (c *Client) Accounts(ctx context.Context, page, perPage int) (*AccountPage, error) {
	query := url.Values{
		"page":     {strconv.Itoa(page)},
		"per_page": {strconv.Itoa(perPage)},
	}
	var resp accountsResponse
	if err := c.do(ctx, http.MethodGet, "/accounts", query, nil, &resp); err != nil {
		return nil, err
	}
	return &AccountPage{Accounts: resp.Accounts, Page: resp.Page, PerPage: resp.PerPage, Total: resp.Total}, nil
}

type statusUpdate struct {
	IsUsed int `json:"is_used"`
}

// SetAccountStatus flips the usage flag (0/1) on one account.
func (c *Client) SetAccountStatus(ctx context.Context, id int64, isUsed int) error {
	var resp respMeta
	path := fmt.Sprintf("/account/%d/status", id)
	return c.do(ctx, http.MethodPut, path, nil, statusUpdate{IsUsed: isUsed}, &resp)
}

// DeleteAccount soft-deletes an account: it disappears from the owner's
// list but stays retrievable in the admin view.
func (c *Client) DeleteAccount(ctx context.Context, id int64) error {
	var resp respMeta
	path := fmt.Sprintf("/account/%d/delete", id)
	return c.do(ctx, http.MethodPut, path, nil, nil, &resp)
}
