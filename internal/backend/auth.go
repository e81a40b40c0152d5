package backend

import (
	"context"
	"net/http"
	"net/url"
)

// Login exchanges credentials for a bearer token. The endpoint speaks
// form-encoded OAuth2 password flow, unlike the JSON used everywhere else.
func (c *Client) Login(ctx context.Context, email, password string) (Token, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	headers := map[string]string{"Content-Type": "application/x-www-form-urlencoded"}

	var tok Token
	err := c.do(ctx, http.MethodPost, "/auth/login", headers, []byte(form.Encode()), &tok)
	return tok, err
}

// Signup registers a new account. Any 2xx counts as success.
func (c *Client) Signup(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	return c.postJSON(ctx, "/auth/register", body, nil)
}
