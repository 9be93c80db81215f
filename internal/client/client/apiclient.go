package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/foodlog/internal/common"
)

const imageField = "image"

// APIClient talks to the foodlog HTTP API and holds the session tokens.
type APIClient struct {
	baseURL string
	http    *http.Client

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

// NewAPIClient constructs an APIClient for baseURL.
func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// payload is a request body that can be replayed after a token refresh.
type payload struct {
	data        []byte
	contentType string
}

func jsonPayload(v any) (*payload, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return &payload{data: b, contentType: "application/json"}, nil
}

func formPayload(fields [][2]string, img *Image) (*payload, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, err
		}
	}

	if img != nil {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, imageField, img.Name))
		h.Set("Content-Type", img.MediaType)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, err
		}
		if _, err := part.Write(img.Data); err != nil {
			return nil, err
		}
	}

	if err := w.Close(); err != nil {
		return nil, err
	}
	return &payload{data: buf.Bytes(), contentType: w.FormDataContentType()}, nil
}

func (c *APIClient) tokens() (string, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken, c.refreshToken
}

func (c *APIClient) setTokens(t tokens) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken, c.refreshToken = t.AccessToken, t.RefreshToken
}

func (c *APIClient) LoggedIn() bool {
	access, _ := c.tokens()
	return access != ""
}

// Logout forgets the tokens. The server keeps no session to end.
func (c *APIClient) Logout() {
	c.setTokens(tokens{})
}

func (c *APIClient) send(ctx context.Context, method, path string, body *payload, auth bool) (*http.Response, error) {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body.data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", body.contentType)
	}
	req.Header.Set("Accept", "application/json")

	if auth {
		access, _ := c.tokens()
		if access == "" {
			return nil, ErrNotLoggedIn
		}
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+access)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return resp, nil
}

// do sends one request and decodes a 2xx answer into out. An expired access
// token is refreshed once and the request replayed.
func (c *APIClient) do(ctx context.Context, method, path string, body *payload, auth bool, out any) error {
	resp, err := c.send(ctx, method, path, body, auth)
	if err != nil {
		return err
	}

	err = decodeResponse(resp, out)
	if !auth || !errors.Is(err, common.ErrTokenExpired) {
		return err
	}

	if _, refresh := c.tokens(); refresh == "" {
		return err
	}
	if rerr := c.Refresh(ctx); rerr != nil {
		return err
	}

	resp, err = c.send(ctx, method, path, body, auth)
	if err != nil {
		return err
	}
	return decodeResponse(resp, out)
}

func decodeResponse(resp *http.Response, out any) error {
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var eb errorBody
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		return &APIError{Status: resp.StatusCode, Message: eb.Error}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// Register creates an account. The returned warning is non-empty when the
// account was created but the avatar was not stored.
func (c *APIClient) Register(ctx context.Context, r RegisterRequest, avatar *Image) (*User, string, error) {
	body, err := formPayload([][2]string{
		{"fullname", r.FullName},
		{"email", r.Email},
		{"password", r.Password},
		{"gender", r.Gender},
	}, avatar)
	if err != nil {
		return nil, "", err
	}

	var env userEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", body, false, &env); err != nil {
		return nil, "", err
	}
	return &env.User, env.Warning, nil
}

func (c *APIClient) Login(ctx context.Context, email, password string) error {
	body, err := jsonPayload(map[string]string{"email": email, "password": password})
	if err != nil {
		return err
	}

	var t tokens
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, false, &t); err != nil {
		return err
	}
	c.setTokens(t)
	return nil
}

// Refresh exchanges the refresh token for a new token pair.
func (c *APIClient) Refresh(ctx context.Context) error {
	_, refresh := c.tokens()
	if refresh == "" {
		return ErrNotLoggedIn
	}

	body, err := jsonPayload(map[string]string{"refresh_token": refresh})
	if err != nil {
		return err
	}

	var t tokens
	if err := c.do(ctx, http.MethodPost, "/api/auth/refresh", body, false, &t); err != nil {
		return err
	}
	c.setTokens(t)
	return nil
}

func (c *APIClient) Profile(ctx context.Context) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, "/api/profile", nil, true, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *APIClient) UpdateProfile(ctx context.Context, r ProfileRequest, avatar *Image) (*User, string, error) {
	body, err := formPayload([][2]string{
		{"fullname", r.FullName},
		{"email", r.Email},
		{"gender", r.Gender},
	}, avatar)
	if err != nil {
		return nil, "", err
	}

	var env userEnvelope
	if err := c.do(ctx, http.MethodPut, "/api/profile", body, true, &env); err != nil {
		return nil, "", err
	}
	return &env.User, env.Warning, nil
}

// ListMeals returns the caller's meals, newest first, optionally narrowed by
// a search query.
func (c *APIClient) ListMeals(ctx context.Context, query string) ([]Meal, error) {
	path := "/api/meals"
	if query != "" {
		path += "?" + url.Values{"q": {query}}.Encode()
	}

	var meals []Meal
	if err := c.do(ctx, http.MethodGet, path, nil, true, &meals); err != nil {
		return nil, err
	}
	return meals, nil
}

func (c *APIClient) GetMeal(ctx context.Context, id string) (*Meal, error) {
	var m Meal
	if err := c.do(ctx, http.MethodGet, "/api/meals/"+url.PathEscape(id), nil, true, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func mealFields(r MealRequest) [][2]string {
	return [][2]string{
		{"name", r.Name},
		{"category", r.Category},
		{"date", r.Date},
	}
}

func (c *APIClient) CreateMeal(ctx context.Context, r MealRequest, photo *Image) (*Meal, string, error) {
	body, err := formPayload(mealFields(r), photo)
	if err != nil {
		return nil, "", err
	}

	var env mealEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/meals", body, true, &env); err != nil {
		return nil, "", err
	}
	return &env.Meal, env.Warning, nil
}

func (c *APIClient) UpdateMeal(ctx context.Context, id string, r MealRequest, photo *Image) (*Meal, string, error) {
	body, err := formPayload(mealFields(r), photo)
	if err != nil {
		return nil, "", err
	}

	var env mealEnvelope
	if err := c.do(ctx, http.MethodPut, "/api/meals/"+url.PathEscape(id), body, true, &env); err != nil {
		return nil, "", err
	}
	return &env.Meal, env.Warning, nil
}

func (c *APIClient) DeleteMeal(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/meals/"+url.PathEscape(id), nil, true, nil)
}
