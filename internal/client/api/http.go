package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/framezhq/framez/internal/client/models"
	"github.com/framezhq/framez/internal/common"
	"github.com/framezhq/framez/internal/netx"
)

const requestTimeout = 30 * time.Second

// HTTPClient implements Client over the backend's JSON HTTP API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// Close releases transport resources.
func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// apiError is the JSON error envelope every non-2xx response carries.
type apiError struct {
	Error string `json:"error"`
}

// mapStatus converts an HTTP rejection into a sentinel error, keeping the
// server's message as context.
func mapStatus(status int, msg string) error {
	var sentinel error
	switch status {
	case http.StatusUnauthorized:
		sentinel = common.ErrorUnauthorized
	case http.StatusConflict:
		sentinel = common.ErrorAlreadyExists
	case http.StatusNotFound:
		sentinel = common.ErrorNotFound
	default:
		sentinel = common.ErrorInternal
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return fmt.Errorf("%s: %w", msg, sentinel)
}

// do sends a request with an optional JSON body and decodes the response
// into out (unless out is nil). Transport failures map to ErrUnavailable.
func (c *HTTPClient) do(ctx context.Context, method, path string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var e apiError
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return mapStatus(resp.StatusCode, e.Error)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *HTTPClient) Register(ctx context.Context, email, name, password string) (*models.User, error) {
	var out struct {
		User *models.User `json:"user"`
	}
	err := c.do(ctx, http.MethodPost, "/api/auth/register", map[string]string{
		"email": email, "name": name, "password": password,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.User, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.User, error) {
	var out struct {
		User *models.User `json:"user"`
	}
	err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email": email, "password": password,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.User, nil
}

func (c *HTTPClient) GetUser(ctx context.Context, id string) (*models.User, error) {
	var out struct {
		User *models.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/users/"+id, nil, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

func (c *HTTPClient) CreatePost(ctx context.Context, userID, content, imageStorageID string) (string, error) {
	var out struct {
		ID string `json:"id"`
	}
	err := c.do(ctx, http.MethodPost, "/api/posts", map[string]string{
		"userId": userID, "content": content, "imageStorageId": imageStorageID,
	}, &out)
	if err != nil {
		return "", err
	}
	return out.ID, nil
}

func (c *HTTPClient) AllPosts(ctx context.Context) ([]models.Post, error) {
	var out struct {
		Posts []models.Post `json:"posts"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/posts", nil, &out); err != nil {
		return nil, err
	}
	return out.Posts, nil
}

func (c *HTTPClient) UserPosts(ctx context.Context, userID string) ([]models.Post, error) {
	var out struct {
		Posts []models.Post `json:"posts"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/users/"+userID+"/posts", nil, &out); err != nil {
		return nil, err
	}
	return out.Posts, nil
}

// GenerateUploadURL mints a presigned upload slot and returns the storage
// key together with the URL to PUT the image bytes to.
func (c *HTTPClient) GenerateUploadURL(ctx context.Context) (string, string, error) {
	var out struct {
		StorageID string `json:"storageId"`
		UploadURL string `json:"uploadUrl"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/uploads", nil, &out); err != nil {
		return "", "", err
	}
	return out.StorageID, out.UploadURL, nil
}

// UploadImage PUTs image bytes directly to the presigned object-storage URL.
// The request bypasses the API server entirely.
func (c *HTTPClient) UploadImage(ctx context.Context, uploadURL string, data []byte, contentType string) error {
	return netx.UploadToPresignedURL(ctx, c.http, uploadURL, data, contentType)
}

// Ping checks server liveness.
func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil)
}
