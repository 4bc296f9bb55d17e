// Package academicsvc is the HTTP client of the records API.
package academicsvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/dashboard"
)

// APIError is a non-validation error response of the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Message)
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	apiErr, ok := errors.Cause(err).(*APIError)
	return ok && apiErr.StatusCode == http.StatusNotFound
}

type Client struct {
	baseURL string
	http    *http.Client
	logger  core.Logger
}

var _ dashboard.Facade = (*Client)(nil)

// NewClient returns a client of the API at conf.Client.BaseURL. httpClient defaults to a client
// with conf.Client.Timeout.
func NewClient(conf *core.Config, logger core.Logger, httpClient ...*http.Client) *Client {
	c := &Client{baseURL: conf.Client.BaseURL, logger: logger}
	if len(httpClient) > 0 && httpClient[0] != nil {
		c.http = httpClient[0]
	} else {
		c.http = &http.Client{Timeout: conf.Client.Timeout}
	}
	return c
}

// do sends the request and decodes the response body into dest (if not nil).
// 400 responses are returned as *core.ValidationError, other errors as *APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, dest interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encoding request")
		}
		reqBody = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	// the API adopts it as its request ID, so both sides log the same ID
	reqID := uuid.NewString()
	req.Header.Set(echo.HeaderXRequestID, reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()
	c.logger.Debug(method+" "+path, core.LogFields{"status": resp.StatusCode, "request_id": reqID})

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "reading response")
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp.StatusCode, data)
	}
	if dest == nil || len(data) == 0 {
		return nil
	}
	return errors.Wrap(json.Unmarshal(data, dest), "decoding response")
}

func decodeError(code int, data []byte) error {
	var msg struct {
		Error string `json:"error"`
	}
	if code == http.StatusBadRequest {
		var fields map[string]string
		if err := json.Unmarshal(data, &fields); err == nil && fields["error"] == "" {
			flds := make([]core.FieldError, 0, len(fields))
			for name, e := range fields {
				flds = append(flds, core.FieldError{Field: name, Error: e})
			}
			sort.Slice(flds, func(i, j int) bool { return flds[i].Field < flds[j].Field })
			return core.NewValidationError(nil, flds...)
		}
		if err := json.Unmarshal(data, &msg); err == nil && msg.Error != "" {
			return core.NewValidationError(errors.New(msg.Error))
		}
	}
	if err := json.Unmarshal(data, &msg); err != nil || msg.Error == "" {
		msg.Error = string(data)
	}
	return &APIError{StatusCode: code, Message: msg.Error}
}

func idPath(prefix string, id int) string {
	return prefix + "/" + strconv.Itoa(id)
}

// Reset restores the seed data of the store.
func (c *Client) Reset(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/__reset", nil, nil, nil)
}
