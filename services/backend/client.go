package backendsvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"github.com/DrumilPatell/sms-system/core"
)

// TokenSource provides the bearer credential attached to outbound requests.
// The session store satisfies it; an empty token means no header is sent.
type TokenSource interface {
	Token() string
}

// APIError is the uniform surface for non-2xx backend responses.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d - %s", e.StatusCode, e.Body)
}

// Client wraps the school management REST backend. All calls attach the
// current bearer token and convert transport/HTTP failures uniformly.
type Client struct {
	base   string
	http   *http.Client
	tokens TokenSource
	logger core.Logger
}

func NewClient(conf *core.Config, tokens TokenSource, logger core.Logger) *Client {
	return &Client{
		base:   strings.TrimRight(conf.API.BaseURL, "/"),
		http:   &http.Client{Timeout: conf.API.Timeout},
		tokens: tokens,
		logger: logger,
	}
}

// get performs a GET request and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// do issues a request against the backend. An optional token overrides the
// token source; the callback flow needs that before the session exists.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}, token ...string) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encoding request body")
		}
		reqBody = bytes.NewReader(data)
	}

	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	req.Header.Set("Content-Type", "application/json")

	tok := c.tokens.Token()
	if len(token) > 0 {
		tok = token[0]
	}
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	data, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, "%s %s: reading response", method, path)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusUnprocessableEntity {
			if vErr := validationError(data); vErr != nil {
				return vErr
			}
		}
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	if out != nil && len(data) > 0 {
		if err = json.Unmarshal(data, out); err != nil {
			return errors.Wrapf(err, "%s %s: decoding response", method, path)
		}
	}
	return nil
}

// validationError converts a 422 payload of the backend's field-error shape
// ({"detail":[{"loc":[...,"email"],"msg":"..."}]}) into a *core.ValidationError.
// Returns nil for any other payload so the caller falls back to *APIError.
func validationError(data []byte) error {
	var payload struct {
		Detail []struct {
			Loc []interface{} `json:"loc"`
			Msg string        `json:"msg"`
		} `json:"detail"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || len(payload.Detail) == 0 {
		return nil
	}

	flds := make([]core.FieldError, 0, len(payload.Detail))
	for _, item := range payload.Detail {
		var field string
		if len(item.Loc) > 0 {
			// loc is ["body", "<field>"]; the last segment names the field
			field, _ = item.Loc[len(item.Loc)-1].(string)
		}
		flds = append(flds, core.FieldError{Field: field, Error: item.Msg})
	}
	return core.NewValidationError(nil, flds...)
}
