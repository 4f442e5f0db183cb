// Package client talks to a running price predictor over its JSON API.
package client

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"clean-energy-predictor/internal/features"
	"clean-energy-predictor/internal/ml"
	"clean-energy-predictor/internal/present"
	"clean-energy-predictor/internal/web"

	"github.com/go-resty/resty/v2"
)

type Client struct {
	base string
	rest *resty.Client
}

func New(base string, timeout time.Duration) *Client {
	r := resty.New()
	if timeout > 0 {
		r.SetTimeout(timeout)
	} else {
		r.SetTimeout(5 * time.Second) // default fallback
	}
	r.SetHeader("Accept", "application/json")
	return &Client{base: strings.TrimRight(base, "/"), rest: r}
}

// Error is a non-2xx reply from the server.
type Error struct {
	Status int
	Errors []web.APIError
}

func (e *Error) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("predictor: status %d", e.Status)
	}
	msgs := make([]string, 0, len(e.Errors))
	for _, ae := range e.Errors {
		msgs = append(msgs, ae.Message)
	}
	return fmt.Sprintf("predictor: status %d: %s", e.Status, strings.Join(msgs, "; "))
}

type errorBody struct {
	Errors []web.APIError `json:"errors"`
}

// Predict asks the server for a price. The record is sent in full.
func (c *Client) Predict(ctx context.Context, rec features.FeatureRecord, role features.Role) (present.Result, error) {
	body := web.PredictRequest{FeatureRecord: rec, Role: role.Key()}

	var res present.Result
	resp, err := c.rest.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&res).
		SetError(&errorBody{}).
		Post(c.base + "/api/predict")
	if err := check(resp, err); err != nil {
		return present.Result{}, err
	}
	return res, nil
}

// Health returns nil when the server reports ok.
func (c *Client) Health(ctx context.Context) error {
	var status struct {
		Status string `json:"status"`
	}
	resp, err := c.rest.R().
		SetContext(ctx).
		SetResult(&status).
		Get(c.base + "/health")
	if err := check(resp, err); err != nil {
		return err
	}
	if status.Status != "ok" {
		return fmt.Errorf("predictor: unhealthy status %q", status.Status)
	}
	return nil
}

func (c *Client) ModelInfo(ctx context.Context) (ml.ModelInfo, error) {
	var info ml.ModelInfo
	resp, err := c.rest.R().
		SetContext(ctx).
		SetResult(&info).
		Get(c.base + "/api/model")
	if err := check(resp, err); err != nil {
		return ml.ModelInfo{}, err
	}
	return info, nil
}

func (c *Client) Roles(ctx context.Context) ([]web.RoleInfo, error) {
	var roles []web.RoleInfo
	resp, err := c.rest.R().
		SetContext(ctx).
		SetResult(&roles).
		Get(c.base + "/api/roles")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return roles, nil
}

// History fetches recent predictions; limit <= 0 uses the server default.
func (c *Client) History(ctx context.Context, limit int) (web.HistoryResponse, error) {
	req := c.rest.R().
		SetContext(ctx).
		SetError(&errorBody{})
	if limit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(limit))
	}

	var hist web.HistoryResponse
	resp, err := req.SetResult(&hist).Get(c.base + "/api/history")
	if err := check(resp, err); err != nil {
		return web.HistoryResponse{}, err
	}
	return hist, nil
}

func check(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	if !resp.IsError() {
		return nil
	}

	apiErr := &Error{Status: resp.StatusCode()}
	if eb, ok := resp.Error().(*errorBody); ok && eb != nil {
		apiErr.Errors = eb.Errors
	}
	return apiErr
}
