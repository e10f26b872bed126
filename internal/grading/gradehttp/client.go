// Package gradehttp talks to the hosted AI grading service over its
// REST surface, authenticating with OAuth2 client credentials.
package gradehttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2/clientcredentials"

	"github.com/BALAJIRAMESHR/ECOSMART-AI-GRADING-SYSTEM/internal/grading"
)

type Client struct {
	http    *http.Client
	baseURL string
}

type Config struct {
	BaseURL      string
	TokenURL     string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

func New(cfg Config) *Client {
	cc := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
	}
	h := cc.Client(context.Background())
	if cfg.Timeout > 0 {
		h.Timeout = cfg.Timeout
	}
	return &Client{http: h, baseURL: strings.TrimSuffix(cfg.BaseURL, "/")}
}

// Grade POSTs the answer set and decodes the score payload. Any
// transport or non-2xx failure is returned as-is; the broker wraps it
// into its retryable error class.
func (c *Client) Grade(ctx context.Context, req grading.GradeRequest) (grading.GradeResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return grading.GradeResponse{}, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/grade", bytes.NewReader(body))
	if err != nil {
		return grading.GradeResponse{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	res, err := c.http.Do(httpReq)
	if err != nil {
		return grading.GradeResponse{}, err
	}
	defer res.Body.Close()
	if res.StatusCode/100 != 2 {
		return grading.GradeResponse{}, fmt.Errorf("grade: %s", res.Status)
	}
	var out grading.GradeResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return grading.GradeResponse{}, fmt.Errorf("grade: malformed payload: %w", err)
	}
	return out, nil
}
