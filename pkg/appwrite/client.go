// Package appwrite is a minimal REST client for the Appwrite server API,
// covering the databases, storage and messaging surfaces the pipeline needs.
package appwrite

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	appErrors "buzzy/pkg/errors"
)

const (
	responseFormat = "1.6.0"
	defaultTimeout = 120 * time.Second
)

type Client struct {
	http *resty.Client
}

func NewClient(endpoint, project, apiKey string) *Client {
	httpClient := resty.New().
		SetBaseURL(strings.TrimSuffix(endpoint, "/")).
		SetHeader("X-Appwrite-Project", project).
		SetHeader("X-Appwrite-Key", apiKey).
		SetHeader("X-Appwrite-Response-Format", responseFormat).
		SetTimeout(defaultTimeout)
	return &Client{http: httpClient}
}

// apiError is the error envelope Appwrite returns on non-2xx responses.
type apiError struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
	Type    string `json:"type"`
}

func (c *Client) checkResponse(resp *resty.Response, operation string) error {
	if resp.IsSuccess() {
		return nil
	}

	var apiErr apiError
	_ = json.Unmarshal(resp.Body(), &apiErr)
	message := apiErr.Message
	if message == "" {
		message = resp.Status()
	}

	code := appErrors.CodeUnknown
	if resp.StatusCode() == http.StatusNotFound {
		code = appErrors.CodeNotFound
	}
	return appErrors.WrapWithDetail(code,
		fmt.Sprintf("%s failed", operation),
		fmt.Sprintf("status %d: %s", resp.StatusCode(), message), nil)
}
