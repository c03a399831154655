package crmclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// StageUpdater é a parte do cliente usada pelo Board.MoveDeal
type StageUpdater interface {
	UpdateDealStage(ctx context.Context, dealID, stageID string) error
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New cria o cliente; token é o JWT enviado como Bearer
func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError é o corpo de erro padronizado devolvido pela API
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    any    `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("crm api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("crm api: status %d: %s %s", e.StatusCode, e.Code, e.Message)
}

// Board carrega o quadro Kanban do pipeline; "" usa o pipeline padrão
func (c *Client) Board(ctx context.Context, pipelineID string) (*Board, error) {
	if pipelineID == "" {
		pipelineID = "default"
	}

	var resp boardResponse
	if err := c.do(ctx, http.MethodGet, "/v1/pipelines/"+url.PathEscape(pipelineID)+"/board", nil, &resp); err != nil {
		return nil, err
	}

	return newBoard(resp), nil
}

func (c *Client) UpdateDealStage(ctx context.Context, dealID, stageID string) error {
	body := map[string]string{"stage_id": stageID}
	return c.do(ctx, http.MethodPost, "/crm/actions/deals/"+url.PathEscape(dealID)+"/stage", body, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "crmclient: encode body")
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "crmclient: new request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "crmclient: %s %s", method, path)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "crmclient: read body")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		_ = json.Unmarshal(raw, apiErr)
		return apiErr
	}

	if out == nil {
		return nil
	}
	return errors.Wrap(json.Unmarshal(raw, out), "crmclient: decode response")
}
