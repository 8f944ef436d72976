package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/abdullahiqbal07/Inventory-02/internal/app/config"
)

// AccessTokenHeader Admin API 鉴权头
const AccessTokenHeader = "X-Shopify-Access-Token"

// Client Shopify Admin API 客户端封装（REST + GraphQL）
type Client struct {
	baseURL        string
	token          string
	apiVersion     string
	graphQLVersion string
	timeout        time.Duration
	httpClient     *http.Client
	limiter        *rate.Limiter
}

// Option 客户端可选项
type Option func(*Client)

// WithHTTPClient 替换底层 http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient 创建 Shopify 客户端
// store_url 可以是裸域名（xxx.myshopify.com）也可以带协议
func NewClient(cfg config.ShopifyConfig, opts ...Option) *Client {
	baseURL := strings.TrimSuffix(cfg.StoreURL, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 1
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := &Client{
		baseURL:        baseURL,
		token:          cfg.AccessToken,
		apiVersion:     cfg.APIVersion,
		graphQLVersion: cfg.GraphQLAPIVersion,
		timeout:        timeout,
		httpClient:     http.DefaultClient,
		limiter:        rate.NewLimiter(limit, burst),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StatusError 非 2xx 响应
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("shopify %s %s failed: status=%d body=%s", e.Method, e.Path, e.StatusCode, e.Body)
}

// restPath 拼接 REST 路径，如 restPath("orders/%d.json", id)
func (c *Client) restPath(format string, args ...interface{}) string {
	return fmt.Sprintf("/admin/api/%s/", c.apiVersion) + fmt.Sprintf(format, args...)
}

// Get 调用 REST GET
func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Put 调用 REST PUT
func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// GraphQL 调用 GraphQL 接口，data 解码到 out
func (c *Client) GraphQL(ctx context.Context, query string, out interface{}) error {
	var resp graphQLResponse
	path := fmt.Sprintf("/admin/api/%s/graphql.json", c.graphQLVersion)
	if err := c.do(ctx, http.MethodPost, path, graphQLRequest{Query: query}, &resp); err != nil {
		return err
	}
	if len(resp.Errors) > 0 {
		return fmt.Errorf("shopify graphql error: %s", resp.Errors[0].Message)
	}
	if out == nil || len(resp.Data) == 0 {
		return nil
	}
	return json.Unmarshal(resp.Data, out)
}

// do 统一处理限流、超时、鉴权头和响应解码
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("shopify rate limit wait: %w", err)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set(AccessTokenHeader, c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: string(snippet)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode shopify response: %w", err)
	}
	return nil
}
