package httputils

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	retryablehttp "github.com/hashicorp/go-retryablehttp"
	"go.uber.org/ratelimit"
)

// rateLimitedTransport takes from the limiter before every request.
type rateLimitedTransport struct {
	limiter ratelimit.Limiter
	base    http.RoundTripper
}

func (t *rateLimitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.limiter.Take()
	return t.base.RoundTrip(req)
}

// NewRetryableHttpClient returns a standard http.Client that retries
// transient failures with backoff and rate limits outgoing requests.
func NewRetryableHttpClient(timeout time.Duration, limiter ratelimit.Limiter) *http.Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 3
	retryClient.RetryWaitMin = 1 * time.Second
	retryClient.RetryWaitMax = 10 * time.Second
	retryClient.Logger = nil

	client := retryClient.StandardClient()
	client.Timeout = timeout

	if limiter != nil {
		client.Transport = &rateLimitedTransport{
			limiter: limiter,
			base:    client.Transport,
		}
	}

	return client
}

// URLWithQuery joins a base URL with encoded query parameters.
func URLWithQuery(base string, q url.Values) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}

	u.RawQuery = q.Encode()
	return u.String(), nil
}

// MakeAPIRequest performs a request and decodes the JSON response into
// target when one is provided.
func MakeAPIRequest(ctx context.Context, client *http.Client, method string, rawURL string, body io.Reader, headers map[string]string, target interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	res, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("unexpected response status: %s body: %s", res.Status, string(body))
	}

	if target == nil {
		io.Copy(io.Discard, res.Body)
		return nil
	}

	if err := json.NewDecoder(res.Body).Decode(target); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
