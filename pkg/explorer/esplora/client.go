package esplora

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/Sosthene00/bitcoin-pro/pkg/circuitbreaker"
)

type httpResponse struct {
	status int
	body   string
}

// httpClient wraps a net/http client with a circuit breaker so that a dead or
// flapping chain index fails fast instead of stacking up timeouts.
type httpClient struct {
	inner   *http.Client
	breaker *gobreaker.CircuitBreaker
}

func newHTTPClient(requestTimeout time.Duration) *httpClient {
	return &httpClient{
		inner:   &http.Client{Timeout: requestTimeout},
		breaker: circuitbreaker.NewCircuitBreaker("esplora"),
	}
}

// NewHTTPRequest sends a request and returns the response status and body.
// Transport errors and 5xx statuses count as breaker failures, 4xx statuses
// do not since they indicate a bad request rather than a sick endpoint.
func (c *httpClient) NewHTTPRequest(
	method, url, bodyString string, header map[string]string,
) (int, string, error) {
	response, err := c.breaker.Execute(func() (interface{}, error) {
		var body io.Reader
		if len(bodyString) > 0 {
			body = strings.NewReader(bodyString)
		}
		req, err := http.NewRequest(method, url, body)
		if err != nil {
			return nil, err
		}
		for key, value := range header {
			req.Header.Set(key, value)
		}

		resp, err := c.inner.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			return nil, &serverError{resp.StatusCode, string(data)}
		}
		return &httpResponse{resp.StatusCode, string(data)}, nil
	})
	if err != nil {
		var serverErr *serverError
		if errors.As(err, &serverErr) {
			return serverErr.status, serverErr.body, nil
		}
		return 0, "", err
	}

	resp := response.(*httpResponse)
	return resp.status, resp.body, nil
}

type serverError struct {
	status int
	body   string
}

func (e *serverError) Error() string {
	return e.body
}
