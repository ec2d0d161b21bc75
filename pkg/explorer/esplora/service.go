package esplora

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Sosthene00/bitcoin-pro/pkg/explorer"
)

type esplora struct {
	apiURL string
	client *httpClient
}

// NewService returns a new esplora service as an explorer.Service interface.
// The endpoint must expose the electrs REST API; the service checks it is
// reachable before returning.
func NewService(apiURL string, requestTimeout time.Duration) (explorer.Service, error) {
	service := &esplora{
		apiURL: apiURL,
		client: newHTTPClient(requestTimeout),
	}

	if err := service.healthCheck(); err != nil {
		return nil, fmt.Errorf("health check: %w", err)
	}

	return service, nil
}

func (e *esplora) healthCheck() error {
	url := fmt.Sprintf("%s/blocks/tip/height", e.apiURL)
	status, resp, err := e.client.NewHTTPRequest("GET", url, "", nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("%s", resp)
	}
	return nil
}

func (e *esplora) GetBlockHeight() (int, error) {
	url := fmt.Sprintf("%s/blocks/tip/height", e.apiURL)
	status, resp, err := e.client.NewHTTPRequest("GET", url, "", nil)
	if err != nil {
		return 0, fmt.Errorf("error on retrieving block height: %w", err)
	}
	if status != http.StatusOK {
		return 0, fmt.Errorf("%s", resp)
	}

	var height int
	if _, err := fmt.Sscanf(resp, "%d", &height); err != nil {
		return 0, fmt.Errorf("error on retrieving block height: %w", err)
	}
	return height, nil
}
