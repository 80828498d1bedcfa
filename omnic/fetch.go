package omnic

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

// fetchClient retrieves remote sources. One blocking attempt, no retry.
var fetchClient = &http.Client{Timeout: 10 * time.Second}

// fetch downloads url and returns the response body. Any transport error,
// timeout or non-2xx status yields ErrFetch.
func fetch(url string) ([]byte, error) {
	resp, err := fetchClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned status %s", ErrFetch, url, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrFetch, url, err)
	}
	return data, nil
}
