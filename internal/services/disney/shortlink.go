package disney

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
)

// ResolveShortLink follows the redirects of a short link and returns the
// URL it lands on
func (c *Client) ResolveShortLink(ctx context.Context, shortURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, shortURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("short link returned status %d", resp.StatusCode)
	}

	final := resp.Request.URL.String()
	c.logger.WithFields(logrus.Fields{
		"url":      shortURL,
		"resolved": final,
	}).Debug("Resolved short link")
	return final, nil
}
