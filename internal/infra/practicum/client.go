package practicum

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"homework_status_bot/internal/domain/homework"

	"github.com/sirupsen/logrus"
)

// Client queries the Practicum homework status API. It implements
// homework.StatusProvider.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewClient(endpoint, token string, timeout time.Duration, logger *logrus.Logger) *Client {
	return &Client{
		endpoint: endpoint,
		token:    token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// HomeworkStatuses fetches homeworks whose status changed since fromDate.
// Network failures and non-200 responses wrap homework.ErrTransport; a 200
// body goes through envelope validation, so schema violations come back as
// homework.ErrSchema / homework.ErrMissingField.
func (c *Client) HomeworkStatuses(ctx context.Context, fromDate int64) (*homework.Envelope, error) {
	params := url.Values{}
	params.Set("from_date", strconv.FormatInt(fromDate, 10))
	reqURL := c.endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build status request: %w", err)
	}
	req.Header.Set("Authorization", "OAuth "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", homework.ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", homework.ErrTransport, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected HTTP status %d", homework.ErrTransport, resp.StatusCode)
	}

	c.logger.Debugf("Status API returned %d bytes for from_date=%d", len(body), fromDate)

	return homework.ParseEnvelope(body)
}
