package datasource

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/epl-predictor/internal/models"
)

// HTTPSourceName identifies the HTTP results feed
const HTTPSourceName = "http"

// HTTPSource downloads a results sheet over HTTP
type HTTPSource struct {
	httpClient *RateLimitedHTTPClient
	url        string
	logger     *logrus.Entry
}

// NewHTTPSource creates a source reading the CSV at url
func NewHTTPSource(httpClient *RateLimitedHTTPClient, url string, logger *logrus.Logger) *HTTPSource {
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.PanicLevel)
	}
	return &HTTPSource{
		httpClient: httpClient,
		url:        url,
		logger:     logger.WithFields(logrus.Fields{"component": "datasource", "source": HTTPSourceName}),
	}
}

// FetchResults downloads and parses the results sheet
func (s *HTTPSource) FetchResults(ctx context.Context) ([]models.MatchResult, error) {
	resp, err := s.httpClient.Get(ctx, s.url)
	if err != nil {
		return nil, NewDataSourceError(HTTPSourceName, ErrCodeNetworkError, "failed to download results", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, NewDataSourceError(HTTPSourceName, ErrCodeNotFound, fmt.Sprintf("no results at %s", s.url), nil)
	case resp.StatusCode >= 500:
		return nil, NewDataSourceError(HTTPSourceName, ErrCodeServerError, fmt.Sprintf("unexpected status: %d", resp.StatusCode), nil)
	case resp.StatusCode != http.StatusOK:
		return nil, NewDataSourceError(HTTPSourceName, ErrCodeUnknown, fmt.Sprintf("unexpected status: %d", resp.StatusCode), nil)
	}

	results, err := ParseResultsCSV(HTTPSourceName, resp.Body)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{"url": s.url, "rows": len(results)}).Debug("Downloaded results")
	return results, nil
}

// Name returns the data source name
func (s *HTTPSource) Name() string {
	return HTTPSourceName
}

// Close closes the underlying HTTP client
func (s *HTTPSource) Close() error {
	return s.httpClient.Close()
}
