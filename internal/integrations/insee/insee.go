package insee

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/beevik/etree"
	"github.com/gestimo/rent-service/internal/config"
	"github.com/sirupsen/logrus"
)

// IRLIndex is one quarterly observation of the rent reference index
// (indice de référence des loyers)
type IRLIndex struct {
	Quarter string  `json:"quarter"` // e.g. "2025-T1"
	Value   float64 `json:"value"`
}

// Client handles integration with the INSEE IRL series feed
type Client struct {
	url    string
	client *http.Client
	log    *logrus.Logger
}

// NewClient initializes a new INSEE client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		url: cfg.INSEEURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// fetchSeries downloads the raw XML series
func (c *Client) fetchSeries() ([]byte, error) {
	req, err := http.NewRequest("GET", c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Accept", "application/xml")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %v", err)
	}

	c.log.Debugf("INSEE XML response: %s", string(body))

	return body, nil
}

// parseSeries extracts the quarterly observations from the XML payload.
// Observations are expected in chronological order.
func parseSeries(rawBody []byte) ([]IRLIndex, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(rawBody); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %v", err)
	}

	obsElements := doc.FindElements("//Series/Obs")
	if len(obsElements) == 0 {
		return nil, fmt.Errorf("no observations found in XML")
	}

	var series []IRLIndex
	for _, obs := range obsElements {
		quarter := obs.SelectAttrValue("period", "")
		raw := obs.SelectAttrValue("value", "")
		var value float64
		if _, err := fmt.Sscanf(raw, "%f", &value); err != nil {
			return nil, fmt.Errorf("failed to parse observation %q: %v", raw, err)
		}
		series = append(series, IRLIndex{Quarter: quarter, Value: value})
	}

	return series, nil
}

// LatestIndex retrieves the most recent quarterly IRL observation
func (c *Client) LatestIndex() (*IRLIndex, error) {
	body, err := c.fetchSeries()
	if err != nil {
		return nil, err
	}

	series, err := parseSeries(body)
	if err != nil {
		return nil, err
	}

	latest := series[len(series)-1]
	c.log.Infof("Retrieved IRL index %s = %.2f", latest.Quarter, latest.Value)
	return &latest, nil
}
