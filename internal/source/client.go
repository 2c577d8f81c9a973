package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/arnv-dev/go-aqi-alerts/internal/config"
	"github.com/arnv-dev/go-aqi-alerts/internal/models"
	"github.com/arnv-dev/go-aqi-alerts/internal/stations"
)

type stationsResponse struct {
	Stations []stationRecord `json:"stations"`
}

type stationRecord struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Latitude   float64            `json:"latitude"`
	Longitude  float64            `json:"longitude"`
	AQI        int                `json:"aqi"`
	Pollutants map[string]float64 `json:"pollutants"`
	UpdatedAt  string             `json:"updated_at"`
}

// Client reads the upstream CPCB-style stations feed and maps the nearest
// station to an observation for a monitored location.
type Client struct {
	url  string
	http *http.Client
}

func NewClient(url string) *Client {
	return &Client{
		url: url,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (c *Client) Latest(ctx context.Context, loc config.Location) (*models.AqiObservation, error) {
	list, err := c.Stations(ctx)
	if err != nil {
		return nil, err
	}

	st, ok := stations.Nearest(list, loc.Latitude, loc.Longitude)
	if !ok {
		return nil, fmt.Errorf("%w: feed returned no stations", ErrUnavailable)
	}

	return models.NewObservation(st.AQI, st.Pollutants, st.UpdatedAt, loc.Label), nil
}

// Stations fetches and decodes the full station list.
func (c *Client) Stations(ctx context.Context) ([]models.Station, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status code: %d - status: %s", ErrUnavailable, resp.StatusCode, resp.Status)
	}

	var data stationsResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: error decoding resp.Body: %v", ErrUnavailable, err)
	}

	list := make([]models.Station, 0, len(data.Stations))
	for _, rec := range data.Stations {
		updated, err := time.Parse(time.RFC3339, rec.UpdatedAt)
		if err != nil {
			updated = time.Now().UTC()
		}
		list = append(list, models.Station{
			ID:         rec.ID,
			Name:       rec.Name,
			Latitude:   rec.Latitude,
			Longitude:  rec.Longitude,
			AQI:        rec.AQI,
			Pollutants: rec.Pollutants,
			UpdatedAt:  updated,
		})
	}

	return list, nil
}
