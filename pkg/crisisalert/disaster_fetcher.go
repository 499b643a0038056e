package crisisalert

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"generosity-backend/internal/utils"
)

const defaultEarthquakeFeedURL = "https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/all_day.geojson"

// AlertData is a fetched alert before persistence.
type AlertData struct {
	Title     string
	Message   string
	AlertType string
	Severity  string
	Location  map[string]any
	SourceURL string
}

type (
	DisasterFetcher interface {
		FetchAll(ctx context.Context) []AlertData
	}

	disasterFetcher struct {
		client  *http.Client
		feedURL string
	}
)

func NewDisasterFetcher() DisasterFetcher {
	feedURL := utils.GetConfig("EARTHQUAKE_FEED_URL")
	if feedURL == "" {
		feedURL = defaultEarthquakeFeedURL
	}
	return &disasterFetcher{
		client:  &http.Client{Timeout: 10 * time.Second},
		feedURL: feedURL,
	}
}

// FetchAll is best effort: a failed source degrades to no alerts from that
// source rather than failing the caller.
func (f *disasterFetcher) FetchAll(ctx context.Context) []AlertData {
	alerts := fetchWeatherAlerts()

	earthquakes, err := f.fetchEarthquakes(ctx)
	if err != nil {
		log.Printf("error fetching natural disasters: %v", err)
	} else {
		alerts = append(alerts, earthquakes...)
	}

	return append(alerts, fetchHealthAlerts()...)
}

// Weather alerts come from a static advisory until a keyed weather API is
// wired in.
func fetchWeatherAlerts() []AlertData {
	return []AlertData{
		{
			Title:     "Severe Weather Warning",
			Message:   "Heavy rainfall and strong winds expected in the next 24 hours.",
			AlertType: "weather_alert",
			Severity:  "high",
			SourceURL: "https://openweathermap.org",
		},
	}
}

func fetchHealthAlerts() []AlertData {
	return []AlertData{
		{
			Title:     "Public Health Advisory",
			Message:   "Stay updated on local health guidelines and vaccination information.",
			AlertType: "health_crisis",
			Severity:  "medium",
			SourceURL: "https://www.who.int",
		},
	}
}

func (f *disasterFetcher) fetchEarthquakes(ctx context.Context) ([]AlertData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.feedURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("earthquake feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return parseEarthquakeFeed(body)
}

type earthquakeFeed struct {
	Features []struct {
		Properties struct {
			Mag   float64 `json:"mag"`
			Place string  `json:"place"`
			URL   string  `json:"url"`
		} `json:"properties"`
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// parseEarthquakeFeed turns a USGS GeoJSON summary into alerts for
// significant quakes (magnitude >= 4.0), capped at the 5 most recent.
func parseEarthquakeFeed(data []byte) ([]AlertData, error) {
	var feed earthquakeFeed
	if err := json.Unmarshal(data, &feed); err != nil {
		return nil, err
	}

	var alerts []AlertData
	for i, feature := range feed.Features {
		if i >= 5 {
			break
		}

		props := feature.Properties
		if props.Mag < 4.0 {
			continue
		}

		place := props.Place
		if place == "" {
			place = "Unknown location"
		}

		severity := "medium"
		if props.Mag >= 6.0 {
			severity = "high"
		}

		sourceURL := props.URL
		if sourceURL == "" {
			sourceURL = "https://earthquake.usgs.gov"
		}

		alert := AlertData{
			Title:     fmt.Sprintf("Earthquake Alert - Magnitude %g", props.Mag),
			Message:   fmt.Sprintf("Earthquake detected: Magnitude %g at %s", props.Mag, place),
			AlertType: "natural_disaster",
			Severity:  severity,
			SourceURL: sourceURL,
		}
		if len(feature.Geometry.Coordinates) >= 2 {
			alert.Location = map[string]any{
				"lat": feature.Geometry.Coordinates[1],
				"lng": feature.Geometry.Coordinates[0],
			}
		}
		alerts = append(alerts, alert)
	}

	return alerts, nil
}
