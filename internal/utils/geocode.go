package utils

import (
	"context"
	"fmt"
	"sync"
	"time"

	"googlemaps.github.io/maps"
)

/*──────────── reusable, thread-safe Geocoding client ────────────*/

var (
	geocodeClientOnce sync.Once
	geocodeClient     *maps.Client
	geocodeClientErr  error
)

func getGeocodeClient(apiKey string) (*maps.Client, error) {
	geocodeClientOnce.Do(func() {
		Logger.Info("[Geocode] Initializing Google Maps Geocoding client...")
		geocodeClient, geocodeClientErr = maps.NewClient(maps.WithAPIKey(apiKey))
		if geocodeClientErr != nil {
			Logger.WithError(geocodeClientErr).Error("[Geocode] Failed to initialize Google Maps client")
		}
	})
	return geocodeClient, geocodeClientErr
}

// GeocodeAddress resolves a street address to WGS-84 coordinates via the
// Google Maps Geocoding API. Returns an error when the key is empty, the
// request fails, or no result matches; callers decide whether that is fatal.
func GeocodeAddress(ctx context.Context, apiKey, address, city, state, zip string) (float64, float64, error) {
	if apiKey == "" {
		return 0, 0, fmt.Errorf("geocoding disabled: empty API key")
	}

	cli, err := getGeocodeClient(apiKey)
	if err != nil {
		return 0, 0, err
	}

	reqCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	full := fmt.Sprintf("%s, %s, %s %s", address, city, state, zip)
	results, err := cli.Geocode(reqCtx, &maps.GeocodingRequest{Address: full})
	if err != nil {
		Logger.WithError(err).WithField("address", full).Warn("[Geocode] Geocoding request failed")
		return 0, 0, err
	}
	if len(results) == 0 {
		return 0, 0, fmt.Errorf("no geocoding result for %q", full)
	}

	loc := results[0].Geometry.Location
	return loc.Lat, loc.Lng, nil
}
