package location

import (
	"context"
	"time"

	"googlemaps.github.io/maps"
)

// GoogleGeolocationProvider resolves the device position through the Google
// Maps Geolocation API from nearby WiFi access points and cell towers. It is
// the fallback for devices without a GPS receiver.
type GoogleGeolocationProvider struct {
	client     *maps.Client
	modemIndex int
}

// NewGoogleGeolocationProvider creates a new GoogleGeolocationProvider
// instance. modemIndex selects the mmcli modem used for cell tower data.
func NewGoogleGeolocationProvider(apiKey string, modemIndex int) (*GoogleGeolocationProvider, error) {
	c, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	return &GoogleGeolocationProvider{
		client:     c,
		modemIndex: modemIndex,
	}, nil
}

// GetLocation surveys nearby radio sources and resolves them to a position.
func (g *GoogleGeolocationProvider) GetLocation(ctx context.Context) (Location, error) {
	wifiAPs, err := scanWiFiAccessPoints(ctx)
	if err != nil {
		return Location{}, err
	}

	cellTowers, err := scanCellTowers(ctx, g.modemIndex)
	if err != nil {
		// A device without a modem can still resolve from WiFi alone.
		cellTowers = nil
	}

	resp, err := g.client.Geolocate(ctx, &maps.GeolocationRequest{
		ConsiderIP:       true,
		WiFiAccessPoints: wifiAPs,
		CellTowers:       cellTowers,
	})
	if err != nil {
		return Location{}, err
	}

	return Location{
		Latitude:  resp.Location.Lat,
		Longitude: resp.Location.Lng,
		Accuracy:  resp.Accuracy,
		Time:      time.Now(),
	}, nil
}

// Close is a no-op; the underlying HTTP client needs no teardown.
func (g *GoogleGeolocationProvider) Close() error {
	return nil
}
