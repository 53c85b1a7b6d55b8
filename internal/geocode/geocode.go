// Package geocode is the address-resolution capability the form engine calls
// through injection. The engine never cares which provider backs it.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Result is a successful address resolution.
type Result struct {
	FormattedAddress string `json:"formatted_address"`
	PostalCode       string `json:"postal_code"`
}

// Failure is an explicit geocoding failure. Callers are expected to fall back
// to manual address entry, not to treat it as fatal.
type Failure struct {
	Message string
}

func (f *Failure) Error() string {
	return "geocode: " + f.Message
}

// Geocoder resolves addresses in both directions.
type Geocoder interface {
	Resolve(ctx context.Context, address string) (*Result, error)
	Reverse(ctx context.Context, lat, lng float64) (*Result, error)
}

// NominatimClient backs Geocoder with the OSM Nominatim HTTP API.
type NominatimClient struct {
	baseURL string
	client  *http.Client
}

// NewNominatimClient creates a client for the given endpoint.
func NewNominatimClient(baseURL string) *NominatimClient {
	return &NominatimClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type nominatimPlace struct {
	DisplayName string `json:"display_name"`
	Address     struct {
		Postcode string `json:"postcode"`
	} `json:"address"`
}

// Resolve geocodes a free-form address.
func (c *NominatimClient) Resolve(ctx context.Context, address string) (*Result, error) {
	query := url.Values{
		"q":              {address},
		"format":         {"jsonv2"},
		"addressdetails": {"1"},
		"limit":          {"1"},
	}

	var places []nominatimPlace
	if err := c.getJSON(ctx, "/search", query, &places); err != nil {
		return nil, err
	}
	if len(places) == 0 {
		return nil, &Failure{Message: "no match for address"}
	}
	return placeResult(places[0]), nil
}

// Reverse geocodes a coordinate pair.
func (c *NominatimClient) Reverse(ctx context.Context, lat, lng float64) (*Result, error) {
	query := url.Values{
		"lat":            {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lon":            {strconv.FormatFloat(lng, 'f', -1, 64)},
		"format":         {"jsonv2"},
		"addressdetails": {"1"},
	}

	var place nominatimPlace
	if err := c.getJSON(ctx, "/reverse", query, &place); err != nil {
		return nil, err
	}
	if place.DisplayName == "" {
		return nil, &Failure{Message: "no match for coordinates"}
	}
	return placeResult(place), nil
}

func (c *NominatimClient) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return &Failure{Message: err.Error()}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &Failure{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &Failure{Message: fmt.Sprintf("provider returned status %d", resp.StatusCode)}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Failure{Message: err.Error()}
	}
	return nil
}

func placeResult(p nominatimPlace) *Result {
	return &Result{
		FormattedAddress: p.DisplayName,
		PostalCode:       p.Address.Postcode,
	}
}
