// Package geocoding содержит клиент обратного геокодирования на базе
// Nominatim (OpenStreetMap): преобразование координат в ZIP-код.
package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ErrNoZipCode возвращается, когда по координатам не удалось определить ZIP-код.
var ErrNoZipCode = errors.New("no zip code for coordinates")

// Client выполняет запросы обратного геокодирования к Nominatim API.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewClient создает новый клиент Nominatim.
// Заголовок User-Agent обязателен по правилам использования Nominatim.
func NewClient(baseURL, userAgent string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type reverseResponse struct {
	Address struct {
		Postcode string `json:"postcode"`
		City     string `json:"city"`
		Town     string `json:"town"`
		Village  string `json:"village"`
		State    string `json:"state"`
	} `json:"address"`
}

// Location описывает результат обратного геокодирования.
type Location struct {
	ZipCode string `json:"zip_code"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
}

// ReverseGeocode возвращает ZIP-код и населенный пункт для пары координат.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lon float64) (*Location, error) {
	const op = "geocoding.ReverseGeocode"

	query := url.Values{}
	query.Set("format", "json")
	query.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	query.Set("zoom", "18")
	query.Set("addressdetails", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/reverse?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: unexpected status: %s", op, resp.Status)
	}

	var decoded reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if decoded.Address.Postcode == "" {
		return nil, ErrNoZipCode
	}

	city := decoded.Address.City
	if city == "" {
		city = decoded.Address.Town
	}
	if city == "" {
		city = decoded.Address.Village
	}

	return &Location{
		ZipCode: decoded.Address.Postcode,
		City:    city,
		State:   decoded.Address.State,
	}, nil
}
