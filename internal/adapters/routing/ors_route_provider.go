package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"hos-planner-service/internal/domain"
	"hos-planner-service/internal/platform/obs"
	"hos-planner-service/internal/ports"
)

const (
	metersPerMile  = 1609.344
	secondsPerHour = 3600.0
)

// ORSRouteProvider implements RouteProvider using OpenRouteService.
//
// It coordinates:
//   - Location normalization
//   - The builtin city table and a persistent geocode cache
//   - External API calls with retry/backoff
//
// The provider is safe for concurrent use.
type ORSRouteProvider struct {
	session      *http.Client
	apiKey       string
	baseURL      string
	profile      string
	routeCache   ports.RouteCache
	geocodeCache ports.GeocodeCache
}

func NewORSRouteProvider(apiKey string, routeCache ports.RouteCache, geocodeCache ports.GeocodeCache) (*ORSRouteProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	return &ORSRouteProvider{
		session:      &http.Client{Timeout: 15 * time.Second},
		apiKey:       apiKey,
		baseURL:      "https://api.openrouteservice.org",
		profile:      "driving-car",
		routeCache:   routeCache,
		geocodeCache: geocodeCache,
	}, nil
}

// normalize ensures consistent cache keys by collapsing whitespace.
func (o *ORSRouteProvider) normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// GetRoute geocodes both endpoints and fetches a directions summary.
func (o *ORSRouteProvider) GetRoute(ctx context.Context, origin, destination string) (_ domain.RouteSummary, err error) {
	defer obs.Time(ctx, "ors.GetRoute")(&err)

	normOrigin := o.normalize(origin)
	normDestination := o.normalize(destination)
	if normOrigin == "" || normDestination == "" {
		return domain.RouteSummary{}, errors.New("get ORS route: origin and destination must be non-empty")
	}

	// Check the persistent route cache before geocoding or calling ORS.
	if o.routeCache != nil {
		cached, ok, err := o.routeCache.Get(ctx, normOrigin, normDestination)
		if err != nil {
			return domain.RouteSummary{}, fmt.Errorf("get ORS route: route cache read: %w", err)
		}
		if ok {
			return cached, nil
		}
	}

	coords, err := o.resolve(ctx, []string{normOrigin, normDestination})
	if err != nil {
		return domain.RouteSummary{}, fmt.Errorf("get ORS route: %w", err)
	}

	from, ok := coords[normOrigin]
	if !ok {
		return domain.RouteSummary{}, fmt.Errorf("get ORS route: missing coordinate for origin %q", normOrigin)
	}
	to, ok := coords[normDestination]
	if !ok {
		return domain.RouteSummary{}, fmt.Errorf("get ORS route: missing coordinate for destination %q", normDestination)
	}

	route, err := o.fetchDirections(ctx, from, to)
	if err != nil {
		return domain.RouteSummary{}, err
	}

	if o.routeCache != nil {
		if err := o.routeCache.Put(ctx, normOrigin, normDestination, route); err != nil {
			log.Printf("route cache write failed: %v", err)
		}
	}

	return route, nil
}

// resolve maps location labels to coordinates: builtin city table first,
// then the persistent cache, then the ORS geocoder for the remainder.
func (o *ORSRouteProvider) resolve(ctx context.Context, locations []string) (map[string]domain.Coordinates, error) {
	out := make(map[string]domain.Coordinates, len(locations))

	misses := make([]string, 0, len(locations))
	for _, loc := range locations {
		if c, ok := lookupKnownCity(loc); ok {
			out[loc] = c
			continue
		}
		misses = append(misses, loc)
	}

	if len(misses) > 0 && o.geocodeCache != nil {
		hits, err := o.geocodeCache.GetMany(ctx, misses)
		if err != nil {
			return nil, fmt.Errorf("geocode cache read: %w", err)
		}

		remaining := misses[:0]
		for _, loc := range misses {
			if c, ok := hits[loc]; ok {
				out[loc] = c
				continue
			}
			remaining = append(remaining, loc)
		}
		misses = remaining
	}

	if len(misses) > 0 {
		fresh, err := o.geocodeMany(ctx, misses)
		if err != nil {
			return nil, err
		}
		for loc, c := range fresh {
			out[loc] = c
		}

		if o.geocodeCache != nil {
			if err := o.geocodeCache.PutMany(ctx, fresh); err != nil {
				log.Printf("geocode cache write failed: %v", err)
			}
		}
	}

	return out, nil
}

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// geocodeMany resolves labels individually using ORS /geocode/search.
func (o *ORSRouteProvider) geocodeMany(ctx context.Context, locations []string) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "ors.geocodeMany")(&err)

	endpoint := o.baseURL + "/geocode/search"

	out := make(map[string]domain.Coordinates, len(locations))
	for _, loc := range locations {
		if _, ok := out[loc]; ok {
			continue
		}

		resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
			req, err := o.newRequest(ctx, http.MethodGet, endpoint, nil)
			if err != nil {
				return nil, err
			}
			q := req.URL.Query()
			q.Set("text", loc)
			q.Set("boundary.country", "US")
			q.Set("size", "1")
			req.URL.RawQuery = q.Encode()
			return req, nil
		})
		if err != nil {
			return nil, fmt.Errorf("geocode %q: %w", loc, err)
		}

		var decoded geocodeResponse
		decodeErr := json.NewDecoder(resp.Body).Decode(&decoded)
		resp.Body.Close()
		if decodeErr != nil {
			return nil, fmt.Errorf("geocode %q: decode response: %w", loc, decodeErr)
		}

		if len(decoded.Features) == 0 {
			return nil, fmt.Errorf("geocode %q: no results", loc)
		}
		coords := decoded.Features[0].Geometry.Coordinates
		if len(coords) != 2 {
			return nil, fmt.Errorf("geocode %q: invalid coordinate format", loc)
		}

		out[loc] = domain.Coordinates{Lon: coords[0], Lat: coords[1]}
	}

	return out, nil
}

type directionsRequest struct {
	Coordinates [][]float64 `json:"coordinates"`
}

type directionsResponse struct {
	Routes []struct {
		Summary struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"summary"`
	} `json:"routes"`
}

// fetchDirections fetches a driving route summary and converts it to
// miles and hours.
func (o *ORSRouteProvider) fetchDirections(ctx context.Context, from, to domain.Coordinates) (_ domain.RouteSummary, err error) {
	defer obs.Time(ctx, "ors.fetchDirections")(&err)

	endpoint := o.baseURL + "/v2/directions/" + o.profile

	body, err := json.Marshal(directionsRequest{
		Coordinates: [][]float64{from.CoordsToList(), to.CoordsToList()},
	})
	if err != nil {
		return domain.RouteSummary{}, fmt.Errorf("fetch directions: marshal request: %w", err)
	}

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	})
	if err != nil {
		return domain.RouteSummary{}, fmt.Errorf("fetch directions: %w", err)
	}
	defer resp.Body.Close()

	var decoded directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.RouteSummary{}, fmt.Errorf("fetch directions: decode response: %w", err)
	}
	if len(decoded.Routes) == 0 {
		return domain.RouteSummary{}, errors.New("fetch directions: ORS returned no routes")
	}

	summary := decoded.Routes[0].Summary
	return domain.RouteSummary{
		DistanceMiles: summary.Distance / metersPerMile,
		DurationHours: summary.Duration / secondsPerHour,
	}, nil
}
