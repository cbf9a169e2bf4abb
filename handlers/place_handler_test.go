package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bestMuscatAPI/internal/types/place"
	"bestMuscatAPI/services"
)

type stubPlaceSource struct {
	places []place.Place
	err    error
}

func (s *stubPlaceSource) FetchPlaces(ctx context.Context) ([]place.Place, error) {
	return s.places, s.err
}

func (s *stubPlaceSource) Ping(ctx context.Context) error { return s.err }

func floatPtr(v float64) *float64 { return &v }

func fixtureCatalog() []place.Place {
	return []place.Place{
		{
			Slug:          "bait-al-luban",
			Name:          "Bait Al Luban",
			Categories:    []string{"Restaurants"},
			Cuisines:      []string{"Omani"},
			Badges:        []string{"Editor's Choice"},
			PriceRange:    &place.PriceRange{Symbol: "$$"},
			RatingOverall: floatPtr(4.7),
			Hours: place.Hours{
				"Mon": {{Open: "12:00", Close: "23:00"}},
			},
			Location: &place.Location{
				Address:      "Mutrah Corniche",
				Neighborhood: "Mutrah",
			},
			Actions: &place.Actions{
				MapsURL: "https://maps.google.com/?q=Bait+Al+Luban",
			},
			FAQs: []place.FAQ{{Q: "Q?", A: "A."}},
		},
		{
			Slug:          "bangkok-corner",
			Name:          "Bangkok Corner",
			Categories:    []string{"Restaurants"},
			Cuisines:      []string{"Thai"},
			RatingOverall: floatPtr(4.9),
			Hours: place.Hours{
				"Tue": {{Open: "09:00", Close: "17:00"}},
			},
			Location: &place.Location{Neighborhood: "Al Khuwair"},
		},
	}
}

// newTestRouter wires a handler over the fixture catalog with the clock
// pinned to Monday 13:00, when only Bait Al Luban is open.
func newTestRouter(t *testing.T, places []place.Place) *mux.Router {
	t.Helper()

	catalogService := services.NewCatalogService(&stubPlaceSource{places: places})
	handler := NewPlaceHandler(catalogService, services.NewShareService(catalogService))
	handler.now = func() time.Time {
		return time.Date(2025, time.June, 2, 13, 0, 0, 0, time.UTC)
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/v1/places", handler.GetPlaces).Methods("GET")
	r.HandleFunc("/api/v1/places/filters", handler.GetFilterOptions).Methods("GET")
	r.HandleFunc("/api/v1/places/{slug}", handler.GetPlace).Methods("GET")
	r.HandleFunc("/api/v1/places/{slug}/share", handler.GetShareCode).Methods("GET")
	return r
}

func doRequest(t *testing.T, router *mux.Router, url string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestGetPlaces_ListsAllWithLiveStatus(t *testing.T) {
	router := newTestRouter(t, fixtureCatalog())

	rr := doRequest(t, router, "/api/v1/places")
	require.Equal(t, http.StatusOK, rr.Code)

	var response struct {
		Count  int                 `json:"count"`
		Places []place.ListedPlace `json:"places"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))

	require.Equal(t, 2, response.Count)
	assert.Equal(t, "bait-al-luban", response.Places[0].Slug)
	assert.True(t, response.Places[0].OpenNow)
	assert.Equal(t, "12:00–23:00", response.Places[0].TodayHours)
	assert.False(t, response.Places[1].OpenNow, "closed on Mondays")
	assert.Equal(t, "Closed", response.Places[1].TodayHours)
}

func TestGetPlaces_FiltersByCuisine(t *testing.T) {
	router := newTestRouter(t, fixtureCatalog())

	rr := doRequest(t, router, "/api/v1/places?cuisines=Thai,Indian")
	require.Equal(t, http.StatusOK, rr.Code)

	var response struct {
		Count  int                 `json:"count"`
		Places []place.ListedPlace `json:"places"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))

	require.Equal(t, 1, response.Count)
	assert.Equal(t, "bangkok-corner", response.Places[0].Slug)
}

func TestGetPlaces_SortByRating(t *testing.T) {
	router := newTestRouter(t, fixtureCatalog())

	rr := doRequest(t, router, "/api/v1/places?sort=rating")
	require.Equal(t, http.StatusOK, rr.Code)

	var response struct {
		Places []place.ListedPlace `json:"places"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))

	require.Len(t, response.Places, 2)
	assert.Equal(t, "bangkok-corner", response.Places[0].Slug)
	assert.Equal(t, "bait-al-luban", response.Places[1].Slug)
}

func TestGetPlaces_OpenNowOnly(t *testing.T) {
	router := newTestRouter(t, fixtureCatalog())

	rr := doRequest(t, router, "/api/v1/places?open=true")
	require.Equal(t, http.StatusOK, rr.Code)

	var response struct {
		Count  int                 `json:"count"`
		Places []place.ListedPlace `json:"places"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))

	require.Equal(t, 1, response.Count)
	assert.Equal(t, "bait-al-luban", response.Places[0].Slug)
}

func TestGetPlaces_CatalogUnavailable(t *testing.T) {
	catalogService := services.NewCatalogService(&stubPlaceSource{err: assert.AnError})
	handler := NewPlaceHandler(catalogService, services.NewShareService(catalogService))

	r := mux.NewRouter()
	r.HandleFunc("/api/v1/places", handler.GetPlaces).Methods("GET")

	rr := doRequest(t, r, "/api/v1/places")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestGetFilterOptions(t *testing.T) {
	router := newTestRouter(t, fixtureCatalog())

	rr := doRequest(t, router, "/api/v1/places/filters")
	require.Equal(t, http.StatusOK, rr.Code)

	var options services.FilterOptions
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &options))

	assert.Equal(t, []string{"Editor's Choice"}, options.Awards)
	assert.Equal(t, []string{"$$"}, options.Prices)
	assert.Equal(t, []string{"Omani", "Thai"}, options.Cuisines)
	assert.Equal(t, []string{"Al Khuwair", "Mutrah"}, options.Neighborhoods)
}

func TestGetPlace_Detail(t *testing.T) {
	router := newTestRouter(t, fixtureCatalog())

	rr := doRequest(t, router, "/api/v1/places/bait-al-luban")
	require.Equal(t, http.StatusOK, rr.Code)

	var detail struct {
		Slug       string `json:"slug"`
		OpenNow    bool   `json:"open_now"`
		TodayHours string `json:"today_hours"`
		HoursTable []struct {
			Day   string `json:"day"`
			Hours string `json:"hours"`
		} `json:"hours_table"`
		JSONLD struct {
			Primary map[string]interface{} `json:"primary"`
			FAQ     map[string]interface{} `json:"faq"`
		} `json:"json_ld"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &detail))

	assert.Equal(t, "bait-al-luban", detail.Slug)
	assert.True(t, detail.OpenNow)
	assert.Equal(t, "12:00–23:00", detail.TodayHours)

	require.Len(t, detail.HoursTable, 7)
	assert.Equal(t, "Mon", detail.HoursTable[0].Day)
	assert.Equal(t, "12:00–23:00", detail.HoursTable[0].Hours)
	assert.Equal(t, "Tue", detail.HoursTable[1].Day)
	assert.Equal(t, "Closed", detail.HoursTable[1].Hours)

	assert.Equal(t, "Restaurant", detail.JSONLD.Primary["@type"])
	assert.Equal(t, "http://example.com/api/v1/places/bait-al-luban", detail.JSONLD.Primary["url"])
	require.NotNil(t, detail.JSONLD.FAQ)
	assert.Equal(t, "FAQPage", detail.JSONLD.FAQ["@type"])
}

func TestGetPlace_NotFound(t *testing.T) {
	router := newTestRouter(t, fixtureCatalog())

	rr := doRequest(t, router, "/api/v1/places/no-such-place")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGetShareCode(t *testing.T) {
	router := newTestRouter(t, fixtureCatalog())

	rr := doRequest(t, router, "/api/v1/places/bait-al-luban/share")
	require.Equal(t, http.StatusOK, rr.Code)

	var share services.ShareCodeResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &share))
	assert.Equal(t, "https://maps.google.com/?q=Bait+Al+Luban", share.MapsURL)
	assert.NotEmpty(t, share.QrCodeBase64)

	// Bangkok Corner has no maps link.
	rr = doRequest(t, router, "/api/v1/places/bangkok-corner/share")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
