package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"bestMuscatAPI/internal/types/place"
	"bestMuscatAPI/services"
)

type PlaceHandler struct {
	catalogService *services.CatalogService
	shareService   *services.ShareService
	now            func() time.Time
}

func NewPlaceHandler(catalogService *services.CatalogService, shareService *services.ShareService) *PlaceHandler {
	return &PlaceHandler{
		catalogService: catalogService,
		shareService:   shareService,
		now:            time.Now,
	}
}

type listResponse struct {
	Count  int                 `json:"count"`
	Places []place.ListedPlace `json:"places"`
}

// GetPlaces serves the listing: filter, sort, and decorate with live status.
func (h *PlaceHandler) GetPlaces(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	catalog, err := h.catalogService.Catalog(ctx)
	if err != nil {
		respondWithError(w, http.StatusServiceUnavailable, "Catalog unavailable")
		return
	}

	criteria := services.FilterCriteria{
		SearchText:    r.URL.Query().Get("q"),
		Awards:        multiValues(r, "awards"),
		Prices:        multiValues(r, "prices"),
		Cuisines:      multiValues(r, "cuisines"),
		Neighborhoods: multiValues(r, "neighborhoods"),
	}

	results := services.Filter(catalog, criteria)
	results = services.Sort(results, services.SortStrategy(r.URL.Query().Get("sort")))

	now := h.now()
	openOnly := r.URL.Query().Get("open") == "true"

	listed := make([]place.ListedPlace, 0, len(results))
	for _, p := range results {
		open := services.IsOpenNow(p.Hours, now)
		if openOnly && !open {
			continue
		}
		listed = append(listed, place.ListedPlace{
			Place:      p,
			OpenNow:    open,
			TodayHours: services.TodayHoursString(p.Hours, now),
		})
	}

	respondWithJSON(w, http.StatusOK, listResponse{Count: len(listed), Places: listed})
}

// GetFilterOptions serves the checkbox vocabularies for the listing page.
func (h *PlaceHandler) GetFilterOptions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	catalog, err := h.catalogService.Catalog(ctx)
	if err != nil {
		respondWithError(w, http.StatusServiceUnavailable, "Catalog unavailable")
		return
	}

	respondWithJSON(w, http.StatusOK, services.CollectFilterOptions(catalog))
}

type detailResponse struct {
	place.Place
	OpenNow    bool                     `json:"open_now"`
	TodayHours string                   `json:"today_hours"`
	HoursTable []hoursRow               `json:"hours_table"`
	JSONLD     services.SchemaDocuments `json:"json_ld"`
}

type hoursRow struct {
	Day   string `json:"day"`
	Hours string `json:"hours"`
}

// GetPlace serves the detail view for one place, including its JSON-LD.
func (h *PlaceHandler) GetPlace(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	slug := mux.Vars(r)["slug"]

	p, ok, err := h.catalogService.Get(ctx, slug)
	if err != nil {
		respondWithError(w, http.StatusServiceUnavailable, "Catalog unavailable")
		return
	}
	if !ok {
		respondWithError(w, http.StatusNotFound, "Place not found")
		return
	}

	now := h.now()
	respondWithJSON(w, http.StatusOK, detailResponse{
		Place:      p,
		OpenNow:    services.IsOpenNow(p.Hours, now),
		TodayHours: services.TodayHoursString(p.Hours, now),
		HoursTable: buildHoursTable(p.Hours),
		JSONLD:     services.ProjectSchema(p, pageURL(r)),
	})
}

// GetShareCode serves a QR code pointing at the place's maps link.
func (h *PlaceHandler) GetShareCode(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	slug := mux.Vars(r)["slug"]

	share, err := h.shareService.GenerateShareCode(ctx, slug)
	if err != nil {
		if errors.Is(err, services.ErrNoMapsLink) {
			respondWithError(w, http.StatusNotFound, "Place has no maps link")
			return
		}
		respondWithError(w, http.StatusNotFound, "Place not found")
		return
	}

	respondWithJSON(w, http.StatusOK, share)
}

// detailWeek is the display order of the detail page hours table.
var detailWeek = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func buildHoursTable(hours place.Hours) []hoursRow {
	rows := make([]hoursRow, 0, len(detailWeek))
	for _, day := range detailWeek {
		rows = append(rows, hoursRow{
			Day:   day,
			Hours: services.DayHoursString(hours, day),
		})
	}
	return rows
}

// multiValues collects a query parameter that may repeat or hold
// comma-separated values, e.g. ?cuisines=Italian,Omani&cuisines=Thai.
func multiValues(r *http.Request, key string) []string {
	var values []string
	for _, raw := range r.URL.Query()[key] {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				values = append(values, v)
			}
		}
	}
	return values
}

// pageURL reconstructs the canonical URL of the current request for JSON-LD.
func pageURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host + r.URL.Path
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}
