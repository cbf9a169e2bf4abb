package place

import (
	"encoding/json"
	"fmt"
)

// Window is one open/close pair within a day's schedule. The dataset encodes
// it as a two-element array ["09:00","17:00"], so it carries a custom codec.
type Window struct {
	Open  string
	Close string
}

func (w *Window) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("hours window must have 2 elements, got %d", len(pair))
	}
	w.Open, w.Close = pair[0], pair[1]
	return nil
}

func (w Window) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{w.Open, w.Close})
}

// Hours maps weekday abbreviations (Sun..Sat) to that day's windows.
// A missing or empty day means closed all day.
type Hours map[string][]Window

type PriceRange struct {
	Symbol string `db:"symbol" json:"symbol"`
}

type Location struct {
	Address      string   `db:"address"      json:"address"`
	Neighborhood string   `db:"neighborhood" json:"neighborhood"`
	Lat          *float64 `db:"lat"          json:"lat,omitempty"`
	Lng          *float64 `db:"lng"          json:"lng,omitempty"`
}

type Actions struct {
	Phone   string `db:"phone"    json:"phone,omitempty"`
	MapsURL string `db:"maps_url" json:"maps_url,omitempty"`
}

type BestTime struct {
	Label  string `db:"label"  json:"label"`
	Window string `db:"window" json:"window"`
}

type PublicSentiment struct {
	Summary     string `db:"summary"      json:"summary"`
	Count       int    `db:"count"        json:"count"`
	LastUpdated string `db:"last_updated" json:"last_updated"`
}

type FAQ struct {
	Q string `db:"q" json:"q"`
	A string `db:"a" json:"a"`
}

type Place struct {
	Slug       string   `db:"slug"       json:"slug"`
	Name       string   `db:"name"       json:"name"`
	Categories []string `db:"categories" json:"categories,omitempty"`
	Cuisines   []string `db:"cuisines"   json:"cuisines,omitempty"`
	Badges     []string `db:"badges"     json:"badges,omitempty"`

	PriceRange    *PriceRange        `db:"price_range"    json:"price_range,omitempty"`
	RatingOverall *float64           `db:"rating_overall" json:"rating_overall,omitempty"`
	Subscores     map[string]float64 `db:"subscores"      json:"subscores,omitempty"`

	Hours    Hours     `db:"hours"    json:"hours,omitempty"`
	Location *Location `db:"location" json:"location,omitempty"`
	Actions  *Actions  `db:"actions"  json:"actions,omitempty"`

	About           string `db:"about"            json:"about,omitempty"`
	Verified        bool   `db:"verified"         json:"verified"`
	MethodologyNote string `db:"methodology_note" json:"methodology_note,omitempty"`

	BestTimes       []BestTime       `db:"best_times"       json:"best_times,omitempty"`
	PublicSentiment *PublicSentiment `db:"public_sentiment" json:"public_sentiment,omitempty"`

	Dishes    []string `db:"dishes"    json:"dishes,omitempty"`
	Amenities []string `db:"amenities" json:"amenities,omitempty"`
	Gallery   []string `db:"gallery"   json:"gallery,omitempty"`

	FAQs []FAQ `db:"faqs" json:"faqs,omitempty"`
}

// ListedPlace decorates a record with the live fields the listing cards show.
type ListedPlace struct {
	Place
	OpenNow    bool   `json:"open_now"`
	TodayHours string `json:"today_hours"`
}
