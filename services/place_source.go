package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"bestMuscatAPI/internal/types/place"
)

// PostgresPlaceSource reads the catalog from the places table. Structured
// attributes live in JSONB columns and are unmarshalled after scanning.
type PostgresPlaceSource struct {
	db *pgxpool.Pool
}

func NewPostgresPlaceSource(db *pgxpool.Pool) *PostgresPlaceSource {
	return &PostgresPlaceSource{db: db}
}

func (s *PostgresPlaceSource) FetchPlaces(ctx context.Context) ([]place.Place, error) {
	query := `
		SELECT
			p.slug,
			p.name,
			COALESCE(p.categories, '{}') AS categories,
			COALESCE(p.cuisines, '{}') AS cuisines,
			COALESCE(p.badges, '{}') AS badges,
			p.price_range,
			p.rating_overall,
			p.subscores,
			p.hours,
			p.location,
			p.actions,
			COALESCE(p.about, '') AS about,
			COALESCE(p.verified, FALSE) AS verified,
			COALESCE(p.methodology_note, '') AS methodology_note,
			p.best_times,
			p.public_sentiment,
			COALESCE(p.dishes, '{}') AS dishes,
			COALESCE(p.amenities, '{}') AS amenities,
			COALESCE(p.gallery, '{}') AS gallery,
			p.faqs
		FROM places p
		ORDER BY p.position ASC
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query places: %w", err)
	}
	defer rows.Close()

	var places []place.Place

	for rows.Next() {
		var p place.Place
		var priceJSON, subscoresJSON, hoursJSON, locationJSON, actionsJSON []byte
		var bestTimesJSON, sentimentJSON, faqsJSON []byte

		err := rows.Scan(
			&p.Slug,
			&p.Name,
			&p.Categories,
			&p.Cuisines,
			&p.Badges,
			&priceJSON,
			&p.RatingOverall,
			&subscoresJSON,
			&hoursJSON,
			&locationJSON,
			&actionsJSON,
			&p.About,
			&p.Verified,
			&p.MethodologyNote,
			&bestTimesJSON,
			&sentimentJSON,
			&p.Dishes,
			&p.Amenities,
			&p.Gallery,
			&faqsJSON,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan place row: %w", err)
		}

		if err := unmarshalInto(priceJSON, &p.PriceRange); err != nil {
			return nil, fmt.Errorf("failed to unmarshal price_range for %s: %w", p.Slug, err)
		}
		if err := unmarshalInto(subscoresJSON, &p.Subscores); err != nil {
			return nil, fmt.Errorf("failed to unmarshal subscores for %s: %w", p.Slug, err)
		}
		if err := unmarshalInto(hoursJSON, &p.Hours); err != nil {
			return nil, fmt.Errorf("failed to unmarshal hours for %s: %w", p.Slug, err)
		}
		if err := unmarshalInto(locationJSON, &p.Location); err != nil {
			return nil, fmt.Errorf("failed to unmarshal location for %s: %w", p.Slug, err)
		}
		if err := unmarshalInto(actionsJSON, &p.Actions); err != nil {
			return nil, fmt.Errorf("failed to unmarshal actions for %s: %w", p.Slug, err)
		}
		if err := unmarshalInto(bestTimesJSON, &p.BestTimes); err != nil {
			return nil, fmt.Errorf("failed to unmarshal best_times for %s: %w", p.Slug, err)
		}
		if err := unmarshalInto(sentimentJSON, &p.PublicSentiment); err != nil {
			return nil, fmt.Errorf("failed to unmarshal public_sentiment for %s: %w", p.Slug, err)
		}
		if err := unmarshalInto(faqsJSON, &p.FAQs); err != nil {
			return nil, fmt.Errorf("failed to unmarshal faqs for %s: %w", p.Slug, err)
		}

		places = append(places, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return places, nil
}

func (s *PostgresPlaceSource) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// unmarshalInto decodes a nullable JSONB column, leaving dest untouched when
// the column was NULL.
func unmarshalInto(data []byte, dest interface{}) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, dest)
}

// FilePlaceSource reads the catalog from the canonical places.json dataset.
type FilePlaceSource struct {
	path string
}

func NewFilePlaceSource(path string) *FilePlaceSource {
	return &FilePlaceSource{path: path}
}

func (s *FilePlaceSource) FetchPlaces(ctx context.Context) ([]place.Place, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read places file %s: %w", s.path, err)
	}

	var places []place.Place
	if err := json.Unmarshal(data, &places); err != nil {
		return nil, fmt.Errorf("failed to parse places file %s: %w", s.path, err)
	}
	return places, nil
}

func (s *FilePlaceSource) Ping(ctx context.Context) error {
	if _, err := os.Stat(s.path); err != nil {
		return fmt.Errorf("places file unavailable: %w", err)
	}
	return nil
}
