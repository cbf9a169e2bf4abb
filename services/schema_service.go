package services

import (
	"fmt"

	"bestMuscatAPI/internal/types/place"
)

const schemaContext = "https://schema.org"

// businessTypes maps a place's primary category to its schema.org type.
var businessTypes = map[string]string{
	"Restaurants": "Restaurant",
	"Hotels":      "Hotel",
	"Schools":     "School",
	"Malls":       "ShoppingMall",
	"Spas":        "HealthAndBeautyBusiness",
	"Clinics":     "MedicalClinic",
}

// SchemaDocuments holds the JSON-LD output for one place: the primary
// business entity and, when the place has FAQs, a FAQPage document.
type SchemaDocuments struct {
	Primary map[string]interface{} `json:"primary"`
	FAQ     map[string]interface{} `json:"faq,omitempty"`
}

// ProjectSchema builds the schema.org documents for a place. pageURL is the
// canonical detail page URL, supplied by the caller. Fields whose presence
// precondition fails are never inserted, so documents carry no nulls.
func ProjectSchema(p place.Place, pageURL string) SchemaDocuments {
	businessType := "LocalBusiness"
	if len(p.Categories) > 0 {
		if t, ok := businessTypes[p.Categories[0]]; ok {
			businessType = t
		}
	}

	doc := map[string]interface{}{
		"@context": schemaContext,
		"@type":    businessType,
		"name":     p.Name,
		"url":      pageURL,
	}

	if len(p.Gallery) > 0 {
		doc["image"] = p.Gallery[0]
	}
	if p.Actions != nil && p.Actions.Phone != "" {
		doc["telephone"] = p.Actions.Phone
	}
	if p.PriceRange != nil && p.PriceRange.Symbol != "" {
		doc["priceRange"] = p.PriceRange.Symbol
	}
	if len(p.Cuisines) > 0 {
		doc["servesCuisine"] = p.Cuisines
	}

	if p.Location != nil && p.Location.Address != "" {
		doc["address"] = map[string]interface{}{
			"@type":           "PostalAddress",
			"streetAddress":   p.Location.Address,
			"addressLocality": p.Location.Neighborhood,
			"addressRegion":   "Muscat",
			"addressCountry":  "OM",
		}
	}

	if p.Location != nil && p.Location.Lat != nil && p.Location.Lng != nil {
		doc["geo"] = map[string]interface{}{
			"@type":     "GeoCoordinates",
			"latitude":  *p.Location.Lat,
			"longitude": *p.Location.Lng,
		}
	}

	if p.Hours != nil {
		var specs []map[string]interface{}
		for _, day := range weekdays {
			for _, w := range p.Hours[day] {
				specs = append(specs, map[string]interface{}{
					"@type":     "OpeningHoursSpecification",
					"dayOfWeek": day,
					"opens":     w.Open,
					"closes":    w.Close,
				})
			}
		}
		doc["openingHoursSpecification"] = specs
	}

	if p.RatingOverall != nil && p.PublicSentiment != nil {
		doc["aggregateRating"] = map[string]interface{}{
			"@type":       "AggregateRating",
			"ratingValue": fmt.Sprintf("%.1f", *p.RatingOverall),
			"reviewCount": p.PublicSentiment.Count,
		}
	}

	return SchemaDocuments{
		Primary: doc,
		FAQ:     projectFAQ(p.FAQs),
	}
}

func projectFAQ(faqs []place.FAQ) map[string]interface{} {
	if len(faqs) == 0 {
		return nil
	}

	entities := make([]map[string]interface{}, 0, len(faqs))
	for _, f := range faqs {
		entities = append(entities, map[string]interface{}{
			"@type": "Question",
			"name":  f.Q,
			"acceptedAnswer": map[string]interface{}{
				"@type": "Answer",
				"text":  f.A,
			},
		})
	}

	return map[string]interface{}{
		"@context":   schemaContext,
		"@type":      "FAQPage",
		"mainEntity": entities,
	}
}
