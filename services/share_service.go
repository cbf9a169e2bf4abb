package services

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

// ShareService produces scannable QR codes for a place's maps link, so the
// detail page can offer "scan to navigate".
type ShareService struct {
	catalog *CatalogService
}

func NewShareService(catalog *CatalogService) *ShareService {
	return &ShareService{catalog: catalog}
}

type ShareCodeResponse struct {
	Slug         string `json:"slug"`
	ShareToken   string `json:"share_token"`
	MapsURL      string `json:"maps_url"`
	QrCodeBase64 string `json:"qr_code_base64"`
}

var ErrNoMapsLink = fmt.Errorf("place has no maps link")

func (s *ShareService) GenerateShareCode(ctx context.Context, slug string) (*ShareCodeResponse, error) {
	p, ok, err := s.catalog.Get(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("place not found: %s", slug)
	}
	if p.Actions == nil || p.Actions.MapsURL == "" {
		return nil, ErrNoMapsLink
	}

	pngBytes, err := qrcode.Encode(p.Actions.MapsURL, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR png: %w", err)
	}

	return &ShareCodeResponse{
		Slug:         p.Slug,
		ShareToken:   uuid.New().String(),
		MapsURL:      p.Actions.MapsURL,
		QrCodeBase64: base64.StdEncoding.EncodeToString(pngBytes),
	}, nil
}
