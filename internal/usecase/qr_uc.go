package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/Djolex15/stripy-sub000/internal/domain"
)

type QRUC struct {
	QRCodes domain.QRCodeRepo
	Images  domain.QRImageGenerator
	BaseURL string
}

// Generate creates a tracked code: the PNG encodes the scan-redirect URL, not
// the target, so every scan passes through the counter.
func (uc *QRUC) Generate(ctx context.Context, targetURL, name string) (*domain.QRCode, error) {
	targetURL = strings.TrimSpace(targetURL)
	if targetURL == "" {
		return nil, errors.New("url required")
	}
	if !strings.HasPrefix(targetURL, "http://") && !strings.HasPrefix(targetURL, "https://") {
		targetURL = "https://" + targetURL
	}
	id, err := shortID()
	if err != nil {
		return nil, err
	}
	img, err := uc.Images.Generate(uc.BaseURL + "/qr/" + id)
	if err != nil {
		return nil, err
	}
	q := &domain.QRCode{ID: id, Name: strings.TrimSpace(name), URL: targetURL, ImageData: img}
	if err := uc.QRCodes.Save(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// Scan counts the hit and returns the redirect target.
func (uc *QRUC) Scan(ctx context.Context, id string) (string, error) {
	q, err := uc.QRCodes.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	if err := uc.QRCodes.IncrementScans(ctx, id); err != nil {
		return "", err
	}
	return q.URL, nil
}

func (uc *QRUC) List(ctx context.Context) ([]domain.QRCode, error) {
	return uc.QRCodes.ListAll(ctx)
}

func (uc *QRUC) Delete(ctx context.Context, id string) error {
	return uc.QRCodes.Delete(ctx, id)
}

func shortID() (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
