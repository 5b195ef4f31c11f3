package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/Djolex15/stripy-sub000/internal/domain"
)

type fakeImageGen struct{ encoded []string }

func (f *fakeImageGen) Generate(url string) (string, error) {
	f.encoded = append(f.encoded, url)
	return "cGxhY2Vob2xkZXI=", nil
}

func TestGenerateEncodesScanURL(t *testing.T) {
	repo := newFakeQRRepo()
	gen := &fakeImageGen{}
	uc := &QRUC{QRCodes: repo, Images: gen, BaseURL: "https://stripy.rs"}

	q, err := uc.Generate(context.Background(), "stripy.rs/promo", "flyer")
	if err != nil {
		t.Fatal(err)
	}
	if q.URL != "https://stripy.rs/promo" {
		t.Errorf("URL = %q, scheme should be prepended", q.URL)
	}
	if len(q.ID) != 8 {
		t.Errorf("ID = %q, want 8 hex chars", q.ID)
	}
	if len(gen.encoded) != 1 || gen.encoded[0] != "https://stripy.rs/qr/"+q.ID {
		t.Errorf("image encodes %v, want the tracked scan URL", gen.encoded)
	}
	if !strings.Contains(q.ImageData, "cGxhY2Vob2xkZXI") {
		t.Errorf("ImageData = %q", q.ImageData)
	}
}

func TestGenerateRejectsEmptyURL(t *testing.T) {
	uc := &QRUC{QRCodes: newFakeQRRepo(), Images: &fakeImageGen{}, BaseURL: "https://stripy.rs"}
	if _, err := uc.Generate(context.Background(), "   ", "x"); err == nil {
		t.Fatal("expected error for blank url")
	}
}

func TestScanCountsAndRedirects(t *testing.T) {
	repo := newFakeQRRepo()
	uc := &QRUC{QRCodes: repo, Images: &fakeImageGen{}, BaseURL: "https://stripy.rs"}
	q, err := uc.Generate(context.Background(), "https://example.com", "sticker")
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		url, err := uc.Scan(context.Background(), q.ID)
		if err != nil {
			t.Fatal(err)
		}
		if url != "https://example.com" {
			t.Errorf("redirect = %q", url)
		}
	}
	got, _ := repo.FindByID(context.Background(), q.ID)
	if got.Scans != 3 {
		t.Errorf("Scans = %d, want 3", got.Scans)
	}

	if _, err := uc.Scan(context.Background(), "deadbeef"); err != domain.ErrNotFound {
		t.Errorf("unknown id: got %v", err)
	}
}

func TestDeleteQRCode(t *testing.T) {
	repo := newFakeQRRepo()
	uc := &QRUC{QRCodes: repo, Images: &fakeImageGen{}, BaseURL: "https://stripy.rs"}
	q, _ := uc.Generate(context.Background(), "https://example.com", "x")

	if err := uc.Delete(context.Background(), q.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.FindByID(context.Background(), q.ID); err != domain.ErrNotFound {
		t.Errorf("got %v after delete", err)
	}
}
