package qrgen

import (
	"encoding/base64"

	qrcode "github.com/skip2/go-qrcode"
)

// Generator renders QR PNGs as base64 so they can live in a database column.
type Generator struct {
	size int
}

func New() *Generator { return &Generator{size: 512} }

func (g *Generator) Generate(url string) (string, error) {
	png, err := qrcode.Encode(url, qrcode.Medium, g.size)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(png), nil
}
