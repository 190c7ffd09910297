package utils

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// QRCodePNG encodes text as a square PNG of size pixels with medium error
// correction.
func QRCodePNG(text string, size int) ([]byte, error) {
	qr, err := qrcode.New(text, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("generate qr code: %w", err)
	}
	png, err := qr.PNG(size)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}
	return png, nil
}
