package utils

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// EncodePetQR renders a pet's confirmation token as a PNG the owner prints on
// the collar tag.
func EncodePetQR(token string) ([]byte, error) {
	qrBytes, err := qrcode.Encode(token, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}
	return qrBytes, nil
}
