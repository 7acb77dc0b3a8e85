package service

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// TrackingQR renders trackingURL as a size x size PNG.
func TrackingQR(trackingURL string, size int) ([]byte, error) {
	png, err := qrcode.Encode(trackingURL, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}
	return png, nil
}
