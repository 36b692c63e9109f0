package qrcode

import (
	"strings"

	"clinicmap/internal/domain/service"
	"clinicmap/internal/errors"

	"github.com/skip2/go-qrcode"
)

// maxLinkLength keeps links within what a scannable code can hold
const maxLinkLength = 2048

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

var recoveryLevels = map[string]qrcode.RecoveryLevel{
	"L": qrcode.Low,
	"M": qrcode.Medium,
	"Q": qrcode.High,
	"H": qrcode.Highest,
}

// recoveryLevel maps the configured letter to a level; unknown letters fall back to M
func recoveryLevel(letter string) qrcode.RecoveryLevel {
	if level, ok := recoveryLevels[strings.ToUpper(strings.TrimSpace(letter))]; ok {
		return level
	}

	return qrcode.Medium
}

// NewQRCodeService creates the share-link QR encoder
func NewQRCodeService(size int, errorCorrectionLevel string) service.QRCodeService {
	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: recoveryLevel(errorCorrectionLevel),
	}
}

// GenerateShareQR encodes a share link as a PNG QR code
func (s *qrcodeService) GenerateShareQR(link string) ([]byte, error) {
	if link == "" {
		return nil, errors.New("share link is empty")
	}
	if len(link) > maxLinkLength {
		return nil, errors.Errorf("share link is too long: %d bytes", len(link))
	}

	qrCode, err := qrcode.New(link, s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return pngBytes, nil
}
