// Package util holds small file helpers shared by the loaders.
package util

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"time"

	"clinicmap/internal/errors"
)

// FileFingerprint identifies one version of a data file
type FileFingerprint struct {
	SHA256  string
	Size    int64
	ModTime time.Time
}

// String renders the fingerprint for log lines
func (f FileFingerprint) String() string {
	return fmt.Sprintf("%s (%s)", f.SHA256, FormatBytes(f.Size))
}

// Fingerprint hashes the file at path and records its size and modification time.
func Fingerprint(path string) (FileFingerprint, error) {
	file, err := os.Open(path)
	if err != nil {
		return FileFingerprint{}, errors.Wrap(err, "failed to open file")
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return FileFingerprint{}, errors.Wrap(err, "failed to stat file")
	}

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return FileFingerprint{}, errors.Wrap(err, "failed to calculate checksum")
	}

	return FileFingerprint{
		SHA256:  hex.EncodeToString(hash.Sum(nil)),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// FormatBytes renders a byte count with a binary unit, e.g. "1.5 KB".
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}

	value := float64(n)
	suffix := ""
	for _, s := range []string{"KB", "MB", "GB", "TB"} {
		value /= unit
		suffix = s
		if value < unit {
			break
		}
	}

	return fmt.Sprintf("%.1f %s", value, suffix)
}
