// Package storage writes uploaded files under the public directory.
package storage

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrTooLarge        = errors.New("file too large")
)

var musicTypes = map[string]bool{
	"audio/mpeg": true,
	"audio/wav":  true,
	"audio/mp3":  true,
}

type Uploads struct {
	filesDir      string
	musicDir      string
	maxMusicBytes int64
}

// New creates the generic and audio upload directories.
func New(filesDir, musicDir string, maxMusicBytes int64) (*Uploads, error) {
	for _, dir := range []string{filesDir, musicDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create upload directory %s: %w", dir, err)
		}
	}
	return &Uploads{filesDir: filesDir, musicDir: musicDir, maxMusicBytes: maxMusicBytes}, nil
}

// ValidateMusic checks media type and size without touching the disk.
func (u *Uploads) ValidateMusic(header *multipart.FileHeader) error {
	mediaType, _, err := mime.ParseMediaType(header.Header.Get("Content-Type"))
	if err != nil || !musicTypes[strings.ToLower(mediaType)] {
		return fmt.Errorf("%w: only mp3 and wav audio is accepted", ErrUnsupportedType)
	}
	if header.Size > u.maxMusicBytes {
		return fmt.Errorf("%w: limit is %s", ErrTooLarge, humanize.IBytes(uint64(u.maxMusicBytes)))
	}
	return nil
}

// SaveFile stores a generic upload and returns its stored name.
func (u *Uploads) SaveFile(header *multipart.FileHeader) (string, error) {
	return u.save(u.filesDir, header)
}

// SaveMusic validates and stores an audio upload.
func (u *Uploads) SaveMusic(header *multipart.FileHeader) (string, error) {
	if err := u.ValidateMusic(header); err != nil {
		return "", err
	}
	return u.save(u.musicDir, header)
}

// RemoveMusic deletes a stored audio file. Missing files are ignored.
func (u *Uploads) RemoveMusic(name string) error {
	err := os.Remove(filepath.Join(u.musicDir, filepath.Base(name)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", name, err)
	}
	return nil
}

func (u *Uploads) save(dir string, header *multipart.FileHeader) (string, error) {
	name := StoredName(header.Filename, time.Now())
	target := filepath.Join(dir, name)

	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", target, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(target)
		return "", fmt.Errorf("write %s: %w", target, err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(target)
		return "", fmt.Errorf("close %s: %w", target, err)
	}
	return name, nil
}

// StoredName prefixes the client's base file name with a millisecond
// timestamp. Directory components are dropped.
func StoredName(original string, at time.Time) string {
	base := path.Base(strings.ReplaceAll(original, `\`, "/"))
	if base == "." || base == "/" || base == ".." || base == "" {
		base = "upload"
	}
	return fmt.Sprintf("%d-%s", at.UnixMilli(), base)
}
