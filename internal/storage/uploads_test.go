package storage

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// fileHeader builds a real multipart.FileHeader by parsing an encoded form.
func fileHeader(t *testing.T, filename, contentType string, body []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatalf("CreatePart: %v", err)
	}
	part.Write(body)
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("ParseMultipartForm: %v", err)
	}
	return req.MultipartForm.File["file"][0]
}

// newUploads creates Uploads rooted in a temp directory.
func newUploads(t *testing.T, maxMusicBytes int64) (*Uploads, string, string) {
	t.Helper()
	dir := t.TempDir()
	filesDir := filepath.Join(dir, "files")
	musicDir := filepath.Join(dir, "music")
	uploads, err := New(filesDir, musicDir, maxMusicBytes)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return uploads, filesDir, musicDir
}

func TestStoredName(t *testing.T) {
	at := time.UnixMilli(1700000000123)
	cases := map[string]string{
		"song.mp3":             "1700000000123-song.mp3",
		"../../etc/passwd":     "1700000000123-passwd",
		`C:\Users\me\song.wav`: "1700000000123-song.wav",
		"":                     "1700000000123-upload",
		"..":                   "1700000000123-upload",
	}
	for in, want := range cases {
		if got := StoredName(in, at); got != want {
			t.Errorf("StoredName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSaveMusicAcceptsAudio(t *testing.T) {
	uploads, _, musicDir := newUploads(t, 1<<20)

	name, err := uploads.SaveMusic(fileHeader(t, "song.mp3", "audio/mpeg", []byte("ID3")))
	if err != nil {
		t.Fatalf("SaveMusic: %v", err)
	}
	if !strings.HasSuffix(name, "-song.mp3") {
		t.Fatalf("unexpected name %q", name)
	}
	data, err := os.ReadFile(filepath.Join(musicDir, name))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(data) != "ID3" {
		t.Fatalf("stored content = %q", data)
	}

	if err := uploads.RemoveMusic(name); err != nil {
		t.Fatalf("RemoveMusic: %v", err)
	}
	if _, err := os.Stat(filepath.Join(musicDir, name)); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("file still present: %v", err)
	}
	if err := uploads.RemoveMusic(name); err != nil {
		t.Fatalf("RemoveMusic on missing file: %v", err)
	}
}

func TestSaveMusicRejectsBeforeWriting(t *testing.T) {
	cases := []struct {
		name        string
		contentType string
		size        int
		want        error
	}{
		{name: "image", contentType: "image/png", size: 10, want: ErrUnsupportedType},
		{name: "no type", contentType: "", size: 10, want: ErrUnsupportedType},
		{name: "too large", contentType: "audio/wav", size: 2048, want: ErrTooLarge},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uploads, _, musicDir := newUploads(t, 1024)
			_, err := uploads.SaveMusic(fileHeader(t, "x.bin", tc.contentType, make([]byte, tc.size)))
			if !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
			entries, _ := os.ReadDir(musicDir)
			if len(entries) != 0 {
				t.Fatalf("rejected upload left %d files behind", len(entries))
			}
		})
	}
}

func TestValidateMusicAcceptsParameters(t *testing.T) {
	uploads, _, _ := newUploads(t, 1024)
	if err := uploads.ValidateMusic(fileHeader(t, "a.mp3", "audio/mp3; charset=binary", []byte("x"))); err != nil {
		t.Fatalf("ValidateMusic: %v", err)
	}
}

func TestSaveFileKeepsAnyType(t *testing.T) {
	uploads, filesDir, _ := newUploads(t, 1024)
	name, err := uploads.SaveFile(fileHeader(t, "avatar.png", "image/png", []byte("png")))
	if err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	if _, err := os.Stat(filepath.Join(filesDir, name)); err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
}
