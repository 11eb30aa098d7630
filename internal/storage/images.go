package storage

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	_ "golang.org/x/image/webp" // WebP decoder
)

var (
	// ErrInvalidImage is returned for payloads that are not a supported image
	ErrInvalidImage = errors.New("invalid image")
	// ErrImageTooLarge is returned when a payload exceeds the configured size
	ErrImageTooLarge = errors.New("image too large")
)

var dataURIPattern = regexp.MustCompile(`^data:image/([A-Za-z+\-/]+);base64,(.+)$`)

// inline payload subtype -> file extension and decoder format
var inlineFormats = map[string]struct{ ext, format string }{
	"png":  {"png", "png"},
	"jpeg": {"jpg", "jpeg"},
	"jpg":  {"jpg", "jpeg"},
	"gif":  {"gif", "gif"},
	"webp": {"webp", "webp"},
}

// uploaded file extension -> decoder format
var uploadFormats = map[string]string{
	".jpeg": "jpeg",
	".jpg":  "jpeg",
	".png":  "png",
	".gif":  "gif",
}

// ImageStore writes images below a local directory that is served under
// a public URL prefix
type ImageStore struct {
	dir      string
	prefix   string
	maxBytes int64
	log      zerolog.Logger
}

// NewImageStore creates the upload directory if needed
func NewImageStore(dir, publicPrefix string, maxBytes int64, log zerolog.Logger) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &ImageStore{
		dir:      dir,
		prefix:   "/" + strings.Trim(publicPrefix, "/"),
		maxBytes: maxBytes,
		log:      log.With().Str("component", "images").Logger(),
	}, nil
}

// Dir returns the directory files are written to
func (s *ImageStore) Dir() string {
	return s.dir
}

// IsInlineImage reports whether v is a data URI rather than a URL
func IsInlineImage(v string) bool {
	return strings.HasPrefix(v, "data:image")
}

// SaveDataURI decodes a base64 image data URI, checks that it really is an
// image of the declared type and writes it under a random name. It returns
// the public path of the new file.
func (s *ImageStore) SaveDataURI(uri string) (string, error) {
	m := dataURIPattern.FindStringSubmatch(uri)
	if m == nil {
		return "", fmt.Errorf("%w: malformed data URI", ErrInvalidImage)
	}

	kind, ok := inlineFormats[strings.ToLower(m[1])]
	if !ok {
		return "", fmt.Errorf("%w: unsupported type %q", ErrInvalidImage, m[1])
	}

	if int64(base64.StdEncoding.DecodedLen(len(m[2]))) > s.maxBytes+2 {
		return "", ErrImageTooLarge
	}
	data, err := base64.StdEncoding.DecodeString(m[2])
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if int64(len(data)) > s.maxBytes {
		return "", ErrImageTooLarge
	}

	if err := checkFormat(data, kind.format); err != nil {
		return "", err
	}

	name := strings.ReplaceAll(uuid.NewString(), "-", "") + "." + kind.ext
	return s.write("", name, data)
}

// SaveUpload stores a multipart upload in subdir as
// "<prefix>-<unix ms>-<random>.<ext>". Only jpeg, png and gif are accepted.
func (s *ImageStore) SaveUpload(subdir, prefix string, r io.Reader, originalName string, maxBytes int64) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	format, ok := uploadFormats[ext]
	if !ok {
		return "", fmt.Errorf("%w: only image files are allowed", ErrInvalidImage)
	}

	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return "", ErrImageTooLarge
	}

	if err := checkFormat(data, format); err != nil {
		return "", err
	}

	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
	name := fmt.Sprintf("%s-%d-%s%s", prefix, time.Now().UnixMilli(), random, ext)
	return s.write(subdir, name, data)
}

// Owns reports whether publicURL points into this store
func (s *ImageStore) Owns(publicURL string) bool {
	_, ok := s.localPath(publicURL)
	return ok
}

// FormatSize renders a byte count for messages, e.g. "1.5 MB" or "512 KB"
func FormatSize(n int64) string {
	switch {
	case n >= 1<<20:
		return oneDecimal(float64(n)/(1<<20)) + " MB"
	case n >= 1<<10:
		return oneDecimal(float64(n)/(1<<10)) + " KB"
	default:
		return strconv.FormatInt(n, 10) + " bytes"
	}
}

func oneDecimal(v float64) string {
	return strings.TrimSuffix(strconv.FormatFloat(v, 'f', 1, 64), ".0")
}

// SameFile reports whether two public URLs name the same stored file.
// URLs outside the store are compared as given.
func (s *ImageStore) SameFile(a, b string) bool {
	pa, okA := s.localPath(a)
	pb, okB := s.localPath(b)
	if okA && okB {
		return pa == pb
	}
	return a == b
}

// Delete removes the file behind publicURL. URLs outside the store are
// ignored, as are files that are already gone.
func (s *ImageStore) Delete(publicURL string) error {
	p, ok := s.localPath(publicURL)
	if !ok {
		return nil
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove image: %w", err)
	}
	s.log.Debug().Str("path", publicURL).Msg("Image deleted")
	return nil
}

func (s *ImageStore) write(subdir, name string, data []byte) (string, error) {
	dir := filepath.Join(s.dir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}

	public := path.Join(s.prefix, subdir, name)
	s.log.Debug().Str("path", public).Int("bytes", len(data)).Msg("Image saved")
	return public, nil
}

func (s *ImageStore) localPath(publicURL string) (string, bool) {
	if !strings.HasPrefix(publicURL, s.prefix+"/") {
		return "", false
	}
	rel := path.Clean(strings.TrimLeft(strings.TrimPrefix(publicURL, s.prefix+"/"), "/"))
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") || path.IsAbs(rel) {
		return "", false
	}
	return filepath.Join(s.dir, filepath.FromSlash(rel)), true
}

func checkFormat(data []byte, want string) error {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if format != want {
		return fmt.Errorf("%w: declared %s but content is %s", ErrInvalidImage, want, format)
	}
	return nil
}
