package service_test

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/blogify-api/internal/config"
	"github.com/blogify-api/internal/mocks"
	"github.com/blogify-api/internal/repository"
	"github.com/blogify-api/internal/service"
	"github.com/rs/zerolog"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Upload: config.UploadConfig{
			Dir:                 t.TempDir(),
			PublicPath:          "/uploads",
			MaxImageBytes:       1 << 20,
			MaxProfileImageSize: 1 << 20,
		},
		Auth: config.AuthConfig{
			JWTSecret:  "service-test-secret",
			JWTTTL:     time.Hour,
			JWTIssuer:  "blogify",
			BcryptCost: 4,
		},
		Related: config.RelatedConfig{DefaultLimit: 3},
	}
}

type fixture struct {
	cfg      *config.Config
	repos    *repository.Repositories
	store    *mocks.Store
	services *service.Services
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := testConfig(t)
	repos, store := mocks.NewRepositories()
	return newFixtureWith(t, cfg, repos, store)
}

func newFixtureWith(t *testing.T, cfg *config.Config, repos *repository.Repositories, store *mocks.Store) *fixture {
	t.Helper()
	svcs, err := service.NewServices(repos, cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewServices failed: %v", err)
	}
	return &fixture{cfg: cfg, repos: repos, store: store, services: svcs}
}

// uploadedFile maps a public /uploads path to its location on disk
func (f *fixture) uploadedFile(public string) string {
	return filepath.Join(f.cfg.Upload.Dir, filepath.FromSlash(strings.TrimPrefix(public, "/uploads/")))
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func pngDataURI(t *testing.T) string {
	t.Helper()
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes(t))
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{G: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func strPtr(s string) *string { return &s }
