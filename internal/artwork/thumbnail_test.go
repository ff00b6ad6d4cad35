package artwork

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

// fakeFetcher serves a fixed payload and counts downloads.
type fakeFetcher struct {
	data  []byte
	err   error
	calls int
}

func (f *fakeFetcher) Fetch(_ context.Context, _ string) ([]byte, error) {
	f.calls++
	return f.data, f.err
}

// createTestJPEG generates a simple JPEG image for testing
func createTestJPEG(width, height int, col color.Color) []byte {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, col)
		}
	}

	buf := new(bytes.Buffer)
	err := jpeg.Encode(buf, img, &jpeg.Options{Quality: 80})
	if err != nil {
		panic("failed to create test JPEG: " + err.Error())
	}
	return buf.Bytes()
}

func TestIconDownloadsAndCaches(t *testing.T) {
	fetcher := &fakeFetcher{data: createTestJPEG(300, 200, color.RGBA{R: 255, A: 255})}
	cache := NewCache(fetcher, t.TempDir(), zap.NewNop())

	path, err := cache.Icon(context.Background(), "https://img.example/cover.jpg")
	if err != nil {
		t.Fatalf("Icon returned error: %v", err)
	}
	if fetcher.calls != 1 {
		t.Fatalf("fetch calls = %d, want 1", fetcher.calls)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("thumbnail not written: %v", err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("thumbnail is not a valid image: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 128 || bounds.Dy() != 128 {
		t.Errorf("thumbnail is %dx%d, want 128x128", bounds.Dx(), bounds.Dy())
	}

	// second resolve must be served from disk
	again, err := cache.Icon(context.Background(), "https://img.example/cover.jpg")
	if err != nil {
		t.Fatalf("second Icon returned error: %v", err)
	}
	if again != path {
		t.Errorf("cache hit path = %q, want %q", again, path)
	}
	if fetcher.calls != 1 {
		t.Errorf("fetch calls after cache hit = %d, want 1", fetcher.calls)
	}
}

func TestIconDistinctURLsGetDistinctFiles(t *testing.T) {
	fetcher := &fakeFetcher{data: createTestJPEG(64, 64, color.RGBA{G: 255, A: 255})}
	cache := NewCache(fetcher, t.TempDir(), zap.NewNop())

	a, err := cache.Icon(context.Background(), "https://img.example/a.jpg")
	if err != nil {
		t.Fatalf("Icon(a) returned error: %v", err)
	}
	b, err := cache.Icon(context.Background(), "https://img.example/b.jpg")
	if err != nil {
		t.Fatalf("Icon(b) returned error: %v", err)
	}
	if a == b {
		t.Errorf("both URLs mapped to %q", a)
	}
}

func TestIconServesLocalFilesDirectly(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, "cover art.png")
	if err := os.WriteFile(local, createTestJPEG(10, 10, color.Black), 0644); err != nil {
		t.Fatal(err)
	}

	fetcher := &fakeFetcher{}
	cache := NewCache(fetcher, t.TempDir(), zap.NewNop())

	// players escape spaces in file URLs
	path, err := cache.Icon(context.Background(), "file://"+strings.ReplaceAll(local, " ", "%20"))
	if err != nil {
		t.Fatalf("Icon returned error: %v", err)
	}
	if path != local {
		t.Errorf("path = %q, want %q", path, local)
	}
	if fetcher.calls != 0 {
		t.Errorf("fetch calls = %d, want 0 for local files", fetcher.calls)
	}
}

func TestIconRejectsMissingLocalFile(t *testing.T) {
	cache := NewCache(&fakeFetcher{}, t.TempDir(), zap.NewNop())

	if _, err := cache.Icon(context.Background(), "file:///nonexistent/cover.jpg"); err == nil {
		t.Fatal("expected error for missing local artwork")
	}
}

func TestIconPropagatesFetchFailure(t *testing.T) {
	refused := errors.New("unexpected status code: 404")
	cache := NewCache(&fakeFetcher{err: refused}, t.TempDir(), zap.NewNop())

	_, err := cache.Icon(context.Background(), "https://img.example/gone.jpg")
	if !errors.Is(err, refused) {
		t.Fatalf("Icon error = %v, want wrapped %v", err, refused)
	}
}

func TestIconRejectsGarbageImageData(t *testing.T) {
	cache := NewCache(&fakeFetcher{data: []byte("not-an-image")}, t.TempDir(), zap.NewNop())

	_, err := cache.Icon(context.Background(), "https://img.example/junk.jpg")
	if err == nil || !strings.Contains(err.Error(), "decode") {
		t.Fatalf("Icon error = %v, want decode failure", err)
	}
}
