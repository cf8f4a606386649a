package badge

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/floorops/dispatch/internal/schema"
)

func writePhoto(t *testing.T, dir, name string, c color.RGBA) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			img.Set(x, y, c)
		}
	}

	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("failed to create photo: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode photo: %v", err)
	}
}

func TestInitials(t *testing.T) {
	tests := []struct {
		id   string
		name string
		want string
	}{
		{"W001", "Jordan Blake", "JB"},
		{"W001", "jordan blake", "JB"},
		{"W001", "Jordan Avery Blake", "JA"},
		{"W001", "Jordan", "J"},
		{"W001", "", "01"},
		{"W001", "   ", "01"},
		{"ab", "", "AB"},
		{"z", "", "Z"},
	}

	for _, tt := range tests {
		if got := Initials(tt.id, tt.name); got != tt.want {
			t.Errorf("Initials(%q, %q) = %q, want %q", tt.id, tt.name, got, tt.want)
		}
	}
}

func TestBadge_FallbackWhenNoPhoto(t *testing.T) {
	m := NewManager(t.TempDir(), 10)

	img := m.Badge("W001", "Jordan Blake", 100, 100)
	if img == nil {
		t.Fatal("Badge() returned nil")
	}
	if img.Bounds().Dx() != 100 || img.Bounds().Dy() != 100 {
		t.Errorf("bounds = %v, want 100x100", img.Bounds())
	}

	// Corners carry the card background.
	r, g, b, _ := img.At(0, 0).RGBA()
	if uint8(r>>8) != 0x2C || uint8(g>>8) != 0x3E || uint8(b>>8) != 0x50 {
		t.Errorf("corner = %02x%02x%02x, want 2c3e50", uint8(r>>8), uint8(g>>8), uint8(b>>8))
	}
}

func TestBadge_LoadsPhoto(t *testing.T) {
	dir := t.TempDir()
	red := color.RGBA{R: 0xFF, A: 0xFF}
	writePhoto(t, dir, "W001.png", red)

	m := NewManager(dir, 10)
	img := m.Badge("W001", "Jordan Blake", 60, 60)

	// Square photo fills the badge; center pixel is photo content.
	r, g, b, _ := img.At(30, 30).RGBA()
	if uint8(r>>8) < 0xF0 || uint8(g>>8) > 0x10 || uint8(b>>8) > 0x10 {
		t.Errorf("center = %02x%02x%02x, want red photo pixel", uint8(r>>8), uint8(g>>8), uint8(b>>8))
	}
}

func TestBadge_UndecodablePhotoFallsBack(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "W001.jpg"), []byte("not an image"), 0600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	m := NewManager(dir, 10)
	img := m.Badge("W001", "Jordan Blake", 50, 50)
	if img == nil {
		t.Fatal("Badge() returned nil")
	}
	r, g, b, _ := img.At(0, 0).RGBA()
	if uint8(r>>8) != 0x2C || uint8(g>>8) != 0x3E || uint8(b>>8) != 0x50 {
		t.Error("expected the initials card for an undecodable photo")
	}
}

func TestBadge_CacheHitReturnsSameImage(t *testing.T) {
	m := NewManager(t.TempDir(), 10)

	first := m.Badge("W001", "Jordan Blake", 80, 80)
	second := m.Badge("W001", "Jordan Blake", 80, 80)
	if first != second {
		t.Error("second Badge() call should return the cached image")
	}

	// A different size is a different cache entry.
	other := m.Badge("W001", "Jordan Blake", 40, 40)
	if other == first {
		t.Error("different size must render separately")
	}
	if got := m.Stats().Len; got != 2 {
		t.Errorf("cache Len = %d, want 2", got)
	}
}

func TestPreload(t *testing.T) {
	m := NewManager(t.TempDir(), 10)

	workers := []*schema.Worker{
		{ID: "W001", Name: "Jordan Blake"},
		{ID: "W002", Name: "Morgan Reed"},
	}
	m.Preload(workers)

	stats := m.Stats()
	if stats.Len != 2 {
		t.Fatalf("cache Len = %d, want 2", stats.Len)
	}

	cached := m.Badge("W001", "Jordan Blake", DefaultSize, DefaultSize)
	if cached == nil {
		t.Fatal("preloaded badge missing")
	}
	if m.Stats().Len != 2 {
		t.Error("Badge() after Preload() should hit the cache")
	}
}
