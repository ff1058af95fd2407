package app

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/aagbemuko/imgresize/internal/config"
	"github.com/aagbemuko/imgresize/internal/model"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
}

func imageSize(t *testing.T, path string) image.Point {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	return image.Pt(cfg.Width, cfg.Height)
}

func run(t *testing.T, settings *config.Settings, input string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	a, err := New(settings, strings.NewReader(input), &out, log.New(io.Discard))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	_, err = a.Run(context.Background())
	return out.String(), err
}

func smallGuard() *config.Settings {
	s := config.DefaultSettings()
	s.PercentageMinPixels = 1000
	return s
}

func TestRun_PercentageIntoNewDestination(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	dst := filepath.Join(root, "out", "resized")
	if err := os.Mkdir(src, 0755); err != nil {
		t.Fatal(err)
	}
	writePNG(t, filepath.Join(src, "a.png"), 100, 80)
	writePNG(t, filepath.Join(src, "tiny.png"), 10, 10)
	if err := os.WriteFile(filepath.Join(src, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	input := strings.Join([]string{"1", src, "n", dst, "n", "50"}, "\n") + "\n"
	out, err := run(t, smallGuard(), input)
	if err != nil {
		t.Fatalf("Run() error = %v\n%s", err, out)
	}

	if got := imageSize(t, filepath.Join(dst, "re_a.png")); got != image.Pt(50, 40) {
		t.Errorf("re_a.png is %v, want 50x40", got)
	}
	if _, err := os.Stat(filepath.Join(dst, "re_tiny.png")); !os.IsNotExist(err) {
		t.Error("image below the size guard should not be written")
	}
	if !strings.Contains(out, "Resized 1 of 2 image(s) into "+dst) {
		t.Errorf("summary missing from output:\n%s", out)
	}
}

func TestRun_FixedSameDirectoryWithFormatChange(t *testing.T) {
	src := t.TempDir()
	writePNG(t, filepath.Join(src, "photo.png"), 120, 90)

	input := strings.Join([]string{"b1", src, "Yes", "y", "jpg", "60", "30"}, "\n") + "\n"
	out, err := run(t, config.DefaultSettings(), input)
	if err != nil {
		t.Fatalf("Run() error = %v\n%s", err, out)
	}

	if got := imageSize(t, filepath.Join(src, "re_photo.jpg")); got != image.Pt(60, 30) {
		t.Errorf("re_photo.jpg is %v, want 60x30", got)
	}
}

func TestRun_EmptySource(t *testing.T) {
	src := t.TempDir()

	input := strings.Join([]string{"1a", src, "y"}, "\n") + "\n"
	out, err := run(t, config.DefaultSettings(), input)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if n := strings.Count(out, "No image files found"); n != 1 {
		t.Errorf("no-files message printed %d times, want 1", n)
	}
	if strings.Contains(out, "output image format") {
		t.Error("resize questions should not be asked when there is nothing to do")
	}
	entries, _ := os.ReadDir(src)
	if len(entries) != 0 {
		t.Errorf("nothing should be written, found %d entries", len(entries))
	}
}

func TestRun_TooManyInvalidPaths(t *testing.T) {
	input := strings.Join([]string{"1", "", "1", "x", "/", " "}, "\n") + "\n"
	_, err := run(t, config.DefaultSettings(), input)
	if model.KindOf(err) != model.RetriesExhausted {
		t.Errorf("Run() error = %v, want retries exhausted", err)
	}
}

func TestNew_InvalidSettings(t *testing.T) {
	s := config.DefaultSettings()
	s.Resampler = "nearest"
	if _, err := New(s, strings.NewReader(""), io.Discard, log.New(io.Discard)); err == nil {
		t.Error("New() should reject invalid settings")
	}
}

func TestWelcome(t *testing.T) {
	s := newStyles(io.Discard)
	text := Welcome(s.title, s.dim)
	for _, want := range []string{"The menu options are", "1. Image resize", "a. Resize by a percentage", "b. Resize to a fixed"} {
		if !strings.Contains(text, want) {
			t.Errorf("welcome text lacks %q", want)
		}
	}
}
