package config

import (
	"errors"
	"fmt"
	"time"

	ioutils "github.com/aagbemuko/imgresize/internal/io"
	"github.com/aagbemuko/imgresize/internal/model"
)

// Retries holds the retry limit for each prompt type.
//
// A limit is the number of extra attempts allowed after the first invalid
// entry. Zero means the prompt repeats until the input is valid.
type Retries struct {
	DirectorySyntax int
	YesNo           int
	Menu            int
	Format          int
	Number          int
}

// Settings holds all configuration options.
type Settings struct {
	// Recognized input extensions, without the dot. Matching is case-sensitive.
	SupportedFormats []string

	// Menu aliases; MenuModes maps each canonical key to a resize mode.
	MenuOptions model.MenuOptions
	MenuModes   map[string]model.ModeKind

	Retries Retries

	// Size guard for percentage mode.
	PercentageMinPixels int

	// Output settings
	OutputPrefix string
	Resampler    string
	JPEGQuality  int

	// ProgressDelay is slept between files so the progress line is readable.
	ProgressDelay time.Duration
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		SupportedFormats: []string{"jpg", "JPG", "jpeg", "JPEG", "png", "PNG"},

		MenuOptions: model.MenuOptions{
			{Key: "1a", Aliases: []string{"1", "1a", "a1"}},
			{Key: "1b", Aliases: []string{"1b", "b1"}},
		},
		MenuModes: map[string]model.ModeKind{
			"1a": model.KindPercentage,
			"1b": model.KindFixed,
		},

		Retries: Retries{
			DirectorySyntax: 4,
		},

		PercentageMinPixels: 3_000_000,

		OutputPrefix: "re_",
		Resampler:    ioutils.CatmullRom,
		JPEGQuality:  90,
	}
}

// Validate reports the first inconsistency in the settings.
func (s *Settings) Validate() error {
	if len(s.SupportedFormats) == 0 {
		return errors.New("no supported formats configured")
	}
	if err := s.MenuOptions.Validate(); err != nil {
		return err
	}
	for _, opt := range s.MenuOptions {
		if _, ok := s.MenuModes[opt.Key]; !ok {
			return fmt.Errorf("menu option %q has no resize mode", opt.Key)
		}
	}
	if s.PercentageMinPixels < 0 {
		return fmt.Errorf("percentage size guard must not be negative, got %d", s.PercentageMinPixels)
	}
	if s.JPEGQuality < 1 || s.JPEGQuality > 100 {
		return fmt.Errorf("jpeg quality must be within 1..100, got %d", s.JPEGQuality)
	}
	switch s.Resampler {
	case ioutils.CatmullRom, ioutils.Bicubic, ioutils.Lanczos:
	default:
		return fmt.Errorf("unknown resampler %q", s.Resampler)
	}
	r := s.Retries
	for _, n := range []int{r.DirectorySyntax, r.YesNo, r.Menu, r.Format, r.Number} {
		if n < 0 {
			return fmt.Errorf("retry limits must not be negative, got %d", n)
		}
	}
	return nil
}

// ImageOptions returns the codec options for ioutils.NewImageService.
func (s *Settings) ImageOptions() ioutils.ImageOptions {
	return ioutils.ImageOptions{
		Resampler:   s.Resampler,
		JPEGQuality: s.JPEGQuality,
	}
}

// ModeFor returns the resize mode selected by a canonical menu key.
func (s *Settings) ModeFor(key string) (model.ModeKind, error) {
	kind, ok := s.MenuModes[key]
	if !ok {
		return 0, fmt.Errorf("menu option %q has no resize mode", key)
	}
	return kind, nil
}
