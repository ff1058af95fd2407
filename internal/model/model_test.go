package model

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"
)

func defaultMenu() MenuOptions {
	return MenuOptions{
		{Key: "1a", Aliases: []string{"1", "1a", "a1"}},
		{Key: "1b", Aliases: []string{"1b", "b1"}},
	}
}

func TestMenuOptions_Resolve(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{"1", "1a", true},
		{"1a", "1a", true},
		{"a1", "1a", true},
		{"1b", "1b", true},
		{"b1", "1b", true},
		{"1A", "", false},
		{"2", "", false},
		{"", "", false},
	}

	menu := defaultMenu()
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := menu.Resolve(tt.input)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Resolve(%q) = %q, %v, want %q, %v", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestMenuOptions_Validate(t *testing.T) {
	if err := defaultMenu().Validate(); err != nil {
		t.Errorf("Validate() on default menu = %v, want nil", err)
	}

	overlap := MenuOptions{
		{Key: "1a", Aliases: []string{"1", "1a"}},
		{Key: "1b", Aliases: []string{"1", "1b"}},
	}
	if err := overlap.Validate(); err == nil {
		t.Error("Validate() should reject an alias shared by two keys")
	}

	dup := MenuOptions{
		{Key: "1a", Aliases: []string{"1"}},
		{Key: "1a", Aliases: []string{"2"}},
	}
	if err := dup.Validate(); err == nil {
		t.Error("Validate() should reject duplicate keys")
	}

	if err := (MenuOptions{}).Validate(); err == nil {
		t.Error("Validate() should reject an empty menu")
	}
}

func TestMode_Target(t *testing.T) {
	tests := []struct {
		mode          Mode
		w, h          int
		wantW, wantH  int
		wantThreshold int64
	}{
		{Percentage(50), 4000, 3000, 2000, 1500, 3_000_000},
		{Percentage(33), 1001, 999, 331, 330, 3_000_000},
		{Percentage(150), 100, 100, 150, 150, 3_000_000},
		{Percentage(7), 4000, 3000, 280, 210, 3_000_000},
		{Percentage(14), 4000, 3000, 560, 420, 3_000_000},
		{Percentage(28), 4000, 3000, 1120, 840, 3_000_000},
		{Percentage(MaxDimension), 60000, 1, 39321000, 656, 3_000_000},
		{Fixed(MaxDimension, MaxDimension), 1, 1, MaxDimension, MaxDimension, 4_294_836_225},
		{Fixed(800, 600), 1000, 1000, 800, 600, 480_000},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s %dx%d", tt.mode, tt.w, tt.h), func(t *testing.T) {
			gotW, gotH := tt.mode.Target(tt.w, tt.h)
			if gotW != tt.wantW || gotH != tt.wantH {
				t.Errorf("Target() = %dx%d, want %dx%d", gotW, gotH, tt.wantW, tt.wantH)
			}
			if got := tt.mode.Threshold(3_000_000); got != tt.wantThreshold {
				t.Errorf("Threshold() = %d, want %d", got, tt.wantThreshold)
			}
		})
	}
}

func TestMode_Validate(t *testing.T) {
	tests := []struct {
		mode    Mode
		wantErr bool
	}{
		{Percentage(1), false},
		{Percentage(MaxDimension), false},
		{Percentage(0), true},
		{Percentage(MaxDimension + 1), true},
		{Fixed(800, 600), false},
		{Fixed(MaxDimension, MaxDimension), false},
		{Fixed(MaxDimension+1, 600), true},
		{Fixed(800, -1), true},
		{Mode{Kind: ModeKind(7), Percent: 50}, true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%v", tt.mode, tt.mode.Kind), func(t *testing.T) {
			err := tt.mode.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && KindOf(err) != InvalidInput {
				t.Errorf("Validate() kind = %v, want InvalidInput", KindOf(err))
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	dest := filepath.Join("out", "dir")
	tests := []struct {
		src    string
		format string
		want   string
	}{
		{"photo.jpg", "", filepath.Join(dest, "re_photo.jpg")},
		{"photo.jpg", "png", filepath.Join(dest, "re_photo.png")},
		{filepath.Join("in", "a.b.JPEG"), "PNG", filepath.Join(dest, "re_a.b.PNG")},
		{filepath.Join("in", "noext"), "", filepath.Join(dest, "re_noext")},
	}

	for _, tt := range tests {
		t.Run(tt.src+"->"+tt.format, func(t *testing.T) {
			if got := OutputPath(tt.src, dest, "re_", tt.format); got != tt.want {
				t.Errorf("OutputPath(%q, %q) = %q, want %q", tt.src, tt.format, got, tt.want)
			}
		})
	}
}

func TestError_Kind(t *testing.T) {
	base := NewError(RetriesExhausted, "read source directory", "too many invalid entries")
	wrapped := fmt.Errorf("resolve: %w", base)

	if got := KindOf(wrapped); got != RetriesExhausted {
		t.Errorf("KindOf() = %v, want %v", got, RetriesExhausted)
	}
	if !errors.Is(wrapped, &Error{Kind: RetriesExhausted}) {
		t.Error("errors.Is should match by kind")
	}
	if errors.Is(wrapped, &Error{Kind: Codec}) {
		t.Error("errors.Is should not match a different kind")
	}
	if !RetriesExhausted.Fatal() || Codec.Fatal() {
		t.Error("only retries exhausted and closed input should be fatal")
	}
	if KindOf(errors.New("plain")) != 0 {
		t.Error("KindOf() on a plain error should be 0")
	}
}
