package model

import "fmt"

// MaxDimension bounds every width, height and percentage a Mode accepts
// and every side the engine writes. It is the largest side a JPEG can
// have.
const MaxDimension = 65535

// ModeKind identifies a resize strategy.
type ModeKind int

const (
	// KindPercentage scales both axes by one uniform factor.
	KindPercentage ModeKind = iota

	// KindFixed targets an explicit width and height.
	KindFixed
)

func (k ModeKind) String() string {
	switch k {
	case KindPercentage:
		return "percentage"
	case KindFixed:
		return "fixed"
	default:
		return fmt.Sprintf("ModeKind(%d)", int(k))
	}
}

// Mode describes how images are resized. Exactly one of the percentage or the
// width/height pair is meaningful, depending on Kind.
type Mode struct {
	Kind    ModeKind
	Percent int
	Width   int
	Height  int
}

// Percentage returns a mode scaling both axes by percent/100.
func Percentage(percent int) Mode {
	return Mode{Kind: KindPercentage, Percent: percent}
}

// Fixed returns a mode producing images of exactly width x height.
func Fixed(width, height int) Mode {
	return Mode{Kind: KindFixed, Width: width, Height: height}
}

func (m Mode) String() string {
	if m.Kind == KindFixed {
		return fmt.Sprintf("%dx%d", m.Width, m.Height)
	}
	return fmt.Sprintf("%d%%", m.Percent)
}

// Validate reports an InvalidInput error when a sizing value is outside
// 1..MaxDimension.
func (m Mode) Validate() error {
	var values []int
	switch m.Kind {
	case KindPercentage:
		values = []int{m.Percent}
	case KindFixed:
		values = []int{m.Width, m.Height}
	default:
		return NewError(InvalidInput, "validate mode", fmt.Sprintf("unknown resize mode %v", m.Kind))
	}
	for _, v := range values {
		if v < 1 || v > MaxDimension {
			return NewError(InvalidInput, "validate mode", fmt.Sprintf("%s: values must be between 1 and %d", m, MaxDimension))
		}
	}
	return nil
}

// Threshold returns the pixel count below which an image is left alone.
// minPixels applies to percentage mode only.
func (m Mode) Threshold(minPixels int) int64 {
	if m.Kind == KindFixed {
		return int64(m.Width) * int64(m.Height)
	}
	return int64(minPixels)
}

// Target returns the output dimensions for a width x height source.
// Percentage mode rounds scaled dimensions up.
func (m Mode) Target(width, height int) (int, int) {
	if m.Kind == KindFixed {
		return m.Width, m.Height
	}
	return scaleUp(width, m.Percent), scaleUp(height, m.Percent)
}

func scaleUp(v, percent int) int {
	return int((int64(v)*int64(percent) + 99) / 100)
}
