package resize

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/aagbemuko/imgresize/internal/config"
	"github.com/aagbemuko/imgresize/internal/model"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a resize progress update.
//
// Percent is set on per-file events and on the summary; it is -1 on
// events that do not advance progress.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
	Percent float64
}

// Codec is the image capability the engine depends on.
type Codec interface {
	Decode(path string) (image.Image, error)
	Scale(img image.Image, width, height int) image.Image
	Encode(img image.Image, path string) error
}

// Asker collects the resize parameters from the user.
type Asker interface {
	YesNo(question string) (bool, error)
	Format(supported []string) (string, error)
	PositiveInt(question string) (int, error)
}

// Job is a complete resize request.
type Job struct {
	Mode model.Mode

	// Format replaces the source extension of every output file when set.
	Format string
}

// Stats summarizes a run.
type Stats struct {
	Total     int
	Processed int
	Skipped   int
	Failed    int
}

// Engine resizes images one after another.
type Engine struct {
	settings   *config.Settings
	codec      Codec
	logger     *log.Logger
	onProgress func(ProgressEvent)
	sleep      func(time.Duration)
}

// NewEngine creates a new resize Engine.
func NewEngine(settings *config.Settings, codec Codec, logger *log.Logger, onProgress func(ProgressEvent)) *Engine {
	return &Engine{
		settings:   settings,
		codec:      codec,
		logger:     logger,
		onProgress: onProgress,
		sleep:      time.Sleep,
	}
}

// Run asks for the resize parameters of the given mode and resizes files
// into destDir.
//
// An empty file list is reported once and returns without asking anything.
func (e *Engine) Run(ctx context.Context, files []string, destDir string, kind model.ModeKind, ask Asker) (Stats, error) {
	if len(files) == 0 {
		e.reportEmpty()
		return Stats{}, nil
	}

	job, err := AskJob(ask, kind, e.settings.SupportedFormats)
	if err != nil {
		return Stats{Total: len(files)}, err
	}

	return e.Resize(ctx, files, destDir, job)
}

// AskJob collects a Job: whether and how to change the output format,
// then the sizing values of the mode.
func AskJob(ask Asker, kind model.ModeKind, supported []string) (Job, error) {
	var job Job

	change, err := ask.YesNo("Should the output image format differ from the source format?")
	if err != nil {
		return job, err
	}
	if change {
		if job.Format, err = ask.Format(supported); err != nil {
			return job, err
		}
	}

	switch kind {
	case model.KindPercentage:
		percent, err := ask.PositiveInt("Enter the resize percentage (e.g. 50 for half size)")
		if err != nil {
			return job, err
		}
		job.Mode = model.Percentage(percent)
	case model.KindFixed:
		width, err := ask.PositiveInt("Enter the target width in pixels")
		if err != nil {
			return job, err
		}
		height, err := ask.PositiveInt("Enter the target height in pixels")
		if err != nil {
			return job, err
		}
		job.Mode = model.Fixed(width, height)
	default:
		return job, fmt.Errorf("unsupported resize mode %v", kind)
	}

	return job, nil
}

// Resize applies job to every file, writing outputs into destDir.
//
// Images whose pixel count is below the mode's threshold are skipped.
// Decode and encode failures are reported and skipped. The returned
// error is non-nil only when ctx is cancelled or job.Mode is out of
// range.
func (e *Engine) Resize(ctx context.Context, files []string, destDir string, job Job) (Stats, error) {
	stats := Stats{Total: len(files)}
	if len(files) == 0 {
		e.reportEmpty()
		return stats, nil
	}
	if err := job.Mode.Validate(); err != nil {
		return stats, err
	}

	threshold := job.Mode.Threshold(e.settings.PercentageMinPixels)
	e.logger.Debug("starting resize", "files", len(files), "mode", job.Mode.Kind, "size", job.Mode, "format", job.Format, "dest", destDir)

	for i, file := range files {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		if i > 0 && e.settings.ProgressDelay > 0 {
			e.sleep(e.settings.ProgressDelay)
		}

		name := filepath.Base(file)
		switch written, err := e.resizeFile(file, destDir, job, threshold); {
		case err != nil:
			stats.Failed++
			e.logger.Warn("resize failed", "file", file, "err", err)
			e.progress(ProgressEvent{Message: fmt.Sprintf("Error resizing %s: %v", name, err), Level: LevelError, Percent: -1})
		case written:
			stats.Processed++
		default:
			stats.Skipped++
			e.progress(ProgressEvent{Message: fmt.Sprintf("Skipping %s: already below the size threshold", name), Level: LevelVerbose, Percent: -1})
		}

		percent := float64(i+1) * 100 / float64(len(files))
		e.progress(ProgressEvent{
			Message: fmt.Sprintf("Image %d of %d done ... %.1f%%", i+1, len(files), percent),
			Level:   LevelInfo,
			Percent: percent,
		})
	}

	e.progress(ProgressEvent{
		Message: fmt.Sprintf("Resized %d of %d image(s) into %s", stats.Processed, stats.Total, destDir),
		Level:   LevelSuccess,
		Percent: 100,
	})
	return stats, nil
}

// resizeFile handles one file. written is false when the size guard
// skipped it.
func (e *Engine) resizeFile(file, destDir string, job Job, threshold int64) (written bool, err error) {
	img, err := e.codec.Decode(file)
	if err != nil {
		return false, err
	}

	out := model.OutputPath(file, destDir, e.settings.OutputPrefix, job.Format)

	b := img.Bounds()
	if int64(b.Dx())*int64(b.Dy()) < threshold {
		return false, nil
	}

	width, height := job.Mode.Target(b.Dx(), b.Dy())
	if width > model.MaxDimension || height > model.MaxDimension {
		return false, &model.Error{Kind: model.InvalidInput, Op: "resize", Path: file,
			Err: fmt.Errorf("target size %dx%d exceeds %d pixels per side", width, height, model.MaxDimension)}
	}
	if err := e.codec.Encode(e.codec.Scale(img, width, height), out); err != nil {
		return false, err
	}

	e.logger.Debug("resized", "src", file, "dst", out, "from", fmt.Sprintf("%dx%d", b.Dx(), b.Dy()), "to", fmt.Sprintf("%dx%d", width, height))
	return true, nil
}

func (e *Engine) reportEmpty() {
	e.progress(ProgressEvent{Message: "No image files found in the source directory. Nothing to resize.", Level: LevelWarning, Percent: -1})
}

func (e *Engine) progress(event ProgressEvent) {
	if e.onProgress != nil {
		e.onProgress(event)
	}
}
