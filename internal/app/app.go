// Package app wires the prompts, directory resolution, enumeration and
// resize engine into the interactive imgresize session.
package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/aagbemuko/imgresize/internal/config"
	"github.com/aagbemuko/imgresize/internal/dirs"
	ioutils "github.com/aagbemuko/imgresize/internal/io"
	"github.com/aagbemuko/imgresize/internal/prompt"
	"github.com/aagbemuko/imgresize/internal/resize"
)

// App is one interactive session.
type App struct {
	settings *config.Settings
	prompter *prompt.Prompter
	resolver *dirs.Resolver
	engine   *resize.Engine
	logger   *log.Logger
	out      io.Writer
	styles   styles
}

type styles struct {
	title, dim, success, errorS, warning, info lipgloss.Style
}

func newStyles(out io.Writer) styles {
	r := lipgloss.NewRenderer(out)
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B")),
		dim:     r.NewStyle().Foreground(lipgloss.Color("#6C757D")),
		success: r.NewStyle().Foreground(lipgloss.Color("#95E1A3")),
		errorS:  r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
		warning: r.NewStyle().Foreground(lipgloss.Color("#FFE66D")),
		info:    r.NewStyle().Foreground(lipgloss.Color("#A8DADC")),
	}
}

// New creates an App reading answers from in and writing to out.
func New(settings *config.Settings, in io.Reader, out io.Writer, logger *log.Logger) (*App, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	codec, err := ioutils.NewImageService(settings.ImageOptions())
	if err != nil {
		return nil, err
	}

	a := &App{
		settings: settings,
		prompter: prompt.New(in, out, settings.Retries),
		logger:   logger,
		out:      out,
		styles:   newStyles(out),
	}
	a.resolver = dirs.NewResolver(a.prompter, logger)
	a.engine = resize.NewEngine(settings, codec, logger, a.printEvent)
	return a, nil
}

// Run walks through the session: menu, source and destination
// directories, then the resize itself.
func (a *App) Run(ctx context.Context) (resize.Stats, error) {
	a.welcome()

	key, err := a.prompter.MenuChoice(a.settings.MenuOptions)
	if err != nil {
		return resize.Stats{}, err
	}
	kind, err := a.settings.ModeFor(key)
	if err != nil {
		return resize.Stats{}, err
	}
	a.logger.Debug("menu option selected", "key", key, "mode", kind)

	src, err := a.resolver.Resolve(dirs.Source)
	if err != nil {
		return resize.Stats{}, err
	}

	same, err := a.prompter.YesNo("Source and destination directory are the same?")
	if err != nil {
		return resize.Stats{}, err
	}
	dst := src
	if !same {
		if dst, err = a.resolver.Resolve(dirs.Destination); err != nil {
			return resize.Stats{}, err
		}
	}

	files, err := ioutils.ListImages(src, a.settings.SupportedFormats)
	if err != nil {
		return resize.Stats{}, fmt.Errorf("list images in %s: %w", src, err)
	}
	a.logger.Debug("listed images", "dir", src, "count", len(files))

	return a.engine.Run(ctx, files, dst, kind, a.prompter)
}

func (a *App) welcome() {
	fmt.Fprint(a.out, Welcome(a.styles.title, a.styles.dim))
}

// Welcome renders the instructions and menu shown at start-up.
func Welcome(title, dim lipgloss.Style) string {
	dashed := strings.Repeat("-", 120)

	var b strings.Builder
	b.WriteString(title.Render("Image processing program with several high-level functionalities"))
	b.WriteString("\n")
	b.WriteString(dim.Render(dashed))
	b.WriteString("\n\n")
	b.WriteString("Important Note: when typing file paths it is encouraged to use '/' irrespective of OS.\n")
	b.WriteString(dim.Render(dashed))
	b.WriteString("\n\n")
	b.WriteString("The menu options are: \n")
	b.WriteString("\t1. Image resize\n")
	b.WriteString("\t\ta. Resize by a percentage of the source dimensions, e.g. 50 (default).\n")
	b.WriteString("\t\tb. Resize to a fixed width and height, e.g. 800 x 600.\n")
	b.WriteString("\tAn output format different from the source, e.g. jpg->png, can be chosen in both modes.\n")
	return b.String()
}

func (a *App) printEvent(event resize.ProgressEvent) {
	var style lipgloss.Style
	prefix := " "
	switch event.Level {
	case resize.LevelError:
		style, prefix = a.styles.errorS, "✗"
	case resize.LevelWarning:
		style, prefix = a.styles.warning, "!"
	case resize.LevelSuccess:
		style, prefix = a.styles.success, "✓"
	case resize.LevelInfo:
		style, prefix = a.styles.info, "›"
	default:
		style = a.styles.dim
	}
	fmt.Fprintln(a.out, style.Render(prefix+" "+event.Message))
}
