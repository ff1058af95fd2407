package dirs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"

	"github.com/aagbemuko/imgresize/internal/model"
	"github.com/aagbemuko/imgresize/internal/prompt"
)

var errProhibited = errors.New("prohibited or non-existent location")

// Kind is the role a directory plays in a run.
type Kind int

const (
	Source Kind = iota
	Destination
)

func (k Kind) String() string {
	if k == Destination {
		return "destination"
	}
	return "source"
}

// Question returns the prompt shown when asking for a directory of this kind.
func (k Kind) Question() string {
	if k == Destination {
		return "Type the path (full, relative...) to the destination folder: "
	}
	return "Type the full path to the source folder: "
}

// Resolver asks for directory paths until a usable one is entered.
type Resolver struct {
	prompter *prompt.Prompter
	logger   *log.Logger
	limit    int
}

// NewResolver creates a Resolver. The raw-syntax retry limit is taken
// from the prompter's DirectorySyntax setting.
func NewResolver(p *prompt.Prompter, logger *log.Logger) *Resolver {
	return &Resolver{
		prompter: p,
		logger:   logger,
		limit:    p.Retries().DirectorySyntax,
	}
}

// Resolve asks for a directory of the given kind and returns its path.
//
// A RetriesExhausted error is returned once the number of consecutive
// malformed entries exceeds the limit. Missing or uncreatable directories
// are reported and asked for again; they restart the count.
func (r *Resolver) Resolve(kind Kind) (string, error) {
	failures := 0
	for {
		raw, err := r.prompter.ReadLine(kind.Question())
		if err != nil {
			return "", err
		}

		if err := ValidateRaw(raw); err != nil {
			r.prompter.Println(err)
			failures++
			if prompt.Exhausted(failures, r.limit) {
				return "", r.prompter.GiveUp(failures)
			}
			continue
		}

		switch kind {
		case Source:
			err = CheckSource(raw)
			if err == nil {
				r.prompter.Println("Source directory exists!")
			}
		case Destination:
			var created bool
			created, err = PrepareDestination(raw)
			if created {
				r.logger.Debug("created destination directory", "path", raw)
			}
		}
		if err != nil {
			r.logger.Debug("directory rejected", "kind", kind, "path", raw, "err", err)
			r.prompter.Println(Describe(err))
			failures = 0
			continue
		}
		return raw, nil
	}
}

// ValidateRaw checks the syntax of a typed path without touching the
// filesystem.
func ValidateRaw(raw string) error {
	switch {
	case isNumeric(raw):
		return invalid("Please enter a valid file path")
	case strings.TrimSpace(raw) == "":
		return invalid("Space or empty inputs not allowed!")
	case !strings.ContainsAny(raw, `/\`):
		return invalid(`Not a valid file path or recommended location. Input must include at least 1 '/' or '\'!`)
	case raw == "/" || raw == `\`:
		return invalid(fmt.Sprintf("'%s' is not a valid file path", raw))
	}
	return nil
}

// CheckSource verifies that path is an existing directory.
func CheckSource(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &model.Error{Kind: model.MissingSource, Op: "stat source", Path: path, Err: err}
	}
	if !info.IsDir() {
		return &model.Error{Kind: model.MissingSource, Op: "stat source", Path: path, Err: errors.New("not a directory")}
	}
	return nil
}

// PrepareDestination makes sure path is a directory, creating it and its
// parents when the first two components of path already exist.
// created reports whether anything was created.
func PrepareDestination(path string) (created bool, err error) {
	if info, err := os.Stat(path); err == nil {
		if !info.IsDir() {
			return false, &model.Error{Kind: model.MissingDestination, Op: "stat destination", Path: path, Err: errors.New("not a directory")}
		}
		return false, nil
	}

	anchor, ok := Ancestor(path)
	if !ok {
		return false, &model.Error{Kind: model.MissingDestination, Op: "resolve destination", Path: path, Err: errProhibited}
	}
	if info, err := os.Stat(anchor); err != nil || !info.IsDir() {
		return false, &model.Error{Kind: model.MissingDestination, Op: "resolve destination", Path: path, Err: fmt.Errorf("ancestor %s does not exist", anchor)}
	}

	if err := os.MkdirAll(path, 0755); err != nil {
		return false, &model.Error{Kind: model.MissingDestination, Op: "create destination", Path: path, Err: err}
	}
	return true, nil
}

// Ancestor returns the path made of the first two components of path.
//
//	Ancestor("/home/user/out")  // "/home", true
//	Ancestor("photos/2024/out") // "photos/2024", true
//	Ancestor("/home")           // "/home", true
//	Ancestor("./photos/2024")   // "photos/2024", true
//	Ancestor("out/")            // "", false
//
// A volume name and leading separator count as one component. "."
// segments are not components.
func Ancestor(path string) (string, bool) {
	vol := filepath.VolumeName(path)
	rest := path[len(vol):]

	anchor := vol
	if rest != "" && isSeparator(rune(rest[0])) {
		anchor += string(filepath.Separator)
	}

	var parts []string
	for _, part := range strings.FieldsFunc(rest, isSeparator) {
		if part != "." {
			parts = append(parts, part)
		}
	}
	if anchor != "" {
		parts = append([]string{anchor}, parts...)
	}
	if len(parts) < 2 {
		return "", false
	}
	return filepath.Join(parts[0], parts[1]), true
}

// Describe turns a resolution error into the message shown to the user.
func Describe(err error) string {
	switch model.KindOf(err) {
	case model.MissingSource:
		return "The source directory does not exist on this computer.\nEnter a source path that exists."
	case model.MissingDestination:
		if errors.Is(err, errProhibited) {
			return "Prohibited or non-existent location! Try again."
		}
		return "The destination directory does not exist AND cannot be created! \nEnter a valid destination path."
	default:
		return err.Error()
	}
}

func invalid(msg string) error {
	return model.NewError(model.InvalidInput, "", msg)
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) && !unicode.IsNumber(r) {
			return false
		}
	}
	return true
}

func isSeparator(r rune) bool {
	return r == '/' || r == '\\'
}
