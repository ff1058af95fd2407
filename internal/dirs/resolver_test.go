package dirs

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/aagbemuko/imgresize/internal/config"
	"github.com/aagbemuko/imgresize/internal/model"
	"github.com/aagbemuko/imgresize/internal/prompt"
)

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}

func newResolver(input string) (*Resolver, *bytes.Buffer) {
	var out bytes.Buffer
	p := prompt.New(strings.NewReader(input), &out, config.DefaultSettings().Retries)
	return NewResolver(p, log.New(io.Discard)), &out
}

func TestValidateRaw(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"", true},
		{"   ", true},
		{"\t", true},
		{"12345", true},
		{"photos", true},
		{"/", true},
		{`\`, true},
		{"/home/user", false},
		{"photos/", false},
		{`C:\Users\me`, false},
		{"./out", false},
		{"12/34", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateRaw(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRaw(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && model.KindOf(err) != model.InvalidInput {
				t.Errorf("ValidateRaw(%q) kind = %v, want invalid input", tt.input, model.KindOf(err))
			}
		})
	}
}

func TestAncestor(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{"/home/user/out", filepath.Join("/", "home"), true},
		{"/home", filepath.Join("/", "home"), true},
		{"photos/2024/out", filepath.Join("photos", "2024"), true},
		{"./out/x", filepath.Join("out", "x"), true},
		{"./out/./x/y", filepath.Join("out", "x"), true},
		{"./out", "", false},
		{"out/", "", false},
		{"/", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := Ancestor(tt.input)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Ancestor(%q) = %q, %v, want %q, %v", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestResolve_SourceRetriesUntilExisting(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing")

	r, out := newResolver(missing + "\n" + dir + "\n")
	got, err := r.Resolve(Source)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != dir {
		t.Errorf("Resolve() = %q, want %q", got, dir)
	}
	if !strings.Contains(out.String(), "does not exist") {
		t.Error("missing source should be reported")
	}
	if _, err := os.Stat(missing); !os.IsNotExist(err) {
		t.Error("resolving a source must never create it")
	}
}

func TestResolve_SourceRejectsFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.jpg")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	r, _ := newResolver(file + "\n" + dir + "\n")
	got, err := r.Resolve(Source)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != dir {
		t.Errorf("Resolve() = %q, want %q", got, dir)
	}
}

func TestResolve_FifthSyntaxErrorIsFatal(t *testing.T) {
	dir := t.TempDir()
	input := strings.Join([]string{"", "123", "photos", "/", "  ", dir}, "\n") + "\n"

	r, out := newResolver(input)
	_, err := r.Resolve(Source)
	if model.KindOf(err) != model.RetriesExhausted {
		t.Fatalf("Resolve() error = %v, want retries exhausted", err)
	}
	if n := strings.Count(out.String(), "Program is exiting"); n != 1 {
		t.Errorf("fatal exit message printed %d times, want 1", n)
	}
}

func TestResolve_FourSyntaxErrorsAreTolerated(t *testing.T) {
	dir := t.TempDir()
	input := strings.Join([]string{"", "123", "photos", "/", dir}, "\n") + "\n"

	r, _ := newResolver(input)
	got, err := r.Resolve(Source)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != dir {
		t.Errorf("Resolve() = %q, want %q", got, dir)
	}
}

func TestResolve_MissingDirectoryRestartsSyntaxCount(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing")
	input := strings.Join([]string{"", "", "", missing, "", "", "", dir}, "\n") + "\n"

	r, _ := newResolver(input)
	got, err := r.Resolve(Source)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != dir {
		t.Errorf("Resolve() = %q, want %q", got, dir)
	}
}

func TestResolve_DotPrefixedDestinationMatchesPlain(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	if err := os.Mkdir("out", 0755); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{"./out/x", "out/x"} {
		created, err := PrepareDestination(path)
		if model.KindOf(err) != model.MissingDestination || created {
			t.Errorf("PrepareDestination(%q) = %v, %v, want missing destination", path, created, err)
		}
	}
	if _, err := os.Stat(filepath.Join("out", "x")); !os.IsNotExist(err) {
		t.Error("out/x must not be created while its two-component ancestor is missing")
	}
}

func TestResolve_DestinationCreated(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a", "b", "c")

	r, _ := newResolver(target + "\n")
	got, err := r.Resolve(Destination)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != target {
		t.Errorf("Resolve() = %q, want %q", got, target)
	}
	info, err := os.Stat(target)
	if err != nil || !info.IsDir() {
		t.Errorf("destination %s should have been created", target)
	}
}

func TestResolve_DestinationWithMissingAncestors(t *testing.T) {
	dir := t.TempDir()
	bogus := filepath.Join(string(filepath.Separator)+"imgresize-no-such-root-7f3a", "x", "y")

	r, out := newResolver(bogus + "\n" + dir + "\n")
	got, err := r.Resolve(Destination)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != dir {
		t.Errorf("Resolve() = %q, want %q", got, dir)
	}
	if _, err := os.Stat(bogus); !os.IsNotExist(err) {
		t.Error("nothing should be created under a missing ancestor")
	}
	if !strings.Contains(out.String(), "cannot be created") {
		t.Error("uncreatable destination should be reported")
	}
}

func TestResolve_DestinationTooShort(t *testing.T) {
	dir := t.TempDir()

	r, out := newResolver("nowhere-7f3a/\n" + dir + "\n")
	if _, err := r.Resolve(Destination); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !strings.Contains(out.String(), "Prohibited or non-existent location") {
		t.Error("single-component destination should be reported as prohibited")
	}
	if _, err := os.Stat("nowhere-7f3a"); !os.IsNotExist(err) {
		t.Error("single-component destination must not be created")
	}
}

func TestResolve_InputClosed(t *testing.T) {
	r, _ := newResolver("")
	_, err := r.Resolve(Source)
	if model.KindOf(err) != model.InputClosed {
		t.Errorf("Resolve() error = %v, want input closed", err)
	}
}
