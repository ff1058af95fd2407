package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aagbemuko/imgresize/internal/config"
	"github.com/aagbemuko/imgresize/internal/model"
)

// Separator is printed around the menu selection.
var Separator = strings.Repeat("-", 85)

var (
	yesAnswers = []string{"Y", "YES", "Yes", "y"}
	noAnswers  = []string{"N", "NO", "No", "n"}
)

// Prompter asks questions on a line-oriented terminal.
type Prompter struct {
	in      *bufio.Reader
	out     io.Writer
	retries config.Retries
}

// New creates a Prompter reading answers from in and writing to out.
func New(in io.Reader, out io.Writer, retries config.Retries) *Prompter {
	return &Prompter{
		in:      bufio.NewReader(in),
		out:     out,
		retries: retries,
	}
}

// Retries returns the retry limits the Prompter was created with.
func (p *Prompter) Retries() config.Retries {
	return p.retries
}

// Println writes a message line to the output.
func (p *Prompter) Println(a ...any) {
	fmt.Fprintln(p.out, a...)
}

// Printf writes a formatted message to the output.
func (p *Prompter) Printf(format string, a ...any) {
	fmt.Fprintf(p.out, format, a...)
}

// ReadLine prints prompt and returns the next input line without its
// line terminator. Surrounding spaces are kept.
//
// An InputClosed error is returned when the input ends before any
// character of the line was read.
func (p *Prompter) ReadLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(p.out)
			return "", &model.Error{Kind: model.InputClosed, Op: "read input", Err: err}
		}
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Ask repeats prompt until check accepts the answer.
//
// Each rejection's message is printed. When limit is positive and the
// number of rejections exceeds it, a RetriesExhausted error is returned.
func (p *Prompter) Ask(prompt string, limit int, check func(string) error) (string, error) {
	failures := 0
	for {
		answer, err := p.ReadLine(prompt)
		if err != nil {
			return "", err
		}
		if err := check(answer); err != nil {
			p.Println(err)
			failures++
			if Exhausted(failures, limit) {
				return "", p.GiveUp(failures)
			}
			continue
		}
		return answer, nil
	}
}

// Exhausted reports whether failures exceed a positive retry limit.
func Exhausted(failures, limit int) bool {
	return limit > 0 && failures > limit
}

// Exhaust builds the error returned when a prompt ran out of retries.
func Exhaust(failures int) error {
	return &model.Error{
		Kind: model.RetriesExhausted,
		Op:   "read input",
		Err:  fmt.Errorf("number of reasonable tries (%d) exceeded", failures),
	}
}

// GiveUp tells the user the program is exiting after failures rejected
// answers and returns the matching RetriesExhausted error.
func (p *Prompter) GiveUp(failures int) error {
	p.Printf("Number of reasonable tries (%d) exceeded. Program is exiting...\n", failures)
	return Exhaust(failures)
}

// YesNo asks a yes/no question until one of the accepted answers is given.
func (p *Prompter) YesNo(question string) (bool, error) {
	var yes bool
	_, err := p.Ask(question+": ", p.retries.YesNo, func(answer string) error {
		v, ok := ParseYesNo(answer)
		if !ok {
			return errors.New("Please enter 'Y' or 'N'.")
		}
		yes = v
		return nil
	})
	return yes, err
}

// MenuChoice asks for a menu option and returns the canonical key owning
// the typed alias.
func (p *Prompter) MenuChoice(opts model.MenuOptions) (string, error) {
	p.Println(Separator)
	var key string
	_, err := p.Ask("Enter the menu option of choice as instructed: ", p.retries.Menu, func(answer string) error {
		k, ok := opts.Resolve(answer)
		if !ok {
			return errors.New("Invalid selection. Menu selection must be as instructed.")
		}
		key = k
		return nil
	})
	if err != nil {
		return "", err
	}
	p.Println(Separator)
	return key, nil
}

// Format asks for one of the supported output formats.
func (p *Prompter) Format(supported []string) (string, error) {
	question := fmt.Sprintf("Enter the output format (%s): ", strings.Join(supported, ", "))
	return p.Ask(question, p.retries.Format, func(answer string) error {
		return ValidateFormat(answer, supported)
	})
}

// PositiveInt asks for a whole number greater than zero.
func (p *Prompter) PositiveInt(question string) (int, error) {
	var n int
	_, err := p.Ask(question+": ", p.retries.Number, func(answer string) error {
		v, err := ParsePositiveInt(answer)
		if err != nil {
			return err
		}
		n = v
		return nil
	})
	return n, err
}

// ParseYesNo maps an answer to true or false. ok is false for any answer
// outside the accepted sets; matching is case-sensitive.
func ParseYesNo(answer string) (value, ok bool) {
	for _, a := range yesAnswers {
		if answer == a {
			return true, true
		}
	}
	for _, a := range noAnswers {
		if answer == a {
			return false, true
		}
	}
	return false, false
}

// ParsePositiveInt accepts digits only and a value between 1 and
// model.MaxDimension.
func ParsePositiveInt(answer string) (int, error) {
	if answer == "" {
		return 0, errors.New("Please enter a number.")
	}
	for _, r := range answer {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%q is not a whole number. Digits only, please.", answer)
		}
	}
	n, err := strconv.Atoi(answer)
	if err != nil || n > model.MaxDimension {
		return 0, fmt.Errorf("%q is too large. The maximum is %d.", answer, model.MaxDimension)
	}
	if n == 0 {
		return 0, errors.New("The number must be greater than zero.")
	}
	return n, nil
}

// ValidateFormat accepts an answer equal to one of the supported formats.
func ValidateFormat(answer string, supported []string) error {
	for _, f := range supported {
		if answer == f {
			return nil
		}
	}
	return fmt.Errorf("%q is not a supported format. Choose one of: %s", answer, strings.Join(supported, ", "))
}
