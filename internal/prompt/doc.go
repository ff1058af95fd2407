// Package prompt provides line-oriented interactive input with validation.
//
// A Prompter reads one line per question from an io.Reader and writes
// prompts and validation messages to an io.Writer. Invalid answers are
// reported and the question is asked again, until the answer is valid
// or the retry limit for that prompt type is exceeded.
//
//	p := prompt.New(os.Stdin, os.Stdout, settings.Retries)
//	same, err := p.YesNo("Source and destination directory are the same?")
//	key, err := p.MenuChoice(settings.MenuOptions)
//
// The parse functions (ParseYesNo, ParsePositiveInt, ValidateFormat) hold
// the validation rules on their own so other front ends can reuse them.
package prompt
