package model

import "fmt"

// MenuOption is one canonical menu key and the raw inputs that select it.
type MenuOption struct {
	Key     string
	Aliases []string
}

// MenuOptions is an ordered set of menu options.
//
// Alias sets must be disjoint across keys; use Validate to check.
type MenuOptions []MenuOption

// Resolve returns the canonical key owning the raw input.
func (m MenuOptions) Resolve(raw string) (string, bool) {
	for _, opt := range m {
		for _, alias := range opt.Aliases {
			if alias == raw {
				return opt.Key, true
			}
		}
	}
	return "", false
}

// Aliases returns every accepted raw input in menu order.
func (m MenuOptions) Aliases() []string {
	var all []string
	for _, opt := range m {
		all = append(all, opt.Aliases...)
	}
	return all
}

// Validate checks that keys are unique and that no alias belongs to two keys.
func (m MenuOptions) Validate() error {
	if len(m) == 0 {
		return fmt.Errorf("menu has no options")
	}
	keys := make(map[string]bool, len(m))
	owner := make(map[string]string)
	for _, opt := range m {
		if keys[opt.Key] {
			return fmt.Errorf("duplicate menu key %q", opt.Key)
		}
		keys[opt.Key] = true
		if len(opt.Aliases) == 0 {
			return fmt.Errorf("menu key %q has no aliases", opt.Key)
		}
		for _, alias := range opt.Aliases {
			if prev, ok := owner[alias]; ok && prev != opt.Key {
				return fmt.Errorf("alias %q is shared by menu keys %q and %q", alias, prev, opt.Key)
			}
			owner[alias] = opt.Key
		}
	}
	return nil
}
