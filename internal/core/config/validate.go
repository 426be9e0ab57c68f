package config

import (
	"fmt"

	"github.com/hay-kot/criterio"
)

var knownActions = map[string]bool{
	ActionText:         true,
	ActionMarkdown:     true,
	ActionImage:        true,
	ActionCompose:      true,
	ActionCoverClick:   true,
	ActionContentClick: true,
}

// reservedKeys cannot be rebound; the workbench needs them for navigation.
var reservedKeys = map[string]bool{
	"q":      true,
	"esc":    true,
	"ctrl+c": true,
}

// Validate checks the configuration for structural errors.
func (c *Config) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if c.AnimationMS != nil && *c.AnimationMS < 0 {
		errs = errs.Append("animation_ms", fmt.Errorf("must be non-negative, got %d", *c.AnimationMS))
	}

	for key, kb := range c.Keybindings {
		field := fmt.Sprintf("keybindings.%s", key)

		if reservedKeys[key] {
			errs = errs.Append(field, fmt.Errorf("key %q is reserved", key))
			continue
		}
		if kb.Action == "" {
			errs = errs.Append(field+".action", fmt.Errorf("action is required"))
			continue
		}
		if !knownActions[kb.Action] {
			errs = errs.Append(field+".action", fmt.Errorf("unknown action %q", kb.Action))
		}
	}

	return errs.ToError()
}
