package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Dispatcher routes a tokenized command to the right module. The first token
// selects the module, a literal "help" in second position requests the
// module's usage text, and everything else goes to the module's Handle.
type Dispatcher struct {
	registry *ModuleRegistry
}

func NewDispatcher(registry *ModuleRegistry) *Dispatcher {
	return &Dispatcher{registry: registry}
}

// Dispatch resolves args against the registry and returns the reply text. An
// empty reply with a nil error means the module chose not to answer directly.
// Errors from a module's Handle are not swallowed here; the host boundary
// decides how to surface them.
func (d *Dispatcher) Dispatch(ctx context.Context, args []string, message *Message) (string, error) {
	if len(args) == 0 {
		return d.registry.HelpSummary(), nil
	}

	name := args[0]
	rest := args[1:]

	module, err := d.registry.Get(name)
	if err != nil {
		if errors.Is(err, ErrModuleNotFound) {
			log.Debug().Str("module", name).Msg("no module for command")
			return fmt.Sprintf("❌ unknown module: %s\n\n%s", name, d.registry.HelpSummary()), nil
		}
		return "", err
	}

	if len(rest) > 0 && rest[0] == "help" {
		return module.Help(), nil
	}

	return module.Handle(ctx, rest, message)
}
