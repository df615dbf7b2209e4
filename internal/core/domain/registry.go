package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

type Module interface {
	// GetName retrieves the name the module is invoked under, e.g. "sub".
	GetName() string
	// GetDescription returns a one-line summary for the toolbox listing.
	GetDescription() string
	// Help returns the module's static usage text.
	Help() string
	// Handle processes the tokens following the module name and returns the
	// reply text. An empty reply with a nil error means no message is sent.
	Handle(ctx context.Context, args []string, message *Message) (string, error)
}

type ModuleRegistry struct {
	modules map[string]Module
	order   []string
}

// Register adds a module under its name. Duplicate names are a configuration
// error and fail loudly instead of silently shadowing the earlier module.
func (r *ModuleRegistry) Register(module Module) error {
	if r.modules == nil {
		r.modules = make(map[string]Module)
	}

	name := module.GetName()
	if _, ok := r.modules[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateModule, name)
	}

	log.Info().Str("module", name).Msg("adding module to registry")
	r.modules[name] = module
	r.order = append(r.order, name)

	return nil
}

func (r *ModuleRegistry) Get(name string) (Module, error) {
	log.Debug().Str("module", name).Msg("fetching module from registry")

	module, ok := r.modules[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrModuleNotFound, name)
	}

	return module, nil
}

// ListModules returns the registered module names in registration order.
func (r *ModuleRegistry) ListModules() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// HelpSummary lists every registered module in registration order. The output
// is deterministic across calls.
func (r *ModuleRegistry) HelpSummary() string {
	sb := &strings.Builder{}

	sb.WriteString("🛠️ cy toolbox\n\nAvailable modules:\n")
	for _, name := range r.order {
		fmt.Fprintf(sb, "- %s: %s\n", name, r.modules[name].GetDescription())
	}
	sb.WriteString("\nUse `cy <module> help` for details.")

	return sb.String()
}
