package modules

import (
	"context"
	"cybot/internal/core/domain"
	"fmt"
	"strings"
)

// HelpModule lists every registered module with its invocation.
type HelpModule struct {
	registry *domain.ModuleRegistry
	name     string
}

func NewHelpModule(registry *domain.ModuleRegistry, name string) *HelpModule {
	return &HelpModule{registry: registry, name: name}
}

func (h *HelpModule) GetName() string {
	return h.name
}

func (h *HelpModule) GetDescription() string {
	return "show the command listing"
}

func (h *HelpModule) Help() string {
	return "Use `cy help` to list all available commands."
}

func (h *HelpModule) Handle(_ context.Context, _ []string, _ *domain.Message) (string, error) {
	sb := &strings.Builder{}

	sb.WriteString("🛠️ cy toolbox - command listing\n\n")
	for _, name := range h.registry.ListModules() {
		module, err := h.registry.Get(name)
		if err != nil {
			continue
		}
		fmt.Fprintf(sb, "🔹 `cy %s`: %s\n", name, module.GetDescription())
	}
	sb.WriteString("\n💡 send `cy <module> help` for detailed usage.")

	return sb.String(), nil
}
