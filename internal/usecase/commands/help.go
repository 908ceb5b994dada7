package commands

import (
	"context"
	"strings"

	"papobot/internal/domain"
)

// HelpCommand lista os comandos registrados. Recebe o próprio Router porque a
// lista só existe depois que todos os comandos foram registrados.
type HelpCommand struct {
	router *Router
	prefix string
}

func NewHelpCommand(router *Router, prefix string) *HelpCommand {
	return &HelpCommand{router: router, prefix: prefix}
}

func (c *HelpCommand) Name() string {
	return "help"
}

func (c *HelpCommand) Aliases() []string {
	return []string{"comandos", "ajuda"}
}

func (c *HelpCommand) SupportsPlatform(domain.Platform) bool {
	return true
}

func (c *HelpCommand) Handle(ctx context.Context, cmdCtx *Context) error {
	names := c.router.Names()
	for i, name := range names {
		names[i] = c.prefix + name
	}
	return cmdCtx.Reply(ctx, "Comandos: "+strings.Join(names, " "))
}
