package commands

import (
	"context"

	"papobot/internal/domain"
)

// StaticCommand adapta um comando de resposta fixa vindo do banco para a
// interface Command, para o Router tratar custom e embutido do mesmo jeito.
type StaticCommand struct {
	def *domain.CustomCommand
}

func NewStaticCommand(def *domain.CustomCommand) *StaticCommand {
	return &StaticCommand{def: def}
}

func (c *StaticCommand) Name() string {
	return c.def.Name
}

func (c *StaticCommand) Aliases() []string {
	return c.def.Aliases
}

func (c *StaticCommand) SupportsPlatform(p domain.Platform) bool {
	if len(c.def.Platforms) == 0 {
		return true
	}
	for _, allowed := range c.def.Platforms {
		if allowed == p {
			return true
		}
	}
	return false
}

func (c *StaticCommand) Handle(ctx context.Context, cmdCtx *Context) error {
	return cmdCtx.Reply(ctx, c.def.Response)
}
