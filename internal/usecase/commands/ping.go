package commands

import (
	"context"

	"papobot/internal/domain"
)

type PingCommand struct{}

func NewPingCommand() *PingCommand {
	return &PingCommand{}
}

func (c *PingCommand) Name() string {
	return "ping"
}

func (c *PingCommand) Aliases() []string {
	return []string{"teste", "latency"}
}

func (c *PingCommand) SupportsPlatform(p domain.Platform) bool {
	return p == domain.PlatformTwitch || p == domain.PlatformTelegram
}

func (c *PingCommand) Handle(ctx context.Context, cmdCtx *Context) error {
	return cmdCtx.Reply(ctx, "Pong! 🏓")
}
