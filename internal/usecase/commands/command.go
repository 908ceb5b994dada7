package commands

import (
	"context"

	"papobot/internal/domain"
)

type Command interface {
	Name() string
	Aliases() []string
	SupportsPlatform(p domain.Platform) bool
	Handle(ctx context.Context, c *Context) error
}

// Context é montado pelo Router a cada invocação e descartado quando o
// handler retorna.
type Context struct {
	Message domain.Message
	Out     domain.OutgoingMessagePort

	// Raw é o texto da mensagem sem o prefixo; Args são os tokens depois do
	// nome do comando.
	Raw  string
	Args []string
}

// Reply responde no canal de origem da mensagem.
func (c *Context) Reply(ctx context.Context, text string) error {
	return c.Out.SendMessage(ctx, c.Message.Platform, c.Message.ChannelID, text)
}
