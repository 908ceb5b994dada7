package commands

import (
	"context"
	"fmt"
	"strings"

	"papobot/internal/domain"
)

// ManageCommand administra os comandos custom pelo próprio chat. Na Twitch só
// o dono do canal e moderadores podem usar; no Telegram o gate de acesso já
// filtrou quem chega até aqui.
//
// Alterações são persistidas na hora mas o registro do Router é imutável: os
// novos comandos entram no ar no próximo restart.
type ManageCommand struct {
	manager *CustomCommandManager
}

func NewManageCommand(manager *CustomCommandManager) *ManageCommand {
	return &ManageCommand{manager: manager}
}

func (c *ManageCommand) Name() string {
	return "cmd"
}

func (c *ManageCommand) Aliases() []string {
	return []string{"comando"}
}

func (c *ManageCommand) SupportsPlatform(domain.Platform) bool {
	return true
}

func (c *ManageCommand) Handle(ctx context.Context, cmdCtx *Context) error {
	if c.manager == nil {
		return nil
	}
	msg := cmdCtx.Message
	if msg.Platform == domain.PlatformTwitch && !msg.IsPlatformOwner && !msg.IsPlatformMod {
		return nil
	}

	if len(cmdCtx.Args) == 0 {
		return c.usage(ctx, cmdCtx)
	}

	switch strings.ToLower(cmdCtx.Args[0]) {
	case "add":
		return c.add(ctx, cmdCtx, cmdCtx.Args[1:])
	case "del":
		return c.del(ctx, cmdCtx, cmdCtx.Args[1:])
	case "list":
		return c.list(ctx, cmdCtx)
	default:
		return c.usage(ctx, cmdCtx)
	}
}

func (c *ManageCommand) add(ctx context.Context, cmdCtx *Context, args []string) error {
	if len(args) < 2 {
		return c.usage(ctx, cmdCtx)
	}

	name := args[0]
	rest := args[1:]

	var aliases []string
	hasAliases := false
	if strings.HasPrefix(strings.ToLower(rest[0]), "aliases:") {
		hasAliases = true
		aliases = parseCSV(rest[0][len("aliases:"):])
		rest = rest[1:]
	}

	response := strings.TrimSpace(strings.Join(rest, " "))
	result, created, err := c.manager.Upsert(ctx, UpdateCustomCommandInput{
		Name:       name,
		Response:   &response,
		Aliases:    aliases,
		HasAliases: hasAliases,
	})
	if err != nil {
		return cmdCtx.Reply(ctx, fmt.Sprintf("⚠️ %v", err))
	}

	verb := "atualizado"
	if created {
		verb = "criado"
	}
	return cmdCtx.Reply(ctx, fmt.Sprintf("✅ Comando %s %s. Entra no ar no próximo restart.", result.Name, verb))
}

func (c *ManageCommand) del(ctx context.Context, cmdCtx *Context, args []string) error {
	if len(args) != 1 {
		return c.usage(ctx, cmdCtx)
	}

	deleted, err := c.manager.Delete(ctx, args[0])
	if err != nil {
		return cmdCtx.Reply(ctx, fmt.Sprintf("⚠️ %v", err))
	}
	if !deleted {
		return cmdCtx.Reply(ctx, "⚠️ Comando não existe.")
	}
	return cmdCtx.Reply(ctx, fmt.Sprintf("🗑️ Comando %s removido. Sai do ar no próximo restart.", args[0]))
}

func (c *ManageCommand) list(ctx context.Context, cmdCtx *Context) error {
	cmds := c.manager.List()
	if len(cmds) == 0 {
		return cmdCtx.Reply(ctx, "Nenhum comando custom cadastrado.")
	}
	names := make([]string, 0, len(cmds))
	for _, cmd := range cmds {
		names = append(names, cmd.Name)
	}
	return cmdCtx.Reply(ctx, "Comandos custom: "+strings.Join(names, " "))
}

func (c *ManageCommand) usage(ctx context.Context, cmdCtx *Context) error {
	return cmdCtx.Reply(ctx, "Uso: !cmd add <nome> [aliases:a,b] <resposta> | !cmd del <nome> | !cmd list")
}

func parseCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
