package commands

import (
	"context"
	"strings"

	"papobot/internal/domain"
	"papobot/internal/usecase/ai"
)

const askSystemPrompt = "Você é um assistente de chat. Responda em português, " +
	"de forma curta e direta, sem formatação."

// AskCommand encaminha a pergunta para o provedor de IA. Uso:
//
//	!ai qual a capital da Austrália?
//	!ai @openrouter qual a capital da Austrália?
//	!ai @groq:llama-3.3-70b-versatile qual a capital da Austrália?
type AskCommand struct {
	svc             *ai.Service
	defaultProvider ai.Provider
}

func NewAskCommand(svc *ai.Service, defaultProvider ai.Provider) *AskCommand {
	return &AskCommand{svc: svc, defaultProvider: defaultProvider}
}

func (c *AskCommand) Name() string {
	return "ai"
}

func (c *AskCommand) Aliases() []string {
	return []string{"ia"}
}

func (c *AskCommand) SupportsPlatform(domain.Platform) bool {
	return true
}

func (c *AskCommand) Handle(ctx context.Context, cmdCtx *Context) error {
	provider := c.defaultProvider
	model := ""
	args := cmdCtx.Args

	if len(args) > 0 && strings.HasPrefix(args[0], "@") {
		sel := strings.TrimPrefix(args[0], "@")
		name, override, _ := strings.Cut(sel, ":")
		parsed, ok := ai.ParseProvider(name)
		if !ok {
			return cmdCtx.Reply(ctx, "Provedor desconhecido: "+name)
		}
		provider = parsed
		model = override
		args = args[1:]
	}

	question := strings.TrimSpace(strings.Join(args, " "))
	if question == "" {
		return cmdCtx.Reply(ctx, "Uso: !ai [@provedor[:modelo]] <pergunta>")
	}

	reply, err := c.svc.Complete(ctx, provider, askSystemPrompt, question, model)
	if err != nil {
		// O Router loga e manda o aviso genérico de falha.
		return err
	}
	if reply == "" {
		// O provedor respondeu sem conteúdo; não há nada útil para mandar.
		return nil
	}
	return cmdCtx.Reply(ctx, reply)
}
