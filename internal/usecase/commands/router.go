package commands

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"papobot/internal/domain"
)

// Router liga o parser de mensagens ao registro de comandos. O registro é
// populado uma vez na inicialização e tratado como imutável depois, então o
// Handle pode ser chamado pelos dois adapters sem lock.
type Router struct {
	prefix   string
	cmdIndex map[string]Command

	// onError, quando definido, recebe cada falha de handler (além do log).
	onError func(msg domain.Message, err error)
}

func NewRouter(prefix string) *Router {
	if prefix == "" {
		prefix = "!"
	}
	return &Router{
		prefix:   prefix,
		cmdIndex: make(map[string]Command),
	}
}

// SetErrorHook instala um observador de falhas de handler. Deve ser chamado
// antes do primeiro Handle, junto com os Register.
func (r *Router) SetErrorHook(fn func(msg domain.Message, err error)) {
	r.onError = fn
}

// Register insere o comando sob o nome principal e cada alias. Colisão de
// chave sobrescreve em silêncio: a última inscrição vence.
func (r *Router) Register(cmd Command) {
	r.cmdIndex[strings.ToLower(cmd.Name())] = cmd
	for _, alias := range cmd.Aliases() {
		r.cmdIndex[strings.ToLower(alias)] = cmd
	}
}

// Known informa se um nome ou alias já está ocupado no registro.
func (r *Router) Known(name string) bool {
	_, ok := r.cmdIndex[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Names lista as chaves registradas em ordem alfabética (usado pelo help).
func (r *Router) Names() []string {
	out := make([]string, 0, len(r.cmdIndex))
	for name := range r.cmdIndex {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Handle decide se a mensagem é um comando e despacha. Mensagens sem prefixo
// e comandos desconhecidos são ignorados em silêncio: responder a cada typo
// viraria spam no chat. Falha de handler nunca sobe para o loop de eventos.
func (r *Router) Handle(ctx context.Context, msg domain.Message, out domain.OutgoingMessagePort) error {
	text := strings.TrimSpace(msg.Text)
	if !strings.HasPrefix(text, r.prefix) {
		return nil
	}

	withoutPrefix := strings.TrimSpace(strings.TrimPrefix(text, r.prefix))
	parts := strings.Fields(withoutPrefix)
	if len(parts) == 0 {
		return nil
	}

	cmdName := strings.ToLower(parts[0])
	args := parts[1:]

	cmd, ok := r.cmdIndex[cmdName]
	if !ok {
		return nil
	}
	if !cmd.SupportsPlatform(msg.Platform) {
		return nil
	}

	cmdCtx := &Context{
		Message: msg,
		Out:     out,
		Raw:     withoutPrefix,
		Args:    args,
	}

	if err := r.invoke(ctx, cmd, cmdCtx); err != nil {
		log.Printf("commands: handler %q falhou (canal=%s usuário=%s): %v",
			cmdName, msg.ChannelID, msg.Username, err)
		if r.onError != nil {
			r.onError(msg, err)
		}
		notice := fmt.Sprintf("@%s ops, deu erro ao executar o comando 😵", msg.Username)
		if sendErr := out.SendMessage(ctx, msg.Platform, msg.ChannelID, notice); sendErr != nil {
			log.Printf("commands: não consegui avisar a falha no canal %s: %v", msg.ChannelID, sendErr)
		}
	}
	return nil
}

// invoke isola o handler: erro retornado e panic viram um único error aqui.
func (r *Router) invoke(ctx context.Context, cmd Command, cmdCtx *Context) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return cmd.Handle(ctx, cmdCtx)
}
