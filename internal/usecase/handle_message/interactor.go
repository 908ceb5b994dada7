// Package handle_message
package handle_message

import (
	"context"

	"papobot/internal/app/events"
	"papobot/internal/domain"
	"papobot/internal/usecase/commands"
)

// Interactor é o ponto único de entrada das mensagens dos dois adapters:
// publica o evento no bus e entrega ao Router.
type Interactor struct {
	router *commands.Router
	out    domain.OutgoingMessagePort
	bus    *events.Bus
}

func NewInteractor(out domain.OutgoingMessagePort, router *commands.Router, bus *events.Bus) *Interactor {
	return &Interactor{
		router: router,
		out:    out,
		bus:    bus,
	}
}

func (uc *Interactor) Handle(ctx context.Context, msg domain.Message) error {
	if uc.bus != nil {
		uc.bus.Publish(events.TopicChatMessage, events.NewChatMessageDTO(msg))
	}
	return uc.router.Handle(ctx, msg, uc.out)
}
