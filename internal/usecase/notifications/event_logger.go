// Package notifications centraliza o log de atividade dos chats, para
// facilitar uma futura ingestão (métricas, auditoria, etc.).
package notifications

import (
	"context"
	"encoding/json"
	"log"

	"papobot/internal/app/events"
)

type EventLogger struct {
	bus *events.Bus
}

func NewEventLogger(bus *events.Bus) *EventLogger {
	return &EventLogger{bus: bus}
}

// Run consome o bus até o contexto terminar. Roda em goroutine própria.
func (l *EventLogger) Run(ctx context.Context) {
	msgs, unsubMsgs := l.bus.Subscribe(events.TopicChatMessage)
	errs, unsubErrs := l.bus.Subscribe(events.TopicDispatchError)
	defer unsubMsgs()
	defer unsubErrs()

	for {
		select {
		case <-ctx.Done():
			return
		case payload := <-msgs:
			l.logPayload("chat", payload)
		case payload := <-errs:
			l.logPayload("dispatch-error", payload)
		}
	}
}

func (l *EventLogger) logPayload(source string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[%s-events] %v", source, payload)
		return
	}
	log.Printf("[%s-events] %s", source, data)
}
