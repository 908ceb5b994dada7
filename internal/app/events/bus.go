// Package events é o pub/sub em memória que desacopla os adapters dos
// consumidores de eventos (hoje só o event logger).
package events

import (
	"log"
	"sync"
)

const (
	TopicChatMessage   = "chat:message"
	TopicDispatchError = "dispatch:error"

	defaultBufferSize = 128
)

type Bus struct {
	mu        sync.RWMutex
	subs      map[string]map[int]chan any
	nextSubID int

	dropMu     sync.Mutex
	dropCounts map[string]uint64
}

func NewBus() *Bus {
	return &Bus{
		subs:       make(map[string]map[int]chan any),
		dropCounts: make(map[string]uint64),
	}
}

// Publish entrega para todos os inscritos do tópico sem bloquear: inscrito
// com buffer cheio perde o evento (e a perda é contabilizada). O envio
// acontece segurando o RLock para nunca acertar um canal que o unsubscribe
// acabou de fechar.
func (b *Bus) Publish(topic string, payload any) {
	if topic == "" {
		return
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subs[topic] {
		select {
		case ch <- payload:
		default:
			b.recordDrop(topic)
		}
	}
}

func (b *Bus) Subscribe(topic string) (<-chan any, func()) {
	ch := make(chan any, defaultBufferSize)

	b.mu.Lock()
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[int]chan any)
	}
	id := b.nextSubID
	b.nextSubID++
	b.subs[topic][id] = ch
	b.mu.Unlock()

	unsubscribe := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if subs, ok := b.subs[topic]; ok {
			delete(subs, id)
			if len(subs) == 0 {
				delete(b.subs, topic)
			}
		}
		close(ch)
	}

	return ch, unsubscribe
}

func (b *Bus) recordDrop(topic string) {
	b.dropMu.Lock()
	defer b.dropMu.Unlock()
	b.dropCounts[topic]++
	if b.dropCounts[topic]%100 == 1 {
		log.Printf("events: descartando eventos de %s (total: %d)", topic, b.dropCounts[topic])
	}
}
