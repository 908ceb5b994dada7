// Package outs roteia envios de mensagem para o adapter da plataforma certa.
package outs

import (
	"context"
	"fmt"

	"papobot/internal/domain"
)

type Sender interface {
	SendMessage(ctx context.Context, platform domain.Platform, channelID, text string) error
}

// MultiSender implementa domain.OutgoingMessagePort delegando por plataforma.
// O mapa é montado na inicialização e só lido depois, então não precisa de
// lock.
type MultiSender struct {
	senders map[domain.Platform]Sender
}

func NewMultiSender() *MultiSender {
	return &MultiSender{
		senders: make(map[domain.Platform]Sender),
	}
}

func (m *MultiSender) Register(platform domain.Platform, sender Sender) {
	if m == nil || sender == nil {
		return
	}
	m.senders[platform] = sender
}

func (m *MultiSender) SendMessage(ctx context.Context, platform domain.Platform, channelID, text string) error {
	if m == nil {
		return fmt.Errorf("outs: multi sender não configurado")
	}
	sender, ok := m.senders[platform]
	if !ok {
		return fmt.Errorf("outs: nenhum sender registrado para a plataforma %s", platform)
	}
	return sender.SendMessage(ctx, platform, channelID, text)
}
