// Package telegramadapter liga o bot do Telegram ao domínio. Diferente da
// Twitch, o Telegram é uma superfície privada de operação: só identidades da
// allow-list podem falar com o bot ou receber mensagens dele.
package telegramadapter

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"papobot/internal/domain"
)

type Config struct {
	Token string
}

// AccessGate é a checagem de allow-list aplicada na entrada e na saída.
type AccessGate interface {
	IsAuthorized(id int64) bool
}

type MessageHandler func(ctx context.Context, msg domain.Message) error

type Adapter struct {
	cfg     Config
	gate    AccessGate
	handler MessageHandler

	mu  sync.RWMutex
	bot *tgbotapi.BotAPI
}

func NewAdapter(cfg Config, gate AccessGate) *Adapter {
	return &Adapter{cfg: cfg, gate: gate}
}

func (a *Adapter) SetHandler(h MessageHandler) {
	a.handler = h
}

// Start abre o long-poll e entrega cada update ao handler, um por vez na
// ordem de chegada. Remetente fora da allow-list é descartado sem resposta:
// responder confirmaria a existência do bot para quem não deveria saber dela.
func (a *Adapter) Start(ctx context.Context) error {
	if a.cfg.Token == "" {
		return errors.New("telegram: token vazio")
	}

	bot, err := tgbotapi.NewBotAPI(a.cfg.Token)
	if err != nil {
		return fmt.Errorf("telegram: NewBotAPI: %w", err)
	}

	a.mu.Lock()
	a.bot = bot
	a.mu.Unlock()

	log.Printf("telegram: conectado como @%s", bot.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			bot.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			a.processMessage(ctx, update.Message)
		}
	}
}

// processMessage aplica o gate de entrada e entrega ao handler. Remetente fora
// da allow-list nunca chega ao dispatcher.
func (a *Adapter) processMessage(ctx context.Context, m *tgbotapi.Message) {
	if m == nil || m.From == nil {
		return
	}

	if !a.gate.IsAuthorized(m.From.ID) {
		log.Printf("telegram: aviso: mensagem de usuário não autorizado %d ignorada", m.From.ID)
		return
	}

	a.mu.RLock()
	handler := a.handler
	a.mu.RUnlock()
	if handler == nil {
		return
	}

	msg := mapUpdateToDomain(m)
	if err := handler(ctx, msg); err != nil {
		log.Printf("telegram: erro no handler: %v", err)
	}
}

// SendMessage envia para o chat indicado, desde que o destino esteja na
// allow-list. Tentar mandar para destino não autorizado é bug de quem chamou,
// então loga como erro e vira no-op.
func (a *Adapter) SendMessage(ctx context.Context, platform domain.Platform, channelID, text string) error {
	if platform != domain.PlatformTelegram {
		return fmt.Errorf("telegram adapter não suporta a plataforma %s", platform)
	}

	target, err := strconv.ParseInt(channelID, 10, 64)
	if err != nil {
		return fmt.Errorf("telegram: chat id inválido %q: %w", channelID, err)
	}

	if !a.gate.IsAuthorized(target) {
		log.Printf("telegram: ERRO: envio bloqueado para destino não autorizado %d", target)
		return nil
	}

	a.mu.RLock()
	bot := a.bot
	a.mu.RUnlock()

	if bot == nil {
		return errors.New("telegram: bot não inicializado")
	}

	if _, err := bot.Send(tgbotapi.NewMessage(target, text)); err != nil {
		return fmt.Errorf("telegram: Send: %w", err)
	}
	return nil
}

func mapUpdateToDomain(m *tgbotapi.Message) domain.Message {
	username := m.From.UserName
	if username == "" {
		username = m.From.FirstName
	}

	return domain.Message{
		Platform:  domain.PlatformTelegram,
		ChannelID: strconv.FormatInt(m.Chat.ID, 10),
		UserID:    strconv.FormatInt(m.From.ID, 10),
		Username:  username,
		Text:      m.Text,
		IsPrivate: m.Chat.IsPrivate(),
	}
}
