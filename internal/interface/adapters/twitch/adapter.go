// Package twitchadapter liga o chat IRC da Twitch ao domínio.
package twitchadapter

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	"github.com/adeithe/go-twitch/irc"

	"papobot/internal/domain"
)

type Config struct {
	Username   string
	OAuthToken string
	Channels   []string
}

type MessageHandler func(ctx context.Context, msg domain.Message) error

type Adapter struct {
	cfg     Config
	handler MessageHandler

	mu   sync.RWMutex
	conn *irc.Conn
}

func NewAdapter(cfg Config) *Adapter {
	return &Adapter{cfg: cfg}
}

func (a *Adapter) SetHandler(h MessageHandler) {
	a.handler = h
}

// Start conecta no IRC e entrega cada mensagem ao handler, uma por vez na
// ordem de chegada. Mensagens do próprio bot são descartadas aqui para não
// criar loop (o chat da Twitch é público, então não existe allow-list: quem
// filtra quem pode falar é a própria plataforma).
func (a *Adapter) Start(ctx context.Context) error {
	if len(a.cfg.Channels) == 0 {
		return errors.New("twitch: nenhum canal configurado")
	}
	if a.cfg.Username == "" || a.cfg.OAuthToken == "" {
		return errors.New("twitch: username ou oauth token vazios")
	}

	// Uma única conexão, sem sharding.
	conn := &irc.Conn{}

	if err := conn.SetLogin(a.cfg.Username, a.cfg.OAuthToken); err != nil {
		return fmt.Errorf("twitch: SetLogin: %w", err)
	}

	selfLogin := strings.ToLower(a.cfg.Username)

	conn.OnMessage(func(cm irc.ChatMessage) {
		if strings.ToLower(cm.Sender.Username) == selfLogin {
			return
		}

		a.mu.RLock()
		handler := a.handler
		a.mu.RUnlock()
		if handler == nil {
			return
		}

		msg := mapChatMessageToDomain(cm)
		if err := handler(ctx, msg); err != nil {
			log.Printf("twitch: erro no handler: %v", err)
		}
	})

	if err := conn.Connect(); err != nil {
		return fmt.Errorf("twitch: Connect: %w", err)
	}

	if err := conn.Join(a.cfg.Channels...); err != nil {
		return fmt.Errorf("twitch: Join: %w", err)
	}

	a.mu.Lock()
	a.conn = conn
	a.mu.Unlock()

	log.Printf("twitch: conectado como %s nos canais %v", a.cfg.Username, a.cfg.Channels)

	<-ctx.Done()

	a.mu.Lock()
	if a.conn != nil {
		a.conn.Close()
	}
	a.mu.Unlock()

	return ctx.Err()
}

func (a *Adapter) SendMessage(ctx context.Context, platform domain.Platform, channelID, text string) error {
	if platform != domain.PlatformTwitch {
		return fmt.Errorf("twitch adapter não suporta a plataforma %s", platform)
	}

	a.mu.RLock()
	conn := a.conn
	a.mu.RUnlock()

	if conn == nil || !conn.IsConnected() {
		return errors.New("twitch: conexão não inicializada ou fechada")
	}

	return conn.Say(channelID, text)
}

func mapChatMessageToDomain(cm irc.ChatMessage) domain.Message {
	sender := cm.Sender

	return domain.Message{
		Platform:  domain.PlatformTwitch,
		ChannelID: cm.Channel,
		UserID:    strconv.FormatInt(sender.ID, 10),
		Username:  sender.DisplayName,
		Text:      cm.Text,

		IsPrivate: false,

		IsPlatformOwner: sender.IsBroadcaster,
		IsPlatformMod:   sender.IsModerator,
		IsPlatformVip:   sender.IsVIP,
	}
}
