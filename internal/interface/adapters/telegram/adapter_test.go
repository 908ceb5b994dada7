package telegramadapter

import (
	"context"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"papobot/internal/domain"
)

type fakeGate struct {
	allowed map[int64]bool
}

func (f *fakeGate) IsAuthorized(id int64) bool { return f.allowed[id] }

func telegramMessage(senderID, chatID int64, text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		From: &tgbotapi.User{ID: senderID, UserName: "alguem"},
		Chat: &tgbotapi.Chat{ID: chatID, Type: "private"},
		Text: text,
	}
}

func TestProcessMessageDropsUnauthorizedSender(t *testing.T) {
	ad := NewAdapter(Config{Token: "t"}, &fakeGate{allowed: map[int64]bool{42: true}})

	var handled []domain.Message
	ad.SetHandler(func(_ context.Context, msg domain.Message) error {
		handled = append(handled, msg)
		return nil
	})

	// Remetente fora da allow-list: descartado sem resposta, o handler nunca
	// pode ser chamado.
	ad.processMessage(context.Background(), telegramMessage(99, 99, "!ping"))
	if len(handled) != 0 {
		t.Fatalf("mensagem de remetente não autorizado chegou ao handler: %+v", handled)
	}

	ad.processMessage(context.Background(), telegramMessage(42, 42, "!ping"))
	if len(handled) != 1 {
		t.Fatalf("mensagem autorizada não chegou ao handler, handled = %+v", handled)
	}
	if handled[0].Platform != domain.PlatformTelegram || handled[0].UserID != "42" {
		t.Fatalf("mensagem mapeada errado: %+v", handled[0])
	}
	if handled[0].Text != "!ping" || !handled[0].IsPrivate {
		t.Fatalf("mensagem mapeada errado: %+v", handled[0])
	}
}

func TestProcessMessageIgnoresIncompleteUpdates(t *testing.T) {
	ad := NewAdapter(Config{Token: "t"}, &fakeGate{allowed: map[int64]bool{42: true}})

	called := false
	ad.SetHandler(func(context.Context, domain.Message) error {
		called = true
		return nil
	})

	ad.processMessage(context.Background(), nil)
	ad.processMessage(context.Background(), &tgbotapi.Message{Text: "sem From"})
	if called {
		t.Fatalf("update incompleto não deveria chegar ao handler")
	}
}

func TestSendMessageBlocksUnauthorizedTarget(t *testing.T) {
	ad := NewAdapter(Config{Token: "t"}, &fakeGate{allowed: map[int64]bool{}})

	// Destino fora da allow-list: no-op sem erro, sem tocar a API (o bot nem
	// foi inicializado e mesmo assim não pode dar erro aqui).
	if err := ad.SendMessage(context.Background(), domain.PlatformTelegram, "999", "oi"); err != nil {
		t.Fatalf("envio bloqueado deveria ser no-op, veio %v", err)
	}
}

func TestSendMessageRejectsOtherPlatforms(t *testing.T) {
	ad := NewAdapter(Config{Token: "t"}, &fakeGate{allowed: map[int64]bool{1: true}})

	if err := ad.SendMessage(context.Background(), domain.PlatformTwitch, "#canal", "oi"); err == nil {
		t.Fatalf("plataforma errada deveria dar erro")
	}
}

func TestSendMessageRejectsInvalidChatID(t *testing.T) {
	ad := NewAdapter(Config{Token: "t"}, &fakeGate{allowed: map[int64]bool{1: true}})

	if err := ad.SendMessage(context.Background(), domain.PlatformTelegram, "abc", "oi"); err == nil {
		t.Fatalf("chat id inválido deveria dar erro")
	}
}

func TestSendMessageWithoutBot(t *testing.T) {
	ad := NewAdapter(Config{Token: "t"}, &fakeGate{allowed: map[int64]bool{42: true}})

	// Destino autorizado mas Start nunca rodou.
	if err := ad.SendMessage(context.Background(), domain.PlatformTelegram, "42", "oi"); err == nil {
		t.Fatalf("bot não inicializado deveria dar erro")
	}
}
