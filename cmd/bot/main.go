package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"papobot/internal/app/events"
	"papobot/internal/domain"
	"papobot/internal/infrastructure/config"
	"papobot/internal/infrastructure/persistence/sqlite"
	twitchinfra "papobot/internal/infrastructure/platform/twitch"
	"papobot/internal/infrastructure/tokenfile"
	telegramadapter "papobot/internal/interface/adapters/telegram"
	twitchadapter "papobot/internal/interface/adapters/twitch"
	"papobot/internal/interface/outs"
	"papobot/internal/usecase/access"
	"papobot/internal/usecase/ai"
	"papobot/internal/usecase/commands"
	"papobot/internal/usecase/handle_message"
	"papobot/internal/usecase/notifications"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// ---------- 1) Gate de acesso do Telegram ----------

	gate := access.NewGate(cfg.AuthorizedUserIDs)
	if gate.Size() == 0 {
		log.Println("Aviso: AUTHORIZED_USER_IDS vazio, o bot do Telegram vai negar todo mundo")
	}

	// ---------- 2) Provedores de IA ----------

	aiSvc := ai.NewService(ai.Config{
		OllamaBaseURL:    cfg.OllamaBaseURL,
		OllamaModel:      cfg.OllamaModel,
		OpenRouterAPIKey: cfg.OpenRouterAPIKey,
		GroqAPIKey:       cfg.GroqAPIKey,
	})

	// ---------- 3) Comandos custom persistidos ----------

	var cmdRepo domain.CustomCommandRepository
	if store, err := sqlite.NewCommandStore(cfg.CommandsDBPath); err != nil {
		log.Printf("Aviso: banco de comandos indisponível, seguindo sem comandos custom: %v", err)
	} else {
		defer store.Close()
		cmdRepo = store
	}

	mgr, err := commands.NewCustomCommandManager(ctx, cmdRepo)
	if err != nil {
		log.Fatal(err)
	}

	// ---------- 4) Router de comandos ----------

	router := commands.NewRouter(cfg.CommandPrefix)
	router.Register(commands.NewPingCommand())
	router.Register(commands.NewAskCommand(aiSvc, ai.ProviderOllama))
	router.Register(commands.NewManageCommand(mgr))
	router.Register(commands.NewHelpCommand(router, cfg.CommandPrefix))

	// Os nomes embutidos ficam reservados; os custom entram depois e, em caso
	// de colisão com um embutido (banco antigo), o custom vence de propósito:
	// a última inscrição ganha.
	builtin := make(map[string]struct{})
	for _, name := range router.Names() {
		builtin[name] = struct{}{}
	}
	mgr.SetReservedChecker(func(name string) bool {
		_, ok := builtin[name]
		return ok
	})

	for _, def := range mgr.List() {
		router.Register(commands.NewStaticCommand(def))
	}

	// ---------- 5) Bus de eventos e logger ----------

	bus := events.NewBus()
	router.SetErrorHook(func(msg domain.Message, err error) {
		bus.Publish(events.TopicDispatchError, events.DispatchErrorDTO{
			Platform:  string(msg.Platform),
			ChannelID: msg.ChannelID,
			Username:  msg.Username,
			Error:     err.Error(),
			Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	eventLogger := notifications.NewEventLogger(bus)
	go eventLogger.Run(ctx)

	// ---------- 6) Saída multiplataforma e interactor ----------

	multiOut := outs.NewMultiSender()
	uc := handle_message.NewInteractor(multiOut, router, bus)

	// ---------- 7) Telegram ----------

	if cfg.TelegramBotToken != "" {
		teleAd := telegramadapter.NewAdapter(telegramadapter.Config{Token: cfg.TelegramBotToken}, gate)
		teleAd.SetHandler(uc.Handle)
		multiOut.Register(domain.PlatformTelegram, teleAd)

		go func() {
			if err := teleAd.Start(ctx); err != nil && err != context.Canceled {
				log.Printf("telegram adapter: %v", err)
			}
		}()
	}

	// ---------- 8) Twitch ----------

	tokenStore, err := tokenfile.NewStore(cfg.TwitchTokenFile)
	if err != nil {
		log.Fatal(err)
	}

	token, err := tokenStore.Load(ctx)
	if err != nil {
		log.Fatal(err)
	}

	switch {
	case cfg.TwitchUsername == "" || cfg.TwitchChannel == "":
		log.Println("Twitch desativada: canal ou username ausentes")
	case token == nil:
		log.Println("Twitch desativada: sem token persistido, rode o cmd/twitch_oauth primeiro")
	default:
		twitchAd := twitchadapter.NewAdapter(twitchadapter.Config{
			Username:   cfg.TwitchUsername,
			OAuthToken: token.AccessToken,
			Channels:   []string{cfg.TwitchChannel},
		})
		twitchAd.SetHandler(uc.Handle)
		multiOut.Register(domain.PlatformTwitch, twitchAd)

		if refresher, err := twitchinfra.NewRefresher(tokenStore, twitchinfra.RefresherConfig{
			ClientID:     cfg.TwitchClientID,
			ClientSecret: cfg.TwitchClientSecret,
		}); err != nil {
			log.Printf("Aviso: refresher da Twitch desativado: %v", err)
		} else {
			refresher.RegisterHook(func(_ context.Context, t *domain.Token) {
				log.Printf("twitch: novo token válido até %s", t.ExpiresAt().Format(time.RFC3339))
			})
			refresher.Start(ctx, 30*time.Minute)
		}

		go func() {
			if err := twitchAd.Start(ctx); err != nil && err != context.Canceled {
				log.Printf("twitch adapter: %v", err)
			}
		}()
	}

	log.Println("Iniciando bot...")

	<-ctx.Done()

	log.Println("Bot desligado.")
}
