// Package twitchinfra cuida da credencial OAuth do bot na Twitch.
package twitchinfra

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/nicklaw5/helix/v2"

	"papobot/internal/domain"
)

type RefresherConfig struct {
	ClientID     string
	ClientSecret string
}

// Refresher renova o token de acesso antes de expirar e persiste cada rotação
// no arquivo de credencial. Os hooks avisam quem segura o token em memória
// (a conexão IRC só usa o token no connect, então hoje o único consumidor é o
// próprio arquivo).
type Refresher struct {
	repo   domain.TokenRepository
	cfg    RefresherConfig
	client *helix.Client

	hooksMu sync.RWMutex
	hooks   []TokenHook
}

type TokenHook func(ctx context.Context, token *domain.Token)

func NewRefresher(repo domain.TokenRepository, cfg RefresherConfig) (*Refresher, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("refresher: client id/secret da Twitch ausentes")
	}

	client, err := helix.NewClient(&helix.Options{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
	})
	if err != nil {
		return nil, fmt.Errorf("refresher: helix.NewClient: %w", err)
	}

	return &Refresher{
		repo:   repo,
		cfg:    cfg,
		client: client,
	}, nil
}

func (r *Refresher) RegisterHook(h TokenHook) {
	if h == nil {
		return
	}
	r.hooksMu.Lock()
	defer r.hooksMu.Unlock()
	r.hooks = append(r.hooks, h)
}

func (r *Refresher) notifyHooks(ctx context.Context, token *domain.Token) {
	if token == nil {
		return
	}
	r.hooksMu.RLock()
	hooks := append([]TokenHook(nil), r.hooks...)
	r.hooksMu.RUnlock()
	for _, h := range hooks {
		h(ctx, token)
	}
}

func (r *Refresher) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 30 * time.Minute
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := r.RefreshIfNeeded(ctx); err != nil {
					log.Printf("token refresher: %v", err)
				}
			}
		}
	}()
}

// RefreshIfNeeded renova o token quando faltam menos de dez minutos para
// expirar. Sem token persistido ou sem refresh token não há o que fazer.
func (r *Refresher) RefreshIfNeeded(ctx context.Context) error {
	token, err := r.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("refresher: load: %w", err)
	}
	if token == nil || token.RefreshToken == "" {
		return nil
	}
	if !needsRefresh(token) {
		return nil
	}

	resp, err := r.client.RefreshUserAccessToken(token.RefreshToken)
	if err != nil {
		return fmt.Errorf("refresher: RefreshUserAccessToken: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("refresher: status %d: %s", resp.StatusCode, resp.ErrorMessage)
	}

	refreshed := &domain.Token{
		AccessToken:  resp.Data.AccessToken,
		RefreshToken: resp.Data.RefreshToken,
		ExpiresIn:    int64(resp.Data.ExpiresIn),
		ObtainedAt:   time.Now(),
		Scope:        resp.Data.Scopes,
	}
	if refreshed.RefreshToken == "" {
		refreshed.RefreshToken = token.RefreshToken
	}

	if err := r.repo.Save(ctx, refreshed); err != nil {
		return fmt.Errorf("refresher: save: %w", err)
	}

	log.Println("token refresher: token da Twitch renovado")
	r.notifyHooks(ctx, refreshed)
	return nil
}

func needsRefresh(token *domain.Token) bool {
	if token == nil {
		return false
	}
	expiresAt := token.ExpiresAt()
	if expiresAt.IsZero() {
		return true
	}
	return time.Until(expiresAt) < 10*time.Minute
}
