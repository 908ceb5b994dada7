// Package tokenfile persiste a credencial OAuth da Twitch em um arquivo JSON.
package tokenfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"papobot/internal/domain"
)

type Store struct {
	path string
	mu   sync.Mutex
}

// tokenPayload é o formato em disco. Os nomes dos campos são fixos porque o
// mesmo arquivo é escrito pelo cmd/twitch_oauth.
type tokenPayload struct {
	AccessToken         string   `json:"accessToken"`
	RefreshToken        string   `json:"refreshToken"`
	ExpiresIn           int64    `json:"expiresIn"`
	ObtainmentTimestamp int64    `json:"obtainmentTimestamp"` // unix ms
	Scope               []string `json:"scope"`
}

func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("tokenfile: caminho vazio")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("tokenfile: criando diretório: %w", err)
		}
	}
	return &Store{path: path}, nil
}

// Load lê o token persistido. Retorna (nil, nil) quando o arquivo ainda não
// existe: em um setup novo isso não é um erro, só falta rodar o fluxo OAuth.
func (s *Store) Load(ctx context.Context) (*domain.Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("tokenfile: lendo %s: %w", s.path, err)
	}

	var payload tokenPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("tokenfile: decodificando %s: %w", s.path, err)
	}

	return &domain.Token{
		AccessToken:  payload.AccessToken,
		RefreshToken: payload.RefreshToken,
		ExpiresIn:    payload.ExpiresIn,
		ObtainedAt:   time.UnixMilli(payload.ObtainmentTimestamp),
		Scope:        payload.Scope,
	}, nil
}

func (s *Store) Save(ctx context.Context, token *domain.Token) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if token == nil {
		return fmt.Errorf("tokenfile: token nulo")
	}

	payload := tokenPayload{
		AccessToken:         token.AccessToken,
		RefreshToken:        token.RefreshToken,
		ExpiresIn:           token.ExpiresIn,
		ObtainmentTimestamp: token.ObtainedAt.UnixMilli(),
		Scope:               token.Scope,
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("tokenfile: codificando: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("tokenfile: escrevendo %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("tokenfile: renomeando: %w", err)
	}
	return nil
}
