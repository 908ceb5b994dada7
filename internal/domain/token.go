package domain

import (
	"context"
	"time"
)

// Token é a credencial OAuth do bot na Twitch, persistida em disco e
// renovada periodicamente.
type Token struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64 // segundos de validade informados pela Twitch
	ObtainedAt   time.Time
	Scope        []string
}

func (t *Token) ExpiresAt() time.Time {
	if t == nil {
		return time.Time{}
	}
	return t.ObtainedAt.Add(time.Duration(t.ExpiresIn) * time.Second)
}

type TokenRepository interface {
	Load(ctx context.Context) (*Token, error)
	Save(ctx context.Context, token *Token) error
}
