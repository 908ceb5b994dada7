// Package access implementa a lista de usuários autorizados do bot do Telegram.
package access

import (
	"strconv"
	"strings"
)

// Gate guarda o conjunto de identidades autorizadas. O conjunto é montado uma
// única vez na inicialização e nunca muda depois, então a leitura concorrente
// é segura sem lock.
type Gate struct {
	allowed map[int64]struct{}
}

// NewGate monta o gate a partir da string de configuração, no formato
// "123,456,789". Tokens não numéricos e zeros são descartados. String vazia
// resulta em um conjunto vazio que nega todo mundo (fail-closed).
func NewGate(raw string) *Gate {
	return &Gate{allowed: ParseIDs(raw)}
}

func ParseIDs(raw string) map[int64]struct{} {
	out := make(map[int64]struct{})
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		id, err := strconv.ParseInt(tok, 10, 64)
		if err != nil || id == 0 {
			continue
		}
		out[id] = struct{}{}
	}
	return out
}

func (g *Gate) IsAuthorized(id int64) bool {
	if g == nil {
		return false
	}
	_, ok := g.allowed[id]
	return ok
}

// Size existe só para logging na inicialização.
func (g *Gate) Size() int {
	if g == nil {
		return 0
	}
	return len(g.allowed)
}
