// Comando auxiliar de desenvolvimento: roda o fluxo OAuth da Twitch uma vez e
// grava o token no arquivo que o bot lê na inicialização.
package main

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/nicklaw5/helix/v2"

	"papobot/internal/domain"
	"papobot/internal/infrastructure/tokenfile"
)

const twitchAuthorizeURL = "https://id.twitch.tv/oauth2/authorize"

var botScopes = []string{"chat:read", "chat:edit"}

func handleStart(w http.ResponseWriter, r *http.Request) {
	q := url.Values{}
	q.Set("client_id", os.Getenv("TWITCH_CLIENT_ID"))
	q.Set("redirect_uri", os.Getenv("TWITCH_REDIRECT_URI"))
	q.Set("response_type", "code")
	q.Set("scope", strings.Join(botScopes, " "))
	q.Set("state", "bot")

	http.Redirect(w, r, twitchAuthorizeURL+"?"+q.Encode(), http.StatusFound)
}

func handleCallback(store *tokenfile.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "falta o code", http.StatusBadRequest)
			return
		}
		if r.URL.Query().Get("state") != "bot" {
			http.Error(w, "state inválido", http.StatusBadRequest)
			return
		}

		client, err := helix.NewClient(&helix.Options{
			ClientID:     os.Getenv("TWITCH_CLIENT_ID"),
			ClientSecret: os.Getenv("TWITCH_CLIENT_SECRET"),
			RedirectURI:  os.Getenv("TWITCH_REDIRECT_URI"),
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		resp, err := client.RequestUserAccessToken(code)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if resp.StatusCode != http.StatusOK {
			http.Error(w, resp.ErrorMessage, http.StatusInternalServerError)
			return
		}

		token := &domain.Token{
			AccessToken:  resp.Data.AccessToken,
			RefreshToken: resp.Data.RefreshToken,
			ExpiresIn:    int64(resp.Data.ExpiresIn),
			ObtainedAt:   time.Now(),
			Scope:        resp.Data.Scopes,
		}

		if err := store.Save(context.Background(), token); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		fmt.Fprintln(w, "Token salvo. Pode fechar esta aba e subir o bot.")
		fmt.Println("✅ Token gravado, válido até", token.ExpiresAt().Format(time.RFC3339))
	}
}

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("⚠️  Não achei o .env, usando variáveis do sistema")
	}

	for _, k := range []string{"TWITCH_CLIENT_ID", "TWITCH_CLIENT_SECRET", "TWITCH_REDIRECT_URI"} {
		if os.Getenv(k) == "" {
			fmt.Printf("❌ Falta %s no .env\n", k)
			return
		}
	}

	tokenFile := os.Getenv("TWITCH_TOKEN_FILE")
	if tokenFile == "" {
		tokenFile = "twitch_token.json"
	}

	store, err := tokenfile.NewStore(tokenFile)
	if err != nil {
		fmt.Println("❌", err)
		return
	}

	http.HandleFunc("/oauth/twitch/bot", handleStart)
	http.HandleFunc("/oauth/twitch/callback", handleCallback(store))

	fmt.Println("✅ OAuth da Twitch pronto")
	fmt.Println("➡ Abra: http://localhost:3000/oauth/twitch/bot")

	if err := http.ListenAndServe(":3000", nil); err != nil {
		fmt.Println("server error:", err)
	}
}
