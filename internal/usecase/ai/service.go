// Package ai unifica os provedores de chat-completion atrás de uma única
// assinatura. Todos os backends suportados falam o dialeto da API da OpenAI,
// então um único client serve para os três.
package ai

import (
	"context"
	"fmt"
	"log"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

type Provider string

const (
	ProviderOllama     Provider = "ollama"
	ProviderOpenRouter Provider = "openrouter"
	ProviderGroq       Provider = "groq"
)

// MsgProviderUnavailable é a resposta mostrada ao usuário quando o provedor
// pedido não foi configurado. Não é um erro de transporte: quem chama precisa
// distinguir "não configurado" de "requisição falhou".
const MsgProviderUnavailable = "Erro: Provedor de IA não disponível."

const (
	defaultOllamaBaseURL = "http://localhost:11434/v1"
	defaultOllamaModel   = "llama3"

	openRouterBaseURL = "https://openrouter.ai/api/v1"
	groqBaseURL       = "https://api.groq.com/openai/v1"

	defaultOpenRouterModel = "openai/gpt-4o-mini"
	defaultGroqModel       = "llama-3.1-8b-instant"

	completionTemperature = 0.7
	completionMaxTokens   = 300
)

// ParseProvider resolve o nome vindo do chat para o tipo fechado de
// provedores. Nomes desconhecidos são rejeitados aqui, não em tempo de
// requisição.
func ParseProvider(name string) (Provider, bool) {
	switch Provider(strings.ToLower(strings.TrimSpace(name))) {
	case ProviderOllama:
		return ProviderOllama, true
	case ProviderOpenRouter:
		return ProviderOpenRouter, true
	case ProviderGroq:
		return ProviderGroq, true
	default:
		return "", false
	}
}

type entry struct {
	client       *openai.Client
	defaultModel string
}

type Config struct {
	OllamaBaseURL    string
	OllamaModel      string
	OpenRouterAPIKey string
	GroqAPIKey       string
}

// Service mapeia cada provedor configurado para um client pronto. O mapa é
// montado uma vez na inicialização; um provedor sem credencial simplesmente
// não entra no mapa.
type Service struct {
	entries map[Provider]entry
}

func NewService(cfg Config) *Service {
	s := &Service{entries: make(map[Provider]entry)}

	// O provedor local não exige credencial e sempre existe.
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.OllamaBaseURL), "/")
	if baseURL == "" {
		baseURL = defaultOllamaBaseURL
	}
	model := strings.TrimSpace(cfg.OllamaModel)
	if model == "" {
		model = defaultOllamaModel
	}
	ollamaCfg := openai.DefaultConfig("ollama")
	ollamaCfg.BaseURL = baseURL
	s.entries[ProviderOllama] = entry{
		client:       openai.NewClientWithConfig(ollamaCfg),
		defaultModel: model,
	}

	if cfg.OpenRouterAPIKey != "" {
		orCfg := openai.DefaultConfig(cfg.OpenRouterAPIKey)
		orCfg.BaseURL = openRouterBaseURL
		s.entries[ProviderOpenRouter] = entry{
			client:       openai.NewClientWithConfig(orCfg),
			defaultModel: defaultOpenRouterModel,
		}
	}

	if cfg.GroqAPIKey != "" {
		groqCfg := openai.DefaultConfig(cfg.GroqAPIKey)
		groqCfg.BaseURL = groqBaseURL
		s.entries[ProviderGroq] = entry{
			client:       openai.NewClientWithConfig(groqCfg),
			defaultModel: defaultGroqModel,
		}
	}

	log.Printf("ai: %d provedor(es) configurado(s)", len(s.entries))
	return s
}

// Available informa se o provedor tem client configurado.
func (s *Service) Available(provider Provider) bool {
	if s == nil {
		return false
	}
	_, ok := s.entries[provider]
	return ok
}

// Complete faz uma única requisição de chat-completion: duas mensagens
// (system e user), temperatura e limite de tokens fixos, sem streaming, sem
// retry, sem histórico.
//
// Retornos possíveis:
//   - provedor não configurado: (MsgProviderUnavailable, nil), sem tocar a rede;
//   - falha de transporte/provedor: ("", err), já logada aqui;
//   - sucesso: conteúdo da primeira escolha, ou "" se o provedor não devolveu nada.
func (s *Service) Complete(ctx context.Context, provider Provider, systemPrompt, userMessage, modelOverride string) (string, error) {
	ent, ok := s.entries[provider]
	if !ok {
		log.Printf("ai: provedor %s não configurado", provider)
		return MsgProviderUnavailable, nil
	}

	model := strings.TrimSpace(modelOverride)
	if model == "" {
		model = ent.defaultModel
	}

	resp, err := ent.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Temperature: completionTemperature,
		MaxTokens:   completionMaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userMessage},
		},
	})
	if err != nil {
		log.Printf("ai: %s: %v", provider, err)
		return "", fmt.Errorf("ai: %s: %w", provider, err)
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
