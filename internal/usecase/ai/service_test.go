package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestParseProvider(t *testing.T) {
	cases := []struct {
		in   string
		want Provider
		ok   bool
	}{
		{"ollama", ProviderOllama, true},
		{" OpenRouter ", ProviderOpenRouter, true},
		{"GROQ", ProviderGroq, true},
		{"gpt4all", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseProvider(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ParseProvider(%q) = (%q, %v), esperava (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestUnconfiguredProviderReturnsSentinel(t *testing.T) {
	// Sem credenciais só o ollama existe; o openrouter não tem entry e não
	// pode tocar a rede.
	svc := NewService(Config{OllamaBaseURL: "http://127.0.0.1:1/v1"})

	reply, err := svc.Complete(context.Background(), ProviderOpenRouter, "sys", "oi", "")
	if err != nil {
		t.Fatalf("provedor não configurado deveria retornar erro nil, veio %v", err)
	}
	if reply != MsgProviderUnavailable {
		t.Fatalf("reply = %q, esperava a string sentinela %q", reply, MsgProviderUnavailable)
	}
}

func TestAvailable(t *testing.T) {
	svc := NewService(Config{GroqAPIKey: "gsk-test"})

	if !svc.Available(ProviderOllama) {
		t.Fatalf("ollama deveria existir sempre")
	}
	if !svc.Available(ProviderGroq) {
		t.Fatalf("groq com credencial deveria existir")
	}
	if svc.Available(ProviderOpenRouter) {
		t.Fatalf("openrouter sem credencial não deveria existir")
	}
}

func TestCompleteReturnsFirstChoice(t *testing.T) {
	var gotReq struct {
		Model       string  `json:"model"`
		Temperature float64 `json:"temperature"`
		MaxTokens   int     `json:"max_tokens"`
		Messages    []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decodificando request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Canberra."}}]}`))
	}))
	defer ts.Close()

	svc := NewService(Config{OllamaBaseURL: ts.URL, OllamaModel: "llama3"})

	reply, err := svc.Complete(context.Background(), ProviderOllama, "sys", "capital da Austrália?", "")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if reply != "Canberra." {
		t.Fatalf("reply = %q", reply)
	}

	if gotReq.Model != "llama3" {
		t.Fatalf("model = %q", gotReq.Model)
	}
	if gotReq.Temperature != 0.7 {
		t.Fatalf("temperature = %v, esperava 0.7", gotReq.Temperature)
	}
	if gotReq.MaxTokens != 300 {
		t.Fatalf("max_tokens = %d, esperava 300", gotReq.MaxTokens)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" || gotReq.Messages[1].Role != "user" {
		t.Fatalf("messages = %+v, esperava [system, user]", gotReq.Messages)
	}
}

func TestCompleteUsesModelOverride(t *testing.T) {
	var gotModel string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model string `json:"model"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		gotModel = req.Model
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`))
	}))
	defer ts.Close()

	svc := NewService(Config{OllamaBaseURL: ts.URL, OllamaModel: "llama3"})

	if _, err := svc.Complete(context.Background(), ProviderOllama, "sys", "oi", "mistral"); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if gotModel != "mistral" {
		t.Fatalf("model = %q, esperava o override", gotModel)
	}
}

func TestCompleteTransportFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"interno"}}`, http.StatusInternalServerError)
	}))
	defer ts.Close()

	svc := NewService(Config{OllamaBaseURL: ts.URL})

	reply, err := svc.Complete(context.Background(), ProviderOllama, "sys", "oi", "")
	if err == nil {
		t.Fatalf("falha de transporte deveria retornar erro")
	}
	if reply != "" {
		t.Fatalf("reply = %q, esperava vazio na falha", reply)
	}
}

func TestCompleteEmptyChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer ts.Close()

	svc := NewService(Config{OllamaBaseURL: ts.URL})

	reply, err := svc.Complete(context.Background(), ProviderOllama, "sys", "oi", "")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if reply != "" {
		t.Fatalf("reply = %q, esperava vazio quando o provedor não devolve escolha", reply)
	}
}
