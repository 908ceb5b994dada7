package commands

import (
	"context"
	"testing"

	"papobot/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestCustomManagerUpsertAndList(t *testing.T) {
	mgr, err := NewCustomCommandManager(context.Background(), nil)
	if err != nil {
		t.Fatalf("NewCustomCommandManager: %v", err)
	}

	result, created, err := mgr.Upsert(context.Background(), UpdateCustomCommandInput{
		Name:       "Discord",
		Response:   strPtr("entra lá: discord.gg/exemplo"),
		Aliases:    []string{"dc", "DC", ""},
		HasAliases: true,
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if !created {
		t.Fatalf("primeiro Upsert deveria criar")
	}
	if result.Name != "discord" {
		t.Fatalf("nome não normalizado: %q", result.Name)
	}
	if len(result.Aliases) != 1 || result.Aliases[0] != "dc" {
		t.Fatalf("aliases não deduplicados: %v", result.Aliases)
	}

	list := mgr.List()
	if len(list) != 1 || list[0].Name != "discord" {
		t.Fatalf("List = %+v", list)
	}
}

func TestCustomManagerRequiresResponse(t *testing.T) {
	mgr, _ := NewCustomCommandManager(context.Background(), nil)

	if _, _, err := mgr.Upsert(context.Background(), UpdateCustomCommandInput{
		Name:     "vazio",
		Response: strPtr("   "),
	}); err == nil {
		t.Fatalf("Upsert sem resposta deveria falhar")
	}
}

func TestCustomManagerRejectsReservedName(t *testing.T) {
	mgr, _ := NewCustomCommandManager(context.Background(), nil)
	mgr.SetReservedChecker(func(name string) bool { return name == "ping" })

	if _, _, err := mgr.Upsert(context.Background(), UpdateCustomCommandInput{
		Name:     "ping",
		Response: strPtr("pong falso"),
	}); err == nil {
		t.Fatalf("nome reservado deveria ser rejeitado")
	}

	if _, _, err := mgr.Upsert(context.Background(), UpdateCustomCommandInput{
		Name:       "outro",
		Response:   strPtr("ok"),
		Aliases:    []string{"ping"},
		HasAliases: true,
	}); err == nil {
		t.Fatalf("alias reservado deveria ser rejeitado")
	}
}

func TestCustomManagerRejectsAliasConflicts(t *testing.T) {
	mgr, _ := NewCustomCommandManager(context.Background(), nil)

	if _, _, err := mgr.Upsert(context.Background(), UpdateCustomCommandInput{
		Name:       "discord",
		Response:   strPtr("link"),
		Aliases:    []string{"dc"},
		HasAliases: true,
	}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	if _, _, err := mgr.Upsert(context.Background(), UpdateCustomCommandInput{
		Name:       "outro",
		Response:   strPtr("x"),
		Aliases:    []string{"dc"},
		HasAliases: true,
	}); err == nil {
		t.Fatalf("alias em uso deveria ser rejeitado")
	}

	if _, _, err := mgr.Upsert(context.Background(), UpdateCustomCommandInput{
		Name:       "terceiro",
		Response:   strPtr("x"),
		Aliases:    []string{"discord"},
		HasAliases: true,
	}); err == nil {
		t.Fatalf("alias igual a nome existente deveria ser rejeitado")
	}
}

type failingRepo struct {
	domain.CustomCommandRepository
}

func (f *failingRepo) ListCustomCommands(context.Context) ([]*domain.CustomCommand, error) {
	return nil, nil
}

func (f *failingRepo) UpsertCustomCommand(context.Context, *domain.CustomCommand) error {
	return context.DeadlineExceeded
}

func TestCustomManagerFailedUpdateKeepsEntryIntact(t *testing.T) {
	mgr, _ := NewCustomCommandManager(context.Background(), nil)

	if _, _, err := mgr.Upsert(context.Background(), UpdateCustomCommandInput{
		Name:       "discord",
		Response:   strPtr("link original"),
		Aliases:    []string{"dc"},
		HasAliases: true,
	}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	// Update com resposta vazia falha na validação; a entrada em memória não
	// pode ficar meio-mutada.
	if _, _, err := mgr.Upsert(context.Background(), UpdateCustomCommandInput{
		Name:     "discord",
		Response: strPtr("  "),
	}); err == nil {
		t.Fatalf("update com resposta vazia deveria falhar")
	}

	list := mgr.List()
	if len(list) != 1 || list[0].Response != "link original" {
		t.Fatalf("update que falhou alterou a entrada: %+v", list)
	}
	if len(list[0].Aliases) != 1 || list[0].Aliases[0] != "dc" {
		t.Fatalf("update que falhou alterou os aliases: %+v", list[0].Aliases)
	}
}

func TestCustomManagerFailedPersistenceKeepsEntryIntact(t *testing.T) {
	mgr, err := NewCustomCommandManager(context.Background(), &failingRepo{})
	if err != nil {
		t.Fatalf("NewCustomCommandManager: %v", err)
	}

	if _, _, err := mgr.Upsert(context.Background(), UpdateCustomCommandInput{
		Name:     "live",
		Response: strPtr("começou!"),
	}); err == nil {
		t.Fatalf("falha de persistência deveria subir")
	}

	if list := mgr.List(); len(list) != 0 {
		t.Fatalf("comando não persistido apareceu em memória: %+v", list)
	}
}

func TestCustomManagerDelete(t *testing.T) {
	mgr, _ := NewCustomCommandManager(context.Background(), nil)

	_, _, err := mgr.Upsert(context.Background(), UpdateCustomCommandInput{
		Name:     "tchau",
		Response: strPtr("até mais"),
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	deleted, err := mgr.Delete(context.Background(), "TCHAU")
	if err != nil || !deleted {
		t.Fatalf("Delete = (%v, %v)", deleted, err)
	}

	deleted, err = mgr.Delete(context.Background(), "tchau")
	if err != nil || deleted {
		t.Fatalf("Delete repetido = (%v, %v), esperava (false, nil)", deleted, err)
	}
}

func TestStaticCommandScopesPlatform(t *testing.T) {
	def := &domain.CustomCommand{
		Name:      "live",
		Response:  "estamos ao vivo!",
		Platforms: []domain.Platform{domain.PlatformTwitch},
	}
	cmd := NewStaticCommand(def)

	if !cmd.SupportsPlatform(domain.PlatformTwitch) {
		t.Fatalf("deveria suportar twitch")
	}
	if cmd.SupportsPlatform(domain.PlatformTelegram) {
		t.Fatalf("não deveria suportar telegram")
	}

	open := NewStaticCommand(&domain.CustomCommand{Name: "x", Response: "y"})
	if !open.SupportsPlatform(domain.PlatformTelegram) {
		t.Fatalf("sem lista de plataformas deveria valer em todas")
	}
}
