package commands

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"papobot/internal/domain"
)

// CustomCommandManager cuida dos comandos de resposta fixa criados pelo chat.
// O registro do Router é imutável depois da inicialização, então alterações
// feitas aqui só entram no ar depois de reiniciar o bot; o manager persiste e
// valida, o Router só lê no startup.
type CustomCommandManager struct {
	repo domain.CustomCommandRepository

	mu         sync.RWMutex
	commands   map[string]*domain.CustomCommand
	isReserved func(string) bool
}

type UpdateCustomCommandInput struct {
	Name         string
	Response     *string
	Aliases      []string
	HasAliases   bool
	Platforms    []domain.Platform
	HasPlatforms bool
}

func NewCustomCommandManager(ctx context.Context, repo domain.CustomCommandRepository) (*CustomCommandManager, error) {
	mgr := &CustomCommandManager{
		repo:     repo,
		commands: make(map[string]*domain.CustomCommand),
	}

	if repo == nil {
		return mgr, nil
	}

	list, err := repo.ListCustomCommands(ctx)
	if err != nil {
		return nil, fmt.Errorf("custom manager: list: %w", err)
	}

	for _, cmd := range list {
		if cmd == nil {
			continue
		}
		name := normalizeCommandName(cmd.Name)
		if name == "" {
			continue
		}
		mgr.commands[name] = cloneCommand(cmd)
	}

	return mgr, nil
}

// SetReservedChecker instala a checagem de nomes ocupados por comandos
// embutidos, para um comando custom não sombrear o ping ou o help.
func (m *CustomCommandManager) SetReservedChecker(fn func(string) bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.isReserved = fn
}

func (m *CustomCommandManager) List() []*domain.CustomCommand {
	if m == nil {
		return nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*domain.CustomCommand, 0, len(m.commands))
	for _, cmd := range m.commands {
		out = append(out, cloneCommand(cmd))
	}
	slices.SortFunc(out, func(a, b *domain.CustomCommand) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out
}

func (m *CustomCommandManager) Upsert(ctx context.Context, input UpdateCustomCommandInput) (*domain.CustomCommand, bool, error) {
	if m == nil {
		return nil, false, fmt.Errorf("custom manager: nil")
	}
	name := normalizeCommandName(input.Name)
	if name == "" {
		return nil, false, fmt.Errorf("nome inválido")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Trabalha em uma cópia: se a validação ou a persistência falhar, a
	// entrada em memória fica intacta, igual ao banco e ao Router.
	created := false
	next := cloneCommand(m.commands[name])
	if next == nil {
		next = &domain.CustomCommand{Name: name}
		created = true
	}

	if input.Response != nil {
		next.Response = strings.TrimSpace(*input.Response)
	}
	if next.Response == "" {
		return nil, false, fmt.Errorf("a resposta do comando é obrigatória")
	}

	proposedAliases := next.Aliases
	if input.HasAliases {
		proposedAliases = normalizeAliasList(input.Aliases)
	}
	if err := m.ensureNoConflicts(name, created, proposedAliases, input.HasAliases); err != nil {
		return nil, false, err
	}

	if input.HasAliases {
		next.Aliases = proposedAliases
	}
	if input.HasPlatforms {
		next.Platforms = normalizePlatformList(input.Platforms)
	}
	next.UpdatedAt = time.Now()

	if m.repo != nil {
		if err := m.repo.UpsertCustomCommand(ctx, next); err != nil {
			return nil, false, err
		}
	}

	m.commands[name] = next
	return cloneCommand(next), created, nil
}

func (m *CustomCommandManager) Delete(ctx context.Context, name string) (bool, error) {
	if m == nil {
		return false, fmt.Errorf("custom manager: nil")
	}
	key := normalizeCommandName(name)
	if key == "" {
		return false, fmt.Errorf("nome inválido")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.commands[key]; !ok {
		return false, nil
	}

	if m.repo != nil {
		if err := m.repo.DeleteCustomCommand(ctx, key); err != nil {
			return false, err
		}
	}

	delete(m.commands, key)
	return true, nil
}

func (m *CustomCommandManager) ensureNoConflicts(name string, created bool, aliases []string, hasAliases bool) error {
	if created && m.isReserved != nil && m.isReserved(name) {
		return fmt.Errorf("o nome %q está reservado por outro comando", name)
	}

	if hasAliases && m.isReserved != nil {
		for _, alias := range aliases {
			if alias != "" && m.isReserved(alias) {
				return fmt.Errorf("o alias %q está reservado por outro comando", alias)
			}
		}
	}

	for existingName, cmd := range m.commands {
		if existingName == name {
			if created {
				return fmt.Errorf("já existe um comando com esse nome")
			}
			continue
		}
		if !hasAliases {
			continue
		}
		for _, alias := range aliases {
			if alias == "" {
				continue
			}
			if alias == existingName {
				return fmt.Errorf("o alias %q coincide com outro comando", alias)
			}
			for _, otherAlias := range cmd.Aliases {
				if alias == normalizeCommandName(otherAlias) {
					return fmt.Errorf("o alias %q já está em uso", alias)
				}
			}
		}
	}

	return nil
}

func normalizeCommandName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func normalizeAliasList(values []string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, v := range values {
		key := normalizeCommandName(v)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}

func normalizePlatformList(values []domain.Platform) []domain.Platform {
	var out []domain.Platform
	seen := make(map[domain.Platform]struct{})
	for _, v := range values {
		val := domain.Platform(strings.ToLower(strings.TrimSpace(string(v))))
		if val == "" {
			continue
		}
		if _, ok := seen[val]; ok {
			continue
		}
		seen[val] = struct{}{}
		out = append(out, val)
	}
	return out
}

func cloneCommand(cmd *domain.CustomCommand) *domain.CustomCommand {
	if cmd == nil {
		return nil
	}
	copyCmd := *cmd
	if cmd.Aliases != nil {
		copyCmd.Aliases = append([]string(nil), cmd.Aliases...)
	}
	if cmd.Platforms != nil {
		copyCmd.Platforms = append([]domain.Platform(nil), cmd.Platforms...)
	}
	return &copyCmd
}
