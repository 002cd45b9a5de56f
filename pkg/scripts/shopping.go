package scripts

import (
	"context"
	"strings"

	"github.com/printerm/printerm/pkg/config"
)

func init() {
	MustRegisterProvider(&shoppingListProvider{items: configuredItems})
}

// shoppingListProvider formats the standing shopping list from the
// configuration into checkbox lines. ASCII checkboxes print reliably
// whether or not special letters are enabled.
type shoppingListProvider struct {
	items func() ([]string, error)
}

func configuredItems() ([]string, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return cfg.Scripts.ShoppingListItems, nil
}

func (p *shoppingListProvider) Name() string {
	return "shopping_list"
}

func (p *shoppingListProvider) Description() string {
	return "Formats the configured shopping list with checkboxes"
}

func (p *shoppingListProvider) GenerateContext(ctx context.Context) (map[string]string, error) {
	items, err := p.items()
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		items = []string{"Add your items here"}
	}

	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "[ ] " + item
	}
	return map[string]string{"items": strings.Join(lines, "\n")}, nil
}
