package server

import (
	"fmt"

	"github.com/getlistd/listd/pkg/config"
	"github.com/getlistd/listd/pkg/entry"
	"github.com/getlistd/listd/pkg/keeper"
	"github.com/getlistd/listd/pkg/portability"
)

// BuildStores creates the three keepers from a config: seeds are decoded,
// installed, and applied via Reset so a fresh daemon starts populated. The
// returned registry holds all three under their list names.
func BuildStores(cfg *config.Config) (*portability.Stores, *keeper.Registry, error) {
	stores := &portability.Stores{
		Tasks:     keeper.New[entry.Task]("tasks"),
		Groceries: keeper.New[entry.Grocery]("groceries"),
		Cards:     keeper.New[entry.Card]("cards"),
	}

	if err := seedKeeper(stores.Tasks, cfg.Lists.Tasks.Seeds); err != nil {
		return nil, nil, fmt.Errorf("tasks: %w", err)
	}
	if err := seedKeeper(stores.Groceries, cfg.Lists.Groceries.Seeds); err != nil {
		return nil, nil, fmt.Errorf("groceries: %w", err)
	}
	if err := seedKeeper(stores.Cards, cfg.Lists.Cards.Seeds); err != nil {
		return nil, nil, fmt.Errorf("cards: %w", err)
	}

	registry := keeper.NewRegistry()
	for _, l := range []keeper.List{stores.Tasks, stores.Groceries, stores.Cards} {
		if err := registry.Register(l); err != nil {
			return nil, nil, err
		}
	}
	return stores, registry, nil
}

func seedKeeper[T keeper.Entry](k *keeper.Keeper[T], seeds []map[string]interface{}) error {
	decoded, err := entry.DecodeSeeds[T](seeds)
	if err != nil {
		return err
	}
	if err := k.SetSeeds(decoded); err != nil {
		return err
	}
	k.Reset()
	return nil
}
