package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/jmturner/pocketwatch/internal/common"
	"github.com/jmturner/pocketwatch/internal/config"
	"github.com/jmturner/pocketwatch/internal/storage"
	"github.com/jmturner/pocketwatch/internal/store"
)

// openStore opens the database and loads the finance store from it.
// Callers must Close the returned KV when done.
func openStore(ctx context.Context) (*store.Store, *storage.KV, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath
	}
	dbPath = config.ExpandPath(dbPath)

	kv, err := storage.Open(ctx, dbPath)
	if err != nil {
		return nil, nil, common.NewUserError(fmt.Sprintf("could not open database at %s", dbPath), err)
	}

	return store.New(ctx, kv), kv, nil
}
