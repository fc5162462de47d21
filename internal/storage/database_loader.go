package storage

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"path"

	"github.com/leengari/queryviz/internal/domain/data"
)

var (
	userColumns  = []string{"id", "name", "country"}
	orderColumns = []string{"id", "uid", "product", "amount"}
)

// Seed is the pair of base relations, in seed order
type Seed struct {
	Name   string
	Users  []data.User
	Orders []data.Order
}

// LoadSeed decodes the users and orders tables of database dbName from fsys
func LoadSeed(fsys fs.FS, dbName string) (*Seed, error) {
	metaBytes, err := fs.ReadFile(fsys, path.Join(dbName, "meta.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to read database meta: %w", err)
	}

	var meta DatabaseMeta
	if err := json.Unmarshal(metaBytes, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse database meta: %w", err)
	}

	seed := &Seed{Name: meta.Name}

	usersMeta, err := loadTable(fsys, path.Join(dbName, "users"), userColumns, &seed.Users)
	if err != nil {
		return nil, fmt.Errorf("failed to load table users: %w", err)
	}
	ordersMeta, err := loadTable(fsys, path.Join(dbName, "orders"), orderColumns, &seed.Orders)
	if err != nil {
		return nil, fmt.Errorf("failed to load table orders: %w", err)
	}

	if err := checkRowCount(usersMeta, len(seed.Users)); err != nil {
		return nil, err
	}
	if err := checkRowCount(ordersMeta, len(seed.Orders)); err != nil {
		return nil, err
	}

	slog.Info("Seed loaded successfully",
		slog.String("name", seed.Name),
		slog.Int("users", len(seed.Users)),
		slog.Int("orders", len(seed.Orders)),
	)

	return seed, nil
}

func checkRowCount(meta *TableMeta, got int) error {
	if meta.RowCount != 0 && meta.RowCount != int64(got) {
		return fmt.Errorf("table %s: meta declares %d rows, data has %d", meta.Name, meta.RowCount, got)
	}
	return nil
}
