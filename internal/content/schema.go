package content

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// Models lists the bun models backing BunStore.
func Models() []any {
	return []any{
		(*Article)(nil),
		(*Category)(nil),
		(*Tag)(nil),
		(*Layout)(nil),
	}
}

// CreateSchema creates the delivery tables when they do not exist yet.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	for _, model := range Models() {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("create table %T: %w", model, err)
		}
	}
	return nil
}
