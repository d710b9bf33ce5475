package domain

import "context"

// RecipeSource provides recipe definitions. The built-in catalog is the
// only implementation today; a remote menu could satisfy it later.
type RecipeSource interface {
	List(ctx context.Context) ([]RecipeSummary, error)
	Get(ctx context.Context, id string) (*RecipeDefinition, error)
	Search(ctx context.Context, query string) ([]RecipeSummary, error)
}

// ProgressStore persists the account-durable save record. Implementations
// can be in-memory, a JSON file, SQLite, or any other backend. Load returns
// ErrNotFound when nothing has been saved yet.
type ProgressStore interface {
	Save(ctx context.Context, rec *SaveRecord) error
	Load(ctx context.Context) (*SaveRecord, error)
}

// CommandParser converts raw player input into structured commands.
type CommandParser interface {
	Parse(ctx context.Context, input string) (*Command, error)
}

// Notifier delivers messages to the player. Implementations can write to
// stdout or to the terminal UI.
type Notifier interface {
	Notify(ctx context.Context, message string) error
	NotifyUrgent(ctx context.Context, message string) error
}
