package club

import "context"

type Repository interface {
	// FindByLowerName matches clubs whose lowercased name equals key.
	FindByLowerName(ctx context.Context, key string) (Club, bool, error)
	GetByID(ctx context.Context, clubID int64) (Club, bool, error)
	List(ctx context.Context) ([]Club, error)
	// Create returns an error marked as a unique conflict when the name is taken.
	Create(ctx context.Context, name string) (Club, error)
}
