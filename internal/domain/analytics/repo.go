package analytics

import "context"

type Repository interface {
	Overview(ctx context.Context) (*Overview, error)
}
