// Package vectorutils builds a vector.Driver from configuration.
package vectorutils

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/papercomputeco/researchpilot/pkg/vector"
	"github.com/papercomputeco/researchpilot/pkg/vector/inmemory"
	"github.com/papercomputeco/researchpilot/pkg/vector/pgvector"
	"github.com/papercomputeco/researchpilot/pkg/vector/qdrant"
	"github.com/papercomputeco/researchpilot/pkg/vector/sqlitevec"
)

const (
	ProviderMemory   = "memory"
	ProviderSQLite   = "sqlite"
	ProviderQdrant   = "qdrant"
	ProviderPgvector = "pgvector"
)

type NewVectorDriverOpts struct {
	ProviderType string

	// TargetURL is the database path for sqlite, the gRPC target for qdrant,
	// and the connection string for pgvector.
	TargetURL  string
	APIKey     string
	Collection string
	Dimensions uint
	Logger     *slog.Logger
}

// NewVectorDriver returns the driver for o.ProviderType. An empty provider
// selects the in-process index.
func NewVectorDriver(ctx context.Context, o *NewVectorDriverOpts) (vector.Driver, error) {
	switch o.ProviderType {
	case "", ProviderMemory:
		return inmemory.NewDriver(), nil
	case ProviderSQLite:
		return sqlitevec.NewDriver(sqlitevec.Config{
			DBPath:     o.TargetURL,
			Dimensions: o.Dimensions,
		}, o.Logger)
	case ProviderQdrant:
		return qdrant.NewDriver(ctx, qdrant.Config{
			Target:     o.TargetURL,
			APIKey:     o.APIKey,
			Collection: o.Collection,
			Dimensions: o.Dimensions,
		}, o.Logger)
	case ProviderPgvector:
		return pgvector.NewDriver(ctx, pgvector.Config{
			ConnStr:    o.TargetURL,
			Table:      o.Collection,
			Dimensions: o.Dimensions,
		}, o.Logger)
	default:
		return nil, fmt.Errorf("unsupported vector store provider: %s", o.ProviderType)
	}
}
