package driver

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
)

type Neo4jDriver struct {
	Driver neo4j.DriverWithContext
	log    *zap.Logger
}

func NewNeo4jDriver(uri, username, password string, log *zap.Logger) (*Neo4jDriver, error) {
	if log == nil {
		log = zap.NewNop()
	}

	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, err
	}

	if err := driver.VerifyConnectivity(context.Background()); err != nil {
		return nil, err
	}

	log.Info("connected to graph store", zap.String("uri", uri))
	return &Neo4jDriver{Driver: driver, log: log}, nil
}

func (d *Neo4jDriver) Close(ctx context.Context) error {
	return d.Driver.Close(ctx)
}

func (d *Neo4jDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	result, err := neo4j.ExecuteQuery(ctx, d.Driver, query, params, neo4j.EagerResultTransformer)
	if err != nil {
		return neo4j.EagerResult{}, fmt.Errorf("failed to execute query: %w", err)
	}
	return *result, nil
}

func (d *Neo4jDriver) BuildIndices(ctx context.Context) error {
	// One range index per node identity key. MERGE performance on the
	// bulk loads depends on these.
	queries := []string{
		"CREATE INDEX academic_area_code IF NOT EXISTS FOR (n:AcademicArea) ON (n.code)",
		"CREATE INDEX program_code IF NOT EXISTS FOR (n:Program) ON (n.code)",
		"CREATE INDEX institution_code IF NOT EXISTS FOR (n:Institution) ON (n.code)",
		"CREATE INDEX region_abbr IF NOT EXISTS FOR (n:Region) ON (n.abbr)",
		"CREATE INDEX municipality_code IF NOT EXISTS FOR (n:Municipality) ON (n.code)",
		"CREATE INDEX sector_name IF NOT EXISTS FOR (n:EconomicSector) ON (n.name)",
		"CREATE INDEX remuneration_amount IF NOT EXISTS FOR (n:RemunerationFact) ON (n.amount)",
	}

	for _, q := range queries {
		if _, err := d.ExecuteQuery(ctx, q, nil); err != nil {
			d.log.Warn("failed to create index", zap.String("query", q), zap.Error(err))
			// Continue, as index might already exist
		}
	}

	return nil
}
