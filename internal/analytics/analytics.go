// Package analytics runs the canned read-only queries against the
// populated graph and exports their results.
package analytics

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/datalab-ufg/vinculo/internal/driver"
)

// NamedQuery is one canned analytical query.
type NamedQuery struct {
	Name        string
	Description string
	Cypher      string
}

// Result is a tabular query result.
type Result struct {
	Columns []string
	Rows    [][]interface{}
}

type Runner struct {
	driver driver.GraphDriver
	log    *zap.Logger
}

func NewRunner(d driver.GraphDriver, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{driver: d, log: log}
}

// List returns the available queries in declaration order.
func (r *Runner) List() []NamedQuery {
	out := make([]NamedQuery, len(queries))
	copy(out, queries)
	return out
}

// Run executes the named query and collects its rows.
func (r *Runner) Run(ctx context.Context, name string) (*Result, error) {
	var q *NamedQuery
	for i := range queries {
		if queries[i].Name == name {
			q = &queries[i]
			break
		}
	}
	if q == nil {
		return nil, fmt.Errorf("unknown query %q", name)
	}

	result, err := r.driver.ExecuteQuery(ctx, q.Cypher, nil)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", name, err)
	}

	out := &Result{Columns: result.Keys}
	for _, record := range result.Records {
		out.Rows = append(out.Rows, record.Values)
	}

	r.log.Info("query executed", zap.String("query", name), zap.Int("rows", len(out.Rows)))
	return out, nil
}

// WriteCSV exports a result comma-delimited with a header row.
func WriteCSV(w io.Writer, result *Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(result.Columns); err != nil {
		return err
	}
	for _, row := range result.Rows {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = fmt.Sprint(v)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
