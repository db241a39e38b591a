// Package reconcile merges two employment snapshots whose municipality
// naming schemes drifted apart into a single typed table keyed by the
// canonical identities of the newer snapshot.
package reconcile

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/datalab-ufg/vinculo/internal/dataset"
	"github.com/datalab-ufg/vinculo/internal/match"
	"github.com/datalab-ufg/vinculo/internal/normalize"
)

// Reconciler matches legacy snapshot records against the current
// snapshot region by region and produces the combined employment table.
type Reconciler struct {
	matcher  match.Matcher
	regions  *dataset.RegionTable
	sentinel string
	log      *zap.Logger
}

// New builds a Reconciler. A zero matcher accepts any match score; the
// sentinel defaults to the unknown-region marker of the source data.
func New(matcher match.Matcher, regions *dataset.RegionTable, log *zap.Logger) *Reconciler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reconciler{
		matcher:  matcher,
		regions:  regions,
		sentinel: dataset.SentinelRegion,
		log:      log,
	}
}

// candidatePool is the current-snapshot slice of one region, with
// normalized names aligned to row indices.
type candidatePool struct {
	names []string
	rows  []int
}

// Reconcile runs the full merge: normalize names on both sides, match
// every legacy row against same-region current rows, rewrite matched
// legacy identities to the canonical (current) name and code, then
// concatenate, filter and coerce. Unmatched legacy rows carry an empty
// identity and fall to the drop-empty rule; region is a hard filter, so
// a legacy row with no same-region candidates is always unmatched.
func (rc *Reconciler) Reconcile(legacy, current []dataset.EmploymentSnapshotRow) ([]dataset.CombinedEmploymentRow, error) {
	pools := make(map[string]*candidatePool)
	for i, row := range current {
		pool, ok := pools[row.RegionAbbr]
		if !ok {
			pool = &candidatePool{}
			pools[row.RegionAbbr] = pool
		}
		pool.names = append(pool.names, normalize.Name(row.MunicipalityName))
		pool.rows = append(pool.rows, i)
	}

	merged := make([]dataset.EmploymentSnapshotRow, 0, len(legacy)+len(current))

	for _, row := range legacy {
		name := normalize.Name(row.MunicipalityName)

		var matched *dataset.EmploymentSnapshotRow
		if pool, ok := pools[row.RegionAbbr]; ok {
			if best, ok := rc.matcher.Best(name, pool.names); ok {
				matched = &current[pool.rows[best.Index]]
				rc.log.Debug("matched municipality",
					zap.String("region", row.RegionAbbr),
					zap.String("name", row.MunicipalityName),
					zap.String("canonical", matched.MunicipalityName),
					zap.Int("score", best.Score))
			}
		}

		out := row
		if matched != nil {
			out.MunicipalityName = matched.MunicipalityName
			out.MunicipalityCode = matched.MunicipalityCode
		} else {
			out.MunicipalityName = ""
			out.MunicipalityCode = ""
			rc.log.Debug("unmatched municipality",
				zap.String("region", row.RegionAbbr),
				zap.String("name", row.MunicipalityName))
		}
		merged = append(merged, out)
	}

	merged = append(merged, current...)

	combined := make([]dataset.CombinedEmploymentRow, 0, len(merged))
	for _, row := range merged {
		if row.RegionAbbr == rc.sentinel {
			rc.log.Debug("dropping sentinel-region row",
				zap.String("name", row.MunicipalityName),
				zap.String("sector", row.SectorName))
			continue
		}
		if row.RegionAbbr == "" || row.MunicipalityCode == "" || row.MunicipalityName == "" ||
			row.SectorName == "" || row.Year == "" || row.Employees == "" {
			rc.log.Debug("dropping incomplete row",
				zap.String("region", row.RegionAbbr),
				zap.String("name", row.MunicipalityName),
				zap.String("sector", row.SectorName),
				zap.String("year", row.Year))
			continue
		}

		code, err := strconv.ParseInt(row.MunicipalityCode, 10, 64)
		if err != nil {
			return nil, &MalformedRecordError{Column: "municipality_code", Value: row.MunicipalityCode, Err: err}
		}
		year, err := strconv.Atoi(row.Year)
		if err != nil {
			return nil, &MalformedRecordError{Column: "year", Value: row.Year, Err: err}
		}
		employees, err := RepairCount(row.Employees)
		if err != nil {
			rc.log.Warn("dropping row with unrepairable employee count",
				zap.String("region", row.RegionAbbr),
				zap.String("name", row.MunicipalityName),
				zap.String("raw", row.Employees),
				zap.Error(err))
			continue
		}

		combined = append(combined, dataset.CombinedEmploymentRow{
			RegionAbbr:       row.RegionAbbr,
			MunicipalityCode: code,
			MunicipalityName: row.MunicipalityName,
			SectorName:       row.SectorName,
			Year:             year,
			Employees:        employees,
		})
	}

	return combined, nil
}

// ReconcileRemuneration concatenates the two remuneration snapshots and
// joins the region abbreviation from the lookup by full region name. An
// unknown region name leaves the abbreviation empty; the graph loader
// later skips those rows as dangling. Year and amount failing coercion
// are fatal.
func (rc *Reconciler) ReconcileRemuneration(legacy, current []dataset.RemunerationSnapshotRow) ([]dataset.RemunerationRow, error) {
	snapshot := make([]dataset.RemunerationSnapshotRow, 0, len(legacy)+len(current))
	snapshot = append(snapshot, legacy...)
	snapshot = append(snapshot, current...)

	rows := make([]dataset.RemunerationRow, 0, len(snapshot))
	for _, row := range snapshot {
		year, err := strconv.Atoi(row.Year)
		if err != nil {
			return nil, &MalformedRecordError{Column: "year", Value: row.Year, Err: err}
		}
		amount, err := strconv.ParseFloat(row.Amount, 64)
		if err != nil {
			return nil, &MalformedRecordError{Column: "amount", Value: row.Amount, Err: err}
		}

		abbr := ""
		if region, ok := rc.regions.ByName(row.RegionName); ok {
			abbr = region.Abbr
		} else {
			rc.log.Warn("remuneration row has unknown region name",
				zap.String("region_name", row.RegionName),
				zap.Int("year", year))
		}

		rows = append(rows, dataset.RemunerationRow{
			RegionName: row.RegionName,
			RegionAbbr: abbr,
			Year:       year,
			Amount:     amount,
		})
	}
	return rows, nil
}
