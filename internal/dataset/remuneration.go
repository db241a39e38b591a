package dataset

import "strconv"

// RemunerationSnapshotRow is one region x year average-remuneration
// observation, untyped as read from disk. The raw files key regions by
// full name only.
type RemunerationSnapshotRow struct {
	RegionName string
	Year       string
	Amount     string
}

// RemunerationRow is the typed, region-joined remuneration record.
// RegionAbbr is empty when the region name did not resolve against the
// lookup; the graph loader skips such rows as dangling.
type RemunerationRow struct {
	RegionName string
	RegionAbbr string
	Year       int
	Amount     float64
}

var remunerationHeader = []string{"region_name", "region_abbr", "year", "amount"}

// ReadRemunerationSnapshot loads one raw remuneration table.
func ReadRemunerationSnapshot(path string) ([]RemunerationSnapshotRow, error) {
	t, err := ReadTable(path)
	if err != nil {
		return nil, err
	}

	name := t.Col("region_name")
	year := t.Col("year")
	amount := t.Col("amount")

	rows := make([]RemunerationSnapshotRow, 0, len(t.Rows))
	for _, r := range t.Rows {
		rows = append(rows, RemunerationSnapshotRow{
			RegionName: cell(r, name),
			Year:       cell(r, year),
			Amount:     cell(r, amount),
		})
	}
	return rows, nil
}

// WriteRemuneration persists the joined remuneration table.
func WriteRemuneration(path string, rows []RemunerationRow) error {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.RegionName,
			r.RegionAbbr,
			strconv.Itoa(r.Year),
			strconv.FormatFloat(r.Amount, 'f', -1, 64),
		})
	}
	return WriteTable(path, remunerationHeader, out)
}

// ReadRemuneration loads a previously joined remuneration table.
func ReadRemuneration(path string) ([]RemunerationRow, error) {
	t, err := ReadTable(path)
	if err != nil {
		return nil, err
	}

	name := t.Col("region_name")
	abbr := t.Col("region_abbr")
	year := t.Col("year")
	amount := t.Col("amount")

	rows := make([]RemunerationRow, 0, len(t.Rows))
	for i, r := range t.Rows {
		yearV, err := strconv.Atoi(cell(r, year))
		if err != nil {
			return nil, rowError(path, i, "year", err)
		}
		amountV, err := strconv.ParseFloat(cell(r, amount), 64)
		if err != nil {
			return nil, rowError(path, i, "amount", err)
		}
		rows = append(rows, RemunerationRow{
			RegionName: cell(r, name),
			RegionAbbr: cell(r, abbr),
			Year:       yearV,
			Amount:     amountV,
		})
	}
	return rows, nil
}
