package dataset

import "strconv"

// EmploymentSnapshotRow is one region x municipality x sector x year
// observation of an employment snapshot, untyped as read from disk.
// The legacy snapshot carries no municipality codes, so MunicipalityCode
// stays empty until reconciliation assigns a canonical identity.
type EmploymentSnapshotRow struct {
	RegionAbbr       string
	MunicipalityCode string
	MunicipalityName string
	SectorName       string
	Year             string
	Employees        string
}

// CombinedEmploymentRow is one fully typed row of the reconciled
// employment table. Every field is non-empty by construction.
type CombinedEmploymentRow struct {
	RegionAbbr       string
	MunicipalityCode int64
	MunicipalityName string
	SectorName       string
	Year             int
	Employees        int64
}

var employmentHeader = []string{
	"region_abbr", "municipality_code", "municipality_name",
	"sector_name", "year", "employees",
}

// ReadEmploymentSnapshot loads an employment snapshot table. A missing
// municipality_code column is tolerated: the legacy snapshot predates
// municipality coding.
func ReadEmploymentSnapshot(path string) ([]EmploymentSnapshotRow, error) {
	t, err := ReadTable(path)
	if err != nil {
		return nil, err
	}

	region := t.Col("region_abbr")
	code := t.Col("municipality_code")
	name := t.Col("municipality_name")
	sector := t.Col("sector_name")
	year := t.Col("year")
	employees := t.Col("employees")

	rows := make([]EmploymentSnapshotRow, 0, len(t.Rows))
	for _, r := range t.Rows {
		rows = append(rows, EmploymentSnapshotRow{
			RegionAbbr:       cell(r, region),
			MunicipalityCode: cell(r, code),
			MunicipalityName: cell(r, name),
			SectorName:       cell(r, sector),
			Year:             cell(r, year),
			Employees:        cell(r, employees),
		})
	}
	return rows, nil
}

// WriteCombinedEmployment persists the reconciled employment table.
func WriteCombinedEmployment(path string, rows []CombinedEmploymentRow) error {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.RegionAbbr,
			strconv.FormatInt(r.MunicipalityCode, 10),
			r.MunicipalityName,
			r.SectorName,
			strconv.Itoa(r.Year),
			strconv.FormatInt(r.Employees, 10),
		})
	}
	return WriteTable(path, employmentHeader, out)
}

// ReadCombinedEmployment loads a previously reconciled employment table,
// re-validating the typed columns.
func ReadCombinedEmployment(path string) ([]CombinedEmploymentRow, error) {
	t, err := ReadTable(path)
	if err != nil {
		return nil, err
	}

	region := t.Col("region_abbr")
	code := t.Col("municipality_code")
	name := t.Col("municipality_name")
	sector := t.Col("sector_name")
	year := t.Col("year")
	employees := t.Col("employees")

	rows := make([]CombinedEmploymentRow, 0, len(t.Rows))
	for i, r := range t.Rows {
		codeV, err := strconv.ParseInt(cell(r, code), 10, 64)
		if err != nil {
			return nil, rowError(path, i, "municipality_code", err)
		}
		yearV, err := strconv.Atoi(cell(r, year))
		if err != nil {
			return nil, rowError(path, i, "year", err)
		}
		empV, err := strconv.ParseInt(cell(r, employees), 10, 64)
		if err != nil {
			return nil, rowError(path, i, "employees", err)
		}
		rows = append(rows, CombinedEmploymentRow{
			RegionAbbr:       cell(r, region),
			MunicipalityCode: codeV,
			MunicipalityName: cell(r, name),
			SectorName:       cell(r, sector),
			Year:             yearV,
			Employees:        empV,
		})
	}
	return rows, nil
}
