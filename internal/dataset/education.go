package dataset

import (
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// EducationRow is one program x institution x municipality x year record
// of the higher-education indicator table, fully typed. RegionAbbr and
// RegionName come from the static lookup joined on the numeric region
// code carried by the raw file.
type EducationRow struct {
	InstitutionCode  int64
	InstitutionName  string
	AdminCategory    int
	AcademicOrg      int
	ProgramCode      int64
	ProgramName      string
	DegreeLevel      int
	Modality         int
	MunicipalityCode int64
	AreaCode         int
	AreaName         string
	Year             int
	Entrants         int64
	Graduates        int64
	DropoutRate      float64
	RegionAbbr       string
	RegionName       string
}

// ReadEducation loads the education indicator table, joins the region
// lookup on region_code and drops incomplete rows. Rows referencing an
// unknown region code or failing numeric coercion are dropped and
// logged, mirroring the drop-null policy of the reconciled tables.
func ReadEducation(path string, regions *RegionTable, log *zap.Logger) ([]EducationRow, error) {
	if log == nil {
		log = zap.NewNop()
	}

	t, err := ReadTable(path)
	if err != nil {
		return nil, err
	}

	cols := map[string]int{}
	for _, name := range []string{
		"institution_code", "institution_name", "admin_category",
		"academic_org", "program_code", "program_name", "degree_level",
		"modality", "municipality_code", "area_code", "area_name",
		"year", "entrants", "graduates", "dropout_rate", "region_code",
	} {
		cols[name] = t.Col(name)
	}

	rows := make([]EducationRow, 0, len(t.Rows))
	for i, r := range t.Rows {
		get := func(name string) string { return cell(r, cols[name]) }

		incomplete := false
		for name := range cols {
			if get(name) == "" {
				incomplete = true
				break
			}
		}
		if incomplete {
			log.Debug("dropping incomplete education row",
				zap.String("source", path),
				zap.Int("row", i+1),
				zap.String("program", get("program_name")))
			continue
		}

		row, err := parseEducationRow(get)
		if err != nil {
			log.Warn("dropping malformed education row",
				zap.String("source", path),
				zap.Int("row", i+1),
				zap.Error(err))
			continue
		}

		regionCode, _ := strconv.Atoi(get("region_code"))
		region, ok := regions.ByCode(regionCode)
		if !ok {
			log.Warn("dropping education row with unknown region code",
				zap.String("source", path),
				zap.Int("row", i+1),
				zap.String("region_code", get("region_code")))
			continue
		}
		row.RegionAbbr = region.Abbr
		row.RegionName = region.Name

		rows = append(rows, row)
	}
	return rows, nil
}

func parseEducationRow(get func(string) string) (EducationRow, error) {
	var row EducationRow
	var err error

	if row.InstitutionCode, err = strconv.ParseInt(get("institution_code"), 10, 64); err != nil {
		return row, err
	}
	if row.AdminCategory, err = strconv.Atoi(get("admin_category")); err != nil {
		return row, err
	}
	if row.AcademicOrg, err = strconv.Atoi(get("academic_org")); err != nil {
		return row, err
	}
	if row.ProgramCode, err = strconv.ParseInt(get("program_code"), 10, 64); err != nil {
		return row, err
	}
	if row.DegreeLevel, err = strconv.Atoi(get("degree_level")); err != nil {
		return row, err
	}
	if row.Modality, err = strconv.Atoi(get("modality")); err != nil {
		return row, err
	}
	if row.MunicipalityCode, err = strconv.ParseInt(get("municipality_code"), 10, 64); err != nil {
		return row, err
	}
	if row.AreaCode, err = strconv.Atoi(get("area_code")); err != nil {
		return row, err
	}
	if row.Year, err = strconv.Atoi(get("year")); err != nil {
		return row, err
	}
	if row.Entrants, err = strconv.ParseInt(get("entrants"), 10, 64); err != nil {
		return row, err
	}
	if row.Graduates, err = strconv.ParseInt(get("graduates"), 10, 64); err != nil {
		return row, err
	}

	// Dropout rates arrive with a decimal comma.
	rate := strings.ReplaceAll(get("dropout_rate"), ",", ".")
	if row.DropoutRate, err = strconv.ParseFloat(rate, 64); err != nil {
		return row, err
	}

	row.InstitutionName = get("institution_name")
	row.ProgramName = get("program_name")
	row.AreaName = get("area_name")
	return row, nil
}
