package loader

import (
	"strconv"

	"github.com/datalab-ufg/vinculo/internal/dataset"
	"github.com/datalab-ufg/vinculo/internal/driver"
)

// EducationSource maps the education indicator table to the academic
// side of the graph: areas, programs, institutions and regions, plus the
// edges tying them together.
type EducationSource struct {
	Rows []dataset.EducationRow
}

func (s *EducationSource) Kind() string { return "education" }
func (s *EducationSource) Len() int     { return len(s.Rows) }

func (s *EducationSource) Plan(i int) RowPlan {
	r := s.Rows[i]
	program := strconv.FormatInt(r.ProgramCode, 10)
	institution := strconv.FormatInt(r.InstitutionCode, 10)
	area := strconv.Itoa(r.AreaCode)

	return RowPlan{
		Nodes: []NodeUpsert{
			{
				Query:  driver.UpsertAcademicAreaQuery,
				Params: map[string]interface{}{"code": r.AreaCode, "name": r.AreaName},
				Key:    "AcademicArea:" + area,
			},
			{
				Query: driver.UpsertProgramQuery,
				Params: map[string]interface{}{
					"code":         r.ProgramCode,
					"name":         r.ProgramName,
					"degree_level": r.DegreeLevel,
					"modality":     r.Modality,
				},
				Key: "Program:" + program,
			},
			{
				Query: driver.UpsertInstitutionQuery,
				Params: map[string]interface{}{
					"code":           r.InstitutionCode,
					"name":           r.InstitutionName,
					"admin_category": r.AdminCategory,
					"academic_org":   r.AcademicOrg,
				},
				Key: "Institution:" + institution,
			},
			{
				Query:  driver.UpsertRegionQuery,
				Params: map[string]interface{}{"abbr": r.RegionAbbr, "name": r.RegionName},
				Key:    "Region:" + r.RegionAbbr,
			},
		},
		Edges: []EdgeUpsert{
			{
				Query:  driver.UpsertBelongsToQuery,
				Params: map[string]interface{}{"program_code": r.ProgramCode, "area_code": r.AreaCode},
				Kind:   "BELONGS_TO",
				Source: "Program:" + program,
				Target: "AcademicArea:" + area,
			},
			{
				Query:  driver.UpsertOfferedByQuery,
				Params: map[string]interface{}{"program_code": r.ProgramCode, "institution_code": r.InstitutionCode},
				Kind:   "OFFERED_BY",
				Source: "Program:" + program,
				Target: "Institution:" + institution,
			},
			{
				Query:  driver.UpsertInstitutionLocationQuery,
				Params: map[string]interface{}{"institution_code": r.InstitutionCode, "region_abbr": r.RegionAbbr},
				Kind:   "LOCATED_IN",
				Source: "Institution:" + institution,
				Target: "Region:" + r.RegionAbbr,
			},
		},
	}
}

// EmploymentSource maps the reconciled employment table to municipality
// and sector nodes and the year-qualified EMPLOYS edges. Region names
// come from the injected lookup so that node creation stays commutative
// across source orderings.
type EmploymentSource struct {
	Rows    []dataset.CombinedEmploymentRow
	Regions *dataset.RegionTable
}

func (s *EmploymentSource) Kind() string { return "employment" }
func (s *EmploymentSource) Len() int     { return len(s.Rows) }

func (s *EmploymentSource) Plan(i int) RowPlan {
	r := s.Rows[i]
	municipality := strconv.FormatInt(r.MunicipalityCode, 10)

	regionName := ""
	if region, ok := s.Regions.ByAbbr(r.RegionAbbr); ok {
		regionName = region.Name
	}

	return RowPlan{
		Nodes: []NodeUpsert{
			{
				Query:  driver.UpsertRegionQuery,
				Params: map[string]interface{}{"abbr": r.RegionAbbr, "name": regionName},
				Key:    "Region:" + r.RegionAbbr,
			},
			{
				Query:  driver.UpsertMunicipalityQuery,
				Params: map[string]interface{}{"code": r.MunicipalityCode, "name": r.MunicipalityName},
				Key:    "Municipality:" + municipality,
			},
			{
				Query:  driver.UpsertEconomicSectorQuery,
				Params: map[string]interface{}{"name": r.SectorName},
				Key:    "EconomicSector:" + r.SectorName,
			},
		},
		Edges: []EdgeUpsert{
			{
				Query:  driver.UpsertMunicipalityLocationQuery,
				Params: map[string]interface{}{"municipality_code": r.MunicipalityCode, "region_abbr": r.RegionAbbr},
				Kind:   "LOCATED_IN",
				Source: "Municipality:" + municipality,
				Target: "Region:" + r.RegionAbbr,
			},
			{
				Query: driver.UpsertEmploysQuery,
				Params: map[string]interface{}{
					"sector_name":       r.SectorName,
					"municipality_code": r.MunicipalityCode,
					"year":              r.Year,
					"count":             r.Employees,
				},
				Kind:   "EMPLOYS",
				Source: "EconomicSector:" + r.SectorName,
				Target: "Municipality:" + municipality,
			},
		},
	}
}

// TrajectorySource maps the education indicator table to the
// year-qualified COHORT_TRAJECTORY edges. It creates no nodes: programs
// come from the education load and municipalities from the employment
// load, so rows referencing municipalities absent from the employment
// data are skipped as dangling.
type TrajectorySource struct {
	Rows []dataset.EducationRow
}

func (s *TrajectorySource) Kind() string { return "trajectory" }
func (s *TrajectorySource) Len() int     { return len(s.Rows) }

func (s *TrajectorySource) Plan(i int) RowPlan {
	r := s.Rows[i]
	return RowPlan{
		Edges: []EdgeUpsert{
			{
				Query: driver.UpsertCohortTrajectoryQuery,
				Params: map[string]interface{}{
					"program_code":      r.ProgramCode,
					"municipality_code": r.MunicipalityCode,
					"year":              r.Year,
					"entrants":          r.Entrants,
					"graduates":         r.Graduates,
					"dropout_rate":      r.DropoutRate,
				},
				Kind:   "COHORT_TRAJECTORY",
				Source: "Program:" + strconv.FormatInt(r.ProgramCode, 10),
				Target: "Municipality:" + strconv.FormatInt(r.MunicipalityCode, 10),
			},
		},
	}
}

// RemunerationSource maps the joined remuneration table to remuneration
// fact nodes and year-qualified AVG_REMUNERATION edges. Rows whose
// region name never resolved carry an empty abbreviation and are skipped
// as dangling.
type RemunerationSource struct {
	Rows []dataset.RemunerationRow
}

func (s *RemunerationSource) Kind() string { return "remuneration" }
func (s *RemunerationSource) Len() int     { return len(s.Rows) }

func (s *RemunerationSource) Plan(i int) RowPlan {
	r := s.Rows[i]
	amount := strconv.FormatFloat(r.Amount, 'f', -1, 64)

	nodes := []NodeUpsert{
		{
			Query:  driver.UpsertRemunerationFactQuery,
			Params: map[string]interface{}{"amount": r.Amount},
			Key:    "RemunerationFact:" + amount,
		},
	}
	if r.RegionAbbr != "" {
		nodes = append(nodes, NodeUpsert{
			Query:  driver.UpsertRegionQuery,
			Params: map[string]interface{}{"abbr": r.RegionAbbr, "name": r.RegionName},
			Key:    "Region:" + r.RegionAbbr,
		})
	}

	return RowPlan{
		Nodes: nodes,
		Edges: []EdgeUpsert{
			{
				Query: driver.UpsertAvgRemunerationQuery,
				Params: map[string]interface{}{
					"region_abbr": r.RegionAbbr,
					"amount":      r.Amount,
					"year":        r.Year,
				},
				Kind:   "AVG_REMUNERATION",
				Source: "Region:" + r.RegionAbbr,
				Target: "RemunerationFact:" + amount,
			},
		},
	}
}

// sectorsByArea relates each academic area to the economic sectors its
// graduates typically work in. Curated alongside the original datasets;
// kept static.
var sectorsByArea = map[int][]string{
	1:  {"Serviços"},
	2:  {"Serviços"},
	3:  {"Serviços"},
	4:  {"Serviços", "Comércio"},
	5:  {"Serviços", "Comércio", "Indústria"},
	6:  {"Serviços", "Comércio", "Indústria"},
	7:  {"Agropecuária", "Indústria", "Construção"},
	8:  {"Agropecuária", "Indústria", "Serviços"},
	9:  {"Serviços"},
	10: {"Serviços", "Comércio"},
}

type areaSector struct {
	code   int
	sector string
}

// SectorMapSource emits the static AcademicArea->EconomicSector
// RELATED_TO edges. Both endpoints must already exist; pairs whose area
// or sector never appeared in the loaded data are skipped as dangling.
type SectorMapSource struct {
	pairs []areaSector
}

// NewSectorMapSource expands the static area-to-sector table into one
// row per (area, sector) pair, in deterministic order.
func NewSectorMapSource() *SectorMapSource {
	s := &SectorMapSource{}
	for code := 1; code <= 10; code++ {
		for _, sector := range sectorsByArea[code] {
			s.pairs = append(s.pairs, areaSector{code: code, sector: sector})
		}
	}
	return s
}

func (s *SectorMapSource) Kind() string { return "sector_map" }
func (s *SectorMapSource) Len() int     { return len(s.pairs) }

func (s *SectorMapSource) Plan(i int) RowPlan {
	code := s.pairs[i].code
	sector := s.pairs[i].sector

	return RowPlan{
		Edges: []EdgeUpsert{
			{
				Query:  driver.UpsertRelatedToQuery,
				Params: map[string]interface{}{"area_code": code, "sector_name": sector},
				Kind:   "RELATED_TO",
				Source: "AcademicArea:" + strconv.Itoa(code),
				Target: "EconomicSector:" + sector,
			},
		},
	}
}
