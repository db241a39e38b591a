package driver

// Node upserts MERGE on the identity key alone and set every other
// attribute ON CREATE only, so re-loading a source never rewrites what an
// earlier load established. Edge upserts MATCH their endpoints first: a
// missing endpoint yields zero records, which the loader reports as a
// dangling reference.
const (
	UpsertAcademicAreaQuery = `
		MERGE (a:AcademicArea {code: $code})
		ON CREATE SET a.name = $name
		RETURN a.code AS code
	`

	UpsertProgramQuery = `
		MERGE (p:Program {code: $code})
		ON CREATE SET p.name = $name,
			p.degree_level = $degree_level,
			p.modality = $modality
		RETURN p.code AS code
	`

	UpsertInstitutionQuery = `
		MERGE (i:Institution {code: $code})
		ON CREATE SET i.name = $name,
			i.admin_category = $admin_category,
			i.academic_org = $academic_org
		RETURN i.code AS code
	`

	UpsertRegionQuery = `
		MERGE (r:Region {abbr: $abbr})
		ON CREATE SET r.name = $name
		RETURN r.abbr AS abbr
	`

	UpsertMunicipalityQuery = `
		MERGE (m:Municipality {code: $code})
		ON CREATE SET m.name = $name
		RETURN m.code AS code
	`

	UpsertEconomicSectorQuery = `
		MERGE (s:EconomicSector {name: $name})
		RETURN s.name AS name
	`

	UpsertRemunerationFactQuery = `
		MERGE (f:RemunerationFact {amount: $amount})
		RETURN f.amount AS amount
	`

	UpsertBelongsToQuery = `
		MATCH (p:Program {code: $program_code})
		MATCH (a:AcademicArea {code: $area_code})
		MERGE (p)-[e:BELONGS_TO]->(a)
		RETURN p.code AS code
	`

	UpsertOfferedByQuery = `
		MATCH (p:Program {code: $program_code})
		MATCH (i:Institution {code: $institution_code})
		MERGE (p)-[e:OFFERED_BY]->(i)
		RETURN p.code AS code
	`

	UpsertInstitutionLocationQuery = `
		MATCH (i:Institution {code: $institution_code})
		MATCH (r:Region {abbr: $region_abbr})
		MERGE (i)-[e:LOCATED_IN]->(r)
		RETURN i.code AS code
	`

	UpsertMunicipalityLocationQuery = `
		MATCH (m:Municipality {code: $municipality_code})
		MATCH (r:Region {abbr: $region_abbr})
		MERGE (m)-[e:LOCATED_IN]->(r)
		RETURN m.code AS code
	`

	UpsertEmploysQuery = `
		MATCH (s:EconomicSector {name: $sector_name})
		MATCH (m:Municipality {code: $municipality_code})
		MERGE (s)-[e:EMPLOYS {year: $year}]->(m)
		ON CREATE SET e.count = $count
		RETURN e.year AS year
	`

	UpsertCohortTrajectoryQuery = `
		MATCH (p:Program {code: $program_code})
		MATCH (m:Municipality {code: $municipality_code})
		MERGE (p)-[e:COHORT_TRAJECTORY {year: $year}]->(m)
		ON CREATE SET e.entrants = $entrants,
			e.graduates = $graduates,
			e.dropout_rate = $dropout_rate
		RETURN e.year AS year
	`

	UpsertAvgRemunerationQuery = `
		MATCH (r:Region {abbr: $region_abbr})
		MATCH (f:RemunerationFact {amount: $amount})
		MERGE (r)-[e:AVG_REMUNERATION {year: $year}]->(f)
		RETURN e.year AS year
	`

	UpsertRelatedToQuery = `
		MATCH (a:AcademicArea {code: $area_code})
		MATCH (s:EconomicSector {name: $sector_name})
		MERGE (a)-[e:RELATED_TO]->(s)
		RETURN a.code AS code
	`

	NodeCountsQuery = `
		MATCH (n)
		UNWIND labels(n) AS label
		RETURN label, count(*) AS count
		ORDER BY label
	`

	EdgeCountsQuery = `
		MATCH ()-[e]->()
		RETURN type(e) AS kind, count(*) AS count
		ORDER BY kind
	`
)
