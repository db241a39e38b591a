package analytics

// The canned analytical queries are read-only and assume exactly the
// schema the loader writes. Names double as CLI arguments and API paths.
var queries = []NamedQuery{
	{
		Name: "sector-employment-by-program",
		Description: "Programs in areas related to the agricultural sector and " +
			"the 2023 employment headcount of that sector per municipality.",
		Cypher: `
			MATCH (s:EconomicSector)
			WHERE toLower(s.name) CONTAINS "agropecuária"
			MATCH (p:Program)
			WHERE toLower(p.name) CONTAINS "agro" OR toLower(p.name) CONTAINS "amb"
			MATCH (p)-[:BELONGS_TO]->(a:AcademicArea)-[:RELATED_TO]->(s),
			      (s)-[e:EMPLOYS {year: 2023}]->(m:Municipality)
			RETURN DISTINCT p.name AS program, a.name AS area, s.name AS sector,
			       m.name AS municipality, e.count AS employees
			ORDER BY employees DESC
		`,
	},
	{
		Name: "program-remuneration-by-state",
		Description: "Institutions offering computing programs and the average " +
			"2023 remuneration of the state they sit in.",
		Cypher: `
			MATCH (p:Program)
			WHERE toLower(p.name) CONTAINS "computação"
			MATCH (p)-[:OFFERED_BY]->(i:Institution)-[:LOCATED_IN]->(r:Region),
			      (r)-[:AVG_REMUNERATION {year: 2023}]->(f:RemunerationFact)
			RETURN DISTINCT p.name AS program, i.name AS institution,
			       r.name AS state, f.amount AS remuneration
			ORDER BY program ASC, remuneration DESC
		`,
	},
	{
		Name: "top-employment-outside-capital",
		Description: "Areas, sectors and municipalities with the highest 2023 " +
			"employment in São Paulo state, capital excluded.",
		Cypher: `
			MATCH (r:Region {abbr: 'SP'})
			MATCH (m:Municipality)
			WHERE m.name <> 'São Paulo'
			MATCH (a:AcademicArea)-[:RELATED_TO]->(s:EconomicSector),
			      (s)-[e:EMPLOYS {year: 2023}]->(m), (m)-[:LOCATED_IN]->(r)
			RETURN a.name AS area, s.name AS sector, m.name AS municipality,
			       e.count AS employees
			ORDER BY employees DESC
		`,
	},
	{
		Name:        "high-dropout-programs",
		Description: "Programs with a cohort dropout rate above 50%.",
		Cypher: `
			MATCH (p:Program)-[:OFFERED_BY]->(i:Institution)-[:LOCATED_IN]->(r:Region),
			      (p)-[t:COHORT_TRAJECTORY]->(m:Municipality)
			WHERE t.dropout_rate > 50.0
			RETURN DISTINCT p.name AS program, i.name AS institution,
			       r.name AS state, t.year AS year, t.dropout_rate AS dropout_rate
			ORDER BY dropout_rate DESC
			LIMIT 1000
		`,
	},
	{
		Name: "entrants-vs-state-remuneration",
		Description: "2022 entrants per program against the average remuneration " +
			"of the state hosting the institution.",
		Cypher: `
			MATCH (p:Program)-[:OFFERED_BY]->(i:Institution)-[:LOCATED_IN]->(r:Region),
			      (p)-[t:COHORT_TRAJECTORY {year: 2022}]->(:Municipality),
			      (r)-[:AVG_REMUNERATION {year: 2022}]->(f:RemunerationFact)
			WITH p.name AS program, r.name AS state,
			     sum(t.entrants) AS entrants, avg(f.amount) AS avg_remuneration
			RETURN program, state, entrants, round(avg_remuneration, 2) AS avg_remuneration
			ORDER BY state, entrants DESC
		`,
	},
	{
		Name: "remuneration-drop-vs-dropout-rise",
		Description: "States whose average remuneration fell between 2020 and 2023 " +
			"while program dropout rates rose.",
		Cypher: `
			MATCH (r:Region)
			MATCH (r)-[:AVG_REMUNERATION {year: 2020}]->(f2020:RemunerationFact),
			      (r)-[:AVG_REMUNERATION {year: 2023}]->(f2023:RemunerationFact)
			WITH r, (f2023.amount - f2020.amount) AS remuneration_delta
			MATCH (r)<-[:LOCATED_IN]-(i:Institution)<-[:OFFERED_BY]-(p:Program),
			      (p)-[t2020:COHORT_TRAJECTORY {year: 2020}]->(:Municipality),
			      (p)-[t2023:COHORT_TRAJECTORY {year: 2023}]->(:Municipality)
			WITH r.name AS state, remuneration_delta,
			     avg(t2023.dropout_rate) - avg(t2020.dropout_rate) AS dropout_delta
			WHERE dropout_delta > 0 AND remuneration_delta < 0
			RETURN state, round(dropout_delta, 2) AS dropout_rise,
			       round(remuneration_delta, 2) AS remuneration_change
			ORDER BY dropout_rise DESC
		`,
	},
}
