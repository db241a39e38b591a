package loader

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/datalab-ufg/vinculo/internal/driver"
)

// fakeStore is an in-memory stand-in for the graph store. It interprets
// the driver's query constants with MERGE semantics: nodes keyed by
// identity, edges keyed by (kind, endpoints, year), attributes written
// on create only. Edge queries whose endpoints are missing return zero
// records, exactly like a failed MATCH.
type fakeStore struct {
	nodes map[string]map[string]map[string]interface{} // label -> key -> props
	edges map[string]map[string]interface{}            // composite key -> props
	calls []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		nodes: make(map[string]map[string]map[string]interface{}),
		edges: make(map[string]map[string]interface{}),
	}
}

func (f *fakeStore) Close(ctx context.Context) error { return nil }

func (f *fakeStore) BuildIndices(ctx context.Context) error { return nil }

func (f *fakeStore) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	f.calls = append(f.calls, query)

	switch query {
	case driver.UpsertAcademicAreaQuery:
		f.mergeNode("AcademicArea", params["code"], params, "name")
	case driver.UpsertProgramQuery:
		f.mergeNode("Program", params["code"], params, "name", "degree_level", "modality")
	case driver.UpsertInstitutionQuery:
		f.mergeNode("Institution", params["code"], params, "name", "admin_category", "academic_org")
	case driver.UpsertRegionQuery:
		f.mergeNode("Region", params["abbr"], params, "name")
	case driver.UpsertMunicipalityQuery:
		f.mergeNode("Municipality", params["code"], params, "name")
	case driver.UpsertEconomicSectorQuery:
		f.mergeNode("EconomicSector", params["name"], params)
	case driver.UpsertRemunerationFactQuery:
		f.mergeNode("RemunerationFact", params["amount"], params)

	case driver.UpsertBelongsToQuery:
		return f.mergeEdge("BELONGS_TO",
			"Program", params["program_code"], "AcademicArea", params["area_code"], nil, params)
	case driver.UpsertOfferedByQuery:
		return f.mergeEdge("OFFERED_BY",
			"Program", params["program_code"], "Institution", params["institution_code"], nil, params)
	case driver.UpsertInstitutionLocationQuery:
		return f.mergeEdge("LOCATED_IN",
			"Institution", params["institution_code"], "Region", params["region_abbr"], nil, params)
	case driver.UpsertMunicipalityLocationQuery:
		return f.mergeEdge("LOCATED_IN",
			"Municipality", params["municipality_code"], "Region", params["region_abbr"], nil, params)
	case driver.UpsertEmploysQuery:
		return f.mergeEdge("EMPLOYS",
			"EconomicSector", params["sector_name"], "Municipality", params["municipality_code"],
			params["year"], params, "count")
	case driver.UpsertCohortTrajectoryQuery:
		return f.mergeEdge("COHORT_TRAJECTORY",
			"Program", params["program_code"], "Municipality", params["municipality_code"],
			params["year"], params, "entrants", "graduates", "dropout_rate")
	case driver.UpsertAvgRemunerationQuery:
		return f.mergeEdge("AVG_REMUNERATION",
			"Region", params["region_abbr"], "RemunerationFact", params["amount"],
			params["year"], params)
	case driver.UpsertRelatedToQuery:
		return f.mergeEdge("RELATED_TO",
			"AcademicArea", params["area_code"], "EconomicSector", params["sector_name"], nil, params)
	}

	return oneRecord(), nil
}

func (f *fakeStore) mergeNode(label string, key interface{}, params map[string]interface{}, attrs ...string) {
	byKey, ok := f.nodes[label]
	if !ok {
		byKey = make(map[string]map[string]interface{})
		f.nodes[label] = byKey
	}

	k := fmt.Sprint(key)
	if _, exists := byKey[k]; exists {
		return // first-write-wins
	}

	props := make(map[string]interface{}, len(attrs))
	for _, a := range attrs {
		props[a] = params[a]
	}
	byKey[k] = props
}

func (f *fakeStore) hasNode(label string, key interface{}) bool {
	_, ok := f.nodes[label][fmt.Sprint(key)]
	return ok
}

func (f *fakeStore) mergeEdge(kind, srcLabel string, srcKey interface{}, tgtLabel string, tgtKey interface{},
	year interface{}, params map[string]interface{}, attrs ...string) (neo4j.EagerResult, error) {

	if !f.hasNode(srcLabel, srcKey) || !f.hasNode(tgtLabel, tgtKey) {
		return neo4j.EagerResult{}, nil // MATCH failed: zero records
	}

	key := fmt.Sprintf("%s|%s:%v|%s:%v|year=%v", kind, srcLabel, srcKey, tgtLabel, tgtKey, year)
	if _, exists := f.edges[key]; exists {
		return oneRecord(), nil // first-write-wins
	}

	props := make(map[string]interface{}, len(attrs))
	for _, a := range attrs {
		props[a] = params[a]
	}
	f.edges[key] = props
	return oneRecord(), nil
}

func (f *fakeStore) nodeCount(label string) int { return len(f.nodes[label]) }

func (f *fakeStore) nodeProp(label string, key interface{}, prop string) interface{} {
	return f.nodes[label][fmt.Sprint(key)][prop]
}

func (f *fakeStore) edgeCount(kind string) int {
	n := 0
	for k := range f.edges {
		if len(k) >= len(kind) && k[:len(kind)] == kind {
			n++
		}
	}
	return n
}

func (f *fakeStore) edgeProps(kind, srcLabel string, srcKey interface{}, tgtLabel string, tgtKey interface{}, year interface{}) map[string]interface{} {
	key := fmt.Sprintf("%s|%s:%v|%s:%v|year=%v", kind, srcLabel, srcKey, tgtLabel, tgtKey, year)
	return f.edges[key]
}

func oneRecord() neo4j.EagerResult {
	return neo4j.EagerResult{
		Keys:    []string{"ok"},
		Records: []*neo4j.Record{{Keys: []string{"ok"}, Values: []interface{}{true}}},
	}
}
