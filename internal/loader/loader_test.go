package loader

import (
	"context"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datalab-ufg/vinculo/internal/dataset"
)

func employmentRows() []dataset.CombinedEmploymentRow {
	return []dataset.CombinedEmploymentRow{
		{RegionAbbr: "SP", MunicipalityCode: 3550308, MunicipalityName: "São Paulo", SectorName: "Serviços", Year: 2023, Employees: 9000},
		{RegionAbbr: "SP", MunicipalityCode: 3509502, MunicipalityName: "Campinas", SectorName: "Indústria", Year: 2023, Employees: 4000},
	}
}

func educationRows() []dataset.EducationRow {
	return []dataset.EducationRow{
		{
			InstitutionCode: 55, InstitutionName: "Universidade Federal de Goiás",
			AdminCategory: 1, AcademicOrg: 1,
			ProgramCode: 1234, ProgramName: "Ciência da Computação",
			DegreeLevel: 1, Modality: 1,
			MunicipalityCode: 3550308,
			AreaCode:         6, AreaName: "Computação e TIC",
			Year: 2023, Entrants: 120, Graduates: 80, DropoutRate: 12.5,
			RegionAbbr: "GO", RegionName: "Goiás",
		},
	}
}

func TestLoad_EmploymentSource(t *testing.T) {
	store := newFakeStore()
	l := New(store, nil)

	stats, err := l.Load(context.Background(), &EmploymentSource{Rows: employmentRows(), Regions: dataset.NewRegionTable()})
	require.NoError(t, err)
	assert.Equal(t, Stats{Rows: 2, Skipped: 0}, stats)

	assert.Equal(t, 1, store.nodeCount("Region"))
	assert.Equal(t, 2, store.nodeCount("Municipality"))
	assert.Equal(t, 2, store.nodeCount("EconomicSector"))
	assert.Equal(t, "São Paulo", store.nodeProp("Region", "SP", "name"))
	assert.Equal(t, 2, store.edgeCount("EMPLOYS"))
	assert.Equal(t, 2, store.edgeCount("LOCATED_IN"))
}

func TestLoad_Idempotent(t *testing.T) {
	store := newFakeStore()
	l := New(store, nil)
	src := &EmploymentSource{Rows: employmentRows(), Regions: dataset.NewRegionTable()}

	_, err := l.Load(context.Background(), src)
	require.NoError(t, err)

	nodesAfterFirst := snapshotNodes(store)
	edgesAfterFirst := snapshotEdges(store)

	_, err = l.Load(context.Background(), src)
	require.NoError(t, err)

	assert.True(t, reflect.DeepEqual(nodesAfterFirst, snapshotNodes(store)), "second load must not change nodes")
	assert.True(t, reflect.DeepEqual(edgesAfterFirst, snapshotEdges(store)), "second load must not change edges")
}

func TestLoad_NodeCreationCommutative(t *testing.T) {
	regions := dataset.NewRegionTable()

	a := newFakeStore()
	la := New(a, nil)
	_, _ = la.Load(context.Background(), &EducationSource{Rows: educationRows()})
	_, _ = la.Load(context.Background(), &EmploymentSource{Rows: employmentRows(), Regions: regions})

	b := newFakeStore()
	lb := New(b, nil)
	_, _ = lb.Load(context.Background(), &EmploymentSource{Rows: employmentRows(), Regions: regions})
	_, _ = lb.Load(context.Background(), &EducationSource{Rows: educationRows()})

	assert.True(t, reflect.DeepEqual(snapshotNodes(a), snapshotNodes(b)),
		"final node set must not depend on source order")
}

func TestLoad_FirstWriteWinsNodeAttributes(t *testing.T) {
	store := newFakeStore()
	l := New(store, nil)
	regions := dataset.NewRegionTable()

	rows := []dataset.CombinedEmploymentRow{
		{RegionAbbr: "SP", MunicipalityCode: 3530803, MunicipalityName: "Mogi Mirim", SectorName: "Serviços", Year: 2021, Employees: 10},
		{RegionAbbr: "SP", MunicipalityCode: 3530803, MunicipalityName: "Moji Mirim", SectorName: "Serviços", Year: 2023, Employees: 20},
	}

	_, err := l.Load(context.Background(), &EmploymentSource{Rows: rows, Regions: regions})
	require.NoError(t, err)

	assert.Equal(t, 1, store.nodeCount("Municipality"))
	assert.Equal(t, "Mogi Mirim", store.nodeProp("Municipality", int64(3530803), "name"))
}

func TestLoad_EdgeCompositeKeyIncludesYear(t *testing.T) {
	store := newFakeStore()
	l := New(store, nil)
	regions := dataset.NewRegionTable()

	rows := []dataset.CombinedEmploymentRow{
		{RegionAbbr: "SP", MunicipalityCode: 3550308, MunicipalityName: "São Paulo", SectorName: "Serviços", Year: 2021, Employees: 8000},
		{RegionAbbr: "SP", MunicipalityCode: 3550308, MunicipalityName: "São Paulo", SectorName: "Serviços", Year: 2023, Employees: 9000},
	}

	_, err := l.Load(context.Background(), &EmploymentSource{Rows: rows, Regions: regions})
	require.NoError(t, err)

	// Same endpoints, different years: two distinct facts.
	assert.Equal(t, 2, store.edgeCount("EMPLOYS"))
}

func TestLoad_EdgeAttributesFirstWriteWins(t *testing.T) {
	store := newFakeStore()
	l := New(store, nil)
	regions := dataset.NewRegionTable()

	rows := []dataset.CombinedEmploymentRow{
		{RegionAbbr: "SP", MunicipalityCode: 3550308, MunicipalityName: "São Paulo", SectorName: "Serviços", Year: 2023, Employees: 9000},
		{RegionAbbr: "SP", MunicipalityCode: 3550308, MunicipalityName: "São Paulo", SectorName: "Serviços", Year: 2023, Employees: 12345},
	}

	_, err := l.Load(context.Background(), &EmploymentSource{Rows: rows, Regions: regions})
	require.NoError(t, err)

	// Same composite key: one edge, first-seen count retained.
	assert.Equal(t, 1, store.edgeCount("EMPLOYS"))
	props := store.edgeProps("EMPLOYS", "EconomicSector", "Serviços", "Municipality", int64(3550308), 2023)
	require.NotNil(t, props)
	assert.Equal(t, int64(9000), props["count"])
}

func TestLoad_DanglingReferenceSkipsRowOnly(t *testing.T) {
	store := newFakeStore()
	l := New(store, nil)
	regions := dataset.NewRegionTable()

	// Employment creates the municipality; education creates the program.
	_, err := l.Load(context.Background(), &EmploymentSource{Rows: employmentRows(), Regions: regions})
	require.NoError(t, err)
	_, err = l.Load(context.Background(), &EducationSource{Rows: educationRows()})
	require.NoError(t, err)

	trajectories := []dataset.EducationRow{
		educationRows()[0],
		{ProgramCode: 1234, MunicipalityCode: 9999999, Year: 2023, Entrants: 5, Graduates: 1, DropoutRate: 80},
	}

	stats, err := l.Load(context.Background(), &TrajectorySource{Rows: trajectories})
	require.NoError(t, err)
	assert.Equal(t, Stats{Rows: 2, Skipped: 1}, stats)
	assert.Equal(t, 1, store.edgeCount("COHORT_TRAJECTORY"))
}

func TestLoad_SectorMapDanglingPairsSkipped(t *testing.T) {
	store := newFakeStore()
	l := New(store, nil)
	regions := dataset.NewRegionTable()

	// Only area 6 and the sectors of the employment rows exist.
	_, err := l.Load(context.Background(), &EducationSource{Rows: educationRows()})
	require.NoError(t, err)
	_, err = l.Load(context.Background(), &EmploymentSource{Rows: employmentRows(), Regions: regions})
	require.NoError(t, err)

	src := NewSectorMapSource()
	stats, err := l.Load(context.Background(), src)
	require.NoError(t, err)

	// Area 6 relates to Serviços, Comércio and Indústria; only Serviços
	// and Indústria sectors were loaded.
	assert.Equal(t, 2, store.edgeCount("RELATED_TO"))
	assert.Equal(t, src.Len()-2, stats.Skipped)
}

func snapshotNodes(f *fakeStore) map[string]map[string]map[string]interface{} {
	out := make(map[string]map[string]map[string]interface{}, len(f.nodes))
	for label, byKey := range f.nodes {
		cp := make(map[string]map[string]interface{}, len(byKey))
		for k, props := range byKey {
			p := make(map[string]interface{}, len(props))
			for name, v := range props {
				p[name] = v
			}
			cp[k] = p
		}
		out[label] = cp
	}
	return out
}

func snapshotEdges(f *fakeStore) map[string]map[string]interface{} {
	out := make(map[string]map[string]interface{}, len(f.edges))
	for k, props := range f.edges {
		p := make(map[string]interface{}, len(props))
		for name, v := range props {
			p[name] = v
		}
		out[k] = p
	}
	return out
}
