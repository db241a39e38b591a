package dataset

// Region is one federative unit of the static lookup table.
type Region struct {
	Code int
	Abbr string
	Name string
}

// SentinelRegion marks rows whose region was not informed in the source
// data; they never reach the graph.
const SentinelRegion = "NI"

// regions is the stable enumeration of the 27 federative units.
var regions = []Region{
	{12, "AC", "Acre"},
	{27, "AL", "Alagoas"},
	{13, "AM", "Amazonas"},
	{16, "AP", "Amapá"},
	{29, "BA", "Bahia"},
	{23, "CE", "Ceará"},
	{53, "DF", "Distrito Federal"},
	{32, "ES", "Espírito Santo"},
	{52, "GO", "Goiás"},
	{21, "MA", "Maranhão"},
	{31, "MG", "Minas Gerais"},
	{50, "MS", "Mato Grosso do Sul"},
	{51, "MT", "Mato Grosso"},
	{15, "PA", "Pará"},
	{25, "PB", "Paraíba"},
	{26, "PE", "Pernambuco"},
	{22, "PI", "Piauí"},
	{41, "PR", "Paraná"},
	{33, "RJ", "Rio de Janeiro"},
	{24, "RN", "Rio Grande do Norte"},
	{43, "RS", "Rio Grande do Sul"},
	{11, "RO", "Rondônia"},
	{14, "RR", "Roraima"},
	{42, "SC", "Santa Catarina"},
	{28, "SE", "Sergipe"},
	{35, "SP", "São Paulo"},
	{17, "TO", "Tocantins"},
}

// RegionTable is a read-only lookup over the known regions, indexed by
// numeric code, abbreviation and full name. Built once at startup and
// injected into the components that need it.
type RegionTable struct {
	byCode map[int]Region
	byAbbr map[string]Region
	byName map[string]Region
}

// NewRegionTable builds the lookup from the static enumeration.
func NewRegionTable() *RegionTable {
	t := &RegionTable{
		byCode: make(map[int]Region, len(regions)),
		byAbbr: make(map[string]Region, len(regions)),
		byName: make(map[string]Region, len(regions)),
	}
	for _, r := range regions {
		t.byCode[r.Code] = r
		t.byAbbr[r.Abbr] = r
		t.byName[r.Name] = r
	}
	return t
}

func (t *RegionTable) ByCode(code int) (Region, bool) {
	r, ok := t.byCode[code]
	return r, ok
}

func (t *RegionTable) ByAbbr(abbr string) (Region, bool) {
	r, ok := t.byAbbr[abbr]
	return r, ok
}

func (t *RegionTable) ByName(name string) (Region, bool) {
	r, ok := t.byName[name]
	return r, ok
}

// All returns the regions in enumeration order.
func (t *RegionTable) All() []Region {
	out := make([]Region, len(regions))
	copy(out, regions)
	return out
}
