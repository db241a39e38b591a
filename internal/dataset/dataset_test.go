package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadEmploymentSnapshot_LegacyWithoutCodes(t *testing.T) {
	path := writeFile(t, "legacy.csv",
		"region_abbr;municipality_name;sector_name;year;employees\n"+
			"GO;Goiânia;1 - Agropecuária;2006;1.500\n"+
			"SP;São Paulo;4 - Informação e comunicação;2006;98\n")

	rows, err := ReadEmploymentSnapshot(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "GO", rows[0].RegionAbbr)
	assert.Equal(t, "Goiânia", rows[0].MunicipalityName)
	// The legacy snapshot has no code column at all.
	assert.Empty(t, rows[0].MunicipalityCode)
	assert.Equal(t, "1.500", rows[0].Employees)
}

func TestCombinedEmploymentRoundTrip(t *testing.T) {
	in := []CombinedEmploymentRow{
		{RegionAbbr: "GO", MunicipalityCode: 5208707, MunicipalityName: "Goiânia",
			SectorName: "1 - Agropecuária", Year: 2023, Employees: 1500},
		{RegionAbbr: "SP", MunicipalityCode: 3550308, MunicipalityName: "São Paulo",
			SectorName: "5 - Construção", Year: 2023, Employees: 420000},
	}
	path := filepath.Join(t.TempDir(), "combined.csv")

	require.NoError(t, WriteCombinedEmployment(path, in))
	out, err := ReadCombinedEmployment(path)
	require.NoError(t, err)

	assert.Equal(t, in, out)
}

func TestReadCombinedEmployment_MalformedCode(t *testing.T) {
	path := writeFile(t, "combined.csv",
		"region_abbr;municipality_code;municipality_name;sector_name;year;employees\n"+
			"GO;abc;Goiânia;1 - Agropecuária;2023;1500\n")

	_, err := ReadCombinedEmployment(path)
	assert.ErrorContains(t, err, "municipality_code")
}

func TestReadEducation(t *testing.T) {
	header := "institution_code;institution_name;admin_category;academic_org;" +
		"program_code;program_name;degree_level;modality;municipality_code;" +
		"area_code;area_name;year;entrants;graduates;dropout_rate;region_code\n"
	path := writeFile(t, "education.csv", header+
		"571;Universidade Federal de Goiás;1;1;1102;Ciência da Computação;1;1;5208707;4;Computação e TIC;2023;120;60;12,5;52\n"+
		// Incomplete row, dropped.
		"571;;1;1;1103;Engenharia;1;1;5208707;3;Engenharia;2023;80;40;10,0;52\n"+
		// Unknown region code, dropped.
		"571;Universidade Federal de Goiás;1;1;1104;Física;1;1;5208707;2;Exatas;2023;30;10;40,0;99\n")

	rows, err := ReadEducation(path, NewRegionTable(), nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	r := rows[0]
	assert.Equal(t, int64(1102), r.ProgramCode)
	assert.Equal(t, "GO", r.RegionAbbr)
	assert.Equal(t, "Goiás", r.RegionName)
	assert.Equal(t, 12.5, r.DropoutRate)
}

func TestRegionTable(t *testing.T) {
	regions := NewRegionTable()

	byCode, ok := regions.ByCode(52)
	require.True(t, ok)
	assert.Equal(t, "GO", byCode.Abbr)

	byName, ok := regions.ByName("São Paulo")
	require.True(t, ok)
	assert.Equal(t, "SP", byName.Abbr)

	_, ok = regions.ByAbbr(SentinelRegion)
	assert.False(t, ok)

	assert.Len(t, regions.All(), 27)
}
