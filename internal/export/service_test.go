package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/samuel-girma/site-diary/internal/diary"
)

func TestExportDiaryXLSX(t *testing.T) {
	d := diary.New()
	d.Project = "Bulk Water Supply"
	d.Date = "03-07-2024"
	d.Activities = []diary.Activity{
		{SN: 1, Description: "Excavation", Location: "north", Quantity: "120", Unit: "m3"},
	}
	d.Equipment = []diary.Equipment{{SN: 1, Equipment: "Excavator", No: "AB-12"}}
	d.Personnel = []diary.Personnel{{SN: 1, Personnel: "Foreman", No: "2"}}

	out, err := NewService(nil).ExportDiaryXLSX(d)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	for _, sheet := range []string{"Summary", "Activities", "Equipment", "Personnel", "Materials", "Unsafe Acts"} {
		idx, err := f.GetSheetIndex(sheet)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, idx, 0, "missing sheet %q", sheet)
	}

	project, err := f.GetCellValue("Summary", "B1")
	require.NoError(t, err)
	assert.Equal(t, "Bulk Water Supply", project)

	desc, err := f.GetCellValue("Activities", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Excavation", desc)

	header, err := f.GetCellValue("Equipment", "B1")
	require.NoError(t, err)
	assert.Equal(t, "Equipment", header)
}

func TestExportEmptyDiaryStillHasSheets(t *testing.T) {
	out, err := NewService(nil).ExportDiaryXLSX(diary.New())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Activities")
	require.NoError(t, err)
	require.Len(t, rows, 1) // header only
	assert.Equal(t, "sn", rows[0][0])
}
