package render

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samuel-girma/site-diary/internal/diary"
)

func sampleDiary() diary.Diary {
	d := diary.New()
	d.Project = "Bulk Water Supply Project"
	d.Employer = "AAWSA"
	d.Consultant = "Nicholas O'Dwyer"
	d.Contractor = "CGCOC"
	d.Date = "03-07-2024"
	d.TimeMorning = true
	d.Activities = []diary.Activity{
		{SN: 1, Description: "Excavation at chainage 4+200", Location: "north section", Quantity: "120", Unit: "m3"},
		{SN: 2, Description: "Pipe laying DN800"},
	}
	d.Equipment = []diary.Equipment{
		{SN: 1, Equipment: "Excavator", No: "AB-12"},
		{SN: 2, Equipment: "Dump Truck", No: "CD-34"},
	}
	d.Personnel = []diary.Personnel{
		{SN: 1, Personnel: "Foreman", No: "2"},
		{SN: 2, Personnel: "Laborer", No: "14"},
	}
	d.UnsafeActs = []diary.UnsafeAct{{SN: 1, Description: "Worker without helmet near trench"}}
	d.NearMiss = "None reported"
	d.EngineersNote = "Work progressing per schedule"
	d.PreparedBy = "S. Mekonnen"
	return d
}

func TestRenderProducesPDF(t *testing.T) {
	g := NewGenerator(LogoSet{}, nil)
	out, err := g.Render(sampleDiary())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")), "output must be a PDF")
	assert.Greater(t, len(out), 1000)
}

func TestRenderDeterministic(t *testing.T) {
	g := NewGenerator(LogoSet{}, nil)
	d := sampleDiary()

	first, err := g.Render(d)
	require.NoError(t, err)
	second, err := g.Render(d)
	require.NoError(t, err)

	assert.Equal(t, first, second, "identical records must render byte-identical documents")
}

func TestRenderEmptyRecord(t *testing.T) {
	g := NewGenerator(LogoSet{}, nil)
	out, err := g.Render(diary.New())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestRenderClipsPersonnelBeyondCapacity(t *testing.T) {
	g := NewGenerator(LogoSet{}, nil)

	atCapacity := sampleDiary()
	atCapacity.Personnel = manyPersonnel(28)
	overCapacity := sampleDiary()
	overCapacity.Personnel = manyPersonnel(40)

	a, err := g.Render(atCapacity)
	require.NoError(t, err)
	b, err := g.Render(overCapacity)
	require.NoError(t, err)

	assert.Equal(t, a, b, "rows beyond the form's 28 printed slots must not affect output")
}

func TestRenderClipsEquipmentBeyondCapacity(t *testing.T) {
	g := NewGenerator(LogoSet{}, nil)

	atCapacity := sampleDiary()
	atCapacity.Equipment = manyEquipment(10)
	overCapacity := sampleDiary()
	overCapacity.Equipment = manyEquipment(13)

	a, err := g.Render(atCapacity)
	require.NoError(t, err)
	b, err := g.Render(overCapacity)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func manyPersonnel(n int) []diary.Personnel {
	out := make([]diary.Personnel, n)
	for i := range out {
		out[i] = diary.Personnel{SN: i + 1, Personnel: fmt.Sprintf("Worker %d", i+1), No: "1"}
	}
	return out
}

func manyEquipment(n int) []diary.Equipment {
	out := make([]diary.Equipment, n)
	for i := range out {
		out[i] = diary.Equipment{SN: i + 1, Equipment: fmt.Sprintf("Machine %d", i+1), No: fmt.Sprintf("EQ-%02d", i+1)}
	}
	return out
}

func TestActivityLineFolding(t *testing.T) {
	a := diary.Activity{Description: "Excavation", Location: "north", Quantity: "120", Unit: "m3"}
	assert.Equal(t, "Excavation @ north (120 m3)", activityLine(a))

	a = diary.Activity{Description: "Excavation"}
	assert.Equal(t, "Excavation", activityLine(a))

	a = diary.Activity{Description: "Excavation", Quantity: "120"}
	assert.Equal(t, "Excavation (120)", activityLine(a))
}
