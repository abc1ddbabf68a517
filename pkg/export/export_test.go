package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	return Dataset{
		Headers: []string{"id", "title"},
		Rows: []map[string]string{
			{"id": "a-1", "title": "Results for semester 3 are out"},
			{"id": "a-2", "title": "Exam schedule, revised"},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleDataset())
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id,title", lines[0])
	assert.Equal(t, `a-2,"Exam schedule, revised"`, lines[2])
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter().Render(sampleDataset(), "announcements")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestDatasetTruncate(t *testing.T) {
	ds := sampleDataset()
	assert.Len(t, ds.Truncate(1).Rows, 1)
	assert.Len(t, ds.Truncate(0).Rows, 2)
	assert.Len(t, ds.Truncate(10).Rows, 2)
}

func TestClip(t *testing.T) {
	long := strings.Repeat("x", 100)
	assert.Len(t, []rune(clip(long)), maxCellRunes)
	assert.Equal(t, "short", clip("short"))
}
