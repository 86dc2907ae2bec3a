package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	return Dataset{
		Title:   "Schedule conflicts",
		Headers: []string{"kind", "resource", "date"},
		Rows: []map[string]string{
			{"kind": "single", "resource": "room 101", "date": "2025-02-05"},
			{"kind": "shared", "date": "2025-02-12"},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleDataset())
	require.NoError(t, err)
	assert.Equal(t, "kind,resource,date\nsingle,room 101,2025-02-05\nshared,,2025-02-12\n", string(out))
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter().Render(sampleDataset())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestColumnWidthsFillUsableWidth(t *testing.T) {
	widths := columnWidths(sampleDataset(), 190)
	require.Len(t, widths, 3)
	sum := 0.0
	for _, w := range widths {
		sum += w
	}
	assert.InDelta(t, 190, sum, 0.5)
	assert.Greater(t, widths[1], widths[0])
}
