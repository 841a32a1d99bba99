package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleDataset() Dataset {
	return Dataset{
		Headers: []string{"Course Code", "Course Name", "Instructor"},
		Rows: []map[string]string{
			{"Course Code": "CS101", "Course Name": "Intro, Programming", "Instructor": "I-100"},
			{"Course Code": "CS102", "Course Name": "Data Structures"},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleDataset(), "")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Course Code,Course Name,Instructor", lines[0])
	assert.Equal(t, `CS101,"Intro, Programming",I-100`, lines[1])
	assert.Equal(t, "CS102,Data Structures,", lines[2])
}

func TestExportersRejectEmptyHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{}, "")
	assert.Error(t, err)
	_, err = NewPDFExporter().Render(Dataset{}, "x")
	assert.Error(t, err)
	_, err = NewXLSXExporter().Render(Dataset{}, "x")
	assert.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter().Render(sampleDataset(), "Courses")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestXLSXExporterRender(t *testing.T) {
	out, err := NewXLSXExporter().Render(sampleDataset(), "Courses")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck

	rows, err := f.GetRows("Courses")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Course Code", "Course Name", "Instructor"}, rows[0])
	assert.Equal(t, []string{"CS101", "Intro, Programming", "I-100"}, rows[1])
	assert.Equal(t, "CS102", rows[2][0])
}

func TestParseFormatAndRendererFor(t *testing.T) {
	f, err := ParseFormat(" XLSX ")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)
	assert.Equal(t, "courses.xlsx", f.Filename("courses"))

	r, err := RendererFor(f)
	require.NoError(t, err)
	assert.IsType(t, &XLSXExporter{}, r)

	_, err = ParseFormat("docx")
	assert.Error(t, err)
}
