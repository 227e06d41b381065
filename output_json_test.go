package cssveil

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetermineOutputFormat(t *testing.T) {
	assert.Equal(t, OutputJSON, DetermineOutputFormat("json"))
	assert.Equal(t, OutputText, DetermineOutputFormat("text"))
	assert.Equal(t, OutputText, DetermineOutputFormat(""))
	assert.Equal(t, OutputText, DetermineOutputFormat("yaml"))
}

func TestWriteJSON(t *testing.T) {
	result := &Result{
		FilesScanned:   4,
		FilesRewritten: 2,
		FilesUnchanged: 1,
		SelectorsFound: 3,
		Mapping:        Mapping{"alert-box": "vaaaa1111"},
		Issues: []FileIssue{
			{Path: "logo.html", Stage: StageScan, Severity: SeverityWarning, Text: "content is not valid text; file skipped"},
			{Path: "big.css", Stage: StageWrite, Severity: SeverityError, Text: "disk full"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, result))

	var out JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	assert.Equal(t, "1.0", out.Version)
	assert.NotEmpty(t, out.Timestamp)
	assert.Equal(t, 4, out.Summary.FilesScanned)
	assert.Equal(t, 2, out.Summary.FilesRewritten)
	assert.Equal(t, 1, out.Summary.FilesUnchanged)
	assert.Equal(t, 3, out.Summary.SelectorsFound)
	assert.Equal(t, 1, out.Summary.Errors)
	assert.Equal(t, 1, out.Summary.Warnings)

	require.Len(t, out.Issues, 2)
	assert.Equal(t, "logo.html", out.Issues[0].File)
	assert.Equal(t, "scan", out.Issues[0].Stage)
	assert.Equal(t, map[string]string{"alert-box": "vaaaa1111"}, out.Mapping)
}
