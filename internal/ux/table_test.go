package ux

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{format: "json"},
		{format: "yaml"},
		{format: "text"},
		{format: ""},
		{format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			_, err := NewFormatter(tt.format, nil)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f, err := NewFormatter("json", &FormatterOptions{Writer: &buf})
	require.NoError(t, err)

	require.NoError(t, f.Format(map[string]string{"id": "p1"}))
	assert.Contains(t, buf.String(), `"id": "p1"`)
}

func TestTable(t *testing.T) {
	out := Table(PlainStyles(),
		[]string{"ID", "NAME"},
		[][]string{
			{"b1", "Acme"},
			{"b2", "Globex Corporation"},
		})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ID  NAME", lines[0])
	// Columns align on the widest cell.
	assert.Equal(t, "b1  Acme", lines[1])
	assert.Equal(t, "b2  Globex Corporation", lines[2])
}

func TestStatusLabel(t *testing.T) {
	styles := PlainStyles()
	assert.Equal(t, "active", StatusLabel(styles, true))
	assert.Equal(t, "inactive", StatusLabel(styles, false))
}
