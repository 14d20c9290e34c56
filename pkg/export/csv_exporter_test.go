package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCSVRenderKeepsHeaderOrder(t *testing.T) {
	exporter := NewCSVExporter()
	payload, err := exporter.Render(Dataset{
		Headers: []string{"Day", "Subject", "Room"},
		Rows: []map[string]string{
			{"Day": "Monday", "Subject": "Programming", "Room": "R-101"},
			{"Day": "Wednesday", "Subject": "Databases"},
		},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(payload)), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "Day,Subject,Room", lines[0])
	require.Equal(t, "Monday,Programming,R-101", lines[1])
	require.Equal(t, "Wednesday,Databases,", lines[2])
}

func TestCSVRenderRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	require.Error(t, err)
}
