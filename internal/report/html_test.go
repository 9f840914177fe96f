package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *Report {
	return &Report{
		ID:          "11111111-2222-3333-4444-555555555555",
		NetworkName: "HQ",
		GeneratedAt: time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC),
		Rows: []Row{
			{Name: "AP-Lobby", Serial: "Q1", Model: "MR46", BandLabel: "2.4 GHz", UtilizationPercent: 37.5, ClientCount: 4, Status: "online"},
			{Name: "AP-Lobby", Serial: "Q1", Model: "MR46", BandLabel: "5 GHz", UtilizationPercent: 72.3, ClientCount: 110, Status: "online", Severity: SeverityRed},
			{Name: "AP-Roof", Serial: "Q2", Model: "MR33", Status: "offline", Offline: true},
		},
		OnlineCount:  1,
		OfflineCount: 1,
	}
}

func TestWriteHTML_ContainsRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, sampleReport()))
	html := buf.String()

	assert.Contains(t, html, "<!DOCTYPE html>")
	assert.Contains(t, html, "AP-Lobby")
	assert.Contains(t, html, "Q1")
	assert.Contains(t, html, "2.4 GHz")
	assert.Contains(t, html, "37.5")
	assert.Contains(t, html, ">4<")
	assert.Contains(t, html, "Network: HQ")
}

func TestWriteHTML_SeverityAndOfflineMarkup(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, sampleReport()))
	html := buf.String()

	assert.Contains(t, html, `class="status-red"`)
	assert.Contains(t, html, `class="status-offline" data-offline="true"`)
	// Offline placeholder cells
	assert.Contains(t, html, "&mdash;")
}

func TestWriteHTML_SelfContainedInteractiveScript(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, sampleReport()))
	html := buf.String()

	assert.Contains(t, html, "function searchTable()")
	assert.Contains(t, html, "function sortTable(")
	assert.Contains(t, html, "function toggleOffline()")
	// Self-contained: no external assets, no browser-side fetches.
	assert.NotContains(t, html, "<link")
	assert.NotContains(t, html, "src=")
	assert.NotContains(t, html, "fetch(")
}

func TestWriteHTML_EscapesDeviceNames(t *testing.T) {
	rep := sampleReport()
	rep.Rows[0].Name = `<script>alert("x")</script>`

	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, rep))
	html := buf.String()

	assert.NotContains(t, html, `<script>alert`)
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestWriteHTML_Idempotent(t *testing.T) {
	rep := sampleReport()

	var first, second bytes.Buffer
	require.NoError(t, WriteHTML(&first, rep))
	require.NoError(t, WriteHTML(&second, rep))
	assert.Equal(t, first.String(), second.String())
}

func TestWriteHTML_OneRowPerBand(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, sampleReport()))

	// Two online band rows plus one offline placeholder row.
	assert.Equal(t, 3, strings.Count(buf.String(), `<td class="ap-name">`))
}
