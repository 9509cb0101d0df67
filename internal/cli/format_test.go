package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/stretchr/testify/assert"
)

func TestValidateOutputFormat(t *testing.T) {
	assert.NoError(t, ValidateOutputFormat("table"))
	assert.NoError(t, ValidateOutputFormat("json"))
	assert.Error(t, ValidateOutputFormat("yaml"))
	assert.Error(t, ValidateOutputFormat(""))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "exactly", Truncate("exactly", 7))
	assert.Equal(t, "a long ...", Truncate("a long sentence", 10))
	assert.Equal(t, "한국", Truncate("한국어 텍스트", 2))
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "-", FormatTime(time.Time{}))
	assert.NotEqual(t, "-", FormatTime(time.UnixMilli(1443413526000)))
}

func TestNewTableRendersToWriter(t *testing.T) {
	var buf bytes.Buffer
	tw := NewTable(&buf)
	tw.AppendHeader(table.Row{"NAME", "KEY"})
	tw.AppendRow(table.Row{"Hiking", "b1"})
	tw.Render()

	out := buf.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Hiking")
	assert.Contains(t, out, "b1")
}
