package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourstudio/tourstudio/bundle"
	"github.com/tourstudio/tourstudio/internal/provider"
	"github.com/tourstudio/tourstudio/timer"
)

func init() {
	pterm.DisableColor()
}

func TestOverview(t *testing.T) {
	rows := bundle.Overview([]timer.Section{
		timer.NewSection("Intro", 0, 10*time.Second),
		timer.NewSection("Hall", 10*time.Second, 25500*time.Millisecond),
	}, 25)

	var buf bytes.Buffer

	require.NoError(t, Overview(&buf, rows))

	out := buf.String()
	assert.Contains(t, out, "00:00:15.500")
	assert.Contains(t, out, "250 → 637")
}

func TestVoicesMarksSelection(t *testing.T) {
	var buf bytes.Buffer

	err := Voices(&buf, []provider.Voice{
		{ID: "a", Name: "Adam", Category: "premade"},
		{ID: "r", Name: "Rachel", Category: "premade"},
	}, "r")
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "Rachel *")
	assert.NotContains(t, buf.String(), "Adam *")
}
