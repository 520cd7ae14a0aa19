package commands

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/leaplint/internal/cli/testutil"
)

func TestVersionCommand(t *testing.T) {
	res := testutil.Execute(t, NewVersionCommand("1.2.3", "abc123", "2026-01-02"))
	require.NoError(t, res.Err)

	assert.Contains(t, res.Out, "leaplint v1.2.3")
	assert.Contains(t, res.Out, "commit abc123, built 2026-01-02")
	assert.Contains(t, res.Out, runtime.GOOS+"/"+runtime.GOARCH)
}
