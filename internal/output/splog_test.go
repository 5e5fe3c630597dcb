package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSeverityString(t *testing.T) {
	t.Parallel()
	require.Equal(t, "information", SeverityInfo.String())
	require.Equal(t, "warning", SeverityWarning.String())
	require.Equal(t, "error", SeverityError.String())
}

func TestSplogWritesToFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "helowrite.log")

	splog, err := NewSplogWithFile(logPath)
	require.NoError(t, err)
	splog.SetQuiet(true)

	splog.Info("opened %s", "note.md")
	splog.Warn("slow save")
	require.NoError(t, splog.Close())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.Contains(t, string(data), "opened note.md")
	require.Contains(t, string(data), "slow save")
}

func TestSplogFileGetsDebugMessages(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "helowrite.log")

	splog, err := NewSplogWithFile(logPath)
	require.NoError(t, err)
	splog.SetQuiet(true)

	// The file handler logs at debug level regardless of the DEBUG env var.
	splog.Debug("sync worker started")
	require.NoError(t, splog.Close())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.Contains(t, string(data), "sync worker started")
}
