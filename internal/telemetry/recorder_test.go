package telemetry

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unimap/globe/internal/session"
	"github.com/unimap/globe/pkg/core"
)

// Compile-time interface check.
var _ session.Recorder = (*Recorder)(nil)

// backupManager builds a Manager that writes line protocol to a gzipped
// file, the path InfluxDB-less tests exercise.
func backupManager(t *testing.T) (*Manager, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "telemetry_backup.gz")
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	require.NoError(t, err)

	m := NewManager(zerolog.Nop(), path)
	m.BackupWriter = gzip.NewWriter(file)
	return m, path
}

func readBackup(t *testing.T, path string) string {
	t.Helper()

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	zr, err := gzip.NewReader(file)
	require.NoError(t, err)
	defer zr.Close()

	data, err := io.ReadAll(zr)
	require.NoError(t, err)
	return string(data)
}

func TestRecorder_BatchesUntilFlush(t *testing.T) {
	m, _ := backupManager(t)
	r := NewRecorderWithInterval(m, time.Hour)
	defer r.Close()

	r.RecordHover("s000001", "mit")
	r.RecordSelect("s000001", "mit")
	r.RecordFocus("s000001", core.FocusEntity)
	r.RecordAltitude("s000001", 1_500_000)

	assert.Equal(t, 4, r.Pending())
	r.Flush()
	assert.Zero(t, r.Pending())
}

func TestRecorder_CloseWritesBackup(t *testing.T) {
	m, path := backupManager(t)
	r := NewRecorderWithInterval(m, time.Hour)

	r.RecordHover("s000001", "mit")
	r.RecordFocus("s000002", core.FocusRegion)

	r.Close()
	require.NoError(t, m.Close())

	content := readBackup(t, path)
	assert.Contains(t, content, "entity_hover")
	assert.Contains(t, content, `session=s000001`)
	assert.Contains(t, content, "camera_focus")
	assert.Contains(t, content, `level=region`)
}

func TestRecorder_AltitudeGoesToPerformanceBucket(t *testing.T) {
	m, path := backupManager(t)
	r := NewRecorderWithInterval(m, time.Hour)

	r.RecordAltitude("s000003", 320_000)

	r.Close()
	require.NoError(t, m.Close())

	content := readBackup(t, path)
	assert.Contains(t, content, "camera_altitude")
	assert.Contains(t, content, "meters=320000")
}
