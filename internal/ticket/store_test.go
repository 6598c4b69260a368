package ticket

import (
	"archive/zip"
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilename(t *testing.T) {
	ts := time.Date(2025, 1, 1, 9, 30, 5, 0, time.UTC)
	assert.Equal(t, "ticket_20250101_093005_j-smith.pdf", Filename(ts, "J Smith"))
}

func TestSaveAndList(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	flightID := "2025-01-01_cpt-robben_zs-abc"
	_, err = store.Save(flightID, "ticket_20250101_093000_b.pdf", []byte("pdf-b"))
	require.NoError(t, err)
	_, err = store.Save(flightID, "ticket_20250101_091000_a.pdf", []byte("pdf-a"))
	require.NoError(t, err)

	names, err := store.List(flightID)
	require.NoError(t, err)
	assert.Equal(t, []string{"ticket_20250101_091000_a.pdf", "ticket_20250101_093000_b.pdf"}, names)
	assert.True(t, store.HasTickets(flightID))
}

func TestListUnknownFlight(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	names, err := store.List("2099-01-01_nowhere_zz")
	assert.NoError(t, err)
	assert.Empty(t, names)
	assert.False(t, store.HasTickets("2099-01-01_nowhere_zz"))
}

func TestZipAll(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	flightID := "2025-01-01_cpt-robben_zs-abc"
	_, err = store.Save(flightID, "one.pdf", []byte("first"))
	require.NoError(t, err)
	_, err = store.Save(flightID, "two.pdf", []byte("second"))
	require.NoError(t, err)

	data, err := store.ZipAll(flightID)
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)

	contents := map[string]string{}
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		var buf bytes.Buffer
		_, err = buf.ReadFrom(rc)
		require.NoError(t, err)
		rc.Close()
		contents[f.Name] = buf.String()
	}
	assert.Equal(t, "first", contents["one.pdf"])
	assert.Equal(t, "second", contents["two.pdf"])
}
