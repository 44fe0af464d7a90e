package connect_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/digirioh/hub/pkg/connect"

	"gotest.tools/v3/assert"
)

func TestMarkerRoundTrip(t *testing.T) {
	store := connect.NewMarkerStore(filepath.Join(t.TempDir(), "marker.json"))

	// Absent marker reads as nil, not an error
	marker, err := store.Read()
	assert.NilError(t, err)
	assert.Assert(t, marker == nil)

	err = store.Save("user@example.com")
	assert.NilError(t, err)

	marker, err = store.Read()
	assert.NilError(t, err)
	assert.Assert(t, marker != nil)
	assert.Equal(t, "user@example.com", marker.Email)
	assert.Equal(t, true, marker.Authenticated)
	assert.Assert(t, !marker.Timestamp.IsZero())

	err = store.Clear()
	assert.NilError(t, err)

	marker, err = store.Read()
	assert.NilError(t, err)
	assert.Assert(t, marker == nil)

	// Clearing twice is fine
	err = store.Clear()
	assert.NilError(t, err)
}

func TestMarkerCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marker.json")

	err := os.WriteFile(path, []byte("{not json"), 0600)
	assert.NilError(t, err)

	store := connect.NewMarkerStore(path)

	// A corrupt marker reads as absent and the file is removed
	marker, err := store.Read()
	assert.NilError(t, err)
	assert.Assert(t, marker == nil)

	_, err = os.Stat(path)
	assert.Assert(t, os.IsNotExist(err))
}
