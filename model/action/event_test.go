package action

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dragunija/PPE-Data-Visualization/errors"
	"github.com/Dragunija/PPE-Data-Visualization/hepmc"
)

const sample = `HepMC::Version 2.06.09
HepMC::IO_GenEvent-START_EVENT_LISTING
E 7 -1 -1.0 -1.0 -1.0 0 0 2 0 0 0 1 1.0
U GEV MM
V -1 0 0 0 0 0 0 2 0
P 1 22 1 0 0 1 0 1 0 0 0 0
P 2 11 0 0 5 5 5.11e-04 1 0 0 0 0
E 8 -1 -1.0 -1.0 -1.0 0 0 1 0 0 0 1 1.0
U GEV MM
V -1 0 0 0 0 0 0 1 0
P 1 211 0 3 4 5.002 1.3957e-01 1 0 0 0 0
HepMC::IO_GenEvent-END_EVENT_LISTING
`

func setupSource(t *testing.T) (*Resolver, EventSource) {
	r := &Resolver{}
	source := hepmc.NewDir(t.TempDir())
	result, err := r.Upload(source, "run.hepmc", strings.NewReader(sample))
	require.NoError(t, err)
	assert.Equal(t, &UploadResult{Status: "ok", Filename: "run.hepmc", Events: 2}, result)
	return r, source
}

func TestEventGet(t *testing.T) {
	r, source := setupSource(t)

	payload, err := r.EventGet(source, "run.hepmc", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, payload.No)
	assert.Equal(t, 2, payload.Count)
	assert.Equal(t, "run.hepmc", payload.Filename)

	particles, vertices, err := payload.Decode()
	require.NoError(t, err)
	require.Len(t, particles, 1)
	assert.Equal(t, 211, particles[0].PID)
	assert.Equal(t, 1, particles[0].Charge)
	assert.Len(t, vertices, 1)
}

func TestEventGetErrors(t *testing.T) {
	r, source := setupSource(t)

	_, err := r.EventGet(source, "run.hepmc", 0)
	assert.ErrorIs(t, err, errors.ErrMalformed)
	_, err = r.EventGet(source, "", 1)
	assert.ErrorIs(t, err, errors.ErrMalformed)
	_, err = r.EventGet(source, "run.hepmc", 3)
	assert.ErrorIs(t, err, errors.ErrNotFound)
	_, err = r.EventGet(source, "missing.hepmc", 1)
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestFiles(t *testing.T) {
	r, source := setupSource(t)

	files, err := r.FileList(source)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "run.hepmc", files[0].Filename)
	assert.Equal(t, 2, files[0].Count)

	info, err := r.FileGet(source, "run.hepmc")
	require.NoError(t, err)
	assert.Equal(t, 2, info.Count)

	_, err = r.FileGet(source, "missing.hepmc")
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestUploadRejects(t *testing.T) {
	r := &Resolver{}
	source := hepmc.NewDir(t.TempDir())

	_, err := r.Upload(source, "bad.hepmc", strings.NewReader("not a hepmc file"))
	assert.ErrorIs(t, err, errors.ErrMalformed)

	_, err = r.Upload(source, ".hidden", strings.NewReader(sample))
	assert.ErrorIs(t, err, errors.ErrMalformed)

	files, err := r.FileList(source)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestUploadFilename(t *testing.T) {
	for _, c := range []struct {
		in, out string
		ok      bool
	}{
		{"run.hepmc", "run.hepmc", true},
		{"../../etc/run.hepmc", "run.hepmc", true},
		{`C:\data\run.hepmc`, "run.hepmc", true},
		{"", "", false},
		{"..", "", false},
		{"dir/", "dir", true},
	} {
		out, err := UploadFilename(c.in)
		if c.ok {
			assert.NoError(t, err, c.in)
			assert.Equal(t, c.out, out, c.in)
		} else {
			assert.Error(t, err, c.in)
		}
	}
}
