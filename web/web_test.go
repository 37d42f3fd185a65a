package web

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	conf "github.com/Dragunija/PPE-Data-Visualization/config"
	"github.com/Dragunija/PPE-Data-Visualization/model"
	"github.com/Dragunija/PPE-Data-Visualization/test"
)

const sample = `HepMC::Version 2.06.09
HepMC::IO_GenEvent-START_EVENT_LISTING
E 1 -1 -1.0 -1.0 -1.0 0 0 1 0 0 0 1 1.0
U GEV MM
V -1 0 0 0 0 0 0 2 0
P 1 22 1 0 0 1 0 1 0 0 0 0
P 2 11 0 0 5 5 5.11e-04 1 0 0 0 0
E 2 -1 -1.0 -1.0 -1.0 0 0 1 0 0 0 1 1.0
U GEV MM
V -1 0 0 0 0 0 0 1 0
P 1 -14 0 3 4 5 0 1 0 0 0 0
HepMC::IO_GenEvent-END_EVENT_LISTING
`

func setupRouter(t *testing.T) http.Handler {
	dir := t.TempDir()
	test.WriteHepMC(t, dir, "sample.hepmc", sample)
	router, err := NewRouter(&conf.Config{DataDir: dir})
	require.NoError(t, err)
	return router
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func get(router http.Handler, path string) *httptest.ResponseRecorder {
	return serve(router, httptest.NewRequest(http.MethodGet, path, nil))
}

func uploadRequest(t *testing.T, field, filename, content string) *http.Request {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/uploader", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestGetEvent(t *testing.T) {
	router := setupRouter(t)

	rec := get(router, "/visualiser/get_event?no=1&filename=sample.hepmc")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	payload := model.Payload{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, 1, payload.No)
	assert.Equal(t, 2, payload.Count)
	assert.Equal(t, "sample.hepmc", payload.Filename)

	particles, vertices, err := payload.Decode()
	require.NoError(t, err)
	require.Len(t, particles, 2)
	assert.Equal(t, 22, particles[0].PID)
	assert.Equal(t, -1, particles[1].Charge)
	require.Len(t, vertices, 1)

	raw := struct {
		Particles []map[string]interface{} `json:"particles"`
		Vertices  []map[string]interface{} `json:"vertices"`
	}{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.Equal(t, "particle", raw.Particles[0]["type"])
	assert.Equal(t, "vertex", raw.Vertices[0]["type"])
}

func TestGetEventErrors(t *testing.T) {
	router := setupRouter(t)

	for _, c := range []struct {
		path string
		code int
	}{
		{"/visualiser/get_event?filename=sample.hepmc", http.StatusBadRequest},
		{"/visualiser/get_event?no=abc&filename=sample.hepmc", http.StatusBadRequest},
		{"/visualiser/get_event?no=1", http.StatusBadRequest},
		{"/visualiser/get_event?no=0&filename=sample.hepmc", http.StatusBadRequest},
		{"/visualiser/get_event?no=3&filename=sample.hepmc", http.StatusNotFound},
		{"/visualiser/get_event?no=1&filename=other.hepmc", http.StatusNotFound},
		{"/visualiser/get_event?no=1&filename=..%2Fsample.hepmc", http.StatusNotFound},
	} {
		rec := get(router, c.path)
		assert.Equal(t, c.code, rec.Code, c.path)
		var reason string
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reason), c.path)
	}
}

func TestFiles(t *testing.T) {
	router := setupRouter(t)

	rec := get(router, "/visualiser/files")
	require.Equal(t, http.StatusOK, rec.Code)
	files := []model.FileInfo{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &files))
	assert.Equal(t, []model.FileInfo{{Filename: "sample.hepmc", Count: 2}}, files)

	rec = get(router, "/visualiser/files/sample.hepmc")
	require.Equal(t, http.StatusOK, rec.Code)
	info := model.FileInfo{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, 2, info.Count)

	rec = get(router, "/visualiser/files/missing.hepmc")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpload(t *testing.T) {
	router := setupRouter(t)

	rec := serve(router, uploadRequest(t, "file", "upload.hepmc", sample))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	result := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "ok", result["status"])
	assert.Equal(t, 2.0, result["events"])

	rec = get(router, "/visualiser/get_event?no=2&filename=upload.hepmc")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = get(router, "/visualiser/files")
	files := []model.FileInfo{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &files))
	assert.Len(t, files, 2)
}

func TestUploadErrors(t *testing.T) {
	router := setupRouter(t)

	rec := serve(router, uploadRequest(t, "other", "upload.hepmc", sample))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	formErr := map[string]string{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &formErr))
	assert.Equal(t, "required", formErr["file"])

	rec = serve(router, httptest.NewRequest(http.MethodPost, "/uploader", bytes.NewBufferString("{}")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(router, uploadRequest(t, "file", "broken.hepmc", "HepMC::Version 2.06.09\n"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequestWrapperValidateSignature(t *testing.T) {
	_, err := requestWrapperValidateSignature(func() error { return nil })
	assert.Error(t, err)
	_, err = requestWrapperValidateSignature(42)
	assert.Error(t, err)

	inputType, err := requestWrapperValidateSignature((&handler{}).getEventHandler)
	require.NoError(t, err)
	assert.Equal(t, "eventQuery", inputType.Name())

	inputType, err = requestWrapperValidateSignature((&handler{}).getFilesHandler)
	require.NoError(t, err)
	assert.Nil(t, inputType)
}
