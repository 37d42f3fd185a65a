package api

import (
	"net/http"
	"net/url"
	"strconv"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"
	mgo "gopkg.in/mgo.v2"
)

// M ...
type M map[string]interface{}

func extractFromMapInterface(t *testing.T, object interface{}, field string) interface{} {
	t.Helper()
	value, ok := object.(map[string]interface{})
	require.True(t, ok, "%+v is not an object", object)
	element, ok := value[field]
	require.True(t, ok, "missing field %s", field)
	return element
}

func extractFromSliceInterface(t *testing.T, object interface{}, index int) interface{} {
	t.Helper()
	slice, ok := object.([]interface{})
	require.True(t, ok, "%+v is not an array", object)
	require.True(t, index < len(slice))
	return slice[index]
}

func countDocuments(t *testing.T, session *mgo.Session, collection string, query M) int {
	t.Helper()
	count, err := session.DB("").C(collection).Find(query).Count()
	require.NoError(t, err)
	return count
}

func printEntireDB(t *testing.T, session *mgo.Session) {
	var events []interface{}
	require.Nil(t, session.DB("").C("events").Find(M{}).All(&events))
	t.Logf("events :\n%s", spew.Sdump(events))
	t.Logf("particles : %d", countDocuments(t, session, "particles", M{}))
	t.Logf("vertices : %d", countDocuments(t, session, "vertices", M{}))
}

const sampleFile = `HepMC::Version 2.06.09
HepMC::IO_GenEvent-START_EVENT_LISTING
E 1 -1 -1.0 -1.0 -1.0 0 0 2 0 0 0 1 1.0
U GEV MM
V -1 0 0 0 0 0 0 2 0
P 1 22 1 0 0 1 0 1 0 0 -2 0
P 2 11 0 0 5 5 5.11e-04 1 0 0 0 0
V -2 0 1 1 1 0 0 1 0
P 3 211 2 2 0 3 1.3957e-01 1 0 0 0 0
E 2 -1 -1.0 -1.0 -1.0 0 0 1 0 0 0 1 1.0
U GEV MM
V -1 0 0 0 0 0 0 1 0
P 1 -14 0 3 4 5 0 1 0 0 0 0
HepMC::IO_GenEvent-END_EVENT_LISTING
`

func uploadRequest(filename string) request {
	return request{method: http.MethodPost, path: "/uploader", filename: filename, upload: sampleFile}
}

func eventRequest(filename string, no int) request {
	query := url.Values{}
	query.Set("filename", filename)
	query.Set("no", strconv.Itoa(no))
	return request{method: http.MethodGet, path: "/visualiser/get_event?" + query.Encode()}
}

func getRequest(path string) request {
	return request{method: http.MethodGet, path: path}
}
