// Package api runs request sequences against the event server backed by a real
// MongoDB. The tests carry the integration build tag and skip when no database
// is reachable at HEPVIS_TEST_DB_URL.
package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	mgo "gopkg.in/mgo.v2"

	conf "github.com/Dragunija/PPE-Data-Visualization/config"
	"github.com/Dragunija/PPE-Data-Visualization/web"
)

// DBURLEnv names the variable holding the MongoDB used by the api tests.
const DBURLEnv = "HEPVIS_TEST_DB_URL"

const defaultDBURL = "mongodb://localhost:27017/hepvis-test"

var log = conf.NamedLogger("test/api")

// request is one call of a test case. A request with upload content is sent as
// a multipart form with the content in field "file".
type request struct {
	method   string
	path     string
	filename string
	upload   string
}

type response struct {
	code int
	body interface{}
}

// apiTestCase sends requests in order against an empty database and hands all
// responses to validate.
type apiTestCase struct {
	name     string
	requests []request
	validate func(t *testing.T, responses []response, session *mgo.Session)
}

// DBURL returns the test database location.
func DBURL() string {
	if url := os.Getenv(DBURLEnv); url != "" {
		return url
	}
	return defaultDBURL
}

func runTestCases(t *testing.T, cases []apiTestCase) {
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			log.Infof("start test %s", c.name)
			session, router := setupTest(t)
			responses := make([]response, 0, len(c.requests))
			for i, r := range c.requests {
				resp, sendErr := send(router, r)
				if sendErr != nil {
					t.Fatalf("request %d %s %s: %v\nprevious responses %+v", i, r.method, r.path, sendErr, responses)
				}
				responses = append(responses, resp)
			}
			printEntireDB(t, session)
			c.validate(t, responses, session)
		})
	}
}

func send(router http.Handler, r request) (response, error) {
	var body io.Reader
	contentType := ""
	if r.upload != "" {
		form := &bytes.Buffer{}
		writer := multipart.NewWriter(form)
		part, partErr := writer.CreateFormFile("file", r.filename)
		if partErr != nil {
			return response{}, partErr
		}
		if _, writeErr := io.WriteString(part, r.upload); writeErr != nil {
			return response{}, writeErr
		}
		if closeErr := writer.Close(); closeErr != nil {
			return response{}, closeErr
		}
		body, contentType = form, writer.FormDataContentType()
	}

	httpReq := httptest.NewRequest(r.method, r.path, body)
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httpReq)

	resp := response{code: rec.Code}
	if decodeErr := json.Unmarshal(rec.Body.Bytes(), &resp.body); decodeErr != nil {
		return resp, decodeErr
	}
	return resp, nil
}

// setupTest empties the test database and returns a session on it with a router
// serving from it. Both are released when t ends.
func setupTest(t *testing.T) (*mgo.Session, http.Handler) {
	t.Helper()
	session, dialErr := mgo.Dial(DBURL())
	if dialErr != nil {
		t.Skipf("no database at %s: %s", DBURL(), dialErr.Error())
	}
	t.Cleanup(session.Close)
	if dropErr := session.DB("").DropDatabase(); dropErr != nil {
		t.Fatalf("drop database: %s", dropErr.Error())
	}

	router, routerErr := web.NewRouter(&conf.Config{DbURL: DBURL()})
	if routerErr != nil {
		t.Fatalf("router: %s", routerErr.Error())
	}
	return session, router
}
