package viewer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Dragunija/PPE-Data-Visualization/hepmc"
	"github.com/Dragunija/PPE-Data-Visualization/model"
)

// EventPath is the server path serving single events.
const EventPath = "/visualiser/get_event"

// Fetcher retrieves event no of filename.
type Fetcher interface {
	Fetch(ctx context.Context, filename string, no int) (*model.Payload, error)
}

// HTTPFetcher fetches events from an event server.
type HTTPFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPFetcher creates fetcher for the server at baseURL, e.g. http://127.0.0.1:5000.
func NewHTTPFetcher(baseURL string) *HTTPFetcher {
	return &HTTPFetcher{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Fetch implements Fetcher.
func (f *HTTPFetcher) Fetch(ctx context.Context, filename string, no int) (*model.Payload, error) {
	query := url.Values{}
	query.Set("no", strconv.Itoa(no))
	query.Set("filename", filename)
	req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, f.BaseURL+EventPath+"?"+query.Encode(), nil)
	if reqErr != nil {
		return nil, reqErr
	}
	resp, doErr := f.Client.Do(req)
	if doErr != nil {
		return nil, doErr
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return nil, readErr
	}
	if resp.StatusCode != http.StatusOK {
		var reason string
		if json.Unmarshal(body, &reason) != nil {
			reason = strings.TrimSpace(string(body))
		}
		return nil, fmt.Errorf("get event %d of %s: %s: %s", no, filename, resp.Status, reason)
	}
	payload := &model.Payload{}
	if err := json.Unmarshal(body, payload); err != nil {
		return nil, fmt.Errorf("get event %d of %s: %w", no, filename, err)
	}
	return payload, nil
}

// EventSource provides events by file name and index.
type EventSource interface {
	Count(filename string) (int, error)
	Event(filename string, no int) (*model.Event, error)
}

// SourceFetcher fetches events straight from an EventSource, e.g. a local
// directory of HepMC files.
type SourceFetcher struct {
	Source EventSource
}

// Fetch implements Fetcher.
func (f SourceFetcher) Fetch(ctx context.Context, filename string, no int) (*model.Payload, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	count, countErr := f.Source.Count(filename)
	if countErr != nil {
		return nil, countErr
	}
	evt, eventErr := f.Source.Event(filename, no)
	if eventErr != nil {
		return nil, eventErr
	}
	return model.NewPayload(evt, count)
}

// LocalFetcher returns fetcher reading the HepMC file at path, together with
// the file name to request events by.
func LocalFetcher(path string) (SourceFetcher, string) {
	return SourceFetcher{Source: hepmc.NewDir(filepath.Dir(path))}, filepath.Base(path)
}
