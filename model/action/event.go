package action

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/Dragunija/PPE-Data-Visualization/errors"
	"github.com/Dragunija/PPE-Data-Visualization/hepmc"
	"github.com/Dragunija/PPE-Data-Visualization/model"
)

// UploadResult ...
type UploadResult struct {
	Status   string `json:"status"`
	Filename string `json:"filename"`
	Events   int    `json:"events"`
}

// EventGet returns event no of filename in wire form.
func (r *Resolver) EventGet(source EventSource, filename string, no int) (*model.Payload, error) {
	if filename == "" || no < 1 {
		return nil, errors.ErrMalformed
	}
	count, countErr := source.Count(filename)
	if countErr != nil {
		return nil, countErr
	}
	evt, eventErr := source.Event(filename, no)
	if eventErr != nil {
		return nil, eventErr
	}
	payload, payloadErr := model.NewPayload(evt, count)
	if payloadErr != nil {
		log.Errorf("[ASSERT] encoding event %d of %s: %s", no, filename, payloadErr.Error())
		return nil, errors.ErrInternalServerError
	}
	payload.Filename = filename
	payload.No = no
	return payload, nil
}

// FileList ...
func (r *Resolver) FileList(source EventSource) ([]model.FileInfo, error) {
	return source.Files()
}

// FileGet ...
func (r *Resolver) FileGet(source EventSource, filename string) (*model.FileInfo, error) {
	count, countErr := source.Count(filename)
	if countErr != nil {
		return nil, countErr
	}
	return &model.FileInfo{Filename: filename, Count: count}, nil
}

// UploadFilename checks the name an uploaded file is stored under.
func UploadFilename(name string) (string, error) {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" || strings.HasPrefix(base, ".") {
		return "", fmt.Errorf("file name %q: %w", name, errors.ErrMalformed)
	}
	return base, nil
}

// Upload parses every event of a HepMC file and stores them under filename.
func (r *Resolver) Upload(source EventSource, filename string, body io.Reader) (*UploadResult, error) {
	name, nameErr := UploadFilename(filename)
	if nameErr != nil {
		return nil, nameErr
	}
	events, readErr := hepmc.ReadAll(body)
	if readErr != nil {
		log.Debugf("upload %s: %s", name, readErr.Error())
		return nil, fmt.Errorf("%s: %w", readErr.Error(), errors.ErrMalformed)
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("no events in %s: %w", name, errors.ErrMalformed)
	}
	for _, evt := range events {
		evt.Filename = name
	}
	if importErr := source.Import(name, events); importErr != nil {
		return nil, importErr
	}
	return &UploadResult{Status: "ok", Filename: name, Events: len(events)}, nil
}
