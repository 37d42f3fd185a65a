package web

import (
	"context"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/Dragunija/PPE-Data-Visualization/errors"
	"github.com/Dragunija/PPE-Data-Visualization/model"
	"github.com/Dragunija/PPE-Data-Visualization/model/action"
)

const maxUploadMemory = 32 << 20

type eventQuery struct {
	No       int
	Filename string
}

func (q *eventQuery) decodeRequest(r *http.Request) error {
	query := r.URL.Query()
	no, noErr := strconv.Atoi(query.Get("no"))
	if noErr != nil {
		return errors.ErrMalformed
	}
	q.No = no
	q.Filename = query.Get("filename")
	if q.Filename == "" {
		return errors.ErrMalformed
	}
	return nil
}

type uploadForm struct {
	filename string
	file     multipart.File
}

func (f *uploadForm) decodeRequest(r *http.Request) error {
	if parseErr := r.ParseMultipartForm(maxUploadMemory); parseErr != nil {
		formErr := errors.NewFormError()
		formErr["file"] = "multipart form expected"
		return formErr
	}
	file, header, fileErr := r.FormFile("file")
	if fileErr != nil {
		formErr := errors.NewFormError()
		formErr["file"] = "required"
		return formErr
	}
	f.filename = header.Filename
	f.file = file
	return nil
}

func (h *handler) getEventHandler(ctx context.Context, query *eventQuery) (*model.Payload, error) {
	source := extractSource(ctx)

	payload, eventErr := h.Resolver.EventGet(source, query.Filename, query.No)

	return payload, eventErr
}

func (h *handler) getFilesHandler(ctx context.Context) ([]model.FileInfo, error) {
	source := extractSource(ctx)

	files, filesErr := h.Resolver.FileList(source)

	return files, filesErr
}

func (h *handler) getFileHandler(ctx context.Context) (*model.FileInfo, error) {
	source := extractSource(ctx)
	filename := extractURLParam(ctx, "filename")

	file, fileErr := h.Resolver.FileGet(source, filename)

	return file, fileErr
}

func (h *handler) uploadHandler(ctx context.Context, form *uploadForm) (*action.UploadResult, error) {
	defer form.file.Close()
	source := extractSource(ctx)

	result, uploadErr := h.Resolver.Upload(source, form.filename, form.file)

	return result, uploadErr
}
