package web

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"

	"github.com/Dragunija/PPE-Data-Visualization/errors"
)

type webHandler = func(w http.ResponseWriter, r *http.Request)

// requestDecoder is implemented by handler inputs which are not read from a
// JSON body, e.g. query parameters or multipart forms.
type requestDecoder interface {
	decodeRequest(r *http.Request) error
}

var (
	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
)

// requestWrapper adapts handlerFunc to http. handlerFunc has one of the forms
//
//	func(ctx) error
//	func(ctx) (Out, error)
//	func(ctx, *In) error
//	func(ctx, *In) (Out, error)
//
// In is decoded with decodeInput, Out is written as JSON and a nil Out-less
// result as {"status":"ok"}. It panics on any other signature, so a bad route
// fails at startup.
func requestWrapper(handlerFunc interface{}) webHandler {
	inputType, validateErr := requestWrapperValidateSignature(handlerFunc)
	if validateErr != nil {
		log.Errorf("[ASSERT][INIT] error in web handler [%s]", validateErr.Error())
		panic(validateErr)
	}
	handler := reflect.ValueOf(handlerFunc)

	return func(w http.ResponseWriter, r *http.Request) {
		args := []reflect.Value{reflect.ValueOf(r.Context())}
		if inputType != nil {
			input := reflect.New(inputType)
			if decodeErr := decodeInput(r, input.Interface()); decodeErr != nil {
				handleRequestErr(w, decodeErr)
				return
			}
			args = append(args, input)
		}
		writeResults(w, handler.Call(args))
	}
}

// requestWrapperValidateSignature checks handler against the forms accepted by
// requestWrapper and returns the element type of its input, if any.
func requestWrapperValidateSignature(handler interface{}) (reflect.Type, error) {
	handlerValue := reflect.ValueOf(handler)
	if !handlerValue.IsValid() || handlerValue.Kind() != reflect.Func {
		return nil, fmt.Errorf("handler %T is not a function", handler)
	}
	handlerType := handlerValue.Type()

	switch handlerType.NumIn() {
	case 1, 2:
	default:
		return nil, fmt.Errorf("handler %v takes %d arguments, expected 1 or 2", handlerType, handlerType.NumIn())
	}
	if !handlerType.In(0).Implements(contextType) {
		return nil, fmt.Errorf("first argument of %v is not of a type context.Context", handlerType)
	}

	switch handlerType.NumOut() {
	case 1, 2:
	default:
		return nil, fmt.Errorf("handler %v returns %d values, expected 1 or 2", handlerType, handlerType.NumOut())
	}
	if last := handlerType.Out(handlerType.NumOut() - 1); !last.Implements(errorType) {
		return nil, fmt.Errorf("last return value of %v doesn't implement error interface", handlerType)
	}

	if handlerType.NumIn() == 1 {
		return nil, nil
	}
	if handlerType.In(1).Kind() != reflect.Ptr {
		return nil, fmt.Errorf("second argument of %v is not ptr", handlerType)
	}
	return handlerType.In(1).Elem(), nil
}

func decodeInput(r *http.Request, arg interface{}) error {
	if decoder, ok := arg.(requestDecoder); ok {
		return decoder.decodeRequest(r)
	}
	body, readErr := io.ReadAll(r.Body)
	if readErr != nil {
		return errors.ErrInternalServerError
	}
	if unmarshalErr := json.Unmarshal(body, arg); unmarshalErr != nil {
		return errors.ErrMalformed
	}
	return nil
}

func writeResults(w http.ResponseWriter, results []reflect.Value) {
	if errValue := results[len(results)-1]; !errValue.IsNil() {
		handleRequestErr(w, errValue.Interface().(error))
		return
	}
	if len(results) == 1 {
		_ = writeJSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}
	_ = writeJSONResponse(w, http.StatusOK, results[0].Interface())
}
