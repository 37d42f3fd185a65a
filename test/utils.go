// Package test holds helpers shared by the tests of the other packages: JSON
// and value diffs for marshalling tests and HepMC fixtures.
package test

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/sergi/go-diff/diffmatchpatch"
	diff "github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"
)

var dumper = spew.ConfigState{
	Indent:                  " ",
	DisableMethods:          true,
	DisablePointerMethods:   true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// DiffJSON returns a readable diff of two JSON documents, or "" when they are
// equal. Key order and white space are ignored.
func DiffJSON(expected, actual []byte) (string, error) {
	var left, right interface{}
	if err := json.Unmarshal(expected, &left); err != nil {
		return "", fmt.Errorf("expected: %w", err)
	}
	if err := json.Unmarshal(actual, &right); err != nil {
		return "", fmt.Errorf("actual: %w", err)
	}

	var diffs diff.Diff
	leftArray, leftIsArray := left.([]interface{})
	rightArray, rightIsArray := right.([]interface{})
	switch {
	case leftIsArray && rightIsArray:
		diffs = diff.New().CompareArrays(leftArray, rightArray)
	case leftIsArray || rightIsArray:
		return fmt.Sprintf("expected %s\nactual   %s", expected, actual), nil
	default:
		compared, compareErr := diff.New().Compare(expected, actual)
		if compareErr != nil {
			return "", compareErr
		}
		diffs = compared
	}
	if !diffs.Modified() {
		return "", nil
	}
	return formatter.NewAsciiFormatter(left, formatter.AsciiFormatterConfig{
		ShowArrayIndex: true,
	}).Format(diffs)
}

// DiffModel returns a readable diff of the spew dumps of two values, or "" when
// they are deeply equal.
func DiffModel(expected, actual interface{}) string {
	if reflect.DeepEqual(expected, actual) {
		return ""
	}
	dmp := diffmatchpatch.New()
	return dmp.DiffPrettyText(dmp.DiffMain(dumper.Sdump(expected), dumper.Sdump(actual), true))
}

// MarshallingCases pairs values with their JSON form.
type MarshallingCases []struct {
	// Model is a pointer to the value under test.
	Model interface{}

	// JSON in any valid layout.
	JSON string
}

func caseName(model interface{}) string {
	return reflect.TypeOf(model).Elem().Name()
}

// Marshal checks that json.Marshal of every Model gives its JSON.
func Marshal(t *testing.T, testCases MarshallingCases) {
	t.Helper()
	for i, tc := range testCases {
		tc := tc
		t.Run(fmt.Sprintf("%d_%s", i, caseName(tc.Model)), func(t *testing.T) {
			result, marshalErr := json.Marshal(tc.Model)
			if marshalErr != nil {
				t.Fatalf("marshal: %v", marshalErr)
			}
			d, diffErr := DiffJSON([]byte(tc.JSON), result)
			if diffErr != nil {
				t.Fatalf("diff: %v", diffErr)
			}
			if d != "" {
				t.Errorf("actual != expected\n%s", d)
			}
		})
	}
}

// Unmarshal checks that json.Unmarshal of every JSON gives its Model.
func Unmarshal(t *testing.T, testCases MarshallingCases) {
	t.Helper()
	for i, tc := range testCases {
		tc := tc
		t.Run(fmt.Sprintf("%d_%s", i, caseName(tc.Model)), func(t *testing.T) {
			result := reflect.New(reflect.TypeOf(tc.Model).Elem()).Interface()
			if unmarshalErr := json.Unmarshal([]byte(tc.JSON), result); unmarshalErr != nil {
				t.Fatalf("unmarshal: %v", unmarshalErr)
			}
			if d := DiffModel(tc.Model, result); d != "" {
				t.Errorf("actual != expected\n%s", d)
			}
		})
	}
}

// WriteHepMC writes content to dir/name and returns the path.
func WriteHepMC(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
