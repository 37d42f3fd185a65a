package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// marshalTyped encodes obj as a JSON object with a leading "type" field.
func marshalTyped(typ string, obj interface{}) ([]byte, error) {
	body, err := json.Marshal(obj)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString(`{"type":`)
	buf.WriteString(fmt.Sprintf("%q", typ))
	if len(body) > 2 {
		buf.WriteByte(',')
		buf.Write(body[1:])
	} else {
		buf.WriteByte('}')
	}
	return buf.Bytes(), nil
}

// unmarshalTyped decodes data into obj, rejecting objects tagged with another type.
// A missing tag is accepted.
func unmarshalTyped(typ string, data []byte, obj interface{}) error {
	var tag struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return err
	}
	if tag.Type != "" && tag.Type != typ {
		return fmt.Errorf("expected %s, got %s", typ, tag.Type)
	}
	return json.Unmarshal(data, obj)
}
