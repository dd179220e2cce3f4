package engine

import (
	"bytes"
	"encoding/json"
)

// jsonObject is a JSON object that marshals its members in insertion
// order. The compiled contract has a fixed field order, so the stdlib
// map (which sorts keys) cannot be used for the canonical output.
type jsonObject struct {
	keys   []string
	values map[string]interface{}
}

func newJSONObject() *jsonObject {
	return &jsonObject{values: make(map[string]interface{})}
}

// Set adds or replaces a member. A replaced member keeps its original
// position.
func (o *jsonObject) Set(key string, value interface{}) {
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

func (o *jsonObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyJSON, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(keyJSON)
		buf.WriteByte(':')
		valueJSON, err := json.Marshal(o.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(valueJSON)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
