// Package msg contains execute and query messages of the ajor contract and the cw20 token contract.
//
// Every message is a one-of: a struct of pointers where exactly one field is set.
// The populated field's json name is the action name.
package msg

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ErrMalformed is returned when message has zero or more than one action or unknown fields.
var ErrMalformed = errors.New("malformed message")

// OneOf is implemented by every message which is sent to a contract.
type OneOf interface {
	// Action returns name of the populated action.
	Action() string
	// Validate checks that exactly one action is populated.
	Validate() error
}

func action(v interface{}) (string, error) {
	rv := reflect.Indirect(reflect.ValueOf(v))
	rt := rv.Type()

	var name string
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if f.Kind() != reflect.Ptr || f.IsNil() {
			continue
		}

		tag := jsonName(rt.Field(i))
		if name != "" {
			return "", fmt.Errorf("%w: both %s and %s are set", ErrMalformed, name, tag)
		}
		name = tag
	}

	if name == "" {
		return "", fmt.Errorf("%w: no action is set", ErrMalformed)
	}

	return name, nil
}

func jsonName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if i := strings.IndexByte(tag, ','); i >= 0 {
		tag = tag[:i]
	}
	if tag == "" {
		return f.Name
	}
	return tag
}

// unmarshalOneOf decodes data into v rejecting unknown actions and payloads with more than one key.
func unmarshalOneOf(data []byte, v interface{}) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %s", ErrMalformed, err)
	}

	if len(raw) != 1 {
		return fmt.Errorf("%w: expected exactly one action, got %d", ErrMalformed, len(raw))
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %s", ErrMalformed, err)
	}

	return nil
}

// Encode validates message and marshals it to json.
func Encode(m OneOf) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", m.Action(), err)
	}

	return data, nil
}

// Decode unmarshals contract response into v.
func Decode(data []byte, v interface{}) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
