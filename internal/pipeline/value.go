package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Value is a parsed but not yet validated JSON document. The normalizer is the only
// place a Value becomes typed domain data.
type Value struct {
	v interface{}
}

// Parse strictly decodes text. Numbers are kept as json.Number so integral checks do
// not suffer float rounding.
func Parse(text string) (Value, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return Value{}, err
	}
	if dec.More() {
		return Value{}, fmt.Errorf("unexpected data after top-level value")
	}
	return Value{v: v}, nil
}

// Valid is the strict-parse oracle used by the repairer.
func Valid(text string) bool {
	return json.Valid([]byte(strings.TrimSpace(text)))
}

// Raw returns the underlying decoded value.
func (v Value) Raw() interface{} {
	return v.v
}

func (v Value) IsNull() bool {
	return v.v == nil
}

func (v Value) IsObject() bool {
	_, ok := v.v.(map[string]interface{})
	return ok
}

// Field looks up the first present key among names. It reports false when v is not
// an object or none of the keys exist.
func (v Value) Field(names ...string) (Value, bool) {
	obj, ok := v.v.(map[string]interface{})
	if !ok {
		return Value{}, false
	}
	for _, name := range names {
		if f, exists := obj[name]; exists {
			return Value{v: f}, true
		}
	}
	return Value{}, false
}

// Array returns the elements of a JSON array.
func (v Value) Array() ([]Value, bool) {
	arr, ok := v.v.([]interface{})
	if !ok {
		return nil, false
	}
	out := make([]Value, len(arr))
	for i, e := range arr {
		out[i] = Value{v: e}
	}
	return out, true
}

// String returns v when it is a JSON string.
func (v Value) String() (string, bool) {
	s, ok := v.v.(string)
	return s, ok
}

// Text renders any scalar as text. Objects and arrays are rendered as compact JSON,
// null as the empty string.
func (v Value) Text() string {
	switch t := v.v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(t); err != nil {
			return fmt.Sprint(t)
		}
		return strings.TrimSpace(buf.String())
	}
}

// Int returns v as an integer when it is an integral number or a string holding one.
func (v Value) Int() (int, bool) {
	var n json.Number
	switch t := v.v.(type) {
	case json.Number:
		n = t
	case string:
		n = json.Number(strings.TrimSpace(t))
	default:
		return 0, false
	}
	if i, err := n.Int64(); err == nil {
		if i > math.MaxInt32 || i < math.MinInt32 {
			return 0, false
		}
		return int(i), true
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}
