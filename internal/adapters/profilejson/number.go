package profilejson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Number is a JSON number that older files also store as a numeric string.
// Empty strings and null leave it unset.
type Number struct {
	Value float64
	Set   bool
}

// Num returns a set Number.
func Num(v float64) Number { return Number{Value: v, Set: true} }

func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = Number{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*n = Number{}
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%q is not a number", s)
		}
		*n = Num(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("%s is not a number", b)
	}
	*n = Num(v)
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Set {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// object is a JSON object whose keys may have several historical spellings.
type object map[string]json.RawMessage

// raw returns the first present, non-null value among keys.
func (o object) raw(keys ...string) (json.RawMessage, string, bool) {
	for _, k := range keys {
		if v, ok := o[k]; ok && !bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			return v, k, true
		}
	}
	return nil, "", false
}

// number decodes the first present key among keys as a Number.
func (o object) number(keys ...string) (Number, error) {
	v, _, ok := o.raw(keys...)
	if !ok {
		return Number{}, nil
	}
	var n Number
	if err := json.Unmarshal(v, &n); err != nil {
		return Number{}, err
	}
	return n, nil
}

// str decodes the first present key among keys as a string. Numbers are
// accepted and formatted as written.
func (o object) str(keys ...string) string {
	v, _, ok := o.raw(keys...)
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(string(v))
}

// boolean decodes the first present key among keys. Strings "true"/"false"
// are accepted.
func (o object) boolean(keys ...string) (*bool, error) {
	v, k, ok := o.raw(keys...)
	if !ok {
		return nil, nil
	}
	var b bool
	if err := json.Unmarshal(v, &b); err == nil {
		return &b, nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		if pb, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
			return &pb, nil
		}
	}
	return nil, fmt.Errorf("%s: %s is not a boolean", k, v)
}
