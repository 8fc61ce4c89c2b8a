package normalize

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// record is a loosely typed upstream object.
type record map[string]json.RawMessage

// first returns the value of the first key that is present, not null and
// not an empty string.
func (r record) first(keys []string) (json.RawMessage, bool) {
	for _, k := range keys {
		v, ok := r[k]
		if !ok {
			continue
		}
		s := strings.TrimSpace(string(v))
		if s == "" || s == "null" || s == `""` {
			continue
		}
		return v, true
	}
	return nil, false
}

func (r record) str(keys ...string) string {
	v, ok := r.first(keys)
	if !ok {
		return ""
	}
	return asString(v)
}

func (r record) decimal(keys ...string) decimal.Decimal {
	v, ok := r.first(keys)
	if !ok {
		return decimal.Zero
	}
	d, _ := asDecimal(v)
	return d
}

func (r record) nullDecimal(keys ...string) decimal.NullDecimal {
	v, ok := r.first(keys)
	if !ok {
		return decimal.NullDecimal{}
	}
	d, ok := asDecimal(v)
	return decimal.NullDecimal{Decimal: d, Valid: ok}
}

func (r record) integer(keys ...string) (int, bool) {
	v, ok := r.first(keys)
	if !ok {
		return 0, false
	}
	d, ok := asDecimal(v)
	if !ok {
		return 0, false
	}
	return int(d.IntPart()), true
}

func (r record) boolean(keys ...string) bool {
	v, ok := r.first(keys)
	if !ok {
		return false
	}
	var b bool
	if err := json.Unmarshal(v, &b); err == nil {
		return b
	}
	b, _ = strconv.ParseBool(asString(v))
	return b
}

// list decodes a string list that may arrive either as a native JSON array
// or as JSON text holding an array (as gamma encodes outcomes and prices).
func (r record) list(keys ...string) []string {
	v, ok := r.first(keys)
	if !ok {
		return nil
	}
	var text string
	if err := json.Unmarshal(v, &text); err == nil {
		v = json.RawMessage(text)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(v, &items); err != nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, asString(item))
	}
	return out
}

// asString renders a JSON scalar as text. Strings are unquoted; numbers and
// booleans keep their literal form.
func asString(v json.RawMessage) string {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(v))
}

// asDecimal accepts JSON numbers and numeric strings.
func asDecimal(v json.RawMessage) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(asString(v))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// decodeRecords decodes a JSON array of objects.
func decodeRecords(raw json.RawMessage) ([]record, bool) {
	var recs []record
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil, false
	}
	return recs, true
}
