package coerce

import (
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"restmapper/internal/descriptor"
)

// ErrNotCoercible is wrapped by every failed conversion.
var ErrNotCoercible = errors.New("value not coercible")

// Kind is the JSON type of a scalar wire value.
type Kind int

const (
	KindBool Kind = iota + 1
	KindNumber
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Value is a JSON scalar as it appeared on the wire. Numbers keep their
// literal text so that large integers survive without float rounding.
type Value struct {
	Kind Kind
	Text string
	Bool bool
}

func Bool(b bool) Value          { return Value{Kind: KindBool, Bool: b} }
func Number(literal string) Value { return Value{Kind: KindNumber, Text: literal} }
func String(s string) Value       { return Value{Kind: KindString, Text: s} }

// String renders the value as it would appear in JSON, for messages.
func (v Value) String() string {
	switch v.Kind {
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindString:
		return strconv.Quote(v.Text)
	default:
		return v.Text
	}
}

// To converts v to the Go representation of the primitive type t:
// bool, int32, int64, float64, string, []byte or time.Time (UTC).
// Representations other than the exact JSON type are accepted only when
// their category is set in c.
func (c Category) To(v Value, t descriptor.SemanticType) (any, error) {
	switch t {
	case descriptor.TypeBoolean:
		return c.toBool(v)
	case descriptor.TypeInt:
		n, err := c.toInt(v, 32)
		return int32(n), err
	case descriptor.TypeLong:
		return c.toInt(v, 64)
	case descriptor.TypeDouble:
		return c.toDouble(v)
	case descriptor.TypeString:
		return c.toString(v)
	case descriptor.TypeBytes:
		return c.toBytes(v)
	case descriptor.TypeTimestamp:
		return c.toTime(v)
	default:
		return nil, fmt.Errorf("%w: %s is not a primitive type", ErrNotCoercible, t)
	}
}

func mismatch(v Value, t descriptor.SemanticType, reason string) error {
	if reason == "" {
		return fmt.Errorf("%w: %s %s to %s", ErrNotCoercible, v.Kind, v, t)
	}

	return fmt.Errorf("%w: %s %s to %s: %s", ErrNotCoercible, v.Kind, v, t, reason)
}

func (c Category) toBool(v Value) (bool, error) {
	switch {
	case v.Kind == KindBool:
		return v.Bool, nil

	case v.Kind == KindString && c.Has(CategoryTextualBool):
		switch strings.ToLower(strings.TrimSpace(v.Text)) {
		case "true", "yes", "on":
			return true, nil
		case "false", "no", "off":
			return false, nil
		}

		return false, mismatch(v, descriptor.TypeBoolean, "only true/false, yes/no, on/off are allowed")

	case v.Kind == KindNumber && c.Has(CategoryNumericBool):
		switch v.Text {
		case "0":
			return false, nil
		case "1":
			return true, nil
		}

		return false, mismatch(v, descriptor.TypeBoolean, "only numbers 0 and 1 are allowed")
	}

	return false, mismatch(v, descriptor.TypeBoolean, "")
}

func (c Category) toInt(v Value, bits int) (int64, error) {
	t := descriptor.TypeLong
	if bits == 32 {
		t = descriptor.TypeInt
	}

	var text string

	switch {
	case v.Kind == KindNumber:
		text = v.Text
	case v.Kind == KindString && c.Has(CategoryTextNumber):
		text = strings.TrimSpace(v.Text)
	default:
		return 0, mismatch(v, t, "")
	}

	n, err := strconv.ParseInt(text, 10, bits)
	if err == nil {
		return n, nil
	}

	if errors.Is(err, strconv.ErrRange) {
		return 0, mismatch(v, t, "out of range")
	}

	// 12.0 or 1e3: integral but not written as an integer
	if !c.Has(CategorySafeNumber) {
		return 0, mismatch(v, t, "")
	}

	f, ferr := strconv.ParseFloat(text, 64)
	if ferr != nil || f != math.Trunc(f) {
		return 0, mismatch(v, t, "")
	}

	if f < math.MinInt64 || f >= math.MaxInt64 || (bits == 32 && (f < math.MinInt32 || f > math.MaxInt32)) {
		return 0, mismatch(v, t, "out of range")
	}

	return int64(f), nil
}

func (c Category) toDouble(v Value) (float64, error) {
	var text string

	switch {
	case v.Kind == KindNumber:
		text = v.Text
	case v.Kind == KindString && c.Has(CategoryTextNumber):
		text = strings.TrimSpace(v.Text)
	default:
		return 0, mismatch(v, descriptor.TypeDouble, "")
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, mismatch(v, descriptor.TypeDouble, "")
	}

	return f, nil
}

func (c Category) toString(v Value) (string, error) {
	switch {
	case v.Kind == KindString:
		return v.Text, nil
	case v.Kind == KindNumber && c.Has(CategoryTextual):
		return v.Text, nil
	case v.Kind == KindBool && c.Has(CategoryTextual):
		return strconv.FormatBool(v.Bool), nil
	}

	return "", mismatch(v, descriptor.TypeString, "")
}

func (c Category) toBytes(v Value) ([]byte, error) {
	if v.Kind != KindString || !c.Has(CategoryBase64) {
		return nil, mismatch(v, descriptor.TypeBytes, "")
	}

	b, err := base64.StdEncoding.DecodeString(v.Text)
	if err == nil {
		return b, nil
	}

	b, err = base64.RawStdEncoding.DecodeString(v.Text)
	if err != nil {
		return nil, mismatch(v, descriptor.TypeBytes, "invalid base64")
	}

	return b, nil
}

// dateLayouts are tried in order for string timestamps. Layouts without
// a zone are read as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func (c Category) toTime(v Value) (time.Time, error) {
	switch {
	case v.Kind == KindString && c.Has(CategoryDatetime):
		text := strings.TrimSpace(v.Text)
		for _, layout := range dateLayouts {
			if ts, err := time.Parse(layout, text); err == nil {
				return ts.UTC(), nil
			}
		}

		return time.Time{}, mismatch(v, descriptor.TypeTimestamp, "unsupported date format")

	case v.Kind == KindNumber && c.Has(CategoryTimestamp):
		n, err := strconv.ParseInt(v.Text, 10, 64)
		if err != nil {
			return time.Time{}, mismatch(v, descriptor.TypeTimestamp, "not integer seconds")
		}

		return time.Unix(n, 0).UTC(), nil
	}

	return time.Time{}, mismatch(v, descriptor.TypeTimestamp, "")
}
