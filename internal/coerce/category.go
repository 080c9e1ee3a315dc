package coerce

import "strings"

// Category is a bit set of accepted wire representations beyond the
// exact JSON type of a field.
type Category int

const (
	CategorySafeNumber  Category = 1 << iota // 12.0 -> int, 12 -> double, int -> long without loss
	CategoryTextNumber                       // "12", "1.5" -> int, long, double
	CategoryNumericBool                      // 0, 1 -> boolean
	CategoryTextualBool                      // "true", "yes", "on", "false", "no", "off" -> boolean
	CategoryTextual                          // numbers and booleans -> string, rendered as on the wire
	CategoryDatetime                         // RFC 3339 and plain date strings -> timestamp
	CategoryTimestamp                        // integer Unix seconds -> timestamp
	CategoryBase64                           // base64 strings -> bytes

	CategoryAll  = (1 << iota) - 1 // all categories combined
	CategoryNone = 0               // exact JSON types only

	// CategoryDefault is what the remote API needs: it serializes some
	// numeric and boolean fields as strings. Numeric booleans stay opt-in.
	CategoryDefault = CategoryAll &^ CategoryNumericBool
)

var categoryNames = []struct {
	name string
	cat  Category
}{
	{"safe_number", CategorySafeNumber},
	{"text_number", CategoryTextNumber},
	{"numeric_bool", CategoryNumericBool},
	{"textual_bool", CategoryTextualBool},
	{"textual", CategoryTextual},
	{"datetime", CategoryDatetime},
	{"timestamp", CategoryTimestamp},
	{"base64", CategoryBase64},
}

// Has reports whether all bits of other are set in c.
func (c Category) Has(other Category) bool {
	return c&other == other
}

// String lists the set categories separated by "|".
func (c Category) String() string {
	switch c {
	case CategoryNone:
		return "none"
	case CategoryAll:
		return "all"
	}

	var parts []string

	for _, n := range categoryNames {
		if c.Has(n.cat) {
			parts = append(parts, n.name)
		}
	}

	return strings.Join(parts, "|")
}

// ParseCategory parses names separated by "|" or ",". Besides the
// category names it accepts "all", "none" and "default".
func ParseCategory(s string) (Category, error) {
	var c Category

	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ',' }) {
		part = strings.ToLower(strings.TrimSpace(part))

		switch part {
		case "":
			continue
		case "all":
			c |= CategoryAll
			continue
		case "none":
			continue
		case "default":
			c |= CategoryDefault
			continue
		}

		found := false

		for _, n := range categoryNames {
			if n.name == part {
				c |= n.cat
				found = true

				break
			}
		}

		if !found {
			return CategoryNone, &UnknownCategoryError{Name: part}
		}
	}

	return c, nil
}

// UnknownCategoryError reports an unrecognized category name.
type UnknownCategoryError struct {
	Name string
}

func (e *UnknownCategoryError) Error() string {
	return "unknown coercion category " + `"` + e.Name + `"`
}
