// Package props classifies device tree properties by name and decodes their
// values for display.
//
// Classification is by exact name against three fixed tables. Anything not
// listed is opaque and rendered as hex bytes.
package props

import "fmt"

// Kind is the decoded shape of a property value.
type Kind uint8

const (
	// KindOpaque values are shown as hex bytes.
	KindOpaque Kind = iota
	// KindU32 values are a single big-endian 32-bit cell.
	KindU32
	// KindString values are one NUL-terminated string.
	KindString
	// KindStringList values are consecutive NUL-terminated strings.
	KindStringList
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindOpaque:
		return "opaque"
	case KindU32:
		return "u32"
	case KindString:
		return "string"
	case KindStringList:
		return "stringlist"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

var (
	u32Names = []string{
		"phandle",
		"interrupt-parent",
		"#interrupt-cells",
		"#address-cells",
		"#size-cells",
		"#clock-cells",
		"#gpio-cells",
		"bank-width",
		"device-width",
	}

	stringNames = []string{
		"model",
		"device_type",
		"stdout-path",
	}

	stringListNames = []string{
		"compatible",
		"clock-names",
		"clock-output-names",
	}
)

// priority is the lookup order when a name is listed in more than one table.
var priority = []Kind{KindString, KindStringList, KindU32}

// kinds holds the merged tables. A name listed in more than one table keeps
// the kind of the first one in priority order.
var kinds = func() map[string]Kind {
	m := make(map[string]Kind, len(u32Names)+len(stringNames)+len(stringListNames))
	for _, k := range priority {
		for _, n := range Names(k) {
			if _, ok := m[n]; !ok {
				m[n] = k
			}
		}
	}
	return m
}()

// Classify returns the kind for a property name.
func Classify(name string) Kind {
	return kinds[name]
}

// Names returns the property names classified as k, in table order. It
// returns nil for KindOpaque.
func Names(k Kind) []string {
	var src []string
	switch k {
	case KindU32:
		src = u32Names
	case KindString:
		src = stringNames
	case KindStringList:
		src = stringListNames
	default:
		return nil
	}
	return append([]string(nil), src...)
}
