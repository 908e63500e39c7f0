package html

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Naira amounts are written the English way, e.g., 5,000,000
var amountPrinter = message.NewPrinter(language.English)

// FormatAmount renders a numeric amount with thousands separators, e.g.,
// 5000000 becomes "5,000,000". Whole floats drop their fraction and other
// floats keep every significant digit after the point. v can be any Go
// integer or float type, a json.Number, or a string holding a number, which
// covers whatever a YAML or JSON decoder hands us.
func FormatAmount(v interface{}) (string, error) {
	switch n := v.(type) {
	case int:
		return amountPrinter.Sprintf("%d", n), nil
	case int8:
		return amountPrinter.Sprintf("%d", n), nil
	case int16:
		return amountPrinter.Sprintf("%d", n), nil
	case int32:
		return amountPrinter.Sprintf("%d", n), nil
	case int64:
		return amountPrinter.Sprintf("%d", n), nil
	case uint:
		return amountPrinter.Sprintf("%d", n), nil
	case uint8:
		return amountPrinter.Sprintf("%d", n), nil
	case uint16:
		return amountPrinter.Sprintf("%d", n), nil
	case uint32:
		return amountPrinter.Sprintf("%d", n), nil
	case uint64:
		return amountPrinter.Sprintf("%d", n), nil
	case float32:
		return formatFloat(float64(n))
	case float64:
		return formatFloat(n)
	case json.Number:
		return FormatAmount(string(n))
	case string:
		s := strings.TrimSpace(n)
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return FormatAmount(i)
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return "", fmt.Errorf("can't read %q as an amount", n)
		}
		return formatFloat(f)
	default:
		return "", fmt.Errorf("can't read a %T as an amount", v)
	}
}

func formatFloat(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("can't format %v as an amount", f)
	}

	var sign string
	if f < 0 {
		sign = "-"
		f = -f
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	whole, frac, _ := strings.Cut(s, ".")
	var out string
	if w, err := strconv.ParseUint(whole, 10, 64); err == nil {
		out = sign + amountPrinter.Sprintf("%d", w)
	} else {
		// Past 2^64, so group the digits FormatFloat already wrote out
		out = sign + groupThousands(whole)
	}
	if frac != "" {
		out += "." + frac
	}
	return out, nil
}

// groupThousands puts a comma between every three digits of a whole number,
// counting from the right.
func groupThousands(digits string) string {
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return b.String()
}
