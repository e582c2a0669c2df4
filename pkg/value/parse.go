package value

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseValue parses text as a value of type t. It never coerces: "1.5" is
// not an int32, "300" is not a uint8 and "yes" is not a bool. Array text is
// a bracketed, comma-separated list; string array elements must be double
// quoted.
func ParseValue(text string, t DataType) (Value, error) {
	if t.IsArray() {
		return parseArray(text, t)
	}
	x, err := parseScalar(text, t)
	if err != nil {
		return Value{}, err
	}
	return Value{typ: t, v: x}, nil
}

func parseScalar(text string, t DataType) (any, error) {
	fail := func() (any, error) {
		return nil, fmt.Errorf("%w: %q is not a valid %s", ErrParse, text, t)
	}

	switch t {
	case DataTypeString:
		return text, nil
	case DataTypeBool:
		switch text {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return fail()
	case DataTypeInt8, DataTypeInt16, DataTypeInt32, DataTypeInt64:
		i, err := strconv.ParseInt(text, 10, t.Bits())
		if err != nil {
			return fail()
		}
		switch t {
		case DataTypeInt8:
			return int8(i), nil
		case DataTypeInt16:
			return int16(i), nil
		case DataTypeInt32:
			return int32(i), nil
		}
		return i, nil
	case DataTypeUint8, DataTypeUint16, DataTypeUint32, DataTypeUint64:
		u, err := strconv.ParseUint(text, 10, t.Bits())
		if err != nil {
			return fail()
		}
		switch t {
		case DataTypeUint8:
			return uint8(u), nil
		case DataTypeUint16:
			return uint16(u), nil
		case DataTypeUint32:
			return uint32(u), nil
		}
		return u, nil
	case DataTypeFloat:
		f, err := strconv.ParseFloat(text, 32)
		if err != nil {
			return fail()
		}
		return float32(f), nil
	case DataTypeDouble:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return fail()
		}
		return f, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, t)
}

func parseArray(text string, t DataType) (Value, error) {
	elems, err := splitArray(text, t.Elem() == DataTypeString)
	if err != nil {
		return Value{}, err
	}

	elem := t.Elem()
	switch elem {
	case DataTypeString:
		return Value{typ: t, v: elems}, nil
	case DataTypeBool:
		return parseElems[bool](elems, t)
	case DataTypeInt8:
		return parseElems[int8](elems, t)
	case DataTypeInt16:
		return parseElems[int16](elems, t)
	case DataTypeInt32:
		return parseElems[int32](elems, t)
	case DataTypeInt64:
		return parseElems[int64](elems, t)
	case DataTypeUint8:
		return parseElems[uint8](elems, t)
	case DataTypeUint16:
		return parseElems[uint16](elems, t)
	case DataTypeUint32:
		return parseElems[uint32](elems, t)
	case DataTypeUint64:
		return parseElems[uint64](elems, t)
	case DataTypeFloat:
		return parseElems[float32](elems, t)
	case DataTypeDouble:
		return parseElems[float64](elems, t)
	}
	return Value{}, fmt.Errorf("%w: %s", ErrUnsupportedType, t)
}

func parseElems[T any](elems []string, t DataType) (Value, error) {
	out := make([]T, 0, len(elems))
	for _, e := range elems {
		x, err := parseScalar(e, t.Elem())
		if err != nil {
			return Value{}, err
		}
		out = append(out, x.(T))
	}
	return Value{typ: t, v: out}, nil
}

// splitArray splits "[a, b]" into its elements. Quoted elements are
// unquoted; unquoted elements are trimmed.
func splitArray(text string, quoted bool) ([]string, error) {
	s := strings.TrimSpace(text)
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return nil, fmt.Errorf("%w: array %q must be enclosed in brackets", ErrParse, text)
	}
	inner := strings.TrimSpace(s[1 : len(s)-1])
	if inner == "" {
		return []string{}, nil
	}

	if !quoted {
		parts := strings.Split(inner, ",")
		for i, p := range parts {
			parts[i] = strings.TrimSpace(p)
			if parts[i] == "" {
				return nil, fmt.Errorf("%w: empty element in %q", ErrParse, text)
			}
		}
		return parts, nil
	}

	var out []string
	rest := inner
	for {
		prefix, err := strconv.QuotedPrefix(rest)
		if err != nil || !strings.HasPrefix(prefix, `"`) {
			return nil, fmt.Errorf("%w: string array elements must be double quoted in %q", ErrParse, text)
		}
		elem, err := strconv.Unquote(prefix)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		out = append(out, elem)

		rest = strings.TrimSpace(rest[len(prefix):])
		if rest == "" {
			return out, nil
		}
		if rest[0] != ',' {
			return nil, fmt.Errorf("%w: expected ',' after %s in %q", ErrParse, prefix, text)
		}
		rest = strings.TrimSpace(rest[1:])
	}
}

// Format renders v as text that ParseValue reads back into an equal Value.
// The empty Value formats as "".
func Format(v Value) string {
	if v.IsEmpty() {
		return ""
	}
	if !v.typ.IsArray() {
		return formatScalar(v.v)
	}

	var parts []string
	switch arr := v.v.(type) {
	case []string:
		for _, s := range arr {
			parts = append(parts, strconv.Quote(s))
		}
	case []bool:
		parts = formatElems(arr)
	case []int8:
		parts = formatElems(arr)
	case []int16:
		parts = formatElems(arr)
	case []int32:
		parts = formatElems(arr)
	case []int64:
		parts = formatElems(arr)
	case []uint8:
		parts = formatElems(arr)
	case []uint16:
		parts = formatElems(arr)
	case []uint32:
		parts = formatElems(arr)
	case []uint64:
		parts = formatElems(arr)
	case []float32:
		parts = formatElems(arr)
	case []float64:
		parts = formatElems(arr)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatElems[T any](arr []T) []string {
	parts := make([]string, len(arr))
	for i, e := range arr {
		parts[i] = formatScalar(e)
	}
	return parts
}

func formatScalar(x any) string {
	switch x := x.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int8:
		return strconv.FormatInt(int64(x), 10)
	case int16:
		return strconv.FormatInt(int64(x), 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint8:
		return strconv.FormatUint(uint64(x), 10)
	case uint16:
		return strconv.FormatUint(uint64(x), 10)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	}
	return fmt.Sprint(x)
}
