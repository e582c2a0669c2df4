package value

import (
	"errors"
	"testing"
)

func TestParseFormatRoundTrip(t *testing.T) {
	tests := []struct {
		text string
		typ  DataType
	}{
		{"hello world", DataTypeString},
		{"", DataTypeString},
		{"true", DataTypeBool},
		{"false", DataTypeBool},
		{"-128", DataTypeInt8},
		{"32767", DataTypeInt16},
		{"-2147483648", DataTypeInt32},
		{"9223372036854775807", DataTypeInt64},
		{"255", DataTypeUint8},
		{"65535", DataTypeUint16},
		{"4294967295", DataTypeUint32},
		{"18446744073709551615", DataTypeUint64},
		{"30", DataTypeFloat},
		{"0.1", DataTypeFloat},
		{"-1.5e+20", DataTypeDouble},
		{"3.141592653589793", DataTypeDouble},
		{`["a", "b,c", "with \"quote\""]`, DataTypeStringArray},
		{"[true, false]", DataTypeBoolArray},
		{"[-1, 0, 1]", DataTypeInt8Array},
		{"[1, 2, 3]", DataTypeUint32Array},
		{"[0.5, 2]", DataTypeDoubleArray},
		{"[]", DataTypeInt64Array},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String()+"/"+tt.text, func(t *testing.T) {
			v, err := ParseValue(tt.text, tt.typ)
			if err != nil {
				t.Fatalf("ParseValue(%q, %s) error = %v", tt.text, tt.typ, err)
			}
			if v.Type() != tt.typ {
				t.Errorf("Type() = %s, want %s", v.Type(), tt.typ)
			}
			if got := Format(v); got != tt.text {
				t.Errorf("Format() = %q, want %q", got, tt.text)
			}
		})
	}
}

func TestParseValueRejectsCoercion(t *testing.T) {
	tests := []struct {
		name string
		text string
		typ  DataType
	}{
		{"float as int", "1.5", DataTypeInt32},
		{"overflow uint8", "300", DataTypeUint8},
		{"negative unsigned", "-1", DataTypeUint16},
		{"overflow int8", "128", DataTypeInt8},
		{"word as bool", "yes", DataTypeBool},
		{"digit as bool", "1", DataTypeBool},
		{"text as float", "fast", DataTypeFloat},
		{"float32 overflow", "1e39", DataTypeFloat},
		{"unbracketed array", "1, 2", DataTypeInt32Array},
		{"empty element", "[1, , 2]", DataTypeInt32Array},
		{"unquoted string element", "[a, b]", DataTypeStringArray},
		{"bad element", "[1, x]", DataTypeUint8Array},
		{"timestamp", "2024-01-01T00:00:00Z", DataTypeTimestamp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ParseValue(tt.text, tt.typ)
			if err == nil {
				t.Fatalf("ParseValue(%q, %s) = %v, want error", tt.text, tt.typ, v)
			}
			if !errors.Is(err, ErrParse) && !errors.Is(err, ErrUnsupportedType) {
				t.Errorf("error = %v, want ErrParse or ErrUnsupportedType", err)
			}
			if !v.IsEmpty() {
				t.Errorf("failed parse returned non-empty value %v", v)
			}
		})
	}
}

func TestParseValueTagMatchesDeclaredType(t *testing.T) {
	v, err := ParseValue("42", DataTypeUint8)
	if err != nil {
		t.Fatalf("ParseValue failed: %v", err)
	}
	if err := CheckType(v, DataTypeUint8); err != nil {
		t.Errorf("CheckType() = %v", err)
	}
	if err := CheckType(v, DataTypeInt32); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("CheckType(int32) = %v, want ErrTypeMismatch", err)
	}
	if u, ok := As[uint8](v); !ok || u != 42 {
		t.Errorf("As[uint8]() = %d, %v", u, ok)
	}
}
