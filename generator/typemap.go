package generator

import "strings"

// rustToC maps a Rust type-syntax string to its C spelling. It is total:
// names outside the primitive table pass through unchanged, on the
// assumption that they are other translated declarations (a struct or
// enum name used as a field type). Function-pointer syntax is not
// understood and passes through unmodified.
func rustToC(typ string) string {
	typ = strings.TrimSpace(typ)

	if rest, ok := strings.CutPrefix(typ, "*mut"); ok {
		return rustToC(rest) + "*"
	}
	if rest, ok := strings.CutPrefix(typ, "*const"); ok {
		return "const " + rustToC(rest) + "*"
	}

	// bool passes through: the header includes <stdbool.h>.
	switch typ {
	case "()":
		return "void"
	case "f32":
		return "float"
	case "f64":
		return "double"
	case "i8":
		return "int8_t"
	case "i16":
		return "int16_t"
	case "i32":
		return "int32_t"
	case "i64":
		return "int64_t"
	case "isize":
		return "intptr_t"
	case "u8":
		return "uint8_t"
	case "u16":
		return "uint16_t"
	case "u32":
		return "uint32_t"
	case "u64":
		return "uint64_t"
	case "usize":
		return "uintptr_t"
	default:
		return typ
	}
}
