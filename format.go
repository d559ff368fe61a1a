package bitvec

import (
	"fmt"
	"strings"
)

// String prints the bits like a []bool: "[true false true]".
func (v *BitVector) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, b := range v.All() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if b {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	}
	sb.WriteByte(']')
	return sb.String()
}

// Format implements fmt.Formatter.
//
// %v and %s print the String form. %b prints one digit per bit in index
// order, the form Parse accepts; %#b adds the "0b" prefix.
func (v *BitVector) Format(f fmt.State, verb rune) {
	switch verb {
	case 'b':
		if f.Flag('#') {
			_, _ = f.Write([]byte("0b"))
		}
		_, _ = f.Write(v.appendDigits(make([]byte, 0, v.len)))
	case 'v', 's':
		_, _ = f.Write([]byte(v.String()))
	default:
		_, _ = fmt.Fprintf(f, "%%!%c(bitvec.BitVector=%s)", verb, v.String())
	}
}

func (v *BitVector) appendDigits(dst []byte) []byte {
	for _, b := range v.All() {
		if b {
			dst = append(dst, '1')
		} else {
			dst = append(dst, '0')
		}
	}
	return dst
}
