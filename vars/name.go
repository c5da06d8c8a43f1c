package vars

import (
	"fmt"
	"strings"

	"github.com/calcfile/tivar/errs"
)

// On-calc token bytes that appear inside name fields.
const (
	thetaByte     = 0x5B
	matrixToken   = 0x5C
	listToken     = 0x5D
	equationToken = 0x5E
	stringToken   = 0xAA
)

// idListIndex is the token index of the IDList system list.
const idListIndex = 0x40

// decodeName renders raw name bytes as text: trailing NULs are padding
// and 0x5B is the theta character.
func decodeName(raw []byte) string {
	var b strings.Builder
	end := len(raw)
	for end > 0 && raw[end-1] == 0 {
		end--
	}
	for _, c := range raw[:end] {
		if c == thetaByte {
			b.WriteRune('θ')
		} else {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// encodeName validates a plain variable name and encodes it into an
// 8-byte field. Valid names are 1 to maxLen characters drawn from A-Z,
// 0-9 and θ, and may not start with a digit.
func encodeName(name string, maxLen int) ([8]byte, error) {
	var out [8]byte
	runes := []rune(name)
	if len(runes) == 0 {
		return out, fmt.Errorf("%w: name is empty", errs.ErrInvalidName)
	}
	if len(runes) > maxLen {
		return out, fmt.Errorf("%w: %q exceeds %d characters", errs.ErrInvalidName, name, maxLen)
	}
	if runes[0] >= '0' && runes[0] <= '9' {
		return out, fmt.Errorf("%w: %q starts with a digit", errs.ErrInvalidName, name)
	}
	for i, r := range runes {
		switch {
		case r >= 'A' && r <= 'Z' || r >= '0' && r <= '9':
			out[i] = byte(r)
		case r == 'θ':
			out[i] = thetaByte
		default:
			return out, fmt.Errorf("%w: %q contains %q", errs.ErrInvalidName, name, r)
		}
	}
	return out, nil
}

// encodeFreeName encodes a settings name. Unlike variable names these
// are stored as free-form text, so any byte sequence of 1 to 8 bytes
// is accepted and NUL padded.
func encodeFreeName(name string) ([8]byte, error) {
	var out [8]byte
	if len(name) == 0 {
		return out, fmt.Errorf("%w: name is empty", errs.ErrInvalidName)
	}
	if len(name) > len(out) {
		return out, fmt.Errorf("%w: %q exceeds %d bytes", errs.ErrInvalidName, name, len(out))
	}
	copy(out[:], name)
	return out, nil
}

// decodeListName renders a list name field. System lists are stored as
// the list token followed by an index byte: L1 through L6, plus the
// IDList. User lists store the token followed by up to five name
// characters.
func decodeListName(raw []byte) string {
	if len(raw) == 0 || raw[0] != listToken {
		return decodeName(raw)
	}
	if len(raw) > 1 {
		switch {
		case raw[1] <= 0x05 && (len(raw) == 2 || raw[2] == 0):
			return fmt.Sprintf("L%d", raw[1]+1)
		case raw[1] == idListIndex:
			return "IDList"
		}
	}
	return decodeName(raw[1:])
}

// encodeListName validates and encodes a list name. "L1" through "L6"
// and "IDList" map to their token forms; any other name must be 1 to 5
// characters under the plain name rules and is stored behind the list
// token.
func encodeListName(name string) ([8]byte, error) {
	var out [8]byte
	out[0] = listToken
	if len(name) == 2 && name[0] == 'L' && name[1] >= '1' && name[1] <= '6' {
		out[1] = name[1] - '1'
		return out, nil
	}
	if name == "IDList" {
		out[1] = idListIndex
		return out, nil
	}
	enc, err := encodeName(name, 5)
	if err != nil {
		return out, err
	}
	copy(out[1:], enc[:5])
	return out, nil
}

// equationIndexes maps each graphing equation name to its index byte
// behind the equation token. Y1-Y0 serve function mode, the T pairs
// parametric mode, r1-r6 polar mode and u,v,w sequence mode.
var equationIndexes = func() map[string]byte {
	m := make(map[string]byte)
	for i := 0; i < 10; i++ {
		m[fmt.Sprintf("Y%d", (i+1)%10)] = byte(0x10 + i)
	}
	for i := 0; i < 6; i++ {
		m[fmt.Sprintf("X%dT", i+1)] = byte(0x20 + 2*i)
		m[fmt.Sprintf("Y%dT", i+1)] = byte(0x21 + 2*i)
		m[fmt.Sprintf("r%d", i+1)] = byte(0x40 + i)
	}
	m["u"] = 0x80
	m["v"] = 0x81
	m["w"] = 0x82
	return m
}()

var equationNames = func() map[byte]string {
	m := make(map[byte]string, len(equationIndexes))
	for name, idx := range equationIndexes {
		m[idx] = name
	}
	return m
}()

// decodeEquationName renders an equation name field: the equation token
// followed by the index byte of a graphing equation.
func decodeEquationName(raw []byte) string {
	if len(raw) >= 2 && raw[0] == equationToken {
		if name, ok := equationNames[raw[1]]; ok {
			return name
		}
	}
	return decodeName(raw)
}

// encodeEquationName validates and encodes an equation name, which must
// be one of the graphing equation names (Y1-Y0, X1T-Y6T, r1-r6, u, v, w).
func encodeEquationName(name string) ([8]byte, error) {
	var out [8]byte
	idx, ok := equationIndexes[name]
	if !ok {
		return out, fmt.Errorf("%w: %q is not a graphing equation name", errs.ErrInvalidName, name)
	}
	out[0] = equationToken
	out[1] = idx
	return out, nil
}

// decodeStringName renders a string name field: the string token
// followed by an index byte for Str1 through Str0.
func decodeStringName(raw []byte) string {
	if len(raw) >= 2 && raw[0] == stringToken && raw[1] <= 9 {
		return fmt.Sprintf("Str%d", (raw[1]+1)%10)
	}
	return decodeName(raw)
}

// encodeStringName validates and encodes a string name, Str1 through
// Str0.
func encodeStringName(name string) ([8]byte, error) {
	var out [8]byte
	if len(name) == 4 && name[:3] == "Str" && name[3] >= '0' && name[3] <= '9' {
		out[0] = stringToken
		out[1] = (name[3] - '1' + 10) % 10
		return out, nil
	}
	return out, fmt.Errorf("%w: string name %q is not Str1 through Str0", errs.ErrInvalidName, name)
}

// decodeMatrixName renders a matrix name field. Matrices are stored as
// the matrix token followed by an index byte for [A] through [J].
func decodeMatrixName(raw []byte) string {
	if len(raw) >= 2 && raw[0] == matrixToken && raw[1] <= 9 {
		return fmt.Sprintf("[%c]", 'A'+raw[1])
	}
	return decodeName(raw)
}

// encodeMatrixName validates and encodes a matrix name, which must be
// one of [A] through [J].
func encodeMatrixName(name string) ([8]byte, error) {
	var out [8]byte
	if len(name) == 3 && name[0] == '[' && name[2] == ']' && name[1] >= 'A' && name[1] <= 'J' {
		out[0] = matrixToken
		out[1] = name[1] - 'A'
		return out, nil
	}
	return out, fmt.Errorf("%w: matrix name %q is not [A] through [J]", errs.ErrInvalidName, name)
}
