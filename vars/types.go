package vars

// Variable type ids, stored in every entry's meta block.
const (
	TypeReal             uint8 = 0x00
	TypeRealList         uint8 = 0x01
	TypeMatrix           uint8 = 0x02
	TypeEquation         uint8 = 0x03
	TypeString           uint8 = 0x04
	TypeProgram          uint8 = 0x05
	TypeProtectedProgram uint8 = 0x06
	TypePicture          uint8 = 0x07
	TypeGDB              uint8 = 0x08
	TypeComplex          uint8 = 0x0C
	TypeComplexList      uint8 = 0x0D
	TypeUndefinedReal    uint8 = 0x0E
	TypeWindowSettings   uint8 = 0x0F
	TypeAppVar           uint8 = 0x15
	TypeImage            uint8 = 0x1A
)

// typeInfo drives name handling and default construction per type id.
type typeInfo struct {
	name string

	// sized types carry an embedded u16 length as the first two data
	// bytes, counting the bytes that follow it.
	sized bool

	// minDataLength is the smallest well formed data block.
	minDataLength int

	defaultName string

	decodeName func([]byte) string
	encodeName func(string) ([8]byte, error)
}

func plainName(maxLen int) func(string) ([8]byte, error) {
	return func(s string) ([8]byte, error) { return encodeName(s, maxLen) }
}

var typeTable = map[uint8]typeInfo{
	TypeReal:             {name: "Real", minDataLength: 9, defaultName: "A", decodeName: decodeName, encodeName: plainName(8)},
	TypeRealList:         {name: "RealList", minDataLength: 2, defaultName: "L1", decodeName: decodeListName, encodeName: encodeListName},
	TypeMatrix:           {name: "Matrix", minDataLength: 2, defaultName: "[A]", decodeName: decodeMatrixName, encodeName: encodeMatrixName},
	TypeEquation:         {name: "Equation", sized: true, minDataLength: 2, defaultName: "Y1", decodeName: decodeEquationName, encodeName: encodeEquationName},
	TypeString:           {name: "String", sized: true, minDataLength: 2, defaultName: "Str1", decodeName: decodeStringName, encodeName: encodeStringName},
	TypeProgram:          {name: "Program", sized: true, minDataLength: 2, defaultName: "PROGRAM", decodeName: decodeName, encodeName: plainName(8)},
	TypeProtectedProgram: {name: "ProtectedProgram", sized: true, minDataLength: 2, defaultName: "PROGRAM", decodeName: decodeName, encodeName: plainName(8)},
	TypePicture:          {name: "Picture", sized: true, minDataLength: 2, defaultName: "UNNAMED", decodeName: decodeName, encodeName: plainName(8)},
	TypeGDB:              {name: "GDB", sized: true, minDataLength: 61, defaultName: "GDB1", decodeName: decodeName, encodeName: plainName(8)},
	TypeComplex:          {name: "Complex", minDataLength: 18, defaultName: "A", decodeName: decodeName, encodeName: plainName(8)},
	TypeComplexList:      {name: "ComplexList", minDataLength: 2, defaultName: "L1", decodeName: decodeListName, encodeName: encodeListName},
	TypeUndefinedReal:    {name: "UndefinedReal", minDataLength: 9, defaultName: "A", decodeName: decodeName, encodeName: plainName(8)},
	TypeWindowSettings:   {name: "WindowSettings", minDataLength: 210, defaultName: "Window", decodeName: decodeName, encodeName: encodeFreeName},
	TypeAppVar:           {name: "AppVar", sized: true, minDataLength: 2, defaultName: "APPVAR", decodeName: decodeName, encodeName: plainName(8)},
	TypeImage:            {name: "Image", sized: true, minDataLength: 2, defaultName: "UNNAMED", decodeName: decodeName, encodeName: plainName(8)},
}

// TypeName returns the human-readable name of a type id.
func TypeName(id uint8) (string, bool) {
	info, ok := typeTable[id]
	if !ok {
		return "", false
	}
	return info.name, true
}

// KnownType reports whether id is a registered variable type.
func KnownType(id uint8) bool {
	_, ok := typeTable[id]
	return ok
}
