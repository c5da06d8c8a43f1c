package vars

import (
	"fmt"

	"github.com/calcfile/tivar/errs"
)

// View is the common surface of every typed entry view. All views embed
// the entry they wrap, so entry-level accessors are promoted.
type View interface {
	TypeID() uint8
	Name() string
	Bytes() []byte
}

// Specialize wraps e in the typed view matching its type id, validating
// the data shape along the way. Unknown type ids fail with
// ErrUnknownTypeID; callers that want to carry unknown entries through
// untouched should keep using the plain *Entry.
func Specialize(e *Entry) (View, error) {
	switch e.TypeID() {
	case TypeReal, TypeUndefinedReal:
		return AsRealVar(e)
	case TypeComplex:
		return AsComplexVar(e)
	case TypeRealList:
		return AsRealList(e)
	case TypeComplexList:
		return AsComplexList(e)
	case TypeMatrix:
		return AsMatrix(e)
	case TypeEquation:
		return AsEquation(e)
	case TypeString:
		return AsStringVar(e)
	case TypeProgram, TypeProtectedProgram:
		return AsProgram(e)
	case TypePicture:
		return AsPicture(e)
	case TypeGDB:
		return AsGDB(e)
	case TypeWindowSettings:
		return AsWindowSettings(e)
	case TypeAppVar:
		return AsAppVar(e)
	case TypeImage:
		return AsImage(e)
	}
	return nil, fmt.Errorf("%w: 0x%02X", errs.ErrUnknownTypeID, e.TypeID())
}
