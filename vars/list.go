package vars

import (
	"fmt"

	"github.com/calcfile/tivar/errs"
	"github.com/calcfile/tivar/numeric"
)

// MaxListLength is the largest element count the OS accepts in a list.
const MaxListLength = 999

// RealList is a typed view over a list of reals. The data is a u16
// element count followed by the packed 9-byte elements.
type RealList struct {
	*Entry
}

// NewRealList creates an empty real list named L1.
func NewRealList() *RealList {
	e, _ := NewEntry(TypeRealList)
	return &RealList{Entry: e}
}

// AsRealList views e as a real list. The stored element count must
// agree with the data size.
func AsRealList(e *Entry) (*RealList, error) {
	if e.TypeID() != TypeRealList {
		return nil, fmt.Errorf("%w: %s is not a real list", errs.ErrUnknownTypeID, e)
	}
	if err := checkListShape(e, numeric.Size); err != nil {
		return nil, err
	}
	return &RealList{Entry: e}, nil
}

func checkListShape(e *Entry, elemSize int) error {
	if err := e.validate(); err != nil {
		return err
	}
	count := int(engine.Uint16(e.data.Bytes()[0:2]))
	if got := (e.data.Len() - 2) / elemSize; got != count || (e.data.Len()-2)%elemSize != 0 {
		return fmt.Errorf("%w: count says %d elements, data holds %d bytes",
			errs.ErrLengthMismatch, count, e.data.Len()-2)
	}
	return nil
}

// Len returns the element count.
func (l *RealList) Len() int {
	return int(engine.Uint16(l.data.Bytes()[0:2]))
}

// At decodes the i-th element.
func (l *RealList) At(i int) (numeric.Real, error) {
	if i < 0 || i >= l.Len() {
		return numeric.Real{}, fmt.Errorf("%w: index %d of %d", errs.ErrSectionOutOfBounds, i, l.Len())
	}
	off := 2 + i*numeric.Size
	return numeric.ParseReal(l.data.Bytes()[off : off+numeric.Size])
}

// SetAt overwrites the i-th element.
func (l *RealList) SetAt(i int, r numeric.Real) error {
	if i < 0 || i >= l.Len() {
		return fmt.Errorf("%w: index %d of %d", errs.ErrSectionOutOfBounds, i, l.Len())
	}
	off := 2 + i*numeric.Size
	copy(l.data.Bytes()[off:off+numeric.Size], r.Bytes())
	return nil
}

// Values decodes all elements.
func (l *RealList) Values() ([]numeric.Real, error) {
	out := make([]numeric.Real, l.Len())
	for i := range out {
		v, err := l.At(i)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// SetValues replaces the whole list. Lists longer than MaxListLength
// are rejected.
func (l *RealList) SetValues(values []numeric.Real) error {
	if len(values) > MaxListLength {
		return fmt.Errorf("%w: %d elements, limit %d", errs.ErrDimensionTooLarge, len(values), MaxListLength)
	}
	data := make([]byte, 0, 2+len(values)*numeric.Size)
	data = engine.AppendUint16(data, uint16(len(values)))
	for _, v := range values {
		data = append(data, v.Bytes()...)
	}
	l.SetData(data)
	return nil
}

// ComplexList is a typed view over a list of complex numbers, laid out
// like RealList with 18-byte elements.
type ComplexList struct {
	*Entry
}

// NewComplexList creates an empty complex list named L1.
func NewComplexList() *ComplexList {
	e, _ := NewEntry(TypeComplexList)
	return &ComplexList{Entry: e}
}

// AsComplexList views e as a complex list.
func AsComplexList(e *Entry) (*ComplexList, error) {
	if e.TypeID() != TypeComplexList {
		return nil, fmt.Errorf("%w: %s is not a complex list", errs.ErrUnknownTypeID, e)
	}
	if err := checkListShape(e, numeric.ComplexSize); err != nil {
		return nil, err
	}
	return &ComplexList{Entry: e}, nil
}

// Len returns the element count.
func (l *ComplexList) Len() int {
	return int(engine.Uint16(l.data.Bytes()[0:2]))
}

// At decodes the i-th element.
func (l *ComplexList) At(i int) (numeric.Complex, error) {
	if i < 0 || i >= l.Len() {
		return numeric.Complex{}, fmt.Errorf("%w: index %d of %d", errs.ErrSectionOutOfBounds, i, l.Len())
	}
	off := 2 + i*numeric.ComplexSize
	return numeric.ParseComplex(l.data.Bytes()[off : off+numeric.ComplexSize])
}

// SetAt overwrites the i-th element.
func (l *ComplexList) SetAt(i int, c numeric.Complex) error {
	if i < 0 || i >= l.Len() {
		return fmt.Errorf("%w: index %d of %d", errs.ErrSectionOutOfBounds, i, l.Len())
	}
	off := 2 + i*numeric.ComplexSize
	copy(l.data.Bytes()[off:off+numeric.ComplexSize], c.Bytes())
	return nil
}

// Values decodes all elements.
func (l *ComplexList) Values() ([]numeric.Complex, error) {
	out := make([]numeric.Complex, l.Len())
	for i := range out {
		v, err := l.At(i)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// SetValues replaces the whole list.
func (l *ComplexList) SetValues(values []numeric.Complex) error {
	if len(values) > MaxListLength {
		return fmt.Errorf("%w: %d elements, limit %d", errs.ErrDimensionTooLarge, len(values), MaxListLength)
	}
	data := make([]byte, 0, 2+len(values)*numeric.ComplexSize)
	data = engine.AppendUint16(data, uint16(len(values)))
	for _, v := range values {
		data = append(data, v.Bytes()...)
	}
	l.SetData(data)
	return nil
}
