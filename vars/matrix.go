package vars

import (
	"fmt"

	"github.com/calcfile/tivar/errs"
	"github.com/calcfile/tivar/numeric"
)

// Matrix dimension limits imposed by the OS.
const (
	MaxMatrixDimension = 99
	MaxMatrixSize      = 400
)

// Matrix is a typed view over a real matrix. The data is a width byte
// and a height byte followed by the elements in row-major order.
type Matrix struct {
	*Entry
}

// NewMatrix creates an empty matrix named [A].
func NewMatrix() *Matrix {
	e, _ := NewEntry(TypeMatrix)
	return &Matrix{Entry: e}
}

// AsMatrix views e as a matrix. The stored dimensions must agree with
// the data size.
func AsMatrix(e *Entry) (*Matrix, error) {
	if e.TypeID() != TypeMatrix {
		return nil, fmt.Errorf("%w: %s is not a matrix", errs.ErrUnknownTypeID, e)
	}
	if err := e.validate(); err != nil {
		return nil, err
	}
	data := e.data.Bytes()
	want := int(data[0]) * int(data[1]) * numeric.Size
	if e.data.Len()-2 != want {
		return nil, fmt.Errorf("%w: %dx%d matrix needs %d data bytes, got %d",
			errs.ErrLengthMismatch, data[0], data[1], want, e.data.Len()-2)
	}
	return &Matrix{Entry: e}, nil
}

// Width returns the column count.
func (m *Matrix) Width() int { return int(m.data.Bytes()[0]) }

// Height returns the row count.
func (m *Matrix) Height() int { return int(m.data.Bytes()[1]) }

func (m *Matrix) offset(row, col int) (int, error) {
	if row < 0 || row >= m.Height() || col < 0 || col >= m.Width() {
		return 0, fmt.Errorf("%w: element (%d,%d) of %dx%d",
			errs.ErrSectionOutOfBounds, row, col, m.Height(), m.Width())
	}
	return 2 + (row*m.Width()+col)*numeric.Size, nil
}

// At decodes the element at the given row and column.
func (m *Matrix) At(row, col int) (numeric.Real, error) {
	off, err := m.offset(row, col)
	if err != nil {
		return numeric.Real{}, err
	}
	return numeric.ParseReal(m.data.Bytes()[off : off+numeric.Size])
}

// SetAt overwrites the element at the given row and column.
func (m *Matrix) SetAt(row, col int, r numeric.Real) error {
	off, err := m.offset(row, col)
	if err != nil {
		return err
	}
	copy(m.data.Bytes()[off:off+numeric.Size], r.Bytes())
	return nil
}

// Rows decodes the whole matrix, one slice per row.
func (m *Matrix) Rows() ([][]numeric.Real, error) {
	out := make([][]numeric.Real, m.Height())
	for r := range out {
		out[r] = make([]numeric.Real, m.Width())
		for c := range out[r] {
			v, err := m.At(r, c)
			if err != nil {
				return nil, fmt.Errorf("element (%d,%d): %w", r, c, err)
			}
			out[r][c] = v
		}
	}
	return out, nil
}

// SetRows replaces the whole matrix. All rows must have equal width,
// dimensions are capped at MaxMatrixDimension and the element count at
// MaxMatrixSize.
func (m *Matrix) SetRows(rows [][]numeric.Real) error {
	height := len(rows)
	width := 0
	if height > 0 {
		width = len(rows[0])
	}
	if height > MaxMatrixDimension || width > MaxMatrixDimension {
		return fmt.Errorf("%w: %dx%d exceeds %d per dimension",
			errs.ErrDimensionTooLarge, height, width, MaxMatrixDimension)
	}
	if height*width > MaxMatrixSize {
		return fmt.Errorf("%w: %d elements, limit %d",
			errs.ErrDimensionTooLarge, height*width, MaxMatrixSize)
	}
	data := make([]byte, 0, 2+height*width*numeric.Size)
	data = append(data, byte(width), byte(height))
	for r, row := range rows {
		if len(row) != width {
			return fmt.Errorf("%w: row %d has %d elements, want %d",
				errs.ErrLengthMismatch, r, len(row), width)
		}
		for _, v := range row {
			data = append(data, v.Bytes()...)
		}
	}
	m.SetData(data)
	return nil
}
