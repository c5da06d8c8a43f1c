package vars

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/calcfile/tivar/errs"
	"github.com/calcfile/tivar/numeric"
)

// RealVar is a typed view over a real number entry. It covers both the
// ordinary real type and the undefined real type, which share a data
// layout and differ only in type id.
type RealVar struct {
	*Entry
}

// NewRealVar creates a real variable named A holding zero.
func NewRealVar() *RealVar {
	e, _ := NewEntry(TypeReal)
	v := &RealVar{Entry: e}
	v.SetValue(numeric.Real{Exponent: numeric.ExponentBias})
	return v
}

// AsRealVar views e as a real variable.
func AsRealVar(e *Entry) (*RealVar, error) {
	if e.TypeID() != TypeReal && e.TypeID() != TypeUndefinedReal {
		return nil, fmt.Errorf("%w: %s is not a real variable", errs.ErrUnknownTypeID, e)
	}
	if err := e.validate(); err != nil {
		return nil, err
	}
	return &RealVar{Entry: e}, nil
}

// Value decodes the entry's 9 data bytes.
func (v *RealVar) Value() (numeric.Real, error) {
	return numeric.ParseReal(v.data.Bytes()[:numeric.Size])
}

// SetValue overwrites the entry's data with r.
func (v *RealVar) SetValue(r numeric.Real) {
	copy(v.data.Bytes()[:numeric.Size], r.Bytes())
}

// Decimal returns the variable's value as an exact decimal.
func (v *RealVar) Decimal() (decimal.Decimal, error) {
	r, err := v.Value()
	if err != nil {
		return decimal.Decimal{}, err
	}
	return r.Decimal()
}

// SetDecimal stores d, preserving the flag bits already present.
func (v *RealVar) SetDecimal(d decimal.Decimal) error {
	r, err := v.Value()
	if err != nil {
		return err
	}
	if err := r.SetDecimal(d); err != nil {
		return err
	}
	v.SetValue(r)
	return nil
}

// ComplexVar is a typed view over a complex number entry.
type ComplexVar struct {
	*Entry
}

// NewComplexVar creates a complex variable named A holding zero.
func NewComplexVar() *ComplexVar {
	e, _ := NewEntry(TypeComplex)
	v := &ComplexVar{Entry: e}
	zero := numeric.Real{Flags: numeric.FlagComplexHalf, Exponent: numeric.ExponentBias}
	v.SetValue(numeric.Complex{Re: zero, Im: zero})
	return v
}

// AsComplexVar views e as a complex variable.
func AsComplexVar(e *Entry) (*ComplexVar, error) {
	if e.TypeID() != TypeComplex {
		return nil, fmt.Errorf("%w: %s is not a complex variable", errs.ErrUnknownTypeID, e)
	}
	if err := e.validate(); err != nil {
		return nil, err
	}
	return &ComplexVar{Entry: e}, nil
}

// Value decodes the entry's 18 data bytes.
func (v *ComplexVar) Value() (numeric.Complex, error) {
	return numeric.ParseComplex(v.data.Bytes()[:numeric.ComplexSize])
}

// SetValue overwrites the entry's data with c. Both halves get the
// complex marker bits set.
func (v *ComplexVar) SetValue(c numeric.Complex) {
	copy(v.data.Bytes()[:numeric.ComplexSize], c.Bytes())
}

// Complex128 returns the variable's value as a complex128.
func (v *ComplexVar) Complex128() (complex128, error) {
	c, err := v.Value()
	if err != nil {
		return 0, err
	}
	return c.Complex128()
}

// SetComplex128 stores z.
func (v *ComplexVar) SetComplex128(z complex128) error {
	c, err := v.Value()
	if err != nil {
		return err
	}
	if err := c.SetComplex128(z); err != nil {
		return err
	}
	v.SetValue(c)
	return nil
}
