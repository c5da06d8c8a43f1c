package vars

import (
	"fmt"

	"github.com/calcfile/tivar/errs"
)

// sizedPayload returns the bytes behind the embedded length word.
func sizedPayload(e *Entry) []byte {
	return e.data.Bytes()[2:]
}

// setSizedPayload replaces the bytes behind the embedded length word
// and refreshes it.
func setSizedPayload(e *Entry, payload []byte) {
	data := make([]byte, 0, 2+len(payload))
	data = engine.AppendUint16(data, uint16(len(payload)))
	data = append(data, payload...)
	e.SetData(data)
}

// Program is a typed view over a program entry, protected or not.
// Protection is purely a type id distinction; the token stream is
// identical.
type Program struct {
	*Entry
}

// NewProgram creates an empty unprotected program with the given name.
func NewProgram(name string) (*Program, error) {
	e, _ := NewEntry(TypeProgram)
	if err := e.SetName(name); err != nil {
		return nil, err
	}
	return &Program{Entry: e}, nil
}

// AsProgram views e as a program. Both the plain and protected type ids
// are accepted.
func AsProgram(e *Entry) (*Program, error) {
	if e.TypeID() != TypeProgram && e.TypeID() != TypeProtectedProgram {
		return nil, fmt.Errorf("%w: %s is not a program", errs.ErrUnknownTypeID, e)
	}
	if err := e.validate(); err != nil {
		return nil, err
	}
	return &Program{Entry: e}, nil
}

// Protected reports whether the program carries the protected type id,
// which stops on-calc editing.
func (p *Program) Protected() bool { return p.typeID == TypeProtectedProgram }

// Protect marks the program protected.
func (p *Program) Protect() { p.typeID = TypeProtectedProgram }

// Unprotect marks the program editable.
func (p *Program) Unprotect() { p.typeID = TypeProgram }

// TokenBytes returns the program's token stream. The slice aliases the
// entry data.
func (p *Program) TokenBytes() []byte { return sizedPayload(p.Entry) }

// SetTokenBytes replaces the program's token stream.
func (p *Program) SetTokenBytes(tokens []byte) { setSizedPayload(p.Entry, tokens) }

// Equation is a typed view over a graphing equation entry.
type Equation struct {
	*Entry
}

// NewEquation creates an empty equation with the given graphing
// equation name, e.g. "Y1".
func NewEquation(name string) (*Equation, error) {
	e, _ := NewEntry(TypeEquation)
	if err := e.SetName(name); err != nil {
		return nil, err
	}
	return &Equation{Entry: e}, nil
}

// AsEquation views e as an equation.
func AsEquation(e *Entry) (*Equation, error) {
	if e.TypeID() != TypeEquation {
		return nil, fmt.Errorf("%w: %s is not an equation", errs.ErrUnknownTypeID, e)
	}
	if err := e.validate(); err != nil {
		return nil, err
	}
	return &Equation{Entry: e}, nil
}

// TokenBytes returns the equation's token stream. The slice aliases the
// entry data.
func (q *Equation) TokenBytes() []byte { return sizedPayload(q.Entry) }

// SetTokenBytes replaces the equation's token stream.
func (q *Equation) SetTokenBytes(tokens []byte) { setSizedPayload(q.Entry, tokens) }

// StringVar is a typed view over a string entry, Str1 through Str0.
type StringVar struct {
	*Entry
}

// NewStringVar creates an empty string variable named Str1.
func NewStringVar() *StringVar {
	e, _ := NewEntry(TypeString)
	return &StringVar{Entry: e}
}

// AsStringVar views e as a string variable.
func AsStringVar(e *Entry) (*StringVar, error) {
	if e.TypeID() != TypeString {
		return nil, fmt.Errorf("%w: %s is not a string variable", errs.ErrUnknownTypeID, e)
	}
	if err := e.validate(); err != nil {
		return nil, err
	}
	return &StringVar{Entry: e}, nil
}

// TokenBytes returns the string's token stream. The slice aliases the
// entry data.
func (s *StringVar) TokenBytes() []byte { return sizedPayload(s.Entry) }

// SetTokenBytes replaces the string's token stream.
func (s *StringVar) SetTokenBytes(tokens []byte) { setSizedPayload(s.Entry, tokens) }

// AppVar is a typed view over an application variable, an opaque byte
// container owned by a flash application.
type AppVar struct {
	*Entry
}

// NewAppVar creates an empty application variable with the given name.
func NewAppVar(name string) (*AppVar, error) {
	e, _ := NewEntry(TypeAppVar)
	if err := e.SetName(name); err != nil {
		return nil, err
	}
	return &AppVar{Entry: e}, nil
}

// AsAppVar views e as an application variable.
func AsAppVar(e *Entry) (*AppVar, error) {
	if e.TypeID() != TypeAppVar {
		return nil, fmt.Errorf("%w: %s is not an application variable", errs.ErrUnknownTypeID, e)
	}
	if err := e.validate(); err != nil {
		return nil, err
	}
	return &AppVar{Entry: e}, nil
}

// Payload returns the variable's contents. The slice aliases the entry
// data.
func (a *AppVar) Payload() []byte { return sizedPayload(a.Entry) }

// SetPayload replaces the variable's contents.
func (a *AppVar) SetPayload(b []byte) { setSizedPayload(a.Entry, b) }
