package runtime

import "fmt"

// Kind identifies the runtime value category.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the closed set of Lox runtime values. Only the types in this file
// implement it.
type Value interface {
	Kind() Kind
	isValue()
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type NilValue struct{}

func (NilValue) Kind() Kind { return KindNil }
func (NilValue) isValue()   {}

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }
func (BoolValue) isValue()     {}

// NumberValue is a double-precision float; Lox has no integer type.
type NumberValue struct {
	Val float64
}

func (v NumberValue) Kind() Kind { return KindNumber }
func (NumberValue) isValue()     {}

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }
func (StringValue) isValue()     {}

// FromLiteral converts a token or AST literal payload into a Value.
func FromLiteral(literal any) (Value, error) {
	switch v := literal.(type) {
	case nil:
		return NilValue{}, nil
	case bool:
		return BoolValue{Val: v}, nil
	case float64:
		return NumberValue{Val: v}, nil
	case string:
		return StringValue{Val: v}, nil
	default:
		return nil, fmt.Errorf("unsupported literal %T", literal)
	}
}
