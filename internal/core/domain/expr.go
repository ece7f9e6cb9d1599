package domain

import (
	"math/big"
	"strings"
)

// ExprOp identifies the shape of an expression node.
type ExprOp string

const (
	// OpNumber is an integer literal; Value holds its decimal text.
	OpNumber ExprOp = "num"
	// OpIdent is a variable or parameter reference; Name holds the identifier.
	OpIdent ExprOp = "ident"
	// OpArray is an array literal; Args holds the elements.
	OpArray ExprOp = "array"
	// OpIndex is an indexing expression; Args holds base and index.
	OpIndex ExprOp = "index"
	// OpCall is a function call; Name holds the callee and Args the arguments.
	OpCall ExprOp = "call"
	// OpMember is a member access; Name holds the field and Args the base.
	OpMember ExprOp = "member"
	// OpUnary is a prefix operator; Value holds the operator and Args the operand.
	OpUnary ExprOp = "unary"
	// OpBinary is an infix operator; Value holds the operator and Args both operands.
	OpBinary ExprOp = "binary"
	// OpTernary is a conditional; Args holds condition, then and else.
	OpTernary ExprOp = "ternary"
)

// Expr is a serializable expression tree.
// It is persisted in the change cache and the parse cache, so it only holds
// plain strings and slices.
type Expr struct {
	Op    ExprOp `json:"op"`
	Value string `json:"value,omitempty"`
	Name  string `json:"name,omitempty"`
	Args  []Expr `json:"args,omitempty"`
}

// NumberExpr builds a literal.
func NumberExpr(v int64) Expr {
	return Expr{Op: OpNumber, Value: big.NewInt(v).String()}
}

// IdentExpr builds an identifier reference.
func IdentExpr(name string) Expr {
	return Expr{Op: OpIdent, Name: name}
}

// BinaryExpr builds an infix expression.
func BinaryExpr(op string, lhs, rhs Expr) Expr {
	return Expr{Op: OpBinary, Value: op, Args: []Expr{lhs, rhs}}
}

// String renders the expression back to source-like text.
func (e Expr) String() string {
	var sb strings.Builder
	e.write(&sb)
	return sb.String()
}

func (e Expr) write(sb *strings.Builder) {
	switch e.Op {
	case OpNumber:
		sb.WriteString(e.Value)
	case OpIdent:
		sb.WriteString(e.Name)
	case OpArray:
		sb.WriteByte('[')
		writeList(sb, e.Args)
		sb.WriteByte(']')
	case OpIndex:
		e.Args[0].writeOperand(sb)
		sb.WriteByte('[')
		e.Args[1].write(sb)
		sb.WriteByte(']')
	case OpCall:
		sb.WriteString(e.Name)
		sb.WriteByte('(')
		writeList(sb, e.Args)
		sb.WriteByte(')')
	case OpMember:
		e.Args[0].writeOperand(sb)
		sb.WriteByte('.')
		sb.WriteString(e.Name)
	case OpUnary:
		sb.WriteString(e.Value)
		e.Args[0].writeOperand(sb)
	case OpBinary:
		e.Args[0].writeOperand(sb)
		sb.WriteString(" " + e.Value + " ")
		e.Args[1].writeOperand(sb)
	case OpTernary:
		e.Args[0].writeOperand(sb)
		sb.WriteString(" ? ")
		e.Args[1].writeOperand(sb)
		sb.WriteString(" : ")
		e.Args[2].writeOperand(sb)
	default:
		sb.WriteString("<invalid>")
	}
}

// writeOperand parenthesizes compound operands so the rendering stays unambiguous.
func (e Expr) writeOperand(sb *strings.Builder) {
	if e.Op == OpBinary || e.Op == OpTernary {
		sb.WriteByte('(')
		e.write(sb)
		sb.WriteByte(')')
		return
	}
	e.write(sb)
}

func writeList(sb *strings.Builder, args []Expr) {
	for i, arg := range args {
		if i > 0 {
			sb.WriteString(", ")
		}
		arg.write(sb)
	}
}

// Value is the result of evaluating an expression: an integer or an array of values.
type Value struct {
	Int   *big.Int
	Elems []Value
}

// IntValue wraps an int64.
func IntValue(v int64) Value {
	return Value{Int: big.NewInt(v)}
}

// BigValue wraps a big integer.
func BigValue(v *big.Int) Value {
	return Value{Int: v}
}

// ArrayValue builds an array value.
func ArrayValue(elems ...Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{Elems: elems}
}

// IsArray reports whether the value is an array.
func (v Value) IsArray() bool {
	return v.Int == nil
}

// String renders scalars in decimal and arrays as bracketed lists.
func (v Value) String() string {
	if !v.IsArray() {
		return v.Int.String()
	}
	parts := make([]string, len(v.Elems))
	for i, elem := range v.Elems {
		parts[i] = elem.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// MarshalText renders the value for JSON output.
func (v Value) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}
