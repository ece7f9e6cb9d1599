// Package expr evaluates dimension and argument expressions over
// arbitrary-precision integers.
package expr

import (
	"math/big"
	"strings"

	"go.trai.ch/zerr"
	"go.trai.ch/zkc/internal/core/domain"
)

// maxShift bounds shift counts and exponents so a hostile dimension cannot
// allocate unbounded integers.
const maxShift = 1 << 16

// Evaluate computes the value of e. It never mutates bindings.
func Evaluate(e domain.Expr, bindings map[string]domain.Value) (domain.Value, error) {
	switch e.Op {
	case domain.OpNumber:
		return evalNumber(e)
	case domain.OpIdent:
		v, ok := bindings[e.Name]
		if !ok {
			return domain.Value{}, fail(domain.ErrUnboundIdentifier, e, e.Name)
		}
		return v, nil
	case domain.OpArray:
		elems := make([]domain.Value, len(e.Args))
		for i, arg := range e.Args {
			v, err := Evaluate(arg, bindings)
			if err != nil {
				return domain.Value{}, err
			}
			elems[i] = v
		}
		return domain.ArrayValue(elems...), nil
	case domain.OpIndex:
		return evalIndex(e, bindings)
	case domain.OpUnary:
		return evalUnary(e, bindings)
	case domain.OpBinary:
		return evalBinary(e, bindings)
	case domain.OpTernary:
		cond, err := scalar(e.Args[0], bindings)
		if err != nil {
			return domain.Value{}, err
		}
		if cond.Sign() != 0 {
			return Evaluate(e.Args[1], bindings)
		}
		return Evaluate(e.Args[2], bindings)
	case domain.OpCall:
		return domain.Value{}, fail(domain.ErrUnsupportedExpression, e, "function call "+e.Name)
	case domain.OpMember:
		return domain.Value{}, fail(domain.ErrUnsupportedExpression, e, "member access ."+e.Name)
	default:
		return domain.Value{}, fail(domain.ErrUnsupportedExpression, e, "unknown expression")
	}
}

// EvaluateInt evaluates e and requires a scalar result.
func EvaluateInt(e domain.Expr, bindings map[string]domain.Value) (*big.Int, error) {
	return scalar(e, bindings)
}

func evalNumber(e domain.Expr) (domain.Value, error) {
	base := 10
	if strings.HasPrefix(e.Value, "0x") || strings.HasPrefix(e.Value, "0X") {
		base = 0
	}
	v, ok := new(big.Int).SetString(e.Value, base)
	if !ok {
		return domain.Value{}, fail(domain.ErrUnsupportedExpression, e, "invalid number "+e.Value)
	}
	return domain.BigValue(v), nil
}

func evalIndex(e domain.Expr, bindings map[string]domain.Value) (domain.Value, error) {
	base, err := Evaluate(e.Args[0], bindings)
	if err != nil {
		return domain.Value{}, err
	}
	if !base.IsArray() {
		return domain.Value{}, fail(domain.ErrTypeMismatch, e, "indexing a scalar")
	}
	idx, err := scalar(e.Args[1], bindings)
	if err != nil {
		return domain.Value{}, err
	}
	if idx.Sign() < 0 || !idx.IsInt64() || idx.Int64() >= int64(len(base.Elems)) {
		return domain.Value{}, fail(domain.ErrIndexOutOfRange, e, "index "+idx.String())
	}
	return base.Elems[idx.Int64()], nil
}

func evalUnary(e domain.Expr, bindings map[string]domain.Value) (domain.Value, error) {
	x, err := scalar(e.Args[0], bindings)
	if err != nil {
		return domain.Value{}, err
	}
	switch e.Value {
	case "-":
		return domain.BigValue(new(big.Int).Neg(x)), nil
	case "+":
		return domain.BigValue(x), nil
	case "!":
		return boolValue(x.Sign() == 0), nil
	default:
		return domain.Value{}, fail(domain.ErrUnsupportedExpression, e, "operator "+e.Value)
	}
}

//nolint:cyclop // one case per operator
func evalBinary(e domain.Expr, bindings map[string]domain.Value) (domain.Value, error) {
	// Short-circuit before evaluating the right operand.
	if e.Value == "&&" || e.Value == "||" {
		lhs, err := scalar(e.Args[0], bindings)
		if err != nil {
			return domain.Value{}, err
		}
		if e.Value == "&&" && lhs.Sign() == 0 {
			return boolValue(false), nil
		}
		if e.Value == "||" && lhs.Sign() != 0 {
			return boolValue(true), nil
		}
		rhs, err := scalar(e.Args[1], bindings)
		if err != nil {
			return domain.Value{}, err
		}
		return boolValue(rhs.Sign() != 0), nil
	}

	lhs, err := scalar(e.Args[0], bindings)
	if err != nil {
		return domain.Value{}, err
	}
	rhs, err := scalar(e.Args[1], bindings)
	if err != nil {
		return domain.Value{}, err
	}

	r := new(big.Int)
	switch e.Value {
	case "+":
		r.Add(lhs, rhs)
	case "-":
		r.Sub(lhs, rhs)
	case "*":
		r.Mul(lhs, rhs)
	case "/":
		if rhs.Sign() == 0 {
			return domain.Value{}, fail(domain.ErrDivisionByZero, e, e.String())
		}
		q, m := new(big.Int).QuoRem(lhs, rhs, new(big.Int))
		if m.Sign() != 0 {
			return domain.Value{}, fail(domain.ErrUnsupportedExpression, e, "inexact field division")
		}
		r = q
	case "\\":
		if rhs.Sign() == 0 {
			return domain.Value{}, fail(domain.ErrDivisionByZero, e, e.String())
		}
		r.Div(lhs, rhs)
	case "%":
		if rhs.Sign() == 0 {
			return domain.Value{}, fail(domain.ErrDivisionByZero, e, e.String())
		}
		r.Mod(lhs, rhs)
	case "**":
		if rhs.Sign() < 0 || rhs.Cmp(big.NewInt(maxShift)) > 0 {
			return domain.Value{}, fail(domain.ErrUnsupportedExpression, e, "exponent "+rhs.String())
		}
		r.Exp(lhs, rhs, nil)
	case "<<", ">>":
		if rhs.Sign() < 0 || rhs.Cmp(big.NewInt(maxShift)) > 0 {
			return domain.Value{}, fail(domain.ErrUnsupportedExpression, e, "shift by "+rhs.String())
		}
		if e.Value == "<<" {
			r.Lsh(lhs, uint(rhs.Uint64()))
		} else {
			r.Rsh(lhs, uint(rhs.Uint64()))
		}
	case "&":
		r.And(lhs, rhs)
	case "|":
		r.Or(lhs, rhs)
	case "^":
		r.Xor(lhs, rhs)
	case "==":
		return boolValue(lhs.Cmp(rhs) == 0), nil
	case "!=":
		return boolValue(lhs.Cmp(rhs) != 0), nil
	case "<":
		return boolValue(lhs.Cmp(rhs) < 0), nil
	case "<=":
		return boolValue(lhs.Cmp(rhs) <= 0), nil
	case ">":
		return boolValue(lhs.Cmp(rhs) > 0), nil
	case ">=":
		return boolValue(lhs.Cmp(rhs) >= 0), nil
	default:
		return domain.Value{}, fail(domain.ErrUnsupportedExpression, e, "operator "+e.Value)
	}
	return domain.BigValue(r), nil
}

func scalar(e domain.Expr, bindings map[string]domain.Value) (*big.Int, error) {
	v, err := Evaluate(e, bindings)
	if err != nil {
		return nil, err
	}
	if v.IsArray() {
		return nil, fail(domain.ErrTypeMismatch, e, "array used as a number")
	}
	return v.Int, nil
}

func boolValue(b bool) domain.Value {
	if b {
		return domain.IntValue(1)
	}
	return domain.IntValue(0)
}

func fail(sentinel error, e domain.Expr, msg string) error {
	return zerr.With(zerr.Wrap(sentinel, msg), "expression", e.String())
}
