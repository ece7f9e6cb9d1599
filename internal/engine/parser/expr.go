package parser

import (
	"slices"

	"go.trai.ch/zkc/internal/core/domain"
)

// binaryLevels lists infix operators from loosest to tightest binding.
// "**" and the prefix operators bind tighter than all of them.
var binaryLevels = [][]string{
	{"||"},
	{"&&"},
	{"|"},
	{"^"},
	{"&"},
	{"==", "!="},
	{"<", ">", "<=", ">="},
	{"<<", ">>"},
	{"+", "-"},
	{"*", "/", "\\", "%"},
}

func (p *fileParser) parseExpr() (domain.Expr, error) {
	cond, err := p.parseBinary(0)
	if err != nil {
		return domain.Expr{}, err
	}
	if !p.accept("?") {
		return cond, nil
	}
	then, err := p.parseExpr()
	if err != nil {
		return domain.Expr{}, err
	}
	if err := p.expect(":"); err != nil {
		return domain.Expr{}, err
	}
	els, err := p.parseExpr()
	if err != nil {
		return domain.Expr{}, err
	}
	return domain.Expr{Op: domain.OpTernary, Args: []domain.Expr{cond, then, els}}, nil
}

func (p *fileParser) parseBinary(level int) (domain.Expr, error) {
	if level == len(binaryLevels) {
		return p.parseUnary()
	}

	lhs, err := p.parseBinary(level + 1)
	if err != nil {
		return domain.Expr{}, err
	}
	for {
		tok := p.peek()
		if tok.kind != tokPunct || !slices.Contains(binaryLevels[level], tok.text) {
			return lhs, nil
		}
		p.next()
		rhs, err := p.parseBinary(level + 1)
		if err != nil {
			return domain.Expr{}, err
		}
		lhs = domain.BinaryExpr(tok.text, lhs, rhs)
	}
}

func (p *fileParser) parseUnary() (domain.Expr, error) {
	tok := p.peek()
	if tok.is("-") || tok.is("!") || tok.is("~") || tok.is("+") {
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return domain.Expr{}, err
		}
		return domain.Expr{Op: domain.OpUnary, Value: tok.text, Args: []domain.Expr{operand}}, nil
	}
	return p.parsePower()
}

// parsePower is right-associative: a ** b ** c is a ** (b ** c).
func (p *fileParser) parsePower() (domain.Expr, error) {
	base, err := p.parsePostfix()
	if err != nil {
		return domain.Expr{}, err
	}
	if !p.accept("**") {
		return base, nil
	}
	exp, err := p.parseUnary()
	if err != nil {
		return domain.Expr{}, err
	}
	return domain.BinaryExpr("**", base, exp), nil
}

func (p *fileParser) parsePostfix() (domain.Expr, error) {
	e, err := p.parsePrimary()
	if err != nil {
		return domain.Expr{}, err
	}
	for {
		switch {
		case p.accept("["):
			idx, err := p.parseExpr()
			if err != nil {
				return domain.Expr{}, err
			}
			if err := p.expect("]"); err != nil {
				return domain.Expr{}, err
			}
			e = domain.Expr{Op: domain.OpIndex, Args: []domain.Expr{e, idx}}
		case p.accept("("):
			args, err := p.parseArgs(")")
			if err != nil {
				return domain.Expr{}, err
			}
			name := e.Name
			if e.Op != domain.OpIdent {
				name = e.String()
			}
			e = domain.Expr{Op: domain.OpCall, Name: name, Args: args}
		case p.accept("."):
			field, err := p.expectIdent()
			if err != nil {
				return domain.Expr{}, err
			}
			e = domain.Expr{Op: domain.OpMember, Name: field, Args: []domain.Expr{e}}
		default:
			return e, nil
		}
	}
}

func (p *fileParser) parsePrimary() (domain.Expr, error) {
	tok := p.next()
	switch {
	case tok.is("parallel") && p.peek().kind == tokIdent:
		return p.parsePrimary()
	case tok.kind == tokNumber:
		return domain.Expr{Op: domain.OpNumber, Value: tok.text}, nil
	case tok.kind == tokIdent:
		return domain.IdentExpr(tok.text), nil
	case tok.is("("):
		e, err := p.parseExpr()
		if err != nil {
			return domain.Expr{}, err
		}
		if err := p.expect(")"); err != nil {
			return domain.Expr{}, err
		}
		return e, nil
	case tok.is("["):
		elems, err := p.parseArgs("]")
		if err != nil {
			return domain.Expr{}, err
		}
		return domain.Expr{Op: domain.OpArray, Args: elems}, nil
	default:
		return domain.Expr{}, p.errorf(tok, "expected expression, found %s", tok)
	}
}

// parseArgs parses a comma-separated expression list after its opening
// bracket, consuming the closer. Named inputs of an anonymous component,
// "in <== x", keep the value.
func (p *fileParser) parseArgs(closer string) ([]domain.Expr, error) {
	args := []domain.Expr{}
	if p.accept(closer) {
		return args, nil
	}
	for {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if closer == ")" && (p.accept("<==") || p.accept("<--")) {
			if e, err = p.parseExpr(); err != nil {
				return nil, err
			}
		}
		args = append(args, e)
		if p.accept(closer) {
			return args, nil
		}
		if err := p.expect(","); err != nil {
			return nil, err
		}
	}
}
