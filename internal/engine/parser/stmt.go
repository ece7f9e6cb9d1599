package parser

import (
	"go.trai.ch/zkc/internal/core/domain"
)

// assignOps are the operators that may follow the target of a statement.
var assignOps = []string{
	"<==", "==>", "<--", "-->", "===",
	"=", "+=", "-=", "*=", "/=", "\\=", "%=", "**=", "<<=", ">>=", "&=", "|=", "^=",
}

func (p *fileParser) acceptAssignOp() bool {
	tok := p.peek()
	if tok.kind != tokPunct {
		return false
	}
	for _, op := range assignOps {
		if tok.text == op {
			p.next()
			return true
		}
	}
	return false
}

// parseBlock parses "{ statement* }". Signal declarations found at any
// depth are appended to p.signals.
func (p *fileParser) parseBlock() error {
	if err := p.expect("{"); err != nil {
		return err
	}
	for !p.accept("}") {
		if tok := p.peek(); tok.kind == tokEOF {
			return p.errorf(tok, "unterminated block")
		}
		if err := p.parseStatement(); err != nil {
			return err
		}
	}
	return nil
}

func (p *fileParser) parseStatement() error {
	tok := p.peek()
	switch {
	case tok.is("{"):
		return p.parseBlock()
	case tok.is(";"):
		p.next()
		return nil
	case tok.is("signal"):
		p.next()
		decls, err := p.parseSignal()
		if err != nil {
			return err
		}
		p.signals = append(p.signals, decls...)
		return nil
	case tok.is("var"), tok.is("component"):
		if err := p.parseDeclaration(); err != nil {
			return err
		}
		return p.expect(";")
	case tok.is("if"):
		return p.parseIf()
	case tok.is("for"):
		return p.parseFor()
	case tok.is("while"):
		p.next()
		if err := p.parseCondition(); err != nil {
			return err
		}
		return p.parseStatement()
	case tok.is("return"):
		p.next()
		if _, err := p.parseExpr(); err != nil {
			return err
		}
		return p.expect(";")
	case tok.is("assert"):
		p.next()
		if err := p.parseCondition(); err != nil {
			return err
		}
		return p.expect(";")
	case tok.is("log"):
		p.next()
		if err := p.parseLogArgs(); err != nil {
			return err
		}
		return p.expect(";")
	case tok.is("}"), tok.is(")"), tok.is("]"):
		return p.errorf(tok, "unexpected %s", tok)
	default:
		if err := p.parseSimpleStatement(); err != nil {
			return err
		}
		return p.expect(";")
	}
}

// parseDeclaration parses a var or component declaration list without the
// trailing semicolon.
func (p *fileParser) parseDeclaration() error {
	p.next()
	for {
		if p.accept("(") {
			if err := p.parseIdentList(")"); err != nil {
				return err
			}
		} else {
			if _, err := p.expectIdent(); err != nil {
				return err
			}
			if err := p.parseDimensions(); err != nil {
				return err
			}
		}
		if p.accept("=") || p.accept("<==") || p.accept("<--") {
			if _, err := p.parseExpr(); err != nil {
				return err
			}
		}
		if !p.accept(",") {
			return nil
		}
	}
}

// parseIdentList parses "a, b, _" up to and including closer.
func (p *fileParser) parseIdentList(closer string) error {
	for {
		if _, err := p.expectIdent(); err != nil {
			return err
		}
		if p.accept(closer) {
			return nil
		}
		if err := p.expect(","); err != nil {
			return err
		}
	}
}

func (p *fileParser) parseDimensions() error {
	for p.accept("[") {
		if _, err := p.parseExpr(); err != nil {
			return err
		}
		if err := p.expect("]"); err != nil {
			return err
		}
	}
	return nil
}

func (p *fileParser) parseCondition() error {
	if err := p.expect("("); err != nil {
		return err
	}
	if _, err := p.parseExpr(); err != nil {
		return err
	}
	return p.expect(")")
}

func (p *fileParser) parseIf() error {
	p.next()
	if err := p.parseCondition(); err != nil {
		return err
	}
	if err := p.parseStatement(); err != nil {
		return err
	}
	if p.accept("else") {
		return p.parseStatement()
	}
	return nil
}

// parseFor parses "for (init; cond; step) statement".
func (p *fileParser) parseFor() error {
	p.next()
	if err := p.expect("("); err != nil {
		return err
	}
	var err error
	if p.peek().is("var") {
		err = p.parseDeclaration()
	} else {
		err = p.parseSimpleStatement()
	}
	if err != nil {
		return err
	}
	if err := p.expect(";"); err != nil {
		return err
	}
	if _, err := p.parseExpr(); err != nil {
		return err
	}
	if err := p.expect(";"); err != nil {
		return err
	}
	if err := p.parseSimpleStatement(); err != nil {
		return err
	}
	if err := p.expect(")"); err != nil {
		return err
	}
	return p.parseStatement()
}

// parseLogArgs parses "(a, "text", b)", where arguments are expressions or
// string literals.
func (p *fileParser) parseLogArgs() error {
	if err := p.expect("("); err != nil {
		return err
	}
	if p.accept(")") {
		return nil
	}
	for {
		if p.peek().kind == tokString {
			p.next()
		} else if _, err := p.parseExpr(); err != nil {
			return err
		}
		if p.accept(")") {
			return nil
		}
		if err := p.expect(","); err != nil {
			return err
		}
	}
}

// parseSimpleStatement parses an assignment, a constraint, an increment or
// a bus declaration, without the trailing semicolon.
func (p *fileParser) parseSimpleStatement() error {
	target, err := p.parseTarget()
	if err != nil {
		return err
	}

	tok := p.peek()
	switch {
	case tok.is("++"), tok.is("--"):
		p.next()
		return nil
	case p.acceptAssignOp():
		_, err := p.parseExpr()
		return err
	case target.Op == domain.OpCall && tok.kind == tokIdent:
		return p.parseBusDeclaration()
	default:
		return p.errorf(tok, "expected assignment or constraint, found %s", tok)
	}
}

// parseTarget parses the left side of a statement, which may be a tuple.
func (p *fileParser) parseTarget() (domain.Expr, error) {
	if !p.peek().is("(") {
		return p.parseExpr()
	}
	start := p.pos
	e, err := p.parseExpr()
	if err == nil {
		return e, nil
	}
	p.pos = start
	p.next()
	elems, tupleErr := p.parseArgs(")")
	if tupleErr != nil {
		return domain.Expr{}, err
	}
	return domain.Expr{Op: domain.OpArray, Args: elems}, nil
}

// parseBusDeclaration parses the rest of "Point(n) input {tag} p[2], q"
// once the bus type has been read.
func (p *fileParser) parseBusDeclaration() error {
	if !p.accept("input") {
		p.accept("output")
	}
	if p.accept("{") {
		if err := p.parseIdentList("}"); err != nil {
			return err
		}
	}
	for {
		if _, err := p.expectIdent(); err != nil {
			return err
		}
		if err := p.parseDimensions(); err != nil {
			return err
		}
		if !p.accept(",") {
			return nil
		}
	}
}
