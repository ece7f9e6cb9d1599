// Package parser extracts includes, the pragma version, template signatures
// and the main instantiation from circuit source files.
package parser

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"go.trai.ch/zerr"
	"go.trai.ch/zkc/internal/core/domain"
)

// Parser implements ports.SourceParser. Results are cached in memory by
// content hash.
type Parser struct {
	mu     sync.RWMutex
	cache  map[string]*domain.ParsedFileData
	parses atomic.Int64
}

// New creates a Parser with an empty cache.
func New() *Parser {
	return &Parser{cache: make(map[string]*domain.ParsedFileData)}
}

// Parse returns the parse result of text, reusing the cached result for
// contentHash when there is one.
func (p *Parser) Parse(text, absPath, contentHash string) (*domain.ParsedFileData, error) {
	if data, ok := p.Cached(contentHash); ok {
		return data, nil
	}

	p.parses.Add(1)
	data, err := parseFile(text, absPath)
	if err != nil {
		return nil, err
	}

	if contentHash != "" {
		p.mu.Lock()
		p.cache[contentHash] = data
		p.mu.Unlock()
	}
	return data, nil
}

// Cached returns a parse result without parsing.
func (p *Parser) Cached(contentHash string) (*domain.ParsedFileData, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	data, ok := p.cache[contentHash]
	return data, ok
}

// Remember seeds the cache with a result loaded from a persisted layer.
func (p *Parser) Remember(contentHash string, data *domain.ParsedFileData) {
	if contentHash == "" || data == nil {
		return
	}
	p.mu.Lock()
	p.cache[contentHash] = data
	p.mu.Unlock()
}

// Parses reports how many texts were actually parsed.
func (p *Parser) Parses() int64 {
	return p.parses.Load()
}

// ParseText parses text without caching.
func ParseText(text, absPath string) (*domain.ParsedFileData, error) {
	return parseFile(text, absPath)
}

func parseFile(text, absPath string) (*domain.ParsedFileData, error) {
	toks, lexErr := lex(text)
	if lexErr != nil {
		return nil, syntaxError(absPath, lexErr.line, lexErr.col, lexErr.msg)
	}

	p := &fileParser{
		toks: toks,
		file: absPath,
		data: &domain.ParsedFileData{
			Imports:   []string{},
			Templates: make(map[string]domain.Template),
		},
	}
	if err := p.parseFile(); err != nil {
		return nil, err
	}
	return p.data, nil
}

type fileParser struct {
	toks    []token
	pos     int
	file    string
	data    *domain.ParsedFileData
	signals []domain.SignalDecl
}

func (p *fileParser) peek() token {
	return p.toks[p.pos]
}

func (p *fileParser) next() token {
	tok := p.toks[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *fileParser) accept(text string) bool {
	if p.peek().is(text) {
		p.next()
		return true
	}
	return false
}

func (p *fileParser) expect(text string) error {
	tok := p.next()
	if !tok.is(text) {
		return p.errorf(tok, "expected %q, found %s", text, tok)
	}
	return nil
}

func (p *fileParser) expectIdent() (string, error) {
	tok := p.next()
	if tok.kind != tokIdent {
		return "", p.errorf(tok, "expected identifier, found %s", tok)
	}
	return tok.text, nil
}

func (p *fileParser) errorf(tok token, format string, args ...any) error {
	return syntaxError(p.file, tok.line, tok.col, fmt.Sprintf(format, args...))
}

func syntaxError(file string, line, col int, msg string) error {
	position := fmt.Sprintf("%s:%d:%d", file, line, col)
	err := zerr.Wrap(domain.ErrSyntax, position+": "+msg)
	return zerr.With(err, "position", position)
}

func (p *fileParser) parseFile() error {
	for {
		tok := p.peek()
		var err error
		switch {
		case tok.kind == tokEOF:
			return nil
		case tok.is("pragma"):
			err = p.parsePragma()
		case tok.is("include"):
			err = p.parseInclude()
		case tok.is("template"):
			err = p.parseTemplate()
		case tok.is("function"), tok.is("bus"):
			err = p.parseDefinition()
		case tok.is("component"):
			err = p.parseMain()
		default:
			err = p.errorf(tok, "unexpected %s at top level", tok)
		}
		if err != nil {
			return err
		}
	}
}

// parsePragma records "pragma circom X.Y.Z;" and ignores other pragmas.
func (p *fileParser) parsePragma() error {
	p.next()
	isVersion := p.accept("circom")

	var sb strings.Builder
	for {
		tok := p.next()
		switch {
		case tok.kind == tokEOF:
			return p.errorf(tok, "unterminated pragma")
		case tok.is(";"):
			if isVersion && p.data.PragmaVersion == "" {
				p.data.PragmaVersion = sb.String()
			}
			return nil
		default:
			sb.WriteString(tok.text)
		}
	}
}

func (p *fileParser) parseInclude() error {
	p.next()
	tok := p.next()
	if tok.kind != tokString {
		return p.errorf(tok, "expected include path, found %s", tok)
	}
	p.data.Imports = append(p.data.Imports, tok.text)
	return p.expect(";")
}

func (p *fileParser) parseParams() ([]string, error) {
	if err := p.expect("("); err != nil {
		return nil, err
	}
	params := []string{}
	if p.accept(")") {
		return params, nil
	}
	for {
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		params = append(params, name)
		if p.accept(")") {
			return params, nil
		}
		if err := p.expect(","); err != nil {
			return nil, err
		}
	}
}

func (p *fileParser) parseTemplate() error {
	p.next()
	for p.peek().is("parallel") || p.peek().is("custom") {
		p.next()
	}

	nameTok := p.peek()
	name, err := p.expectIdent()
	if err != nil {
		return err
	}
	if _, dup := p.data.Templates[name]; dup {
		position := fmt.Sprintf("%s:%d:%d", p.file, nameTok.line, nameTok.col)
		dupErr := zerr.With(zerr.Wrap(domain.ErrDuplicateTemplate, position+": template "+name), "template", name)
		return zerr.With(dupErr, "position", position)
	}

	params, err := p.parseParams()
	if err != nil {
		return err
	}
	signals, err := p.parseTemplateBody()
	if err != nil {
		return err
	}

	p.data.Templates[name] = domain.Template{Name: name, Params: params, Signals: signals}
	return nil
}

// parseTemplateBody parses the body statements and returns the signal
// declarations found at any nesting depth.
func (p *fileParser) parseTemplateBody() ([]domain.SignalDecl, error) {
	p.signals = []domain.SignalDecl{}
	if err := p.parseBlock(); err != nil {
		return nil, err
	}
	return p.signals, nil
}

func (p *fileParser) parseSignal() ([]domain.SignalDecl, error) {
	kind := domain.SignalIntermediate
	switch {
	case p.accept("input"):
		kind = domain.SignalInput
	case p.accept("output"):
		kind = domain.SignalOutput
	}

	if p.accept("{") {
		for !p.accept("}") {
			if tok := p.next(); tok.kind == tokEOF {
				return nil, p.errorf(tok, "unterminated signal tag list")
			}
		}
	}

	var decls []domain.SignalDecl
	for {
		name, err := p.expectIdent()
		if err != nil {
			return nil, err
		}
		decl := domain.SignalDecl{Name: name, Kind: kind}
		for p.accept("[") {
			dim, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if err := p.expect("]"); err != nil {
				return nil, err
			}
			decl.Dimensions = append(decl.Dimensions, dim)
		}
		decls = append(decls, decl)

		if p.accept("<==") || p.accept("<--") || p.accept("=") {
			if _, err := p.parseExpr(); err != nil {
				return nil, err
			}
		}
		if p.accept(",") {
			continue
		}
		if err := p.expect(";"); err != nil {
			return nil, err
		}
		return decls, nil
	}
}

// parseDefinition parses a function or bus definition. Neither contributes
// to the parse result.
func (p *fileParser) parseDefinition() error {
	p.next()
	if _, err := p.expectIdent(); err != nil {
		return err
	}
	if _, err := p.parseParams(); err != nil {
		return err
	}
	return p.parseBlock()
}

// parseMain parses "component main {public [a, b]} = T(args);".
func (p *fileParser) parseMain() error {
	p.next()
	mainTok := p.peek()
	if err := p.expect("main"); err != nil {
		return err
	}
	if p.data.Main != nil {
		return p.errorf(mainTok, "duplicate main component")
	}

	info := &domain.MainComponentInfo{PublicInputs: []string{}, Args: []domain.Expr{}}
	if p.accept("{") {
		if err := p.expect("public"); err != nil {
			return err
		}
		if err := p.expect("["); err != nil {
			return err
		}
		for !p.accept("]") {
			name, err := p.expectIdent()
			if err != nil {
				return err
			}
			info.PublicInputs = append(info.PublicInputs, name)
			if !p.peek().is("]") {
				if err := p.expect(","); err != nil {
					return err
				}
			}
		}
		if err := p.expect("}"); err != nil {
			return err
		}
	}

	if err := p.expect("="); err != nil {
		return err
	}
	p.accept("parallel")

	template, err := p.expectIdent()
	if err != nil {
		return err
	}
	info.Template = template

	if err := p.expect("("); err != nil {
		return err
	}
	args, err := p.parseArgs(")")
	if err != nil {
		return err
	}
	info.Args = args

	if err := p.expect(";"); err != nil {
		return err
	}
	p.data.Main = info
	return nil
}
