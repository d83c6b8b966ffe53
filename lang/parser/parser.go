// Package parser implements the recursive-descent parser that turns scanned
// tokens into a lang/ast tree. It is the "surface parser" that spec.md
// treats as an external collaborator of the core engine: the engine only
// ever consumes the ast.Item/Stmt/Expr trees this package produces (or that
// a caller builds by hand), never scanner or token details.
package parser

import (
	"fmt"
	"os"

	"github.com/mna/ferrox/lang/ast"
	"github.com/mna/ferrox/lang/scanner"
	"github.com/mna/ferrox/lang/token"
)

// ParseFiles parses every named source file into a *ast.Chunk. The returned
// error, if non-nil, is a scanner.ErrorList aggregating every parse error
// found across all files.
func ParseFiles(files ...string) ([]*ast.Chunk, error) {
	var errs scanner.ErrorList
	chunks := make([]*ast.Chunk, 0, len(files))
	for _, f := range files {
		src, err := os.ReadFile(f)
		if err != nil {
			errs.Add(token.Position{Filename: f}, err.Error())
			continue
		}
		ch, perrs := ParseChunk(f, src)
		chunks = append(chunks, ch)
		errs = append(errs, perrs...)
	}
	errs.Sort()
	return chunks, errs.Err()
}

// ParseChunk parses a single in-memory source buffer into an *ast.Chunk.
func ParseChunk(name string, src []byte) (*ast.Chunk, scanner.ErrorList) {
	var p parser
	p.name = name
	p.s.Init(name, src, p.errs.Add)
	p.next()

	ch := &ast.Chunk{Name: name}
	for p.tok.Token != token.EOF {
		it := p.parseItem()
		if it == nil {
			break
		}
		ch.Items = append(ch.Items, it)
	}
	ch.EOF = p.tok.Pos
	p.errs.Sort()
	return ch, p.errs
}

// ParseExpr parses a single free-standing expression, for REPL/test use via
// Engine.ProcessRawExprStr.
func ParseExpr(src string) (ast.Expr, scanner.ErrorList) {
	var p parser
	p.name = "<expr>"
	p.s.Init(p.name, []byte(src), p.errs.Add)
	p.next()
	x := p.parseExpr()
	p.errs.Sort()
	return x, p.errs
}

// ParseStmt parses a single free-standing statement (including a bare item
// declaration), for REPL/test use via Engine.ProcessRawStmtStr.
func ParseStmt(src string) (ast.Stmt, scanner.ErrorList) {
	var p parser
	p.name = "<stmt>"
	p.s.Init(p.name, []byte(src), p.errs.Add)
	p.next()
	st := p.parseStmt()
	p.errs.Sort()
	return st, p.errs
}

type parser struct {
	name string
	s    scanner.Scanner
	tok  scanner.TokenAndValue
	errs scanner.ErrorList
}

func (p *parser) next() { p.tok = p.s.Scan() }

func (p *parser) errorf(pos token.Pos, format string, args ...any) {
	p.errs.Add(token.Position{Filename: p.name, Pos: pos}, fmt.Sprintf(format, args...))
}

func (p *parser) expect(tok token.Token) token.Pos {
	pos := p.tok.Pos
	if p.tok.Token != tok {
		p.errorf(pos, "expected %s, found %s", tok, p.tok.Token)
		return pos
	}
	p.next()
	return pos
}

func (p *parser) at(tok token.Token) bool { return p.tok.Token == tok }
