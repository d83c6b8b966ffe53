package parser

import (
	"github.com/mna/ferrox/lang/ast"
	"github.com/mna/ferrox/lang/token"
)

// parseBlock parses a `{ stmt* [tailExpr] }` block.
func (p *parser) parseBlock() *ast.Block {
	start := p.expect(token.LBRACE)
	blk := &ast.Block{Start: start}

	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		switch p.tok.Token {
		case token.LET:
			blk.Stmts = append(blk.Stmts, p.parseLetStmt())
			continue
		case token.RETURN:
			blk.Stmts = append(blk.Stmts, p.parseReturnStmt())
			continue
		case token.WHILE:
			blk.Stmts = append(blk.Stmts, p.parseWhileStmt())
			continue
		case token.FN, token.EXTERN, token.MOD, token.STRUCT, token.IMPL, token.USE, token.PUB:
			blk.Stmts = append(blk.Stmts, &ast.ItemStmt{It: p.parseItem()})
			continue
		}

		x := p.parseExpr()
		if x == nil {
			break
		}

		// A block-like expression (if or bare block) used at statement
		// position does not require a trailing semicolon; it is only the
		// block's value when it is the very last construct and is not
		// followed by a semicolon.
		if isBlockLikeExpr(x) && !p.at(token.SEMI) {
			if p.at(token.RBRACE) {
				blk.Tail = x
				break
			}
			blk.Stmts = append(blk.Stmts, &ast.ExprStmt{X: x})
			continue
		}

		if p.at(token.SEMI) {
			p.next()
			blk.Stmts = append(blk.Stmts, &ast.ExprStmt{X: x})
			continue
		}

		// No semicolon and not block-like: this is the block's tail
		// expression, which must be immediately followed by the closing brace.
		blk.Tail = x
		break
	}

	blk.End = p.expect(token.RBRACE)
	return blk
}

func isBlockLikeExpr(x ast.Expr) bool {
	switch x.(type) {
	case *ast.IfExpr, *ast.BlockExpr:
		return true
	default:
		return false
	}
}

func (p *parser) parseLetStmt() *ast.LetStmt {
	start := p.expect(token.LET)
	mut := false
	if p.at(token.MUT) {
		mut = true
		p.next()
	}
	name := p.parseIdentName()

	ls := &ast.LetStmt{Start: start, Mut: mut, Name: name}
	if p.at(token.COLON) {
		p.next()
		ls.Type = p.parseTypeRef()
	}
	if p.at(token.EQ) {
		p.next()
		ls.Value = p.parseExpr()
	}
	p.expect(token.SEMI)
	return ls
}

func (p *parser) parseReturnStmt() *ast.ReturnStmt {
	start := p.expect(token.RETURN)
	rs := &ast.ReturnStmt{Start: start}
	if !p.at(token.SEMI) {
		rs.Value = p.parseExpr()
	}
	p.expect(token.SEMI)
	return rs
}

func (p *parser) parseWhileStmt() *ast.WhileStmt {
	start := p.expect(token.WHILE)
	cond := p.parseExpr()
	body := p.parseBlock()
	return &ast.WhileStmt{Start: start, Cond: cond, Body: body}
}

// parseStmt parses a single statement for REPL/test use (Engine's
// ProcessRawStmtStr entry point). It does not consume a trailing `}` and
// tolerates EOF in place of one.
func (p *parser) parseStmt() ast.Stmt {
	switch p.tok.Token {
	case token.LET:
		return p.parseLetStmt()
	case token.RETURN:
		return p.parseReturnStmt()
	case token.WHILE:
		return p.parseWhileStmt()
	case token.FN, token.EXTERN, token.MOD, token.STRUCT, token.IMPL, token.USE, token.PUB:
		return &ast.ItemStmt{It: p.parseItem()}
	default:
		x := p.parseExpr()
		if p.at(token.SEMI) {
			p.next()
		}
		return &ast.ExprStmt{X: x}
	}
}
