package parser

import (
	"github.com/mna/ferrox/lang/ast"
	"github.com/mna/ferrox/lang/token"
)

// parseExpr is the expression entry point. Precedence, loosest to
// tightest: assignment, relational, additive, multiplicative, cast,
// unary, postfix, primary.
func (p *parser) parseExpr() ast.Expr {
	return p.parseAssign()
}

func (p *parser) parseAssign() ast.Expr {
	x := p.parseRelational()
	if p.at(token.EQ) {
		p.next()
		val := p.parseAssign()
		return &ast.AssignExpr{Target: x, Value: val}
	}
	return x
}

func (p *parser) parseRelational() ast.Expr {
	x := p.parseAdditive()
	for p.at(token.LT) || p.at(token.LE) || p.at(token.GT) || p.at(token.GE) ||
		p.at(token.EQEQ) || p.at(token.NEQ) {
		op := p.tok.Token
		p.next()
		y := p.parseAdditive()
		x = &ast.BinaryExpr{Op: op, X: x, Y: y}
	}
	return x
}

func (p *parser) parseAdditive() ast.Expr {
	x := p.parseMultiplicative()
	for p.at(token.PLUS) || p.at(token.MINUS) {
		op := p.tok.Token
		p.next()
		y := p.parseMultiplicative()
		x = &ast.BinaryExpr{Op: op, X: x, Y: y}
	}
	return x
}

func (p *parser) parseMultiplicative() ast.Expr {
	x := p.parseCast()
	for p.at(token.STAR) || p.at(token.SLASH) {
		op := p.tok.Token
		p.next()
		y := p.parseCast()
		x = &ast.BinaryExpr{Op: op, X: x, Y: y}
	}
	return x
}

func (p *parser) parseCast() ast.Expr {
	x := p.parseUnary()
	for p.at(token.AS) {
		p.next()
		typ := p.parseTypeRef()
		x = &ast.CastExpr{X: x, Type: typ}
	}
	return x
}

func (p *parser) parseUnary() ast.Expr {
	if p.at(token.MINUS) {
		start := p.tok.Pos
		p.next()
		x := p.parseUnary()
		return &ast.UnaryExpr{Start: start, Op: token.MINUS, X: x}
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() ast.Expr {
	x := p.parsePrimary()
	for {
		switch {
		case p.at(token.DOT):
			start := p.tok.Pos
			p.next()
			name := p.parseIdentName()
			x = &ast.FieldExpr{X: x, Name: name, Start: start}
		case p.at(token.LPAREN):
			p.next()
			var args []ast.Expr
			for !p.at(token.RPAREN) && !p.at(token.EOF) {
				args = append(args, p.parseExpr())
				if p.at(token.COMMA) {
					p.next()
				} else {
					break
				}
			}
			rparen := p.expect(token.RPAREN)
			x = &ast.CallExpr{Callee: x, Args: args, RParen: rparen}
		default:
			return x
		}
	}
}

func (p *parser) parsePrimary() ast.Expr {
	pos := p.tok.Pos
	switch p.tok.Token {
	case token.INT:
		lit := p.tok
		p.next()
		suffix := ""
		switch {
		case len(lit.Lit) >= 3 && lit.Lit[len(lit.Lit)-3:] == "u64":
			suffix = "u64"
		case len(lit.Lit) >= 3 && lit.Lit[len(lit.Lit)-3:] == "u32":
			suffix = "u32"
		case len(lit.Lit) >= 3 && lit.Lit[len(lit.Lit)-3:] == "i64":
			suffix = "i64"
		case len(lit.Lit) >= 3 && lit.Lit[len(lit.Lit)-3:] == "i32":
			suffix = "i32"
		}
		return &ast.IntLit{Start: pos, Value: lit.Int, Suffix: suffix}
	case token.BOOLTRUE:
		p.next()
		return &ast.BoolLit{Start: pos, Value: true}
	case token.BOOLFALSE:
		p.next()
		return &ast.BoolLit{Start: pos, Value: false}
	case token.IF:
		return p.parseIfExpr()
	case token.LBRACE:
		blk := p.parseBlock()
		return &ast.BlockExpr{Block: blk}
	case token.LPAREN:
		p.next()
		x := p.parseExpr()
		p.expect(token.RPAREN)
		return x
	case token.IDENT, token.COLONCOLON, token.SELF:
		return p.parsePathOrIdent()
	default:
		p.errorf(pos, "expected expression, found %s", p.tok.Token)
		p.next()
		return &ast.IntLit{Start: pos}
	}
}

func (p *parser) parsePathOrIdent() ast.Expr {
	pos := p.tok.Pos
	if p.at(token.SELF) {
		p.next()
		return &ast.Ident{Start: pos, Name: "self"}
	}

	rooted := false
	if p.at(token.COLONCOLON) {
		rooted = true
		p.next()
	}

	name := p.parseIdentName()
	if rooted || p.at(token.COLONCOLON) {
		path := &ast.Path{Start: pos, Rooted: rooted, Segments: []string{name}}
		for p.at(token.COLONCOLON) {
			p.next()
			path.Segments = append(path.Segments, p.parseIdentName())
		}
		return &ast.PathExpr{P: path}
	}
	return &ast.Ident{Start: pos, Name: name}
}

func (p *parser) parseIfExpr() *ast.IfExpr {
	start := p.expect(token.IF)
	cond := p.parseExpr()
	then := p.parseBlock()
	ie := &ast.IfExpr{Start: start, Cond: cond, Then: then}
	if p.at(token.ELSE) {
		p.next()
		if p.at(token.IF) {
			nested := p.parseIfExpr()
			ie.Else = &ast.Block{Start: nested.Start, End: nested.Start, Tail: nested}
		} else {
			ie.Else = p.parseBlock()
		}
	}
	return ie
}
