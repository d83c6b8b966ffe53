package parser

import (
	"github.com/mna/ferrox/lang/ast"
	"github.com/mna/ferrox/lang/token"
)

func (p *parser) parseItem() ast.Item {
	pub := false
	if p.at(token.PUB) {
		pub = true
		p.next()
	}

	switch p.tok.Token {
	case token.FN:
		return p.parseFnItem(pub)
	case token.EXTERN:
		return p.parseExternBlock()
	case token.MOD:
		return p.parseModItem(pub)
	case token.STRUCT:
		return p.parseStructItem(pub)
	case token.IMPL:
		return p.parseImplItem()
	case token.USE:
		return p.parseUseItem()
	default:
		p.errorf(p.tok.Pos, "expected item, found %s", p.tok.Token)
		p.next()
		return nil
	}
}

func (p *parser) parseFnItem(pub bool) *ast.FnItem {
	start := p.expect(token.FN)
	name := p.parseIdentName()

	var typeParams []string
	if p.at(token.LT) {
		p.next()
		for !p.at(token.GT) && !p.at(token.EOF) {
			typeParams = append(typeParams, p.parseIdentName())
			if p.at(token.COMMA) {
				p.next()
			}
		}
		p.expect(token.GT)
	}

	p.expect(token.LPAREN)
	params := p.parseParams()
	p.expect(token.RPAREN)

	var ret ast.Expr
	if p.at(token.ARROW) {
		p.next()
		ret = p.parseTypeRef()
	}

	body := p.parseBlock()
	return &ast.FnItem{
		Start: start, Pub: pub, Name: name, TypeParams: typeParams,
		Params: params, ReturnType: ret, Body: body,
	}
}

func (p *parser) parseParams() []ast.Param {
	var params []ast.Param
	for !p.at(token.RPAREN) && !p.at(token.EOF) {
		name := p.parseIdentName()
		p.expect(token.COLON)
		typ := p.parseTypeRef()
		params = append(params, ast.Param{Name: name, Type: typ})
		if p.at(token.COMMA) {
			p.next()
		} else {
			break
		}
	}
	return params
}

func (p *parser) parseExternBlock() *ast.ExternBlock {
	start := p.expect(token.EXTERN)
	p.expect(token.LBRACE)
	blk := &ast.ExternBlock{Start: start}
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		fnStart := p.expect(token.FN)
		name := p.parseIdentName()
		p.expect(token.LPAREN)
		params := p.parseParams()
		p.expect(token.RPAREN)
		var ret ast.Expr
		if p.at(token.ARROW) {
			p.next()
			ret = p.parseTypeRef()
		}
		p.expect(token.SEMI)
		blk.Fns = append(blk.Fns, &ast.ExternFnItem{Start: fnStart, Name: name, Params: params, ReturnType: ret})
	}
	p.expect(token.RBRACE)
	return blk
}

func (p *parser) parseModItem(pub bool) *ast.ModItem {
	start := p.expect(token.MOD)
	name := p.parseIdentName()
	mi := &ast.ModItem{Start: start, Pub: pub, Name: name}
	if p.at(token.SEMI) {
		p.next()
		mi.Inline = false
		return mi
	}
	mi.Inline = true
	p.expect(token.LBRACE)
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		it := p.parseItem()
		if it == nil {
			break
		}
		mi.Items = append(mi.Items, it)
	}
	p.expect(token.RBRACE)
	return mi
}

func (p *parser) parseStructItem(pub bool) *ast.StructItem {
	start := p.expect(token.STRUCT)
	name := p.parseIdentName()
	p.expect(token.LBRACE)
	si := &ast.StructItem{Start: start, Pub: pub, Name: name}
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		fname := p.parseIdentName()
		p.expect(token.COLON)
		typ := p.parseTypeRef()
		si.Fields = append(si.Fields, ast.FieldDecl{Name: fname, Type: typ})
		if p.at(token.COMMA) {
			p.next()
		} else {
			break
		}
	}
	p.expect(token.RBRACE)
	return si
}

func (p *parser) parseImplItem() *ast.ImplItem {
	start := p.expect(token.IMPL)
	name := p.parseIdentName()
	p.expect(token.LBRACE)
	ii := &ast.ImplItem{Start: start, TypeName: name}
	for !p.at(token.RBRACE) && !p.at(token.EOF) {
		pub := false
		if p.at(token.PUB) {
			pub = true
			p.next()
		}
		ii.Methods = append(ii.Methods, p.parseFnItem(pub))
	}
	p.expect(token.RBRACE)
	return ii
}

func (p *parser) parseUseItem() *ast.UseItem {
	start := p.expect(token.USE)
	tree := p.parseUseTree(true)
	p.expect(token.SEMI)
	return &ast.UseItem{Start: start, Tree: tree}
}

// parseUseTree parses a use-tree segment. atStart indicates a leading `::`
// is permitted here (only meaningful the very first call).
func (p *parser) parseUseTree(atStart bool) ast.UseTree {
	pos := p.tok.Pos
	if atStart && p.at(token.COLONCOLON) {
		p.next()
	}
	if p.at(token.STAR) {
		p.next()
		return &ast.UseGlob{Start: pos}
	}
	if p.at(token.LBRACE) {
		p.next()
		grp := &ast.UseGroup{Start: pos}
		for !p.at(token.RBRACE) && !p.at(token.EOF) {
			grp.Items = append(grp.Items, p.parseUseTree(false))
			if p.at(token.COMMA) {
				p.next()
			} else {
				break
			}
		}
		p.expect(token.RBRACE)
		return grp
	}

	name := p.parseIdentName()
	if p.at(token.COLONCOLON) {
		p.next()
		sub := p.parseUseTree(false)
		return &ast.UsePath{Start: pos, Segment: name, Sub: sub}
	}
	if p.at(token.AS) {
		p.next()
		rename := p.parseIdentName()
		return &ast.UseRename{Start: pos, Name: name, Rename: rename}
	}
	return &ast.UseName{Start: pos, Name: name}
}

func (p *parser) parseIdentName() string {
	if p.tok.Token != token.IDENT {
		p.errorf(p.tok.Pos, "expected identifier, found %s", p.tok.Token)
		return ""
	}
	lit := p.tok.Lit
	p.next()
	return lit
}

func (p *parser) parseTypeRef() ast.Expr {
	path := p.parsePath()
	return &ast.TypeRef{Path: path}
}

func (p *parser) parsePath() *ast.Path {
	pos := p.tok.Pos
	path := &ast.Path{Start: pos}
	if p.at(token.COLONCOLON) {
		path.Rooted = true
		p.next()
	}
	path.Segments = append(path.Segments, p.parseIdentName())
	for p.at(token.COLONCOLON) {
		p.next()
		path.Segments = append(path.Segments, p.parseIdentName())
	}
	return path
}
