package asm

import (
	"regexp"
	"strconv"

	"go.starlark.net/syntax"
)

var (
	reSymbol  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	reOffset  = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*([+-])\s*(\d+)$`)
	reInteger = regexp.MustCompile(`^[+-]?\d+$`)
	reDecimal = regexp.MustCompile(`^\d+$`)
)

// Evaluate computes the value of an operand expression:
//
//	INTEGER
//	SYMBOL
//	SYMBOL + INTEGER
//	SYMBOL - INTEGER
//
// Integers are decimal. A symbol must already be defined.
func Evaluate(expr string, symbols *SymbolTable) (value int, err error) {
	// The plain forms skip the parser, so that symbols that happen to be
	// keywords of the expression syntax still resolve.
	if reSymbol.MatchString(expr) {
		return resolve(expr, symbols)
	}

	if reInteger.MatchString(expr) {
		value, err = strconv.Atoi(expr)
		if err != nil {
			err = ErrMalformedExpression(expr)
		}
		return
	}

	if m := reOffset.FindStringSubmatch(expr); m != nil {
		var offset int
		offset, err = strconv.Atoi(m[3])
		if err != nil {
			err = ErrMalformedExpression(expr)
			return
		}
		return displace(m[1], m[2] == "-", offset, symbols)
	}

	opts := syntax.FileOptions{}
	node, err := opts.ParseExpr("expr", expr, 0)
	if err != nil {
		err = ErrMalformedExpression(expr)
		return
	}

	node = unparen(node)

	if n, ok := integer(node); ok {
		value = n
		return
	}

	bin, ok := node.(*syntax.BinaryExpr)
	if !ok || (bin.Op != syntax.PLUS && bin.Op != syntax.MINUS) {
		err = ErrMalformedExpression(expr)
		return
	}

	ident, ok := unparen(bin.X).(*syntax.Ident)
	if !ok {
		err = ErrMalformedExpression(expr)
		return
	}

	offset, ok := integer(unparen(bin.Y))
	if !ok {
		err = ErrMalformedExpression(expr)
		return
	}

	return displace(ident.Name, bin.Op == syntax.MINUS, offset, symbols)
}

func displace(name string, negative bool, offset int, symbols *SymbolTable) (value int, err error) {
	value, err = resolve(name, symbols)
	if err != nil {
		return
	}

	if negative {
		value -= offset
	} else {
		value += offset
	}

	return
}

func resolve(name string, symbols *SymbolTable) (value int, err error) {
	value, ok := symbols.Lookup(name)
	if !ok {
		err = ErrUnresolvedSymbol(name)
	}
	return
}

func unparen(node syntax.Expr) syntax.Expr {
	for {
		paren, ok := node.(*syntax.ParenExpr)
		if !ok {
			return node
		}
		node = paren.X
	}
}

// integer returns the value of a decimal integer literal, optionally signed.
func integer(node syntax.Expr) (value int, ok bool) {
	sign := 1
	if unary, is_unary := node.(*syntax.UnaryExpr); is_unary {
		switch unary.Op {
		case syntax.MINUS:
			sign = -1
		case syntax.PLUS:
		default:
			return
		}
		node = unparen(unary.X)
	}

	lit, is_lit := node.(*syntax.Literal)
	if !is_lit || lit.Token != syntax.INT {
		return
	}

	// Only plain decimal digits; no 0x, 0o or 0b forms.
	if !reDecimal.MatchString(lit.Raw) {
		return
	}

	v, err := strconv.Atoi(lit.Raw)
	if err != nil {
		return
	}

	return sign * v, true
}
