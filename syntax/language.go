// Package syntax parses identities written as text, for example
//
//	t(x,x,y) = t(y,x,x) & t(x,y,y) = t(y,y,x)
//
// Identities are separated by "&", ";" or nothing at all. A nullary term is
// written c or c().
package syntax

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"polinv/algebra"
)

type Term struct {
	Pos  lexer.Position
	Op   string   `parser:"@Ident"`
	Args []string `parser:"( \"(\" ( @Ident ( \",\" @Ident )* )? \")\" )?"`
}

type Identity struct {
	Left  *Term `parser:"@@ \"=\""`
	Right *Term `parser:"@@"`
}

type Conjunction struct {
	Identities []*Identity `parser:"( @@ ( \"&\" | \";\" )? )*"`
}

var identityLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z_0-9']*`},
	{Name: "Punct", Pattern: `[=(),&;]`},
	{Name: "whitespace", Pattern: `\s+`},
})

var identityParser = participle.MustBuild[Conjunction](
	participle.Lexer(identityLexer),
	participle.Elide("whitespace"))

// Parse reads a conjunction of identities. The arity of an operation is
// fixed by the declared operations, or else by its first use; any other use
// is an arity mismatch.
func Parse(src string, declared ...algebra.Operation) ([]algebra.Identity, error) {
	ast, err := identityParser.ParseString("", src)
	if err != nil {
		return nil, err
	}
	ops := make(map[string]algebra.Operation, len(declared))
	for _, op := range declared {
		ops[op.Name] = op
	}
	term := func(t *Term) (algebra.Term, error) {
		op, ok := ops[t.Op]
		if !ok {
			op = algebra.NewOperation(t.Op, len(t.Args))
			ops[t.Op] = op
		}
		res, err := op.Apply(t.Args...)
		if err != nil {
			return algebra.Term{}, fmt.Errorf("%s: %s: %w", t.Pos, t.Op, err)
		}
		return res, nil
	}
	identities := make([]algebra.Identity, 0, len(ast.Identities))
	for _, id := range ast.Identities {
		lhs, err := term(id.Left)
		if err != nil {
			return nil, err
		}
		rhs, err := term(id.Right)
		if err != nil {
			return nil, err
		}
		identity, err := lhs.Eq(rhs)
		if err != nil {
			return nil, err
		}
		identities = append(identities, identity)
	}
	return identities, nil
}

// ParseAll parses several sources into one conjunction sharing operation
// arities.
func ParseAll(srcs []string, declared ...algebra.Operation) ([]algebra.Identity, error) {
	ops := append([]algebra.Operation(nil), declared...)
	all := make([]algebra.Identity, 0, len(srcs))
	for _, src := range srcs {
		ids, err := Parse(src, ops...)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			for _, op := range id.Operations() {
				if !containsName(ops, op.Name) {
					ops = append(ops, op)
				}
			}
		}
		all = append(all, ids...)
	}
	return all, nil
}

func containsName(ops []algebra.Operation, name string) bool {
	for _, op := range ops {
		if op.Name == name {
			return true
		}
	}
	return false
}
