package store

import (
	"fmt"
	"strings"

	"github.com/sekolahub/sekolahub-backend/internal/authz"
)

// columnMapper resolves a scope field name to the SQL expression selecting it
// for one table. A field with no mapping compiles to FALSE, mirroring the
// in-memory rule that a missing field matches nothing.
type columnMapper interface {
	ColumnExpr(field string) (string, bool)
}

// compilePredicate renders pred as a SQL boolean expression, appending bind
// values to args. Placeholder numbers continue from len(args).
func compilePredicate(pred authz.Predicate, m columnMapper, args *[]any) string {
	switch pred.Kind() {
	case authz.PredAll:
		return "TRUE"
	case authz.PredNone:
		return "FALSE"
	case authz.PredEq:
		expr, ok := m.ColumnExpr(pred.Field())
		if !ok {
			return "FALSE"
		}
		*args = append(*args, pred.Value())
		return fmt.Sprintf("%s = $%d", expr, len(*args))
	case authz.PredAnd:
		return compileJunction(pred.Subs(), " AND ", m, args)
	case authz.PredOr:
		return compileJunction(pred.Subs(), " OR ", m, args)
	}
	return "FALSE"
}

func compileJunction(subs []authz.Predicate, sep string, m columnMapper, args *[]any) string {
	parts := make([]string, 0, len(subs))
	for _, s := range subs {
		parts = append(parts, compilePredicate(s, m, args))
	}
	return "(" + strings.Join(parts, sep) + ")"
}
