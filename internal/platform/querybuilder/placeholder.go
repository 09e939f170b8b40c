package querybuilder

import (
	"strconv"
	"strings"
)

func placeholder(i int) string {
	return "$" + strconv.Itoa(i)
}

// bind appends value and returns its positional placeholder.
func bind(args *[]any, argIndex *int, value any) string {
	ph := placeholder(*argIndex)
	*args = append(*args, value)
	*argIndex++
	return ph
}

func rewritePlaceholders(expr string, exprArgs []any, args *[]any, argIndex *int) string {
	if len(exprArgs) == 0 {
		return expr
	}

	var out strings.Builder
	next := 0
	for i := 0; i < len(expr); i++ {
		if expr[i] != '?' || next >= len(exprArgs) {
			out.WriteByte(expr[i])
			continue
		}
		out.WriteString(bind(args, argIndex, exprArgs[next]))
		next++
	}
	return out.String()
}
