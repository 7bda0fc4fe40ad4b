package cpu

import (
	"fmt"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// evalExpr evaluates a compile-time expression.
//
// Every define with a numeric value is visible to the expression as an int.
func evalExpr(symbols *SymbolTable, expr string) (value uint16, err error) {
	thread := starlark.Thread{Name: "expr"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range symbols.All() {
		num, _, _err := parseNumber(str)
		if _err != nil {
			// Labels and other text are not numeric.
			continue
		}
		pred[key] = starlark.MakeInt(int(num))
	}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}

	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}

	st_int64, ok := st_int.Int64()
	if !ok || st_int64 < 0 || st_int64 > 0xffff {
		err = ErrParseExpression(expr)
		return
	}

	value = uint16(st_int64)
	return
}

// exprEnd returns the index of the parenthesis closing the expression
// that opens at line[start], or -1 if it is never closed.
func exprEnd(line string, start int) int {
	depth := 0
	for n := start; n < len(line); n++ {
		switch line[n] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return n
			}
		}
	}

	return -1
}

// expandExpr substitutes every $(...) in line with its decimal value.
// Parentheses nest inside an expression, so an expression may sit
// inside an indirect operand.
func expandExpr(symbols *SymbolTable, line string) (expanded string, err error) {
	var out strings.Builder

	for {
		start := strings.Index(line, "$(")
		if start < 0 {
			break
		}

		end := exprEnd(line, start+1)
		if end < 0 {
			err = ErrParseExpression(line[start+2:])
			return
		}

		var value uint16
		value, err = evalExpr(symbols, line[start+2:end])
		if err != nil {
			return
		}

		out.WriteString(line[:start])
		fmt.Fprintf(&out, "%d", value)
		line = line[end+1:]
	}

	out.WriteString(line)
	expanded = out.String()
	return
}
