package expression

import (
	"context"
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/olickqc/hardlinkcheck/pkg/config"
)

type CompiledExpression struct {
	Text    string
	Program *vm.Program
}

// evalContext is the environment files are evaluated against. Embedding
// File exposes its fields and methods to expressions.
type evalContext struct {
	*config.File
	ctx context.Context
}

func Compile(expressions []string) ([]CompiledExpression, error) {
	compiled := make([]CompiledExpression, 0, len(expressions))

	for _, text := range expressions {
		program, err := expr.Compile(text, expr.Env(&evalContext{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile expression %q: %w", text, err)
		}

		compiled = append(compiled, CompiledExpression{Text: text, Program: program})
	}

	return compiled, nil
}
