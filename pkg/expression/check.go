package expression

import (
	"context"
	"fmt"

	"github.com/expr-lang/expr"

	"github.com/olickqc/hardlinkcheck/pkg/config"
)

func CheckFileSingleMatch(ctx context.Context, f *config.File, expressions []CompiledExpression) (bool, error) {
	match, _, err := CheckFileSingleMatchWithReason(ctx, f, expressions)
	return match, err
}

func CheckFileSingleMatchWithReason(ctx context.Context, f *config.File, expressions []CompiledExpression) (bool, string, error) {
	env := &evalContext{File: f, ctx: ctx}

	for _, expression := range expressions {
		result, err := expr.Run(expression.Program, env)
		if err != nil {
			return false, "", fmt.Errorf("check expression: %w", err)
		}

		expResult, ok := result.(bool)
		if !ok {
			return false, "", fmt.Errorf("type assert expression result: %T", result)
		}

		if expResult {
			return true, expression.Text, nil
		}
	}

	return false, "", nil
}
