package update_rule_status

import "context"

type RulesService interface {
	SetActive(ctx context.Context, id int64, active bool) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
