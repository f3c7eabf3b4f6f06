package notification

import (
	"time"

	"github.com/olickqc/hardlinkcheck/pkg/config"
)

type Sender interface {
	CanSend() bool
	Send(title string, description string, runTime time.Duration, fields []Field, dryRun bool) error
	BuildField(file config.File) Field
	Name() string
}

type Field struct {
	Name  string
	Value string
}
