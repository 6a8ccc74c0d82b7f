package views

import (
	"time"

	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/countdown"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/client/notify"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/clock"
	"github.com/DhvaniCast/dhvanicast-adminpanel/internal/logging"
)

// Deps are the collaborators shared by every view.
type Deps struct {
	Clock        clock.Clock
	Log          logging.Logger
	Notifier     notify.Notifier
	TickInterval time.Duration
}

func (d Deps) withDefaults() Deps {
	if d.Clock == nil {
		d.Clock = clock.Real()
	}
	if d.TickInterval <= 0 {
		d.TickInterval = countdown.DefaultInterval
	}
	d.Log = logging.OrNop(d.Log)
	d.Notifier = notify.OrNop(d.Notifier)
	return d
}

func closed() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
