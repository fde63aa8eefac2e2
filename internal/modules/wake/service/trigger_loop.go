package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"holoalarm/internal/modules/wake/dto"
	wakein "holoalarm/internal/modules/wake/port/in"
	"holoalarm/internal/platform/clock"
)

// TriggerLoop ticks the controller at a fixed interval until the context
// ends. Missed minutes are not caught up.
type TriggerLoop struct {
	controller wakein.Controller
	clock      clock.Clock
	interval   time.Duration
	log        *zap.Logger
	onTrigger  func(context.Context, dto.TickOutput)
}

func NewTriggerLoop(controller wakein.Controller, clock clock.Clock, interval time.Duration, log *zap.Logger) *TriggerLoop {
	if interval <= 0 {
		interval = time.Second
	}
	return &TriggerLoop{controller: controller, clock: clock, interval: interval, log: log}
}

// OnTrigger registers fn to run on the loop goroutine after each trigger.
func (l *TriggerLoop) OnTrigger(fn func(context.Context, dto.TickOutput)) {
	l.onTrigger = fn
}

func (l *TriggerLoop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.step(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			l.step(ctx)
		}
	}
}

func (l *TriggerLoop) step(ctx context.Context) {
	out, err := l.controller.Tick(ctx, l.clock.Now())
	if err != nil {
		l.log.Warn("tick failed", zap.Error(err))
		return
	}
	if !out.Triggered {
		return
	}
	l.log.Info("alarm triggered",
		zap.String("alarm_id", out.Alarm.ID),
		zap.String("time", out.Alarm.Time),
		zap.String("label", out.Alarm.Label),
	)
	if l.onTrigger != nil {
		l.onTrigger(ctx, out)
	}
}
