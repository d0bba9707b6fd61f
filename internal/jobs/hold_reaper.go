package jobs

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/sirupsen/logrus"

	ucscheduling "github.com/BruksfildServices01/salon-scheduler/internal/usecase/scheduling"
)

// HoldReaper roda a varredura de holds vencidos em background. A varredura
// em si é idempotente, então um tick sobreposto ao anterior é inofensivo;
// o singleton mode só evita acumular goroutines à toa.
type HoldReaper struct {
	scheduler gocron.Scheduler
	expire    *ucscheduling.ExpireHolds
	interval  time.Duration
}

func NewHoldReaper(
	expire *ucscheduling.ExpireHolds,
	interval time.Duration,
) (*HoldReaper, error) {

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	r := &HoldReaper{
		scheduler: scheduler,
		expire:    expire,
		interval:  interval,
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(r.sweep),
		gocron.WithName("deposit-hold-reaper"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, err
	}

	return r, nil
}

func (r *HoldReaper) Start() {
	logrus.WithField("interval", r.interval.String()).Info("hold reaper started")
	r.scheduler.Start()
}

func (r *HoldReaper) Stop() error {
	return r.scheduler.Shutdown()
}

func (r *HoldReaper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// nil = todos os tenants
	affected, err := r.expire.Execute(ctx, nil)
	if err != nil {
		logrus.WithError(err).Error("hold reaper sweep failed")
		return
	}

	if affected > 0 {
		logrus.WithField("affected", affected).Info("expired deposit holds released")
	}
}
