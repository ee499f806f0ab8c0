package attachment

import (
	"context"
	"time"

	"github.com/bitmark-inc/hub/background"
	"github.com/bitmark-inc/logger"
)

// Service adapts Controller to the background.Process contract,
// running Tick on a fixed interval until shutdown.
type Service struct {
	controller *Controller
	interval   time.Duration
	log        *logger.L
}

// NewService wires controller to run once every interval.
func NewService(controller *Controller, interval time.Duration) *Service {
	return &Service{
		controller: controller,
		interval:   interval,
		log:        logger.New("attachment-service"),
	}
}

// Run implements background.Process.
func (s *Service) Run(args interface{}, shutdown <-chan struct{}) {
	s.log.Info("starting")
	defer s.log.Info("stopped")

	background.RunPeriodic(s.interval, shutdown, s.log, func() {
		s.controller.Tick(context.Background())
	})
}
