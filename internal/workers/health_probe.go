package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/postdesk/internal/logger"
)

// HealthProbe periodically checks the identity backend and reports the
// result. The first probe runs right away.
type HealthProbe struct {
	checker  HealthChecker
	reporter StatusReporter
	interval time.Duration
	timeout  time.Duration

	logger *logger.Logger
}

func NewHealthProbe(checker HealthChecker, reporter StatusReporter, interval time.Duration, logger *logger.Logger) *HealthProbe {
	return &HealthProbe{
		checker:  checker,
		reporter: reporter,
		interval: interval,
		timeout:  min(interval, 5*time.Second),
		logger:   logger,
	}
}

func (p *HealthProbe) Run(ctx context.Context) {
	go p.loop(ctx)
}

func (p *HealthProbe) loop(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.probe(ctx)
	for {
		select {
		case <-ctx.Done():
			p.logger.Debug().Msg("health probe stopped")
			return
		case <-ticker.C:
			p.probe(ctx)
		}
	}
}

// probe runs one check and reports whether it succeeded.
func (p *HealthProbe) probe(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	err := p.checker.Health(ctx)
	if err != nil {
		p.logger.Warn().Err(err).Msg("identity provider health check failed")
	}
	p.reporter.SetIdentityServing(err == nil)
	return err == nil
}
