package health

import (
	"context"
	"sync"
	"time"
)

// Status is the storefront's overall health.
type Status string

const (
	Healthy   Status = "ok"
	Degraded  Status = "degraded" // some checks failing
	Unhealthy Status = "error"    // every check failing
)

// CheckResult is the outcome of one component check.
type CheckResult string

const (
	CheckOK    CheckResult = "ok"
	CheckError CheckResult = "error"
)

// DefaultCheckTimeout bounds each component check.
const DefaultCheckTimeout = 2 * time.Second

// Report is what GET /health renders.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

type component struct {
	name string
	run  func(context.Context) error
}

// Service checks the store and the storefront catalog.
type Service struct {
	components []component
	timeout    time.Duration
}

// New creates a Service. catalog may be nil, in which case only the
// database is checked.
func New(db DBPinger, catalog CatalogReader) *Service {
	s := &Service{timeout: DefaultCheckTimeout}
	s.components = append(s.components, component{name: "database", run: db.Ping})
	if catalog != nil {
		s.components = append(s.components, component{name: "catalog", run: func(ctx context.Context) error {
			_, err := catalog.Storefront(ctx)
			return err
		}})
	}
	return s
}

// Check runs every component check concurrently, each under its own timeout.
func (s *Service) Check(ctx context.Context) Report {
	results := make([]CheckResult, len(s.components))

	var wg sync.WaitGroup
	for i, p := range s.components {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pctx, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()
			results[i] = CheckOK
			if err := p.run(pctx); err != nil {
				results[i] = CheckError
			}
		}()
	}
	wg.Wait()

	checks := make(map[string]CheckResult, len(s.components))
	failed := 0
	for i, p := range s.components {
		checks[p.name] = results[i]
		if results[i] == CheckError {
			failed++
		}
	}

	status := Healthy
	switch {
	case failed == len(s.components):
		status = Unhealthy
	case failed > 0:
		status = Degraded
	}
	return Report{Status: status, Checks: checks}
}
