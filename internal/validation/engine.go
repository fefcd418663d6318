package validation

import (
	"context"
	"time"

	"github.com/kubev2v/dr-mapping-validator/internal/inventory"
	"github.com/kubev2v/dr-mapping-validator/pkg/mapping"
	"github.com/kubev2v/dr-mapping-validator/pkg/metrics"
	"github.com/kubev2v/dr-mapping-validator/pkg/runid"
)

type Phase string

const (
	DescriptorPhase Phase = "descriptors"
	DuplicatePhase  Phase = "duplicates"
	ExistencePhase  Phase = "existence"
)

type PhaseStatus string

const (
	PhasePassed  PhaseStatus = "passed"
	PhaseFailed  PhaseStatus = "failed"
	PhaseSkipped PhaseStatus = "skipped"
)

type PhaseResult struct {
	Phase      Phase         `json:"phase"`
	Status     PhaseStatus   `json:"status"`
	Violations int           `json:"violations"`
	Duration   time.Duration `json:"duration"`
}

// Engine runs the validation phases over a mapping document.
type Engine struct {
	existence *ExistenceValidator
}

func NewEngine(client inventory.Client, opts ...ExistenceOption) *Engine {
	return &Engine{existence: NewExistenceValidator(client, opts...)}
}

// Run validates the site descriptors and the duplicate keys of doc and, only
// if both are clean, checks the mapped entities against the primary site.
// The returned error is not nil only when the phases ran out of order.
func (e *Engine) Run(ctx context.Context, doc *mapping.Document) (Verdict, error) {
	ctx, runID := runid.Start(ctx)
	logger := runid.Logger(ctx, "validator")
	metrics.ResetRun()

	phases := make([]PhaseResult, 0, 3)

	start := time.Now()
	logger.Info("validating site descriptors")
	descriptor := ValidateDescriptors(doc)
	for _, site := range []mapping.Site{mapping.PrimarySite, mapping.SecondarySite} {
		metrics.UpdateViolationsMetric(string(DescriptorPhase), string(site), countSite(descriptor, site))
	}
	phases = append(phases, newPhaseResult(DescriptorPhase, len(descriptor), nil, start))

	start = time.Now()
	logger.Info("looking for duplicate keys")
	duplicates := mapping.DetectDuplicates(doc)
	for c, keys := range duplicates {
		metrics.UpdateViolationsMetric(string(DuplicatePhase), string(c), keys.Len())
	}
	phases = append(phases, newPhaseResult(DuplicatePhase, duplicates.Len(), nil, start))

	var existence *ExistenceResult
	if len(descriptor) == 0 && duplicates.Valid() {
		start = time.Now()
		logger.Info("checking that the mapped entities exist in the primary setup")
		violations, err := e.existence.Validate(ctx, doc)
		if err != nil {
			logger.Errorw("existence validation aborted", "error", err)
		}
		existence = &ExistenceResult{Violations: violations, Err: err}
		perCategory := map[mapping.Category]int{}
		for _, v := range violations {
			perCategory[v.Category]++
		}
		for c, n := range perCategory {
			metrics.UpdateViolationsMetric(string(ExistencePhase), string(c), n)
		}

		phases = append(phases, newPhaseResult(ExistencePhase, len(violations), err, start))
	} else {
		logger.Info("skipping the existence validation")
		phases = append(phases, PhaseResult{Phase: ExistencePhase, Status: PhaseSkipped})
	}

	verdict, err := Aggregate(descriptor, duplicates, existence)
	if err != nil {
		return Verdict{}, err
	}
	verdict.RunID = runID
	verdict.Phases = phases

	metrics.UpdateRunResultMetric(verdict.OK, time.Now())
	logger.Infow("validation finished", "ok", verdict.OK, "violations", len(verdict.Messages))
	return verdict, nil
}

func newPhaseResult(phase Phase, violations int, err error, start time.Time) PhaseResult {
	d := time.Since(start)
	status := PhasePassed
	if violations > 0 || err != nil {
		status = PhaseFailed
	}
	metrics.UpdatePhaseDurationMetric(string(phase), string(status), d)
	return PhaseResult{Phase: phase, Status: status, Violations: violations, Duration: d}
}

func countSite(violations []Violation, site mapping.Site) int {
	n := 0
	for _, v := range violations {
		if v.Site == site {
			n++
		}
	}
	return n
}
