package generate

import (
	"context"
	"fmt"

	"brandkit/internal/domain"
	"brandkit/internal/infra"
)

// Dual runs two adapters against the same instruction. Both backends are
// always invoked, sequentially, so both raw outcomes land in the audit
// record; only the selected result flows downstream.
type Dual struct {
	primary   *Adapter
	secondary *Adapter
	logger    infra.Logger
}

func NewDual(primary, secondary *Adapter, logger infra.Logger) *Dual {
	return &Dual{primary: primary, secondary: secondary, logger: logger}
}

// Generate invokes primary then secondary with the identical instruction and
// selects the first success, preferring the primary. Both raw outcomes are
// retained. When both fail the selected result carries both diagnostics.
func (d *Dual) Generate(ctx context.Context, instr domain.RefinedInstruction, req domain.GenerationRequest) domain.DualOutcome {
	primary := d.primary.Generate(ctx, instr, req)
	if !primary.OK() {
		d.logger.Warn().
			Str("primary", d.primary.Model()).
			Msg("generate: primary backend failed")
	}
	secondary := d.secondary.Generate(ctx, instr, req)

	switch {
	case primary.OK():
		return domain.DualOutcome{
			Primary:   primary,
			Secondary: secondary,
			Selected:  primary,
			Rationale: fmt.Sprintf("primary backend %s succeeded; secondary %s retained for audit",
				d.primary.Model(), d.secondary.Model()),
		}
	case secondary.OK():
		return domain.DualOutcome{
			Primary:   primary,
			Secondary: secondary,
			Selected:  secondary,
			Rationale: fmt.Sprintf("primary backend %s failed (%s); secondary %s succeeded",
				d.primary.Model(), primary.Err, d.secondary.Model()),
		}
	default:
		combined := domain.ErrorResult(fmt.Sprintf("primary: %s; secondary: %s", primary.Err, secondary.Err))
		return domain.DualOutcome{
			Primary:   primary,
			Secondary: secondary,
			Selected:  combined,
			Rationale: "both backends failed",
		}
	}
}

// Transcript renders the full dual-run report for the extraction engine:
// one report block per adapter.
func (d *Dual) Transcript(outcome domain.DualOutcome, instr domain.RefinedInstruction) string {
	return d.primary.Report(outcome.Primary, instr) +
		"\n" + d.secondary.Report(outcome.Secondary, instr)
}
