package core

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"yyoom/internal/ports"
	"yyoom/internal/shared"
	"yyoom/internal/types"
)

// OutcomeCollector observes a transaction run and turns its members plus
// any unresolved requirements into the invocation's single report.
type OutcomeCollector struct {
	logger      *zerolog.Logger
	report      ports.ReportPort
	skipMissing bool
	missing     []types.OutcomeRecord
	seen        map[string]struct{}
	posted      bool
}

var _ ports.TransactionCallback = (*OutcomeCollector)(nil)

// NewOutcomeCollector returns a collector writing to report. With
// skipMissing, unresolved requirements are recorded instead of failing the
// transaction.
func NewOutcomeCollector(ctx context.Context, report ports.ReportPort, skipMissing bool) *OutcomeCollector {
	return &OutcomeCollector{
		logger:      log.Ctx(ctx),
		report:      report,
		skipMissing: skipMissing,
		seen:        map[string]struct{}{},
	}
}

func (c *OutcomeCollector) Event(member types.TransactionMember, mode types.RunMode, event types.MemberEvent) {
	c.logger.Info().
		Str("mode", string(mode)).
		Str("event", string(event)).
		Str("package", member.Package.String()).
		Str("action", string(ClassifyAction(member.State))).
		Msg("transaction member")
}

func (c *OutcomeCollector) ScriptOutput(line string) {
	c.logger.Info().Str("source", "script").Msg(line)
}

func (c *OutcomeCollector) ErrorLine(line string) {
	c.logger.Error().Str("source", "engine").Msg(line)
}

// OnMissingPackage handles a requirement the matcher could not resolve.
func (c *OutcomeCollector) OnMissingPackage(requirement string) error {
	name := requirement
	if req, err := ParseRequirement(requirement); err == nil {
		name = req.Name
	}
	if !c.skipMissing {
		return shared.ResolutionError(
			errbuilder.CodeNotFound,
			fmt.Sprintf("package not found: %s", requirement),
			nil,
		)
	}
	if _, ok := c.seen[requirement]; ok {
		return nil
	}
	c.seen[requirement] = struct{}{}
	c.logger.Warn().Str("requirement", requirement).Msg("skipping missing package")
	placeholder := types.Placeholder(name, requirement)
	c.missing = append(c.missing, types.OutcomeRecord{
		Name:        placeholder.Name,
		Status:      types.ActionTypeMissing,
		Package:     placeholder,
		Requirement: requirement,
	})
	return nil
}

// PostTransaction writes one record per member, followed by the missing
// records, as the invocation's report. It runs at most once.
func (c *OutcomeCollector) PostTransaction(members []types.TransactionMember) error {
	if c.posted {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("transaction report already written")
	}
	c.posted = true
	records := make([]types.OutcomeRecord, 0, len(members)+len(c.missing))
	for _, member := range members {
		records = append(records, types.OutcomeRecord{
			Name:       member.Package.Name,
			Status:     ClassifyAction(member.State),
			ActionCode: member.State,
			Package:    member.Package,
		})
	}
	records = append(records, c.missing...)
	return c.report.WriteTransactionReport(records)
}
