package app

import (
	"context"
	"errors"
	"slices"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"yyoom/internal/core"
	"yyoom/internal/shared"
	"yyoom/internal/types"
)

// Transact erases and installs the requested packages in one locked
// transaction and reports every member plus any tolerated missing request.
func (s Service) Transact(ctx context.Context, req TransactRequest) error {
	intents := transactionIntents(req)
	if len(intents) == 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("at least one --install or --erase requirement is required")
	}
	requirements, err := parseIntents(intents)
	if err != nil {
		return err
	}
	return s.runSession(ctx, req.SkipMissing, func(session *core.TransactionSession) error {
		for i, intent := range intents {
			if err := stageIntent(ctx, session, intent, requirements[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// transactionIntents orders erases before installs and drops repeated
// requirement strings.
func transactionIntents(req TransactRequest) []types.TransactionIntent {
	preferred := shared.UniqueStrings(req.PreferRepos)
	var intents []types.TransactionIntent
	for _, raw := range shared.UniqueStrings(req.Erases) {
		intents = append(intents, types.TransactionIntent{Kind: types.IntentErase, Requirement: raw})
	}
	for _, raw := range shared.UniqueStrings(req.Installs) {
		intents = append(intents, types.TransactionIntent{Kind: types.IntentInstall, Requirement: raw, PreferRepos: preferred})
	}
	return intents
}

// parseIntents rejects malformed requirements before the database is
// locked.
func parseIntents(intents []types.TransactionIntent) ([]types.Requirement, error) {
	requirements := make([]types.Requirement, 0, len(intents))
	for _, intent := range intents {
		requirement, err := core.ParseRequirement(intent.Requirement)
		if err != nil {
			return nil, err
		}
		requirements = append(requirements, requirement)
	}
	return requirements, nil
}

func stageIntent(ctx context.Context, session *core.TransactionSession, intent types.TransactionIntent, requirement types.Requirement) error {
	logger := log.Ctx(ctx).With().Str("requirement", intent.Requirement).Str("intent", string(intent.Kind)).Logger()
	matches, err := core.FindRequirement(session.Index(), requirement)
	if errors.Is(err, core.ErrNotFound) {
		logger.Debug().Msg("no matching package")
		return session.Missing(intent.Requirement)
	}
	if err != nil {
		return err
	}

	switch intent.Kind {
	case types.IntentErase:
		targets := core.SelectErase(matches)
		if len(targets) == 0 {
			logger.Info().Msg("nothing installed to erase")
			return nil
		}
		for _, pkg := range targets {
			logger.Info().Str("package", pkg.String()).Msg("staging erase")
			if err := session.Erase(pkg); err != nil {
				return shared.EngineError("StageErase", []string{pkg.String()}, err)
			}
		}
	case types.IntentInstall:
		pkg, ok := core.SelectInstall(matches, intent.PreferRepos)
		if !ok {
			return session.Missing(intent.Requirement)
		}
		if len(intent.PreferRepos) > 0 && !slices.Contains(intent.PreferRepos, pkg.Repo) {
			logger.Warn().Strs("prefer_repos", intent.PreferRepos).Str("repo", pkg.Repo).Msg("no candidate in preferred repositories")
		}
		logger.Info().Str("package", pkg.String()).Str("repo", pkg.Repo).Msg("staging install")
		if err := session.Install(pkg); err != nil {
			return shared.EngineError("StageInstall", []string{pkg.String()}, err)
		}
	}
	return nil
}

func (s Service) runSession(ctx context.Context, skipMissing bool, stage func(*core.TransactionSession) error) error {
	collector := core.NewOutcomeCollector(ctx, s.Report, skipMissing)
	session := core.NewTransactionSession(ctx, s.Engine, collector)
	return session.Run(ctx, stage)
}
