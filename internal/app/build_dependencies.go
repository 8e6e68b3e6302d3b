package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"yyoom/internal/core"
	"yyoom/internal/shared"
	"yyoom/internal/types"
)

// BuildDependencies installs the build requirements of a source package
// that no installed package satisfies yet.
func (s Service) BuildDependencies(ctx context.Context, req BuildDependenciesRequest) error {
	path := strings.TrimSpace(req.SourcePackage)
	if path == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("source package path is required")
	}
	requirements, err := s.Source.BuildRequires(path)
	if err != nil {
		return err
	}
	log.Ctx(ctx).Debug().Str("source", path).Int("requirements", len(requirements)).Msg("build requirements read")

	preferred := shared.UniqueStrings(req.PreferRepos)
	return s.runSession(ctx, req.SkipMissing, func(session *core.TransactionSession) error {
		index := session.Index()
		for _, requirement := range requirements {
			if strings.HasPrefix(requirement.Name, "rpmlib(") {
				continue
			}
			if index.Installed(requirement) {
				log.Ctx(ctx).Debug().Str("requirement", requirement.String()).Msg("already satisfied")
				continue
			}
			intent := types.TransactionIntent{
				Kind:        types.IntentInstall,
				Requirement: requirement.String(),
				PreferRepos: preferred,
			}
			if err := stageIntent(ctx, session, intent, requirement); err != nil {
				return err
			}
		}
		return nil
	})
}
