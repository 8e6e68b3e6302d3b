package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"yyoom/internal/shared"
	"yyoom/internal/types"
)

// CleanCaches clears every cache category in order while holding the
// package database lock. A failing category does not stop the later ones.
func (s Service) CleanCaches(ctx context.Context, _ CleanRequest) (result CleanResult, err error) {
	if lockErr := s.Engine.Lock(ctx); lockErr != nil {
		if shared.KindOf(lockErr) == shared.KindLockError {
			return CleanResult{}, lockErr
		}
		return CleanResult{}, shared.LockError("unable to lock the package database", lockErr)
	}
	defer func() {
		if unlockErr := s.Engine.Unlock(); unlockErr != nil {
			log.Ctx(ctx).Error().Err(unlockErr).Msg("failed to unlock package database")
			if err == nil {
				err = shared.EngineError("Unlock", nil, unlockErr)
			}
		}
	}()

	var failed []string
	var causes []error
	for _, category := range types.CleanOrder {
		res, cleanErr := s.Cleaner.Clean(ctx, category)
		res.Category = category
		result.Results = append(result.Results, res)
		logger := log.Ctx(ctx).With().Str("category", string(category)).Logger()
		if cleanErr == nil && res.Code != 0 {
			cleanErr = fmt.Errorf("%s cache clean returned code %d: %s", category, res.Code, strings.Join(res.Messages, "; "))
		}
		if cleanErr != nil {
			logger.Error().Err(cleanErr).Msg("cache clean failed")
			failed = append(failed, string(category))
			causes = append(causes, cleanErr)
			continue
		}
		for _, msg := range res.Messages {
			logger.Info().Int("removed", res.Removed).Msg(msg)
		}
	}
	if len(failed) > 0 {
		return result, shared.EngineError("CleanCaches", failed, errors.Join(causes...))
	}
	return result, nil
}
