package core

import (
	"context"
	"fmt"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"yyoom/internal/ports"
	"yyoom/internal/shared"
	"yyoom/internal/types"
)

type sessionState string

const (
	stateIdle      sessionState = "idle"
	stateLocked    sessionState = "locked"
	statePlanning  sessionState = "planning"
	stateNoOp      sessionState = "noop"
	stateExecuting sessionState = "executing"
	stateAborting  sessionState = "aborting"
	stateClosed    sessionState = "closed"
)

// TransactionSession is one locked unit of work against the package engine.
// The engine's transaction state and lock are released exactly once on every
// exit path of Run.
type TransactionSession struct {
	engine    ports.TransactionEnginePort
	collector *OutcomeCollector
	index     PackageIndex
	state     sessionState
	released  bool
}

func NewTransactionSession(ctx context.Context, engine ports.TransactionEnginePort, collector *OutcomeCollector) *TransactionSession {
	assert.NotNil(ctx, engine, "transaction engine must not be nil")
	assert.NotNil(ctx, collector, "outcome collector must not be nil")
	return &TransactionSession{
		engine:    engine,
		collector: collector,
		state:     stateIdle,
	}
}

// Run locks the engine, lets stage queue intents, then builds and executes
// the transaction and writes the report. Failed members are returned as a
// TransactionMemberFailure after the lock has been released.
func (s *TransactionSession) Run(ctx context.Context, stage func(*TransactionSession) error) error {
	if s.state != stateIdle {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("transaction session cannot run from state %s", s.state))
	}
	if err := s.engine.Lock(ctx); err != nil {
		s.state = stateClosed
		if shared.KindOf(err) == shared.KindLockError {
			return err
		}
		return shared.LockError("unable to lock the package database", err)
	}
	s.state = stateLocked
	log.Ctx(ctx).Debug().Msg("package database locked")
	defer func() {
		_ = s.release(ctx)
	}()

	failed, err := s.execute(ctx, stage)
	if err != nil {
		s.state = stateAborting
		return err
	}
	if err := s.release(ctx); err != nil {
		return err
	}
	if len(failed) > 0 {
		return shared.MemberFailure(failed)
	}
	return nil
}

func (s *TransactionSession) execute(ctx context.Context, stage func(*TransactionSession) error) ([]string, error) {
	lists, err := s.engine.Packages(ctx)
	if err != nil {
		return nil, err
	}
	s.index = BuildPackageIndex(lists)
	s.state = statePlanning
	if err := stage(s); err != nil {
		return nil, err
	}

	plan, err := s.engine.BuildTransaction(ctx)
	if err != nil {
		return nil, err
	}
	switch plan.Code {
	case types.PlanNothingToDo:
		s.state = stateNoOp
		log.Ctx(ctx).Info().Msg("nothing to do")
		return nil, s.collector.PostTransaction(nil)
	case types.PlanReady:
		s.state = stateExecuting
	default:
		return nil, shared.PlanError(plan.Code, plan.Messages)
	}

	for _, mode := range []types.RunMode{types.RunModeTest, types.RunModeCommit} {
		log.Ctx(ctx).Debug().Str("mode", string(mode)).Msg("running transaction")
		if err := s.engine.RunTransaction(ctx, mode, s.collector); err != nil {
			return nil, err
		}
	}

	members := s.engine.Members()
	var failed []string
	for _, member := range members {
		if member.State == types.ActionFailed {
			failed = append(failed, member.Package.String())
		}
	}
	if err := s.collector.PostTransaction(members); err != nil {
		return nil, err
	}
	return failed, nil
}

// release closes the engine transaction and unlocks the database. Only the
// first call has any effect.
func (s *TransactionSession) release(ctx context.Context) error {
	if s.released {
		return nil
	}
	s.released = true
	s.state = stateClosed

	var firstErr error
	if err := s.engine.CloseTransaction(); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("closing transaction")
		firstErr = shared.EngineError("CloseTransaction", nil, err)
	}
	if err := s.engine.Unlock(); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("unlocking package database")
		if firstErr == nil {
			firstErr = shared.EngineError("Unlock", nil, err)
		}
	}
	log.Ctx(ctx).Debug().Msg("package database unlocked")
	return firstErr
}

// Index returns the package index built after the lock was taken.
func (s *TransactionSession) Index() PackageIndex {
	return s.index
}

// Install stages pkg for installation.
func (s *TransactionSession) Install(pkg types.Package) error {
	if err := s.requirePlanning("install"); err != nil {
		return err
	}
	return s.engine.StageInstall(pkg)
}

// Erase stages pkg for removal.
func (s *TransactionSession) Erase(pkg types.Package) error {
	if err := s.requirePlanning("erase"); err != nil {
		return err
	}
	return s.engine.StageErase(pkg)
}

// Missing reports an unresolved requirement to the collector, which either
// records it or fails the session.
func (s *TransactionSession) Missing(requirement string) error {
	if err := s.requirePlanning("missing"); err != nil {
		return err
	}
	return s.collector.OnMissingPackage(requirement)
}

func (s *TransactionSession) requirePlanning(op string) error {
	if s.state == statePlanning {
		return nil
	}
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("cannot %s outside the planning phase (state %s)", op, s.state))
}
