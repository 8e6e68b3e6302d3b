package app

import (
	"io"

	"github.com/spf13/afero"

	"yyoom/internal/adapters"
	"yyoom/internal/ports"
)

type Service struct {
	Engine  ports.TransactionEnginePort
	Cleaner ports.CacheCleanerPort
	Source  ports.SourcePackagePort
	Report  ports.ReportPort
}

// Config locates the host state and the report sink a Service works with.
type Config struct {
	Engine adapters.YumEngineConfig
	Out    io.Writer
}

func NewService(cfg Config) Service {
	cacheDir := cfg.Engine.CacheDir
	if cacheDir == "" {
		cacheDir = adapters.DefaultCacheDir
	}
	return Service{
		Engine:  adapters.NewYumEngineAdapter(cfg.Engine, adapters.ExecCommandRunner{}),
		Cleaner: adapters.NewCacheCleanerAdapter(afero.NewOsFs(), cacheDir),
		Source:  adapters.NewSourcePackageAdapter(),
		Report:  adapters.NewReportJSONAdapter(cfg.Out),
	}
}
