package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/fraudlens/fraudlens/internal/files/filesystem"
	"github.com/fraudlens/fraudlens/internal/files/scanner"
	"github.com/fraudlens/fraudlens/internal/loader"
	"github.com/fraudlens/fraudlens/internal/logging"
	"github.com/fraudlens/fraudlens/internal/report"
	"github.com/fraudlens/fraudlens/internal/store"
	"github.com/fraudlens/fraudlens/pkg/fraudlens"
)

// StoreOpener opens the store named by a target.
type StoreOpener func(ctx context.Context, target string, mode store.Mode) (*store.Store, error)

// AnalysisService runs the load and report phases.
// Thread-Safety: NOT safe for concurrent calls on the same instance.
type AnalysisService struct {
	openStore  StoreOpener
	fsProvider filesystem.FileSystemProvider
	logger     fraudlens.Logger
	newRunID   func() string
}

// NewAnalysisService creates an AnalysisService with all dependencies injected.
// Panics on nil dependencies; runtime failures are returned as errors.
func NewAnalysisService(openStore StoreOpener, fsProvider filesystem.FileSystemProvider, logger fraudlens.Logger) *AnalysisService {
	if openStore == nil {
		panic("openStore cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &AnalysisService{
		openStore:  openStore,
		fsProvider: fsProvider,
		logger:     logger,
		newRunID:   uuid.NewString,
	}
}

// NewDefaultAnalysisService wires the service to the OS filesystem and store.Open.
func NewDefaultAnalysisService(logger fraudlens.Logger) *AnalysisService {
	return NewAnalysisService(store.Open, filesystem.NewOSFileSystem(), logger)
}

// Load discovers source files under cfg.SourcePath and replaces one table per
// file. The returned result is non-nil even on failure and lists the files
// loaded before it.
func (s *AnalysisService) Load(ctx context.Context, cfg fraudlens.LoadConfig) (*fraudlens.LoadResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	result := &fraudlens.LoadResult{RunID: s.newRunID()}
	log := logging.With(s.logger, "run_id", result.RunID)

	scan, err := scanner.NewScannerWithFS(s.fsProvider, cfg.Extensions...).ScanDirectory(cfg.SourcePath)
	if err != nil {
		return result, &fraudlens.DataLoadError{Path: cfg.SourcePath, Err: err}
	}
	result.Collisions = scan.Collisions
	log.Verbose("Discovered %d source file(s) under %s", len(scan.Files), cfg.SourcePath)

	for _, c := range scan.Collisions {
		log.Warn("Table %s is mapped from %d files; %s is loaded last and wins", c.Table, len(c.Paths), c.Paths[len(c.Paths)-1])
	}

	st, err := s.openStore(ctx, cfg.StoreTarget, store.ReadWrite)
	if err != nil {
		return result, err
	}
	defer st.Close()
	log.Verbose("Opened store %s", st.Target())

	batchSize := cfg.BatchSize
	if batchSize == 0 {
		batchSize = fraudlens.DefaultBatchSize
	}
	loaded, err := loader.NewLoader(s.fsProvider, log, batchSize).LoadFiles(ctx, st, scan.Files)
	result.Files = loaded
	if err != nil {
		return result, err
	}

	tables, err := st.Tables(ctx)
	if err != nil {
		return result, err
	}
	result.Tables = tables

	log.Info("Loaded %d file(s) from %s into %s", len(loaded), cfg.SourcePath, st.Target())
	return result, nil
}

// Report runs the selected catalog queries against an already loaded store
// and hands each result to emit in catalog order. The store is opened
// read-only.
func (s *AnalysisService) Report(ctx context.Context, cfg fraudlens.ReportConfig, emit func(report.Result) error) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	queries, err := report.Select(cfg.QueryIDs)
	if err != nil {
		return err
	}

	st, err := s.openStore(ctx, cfg.StoreTarget, store.ReadOnly)
	if err != nil {
		return err
	}
	defer st.Close()

	s.logger.Verbose("Running %d report query(ies) against %s", len(queries), st.Target())

	engine := report.NewEngine(st, s.logger)
	return engine.RunAll(ctx, queries, report.RunOptions{
		ContinueOnError: cfg.ContinueOnError,
		SkipMissing:     cfg.SkipMissing,
	}, emit)
}

// RunReports runs the report phase and returns each query's label with its
// formatted lines.
func (s *AnalysisService) RunReports(ctx context.Context, cfg fraudlens.ReportConfig) ([]report.Block, error) {
	var blocks []report.Block
	err := s.Report(ctx, cfg, func(r report.Result) error {
		blocks = append(blocks, report.NewBlock(r))
		return nil
	})
	return blocks, err
}

// Catalog lists the tables of a loaded store with their columns.
func (s *AnalysisService) Catalog(ctx context.Context, target string) (store.Catalog, error) {
	st, err := s.openStore(ctx, target, store.ReadOnly)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	catalog, err := st.Catalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read store catalog: %w", err)
	}
	return catalog, nil
}
