// Package analyzer wires the pipeline: scan the sessions directory, parse
// each transcript, fold the merged records, render the report.
package analyzer

import (
	"fmt"
	"runtime"
	"sort"
	"time"

	"github.com/openclaw/clawstats/internal/core/model"
	"github.com/openclaw/clawstats/internal/data/aggregator"
	"github.com/openclaw/clawstats/internal/data/parser"
	"github.com/openclaw/clawstats/internal/data/scanner"
	"github.com/openclaw/clawstats/internal/presentation/formatter"
	"github.com/openclaw/clawstats/internal/util"
)

type Config struct {
	SessionsDir  string
	Days         int
	OutputFormat string // text, json
	Detail       bool
	Concurrency  int
}

type Analyzer struct {
	config  *Config
	scanner *scanner.FileScanner
	parser  *parser.Parser
}

func New(config *Config) *Analyzer {
	if config.Concurrency == 0 {
		config.Concurrency = runtime.NumCPU()
	}

	return &Analyzer{
		config:  config,
		scanner: scanner.NewFileScanner(config.SessionsDir, config.Days),
		parser:  parser.NewParser(config.Concurrency),
	}
}

// Run executes one full pass over the sessions directory and renders the
// result. An empty or missing directory produces an empty report, not an
// error.
func (a *Analyzer) Run() error {
	startTime := time.Now()
	util.LogDebug("Starting token usage analysis")

	scanStart := time.Now()
	files, err := a.scanner.Scan()
	if err != nil {
		return fmt.Errorf("failed to scan sessions directory: %w", err)
	}
	util.LogDebugf("Phase 1 - scan duration: %v, found %d files", time.Since(scanStart), len(files))

	parseStart := time.Now()
	records := a.parseAll(files)
	util.LogDebugf("Phase 2 - parse duration: %v, %d usage records", time.Since(parseStart), len(records))

	aggStart := time.Now()
	summary := aggregator.Aggregate(records)
	util.LogDebugf("Phase 3 - aggregation duration: %v, %d dates, %d models, %d sessions",
		time.Since(aggStart), len(summary.ByDate), len(summary.ByModel), len(summary.BySession))

	outputStart := time.Now()
	err = a.render(summary)
	util.LogDebugf("Phase 4 - output duration: %v", time.Since(outputStart))

	util.LogDebugf("Total duration: %v", time.Since(startTime))
	return err
}

// parseAll fans out across files with bounded concurrency. Each file is
// parsed strictly in line order with its own channel state; only the fold
// input is merged. Results are re-sorted by file path so output is stable
// run to run.
func (a *Analyzer) parseAll(files []string) []model.UsageRecord {
	if len(files) == 0 {
		return nil
	}

	results := make([]parser.ParseResult, 0, len(files))
	for result := range a.parser.ParseFiles(files) {
		if result.Error != nil {
			util.LogWarnf("Failed to parse file %s: %v", result.File, result.Error)
			continue
		}
		results = append(results, result)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].File < results[j].File
	})

	var records []model.UsageRecord
	for _, result := range results {
		records = append(records, result.Records...)
	}
	return records
}

func (a *Analyzer) render(summary *aggregator.Summary) error {
	var r formatter.Renderer
	switch a.config.OutputFormat {
	case "json":
		r = formatter.NewJSONFormatter()
	default:
		r = formatter.NewTextFormatter(a.config.Detail)
	}
	return r.Format(summary)
}
