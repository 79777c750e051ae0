// Package parser turns raw session transcript lines into usage records.
package parser

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"

	"github.com/openclaw/clawstats/internal/core/channel"
	"github.com/openclaw/clawstats/internal/core/model"
	"github.com/openclaw/clawstats/internal/util"
)

// DiscardReason explains why a line produced no usage record. Lines are
// either fully converted into a record or discarded whole; nothing partial
// is ever emitted.
type DiscardReason int

const (
	DiscardNone DiscardReason = iota
	// DiscardBadLine: the line did not decode as a transcript record.
	DiscardBadLine
	// DiscardNoMessage: the record lacks a well-formed message object.
	DiscardNoMessage
	// DiscardUserTurn: a user message. It updates the channel state and
	// contributes no usage of its own.
	DiscardUserTurn
	// DiscardIgnoredRole: roles other than user/assistant.
	DiscardIgnoredRole
	// DiscardNoUsage: an assistant message without billed usage, e.g. a
	// tool-only turn. Expected, not an error.
	DiscardNoUsage
	// DiscardBadTimestamp: usable usage but no parseable timestamp, so the
	// record cannot be bucketed by date/hour.
	DiscardBadTimestamp
)

const sessionIDDisplayLen = 8

// channelState is the single mutable slot threaded through one file's parse:
// the channel implied by the most recently seen user message. Reset to
// unknown at the start of every file and never shared across files.
type channelState struct {
	current model.ChannelTag
}

// Parser parses session transcript files into usage records.
type Parser struct {
	concurrency int
}

// ParseResult represents the outcome of parsing a single file.
type ParseResult struct {
	File    string
	Records []model.UsageRecord
	Error   error
}

// NewParser creates a new Parser instance.
func NewParser(concurrency int) *Parser {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Parser{concurrency: concurrency}
}

// ParseLines processes a file's lines strictly in order, carrying the channel
// implied by the most recent user message forward onto each assistant reply.
// fileSessionID is the file stem; records carry its first 8 characters.
// Malformed lines are skipped silently; an all-garbage input yields an empty
// slice, never an error.
func ParseLines(lines []string, fileSessionID string) []model.UsageRecord {
	st := &channelState{current: model.ChannelUnknown}
	sessionID := truncateSessionID(fileSessionID)

	var records []model.UsageRecord
	for _, line := range lines {
		rec, reason := parseLine([]byte(line), st, sessionID)
		if reason == DiscardNone {
			records = append(records, *rec)
		}
	}
	return records
}

// parseLine converts one raw line into a usage record or a discard reason.
// The channel state is overwritten on every user message, marker or not, so
// it can never go stale across turns; reading it for an assistant message
// does not consume it.
func parseLine(line []byte, st *channelState, sessionID string) (*model.UsageRecord, DiscardReason) {
	var log model.SessionLog
	if err := sonic.Unmarshal(line, &log); err != nil {
		return nil, DiscardBadLine
	}

	msg := log.Message
	if msg == nil {
		return nil, DiscardNoMessage
	}

	switch msg.Role {
	case "user":
		st.current = channel.Classify(msg.Content.Text())
		return nil, DiscardUserTurn
	case "assistant":
	default:
		return nil, DiscardIgnoredRole
	}

	usage := msg.Usage
	if usage.IsZero() {
		usage = log.Usage
	}
	if usage.IsZero() {
		return nil, DiscardNoUsage
	}

	local, ok := util.ToPacific(log.Timestamp)
	if !ok {
		return nil, DiscardBadTimestamp
	}

	return &model.UsageRecord{
		Date:      util.DateKey(local),
		Hour:      local.Hour(),
		Model:     firstNonEmpty(msg.Model, log.Model, "unknown"),
		Provider:  firstNonEmpty(msg.Provider, log.Provider, "unknown"),
		SessionID: sessionID,
		Channel:   st.current,

		Input:      usage.Input,
		Output:     usage.Output,
		CacheRead:  usage.CacheRead,
		CacheWrite: usage.CacheWrite,
		Total:      usage.TotalTokens,

		Cost:           usage.Cost.Total,
		CostInput:      usage.Cost.Input,
		CostOutput:     usage.Cost.Output,
		CostCacheRead:  usage.Cost.CacheRead,
		CostCacheWrite: usage.Cost.CacheWrite,
	}, DiscardNone
}

// ParseFile parses the transcript at the given path. The session id is the
// file stem.
func (p *Parser) ParseFile(path string) ([]model.UsageRecord, error) {
	util.LogDebugf("Start parsing file: %s", path)

	file, err := os.Open(path)
	if err != nil {
		util.LogDebugf("Failed to open file: %s - %v", path, err)
		return nil, err
	}
	defer file.Close()

	st := &channelState{current: model.ChannelUnknown}
	sessionID := truncateSessionID(sessionStem(path))

	var records []model.UsageRecord
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	lineCount := 0
	discarded := 0
	for scanner.Scan() {
		lineCount++
		rec, reason := parseLine(scanner.Bytes(), st, sessionID)
		if reason != DiscardNone {
			if reason == DiscardBadLine {
				discarded++
			}
			continue
		}
		records = append(records, *rec)
	}

	if err := scanner.Err(); err != nil {
		util.LogDebugf("Error scanning file: %s - %v", path, err)
		return nil, err
	}

	util.LogDebugf("Parsed %s: %d lines, %d usage records, %d unreadable lines",
		path, lineCount, len(records), discarded)
	return records, nil
}

// ParseFiles parses multiple files concurrently and returns a channel of
// ParseResult. Each file is parsed strictly sequentially internally; only
// the fan-out across files is concurrent.
func (p *Parser) ParseFiles(files []string) <-chan ParseResult {
	start := time.Now()
	results := make(chan ParseResult, len(files))
	var wg sync.WaitGroup

	util.LogDebugf("Start concurrent parsing of %d files, concurrency: %d", len(files), p.concurrency)

	semaphore := make(chan struct{}, p.concurrency)

	for _, file := range files {
		wg.Add(1)
		go func(f string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			records, err := p.ParseFile(f)
			results <- ParseResult{
				File:    f,
				Records: records,
				Error:   err,
			}
		}(file)
	}

	go func() {
		wg.Wait()
		close(results)
		util.LogDebugf("Concurrent parsing finished, total duration: %v", time.Since(start))
	}()

	return results
}

// sessionStem returns the filename without directory or extension.
// e.g. "/path/to/00aec530-0614-436f-a53b-faaa0b32f123.jsonl" ->
// "00aec530-0614-436f-a53b-faaa0b32f123"
func sessionStem(path string) string {
	filename := filepath.Base(path)
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}

// truncateSessionID shortens a session id to its display form. Ids shorter
// than the display length are kept whole.
func truncateSessionID(id string) string {
	if len(id) > sessionIDDisplayLen {
		return id[:sessionIDDisplayLen]
	}
	return id
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
