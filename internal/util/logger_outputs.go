package util

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/bytedance/sonic"
)

// ConsoleOutput writes log entries to a writer, typically stderr.
type ConsoleOutput struct {
	writer io.Writer
	format LogFormat
	mu     sync.Mutex
}

func NewConsoleOutput(writer io.Writer, format LogFormat) *ConsoleOutput {
	return &ConsoleOutput{writer: writer, format: format}
}

func (c *ConsoleOutput) Write(entry LogEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return writeEntry(c.writer, entry, c.format)
}

func (c *ConsoleOutput) Close() error {
	return nil
}

// FileOutput appends log entries to a file, creating parent directories as
// needed.
type FileOutput struct {
	file   *os.File
	format LogFormat
	mu     sync.Mutex
}

func NewFileOutput(path string, format LogFormat) (*FileOutput, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	return &FileOutput{file: file, format: format}, nil
}

func (f *FileOutput) Write(entry LogEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return writeEntry(f.file, entry, f.format)
}

func (f *FileOutput) Close() error {
	return f.file.Close()
}

func writeEntry(w io.Writer, entry LogEntry, format LogFormat) error {
	if format == FormatJSON {
		data, err := sonic.Marshal(entry)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	}

	line := fmt.Sprintf("%s [%s] %s",
		entry.Timestamp.Format("2006-01-02 15:04:05"), entry.Level, entry.Message)
	for k, v := range entry.Fields {
		line += fmt.Sprintf(" %s=%v", k, v)
	}
	_, err := fmt.Fprintln(w, line)
	return err
}
