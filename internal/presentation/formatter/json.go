package formatter

import (
	"fmt"
	"io"
	"os"

	"github.com/bytedance/sonic"

	"github.com/openclaw/clawstats/internal/data/aggregator"
)

// JSONFormatter emits the whole summary as indented JSON. Hour keys come out
// as strings, which is what downstream consumers expect.
type JSONFormatter struct {
	Writer io.Writer
}

func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{Writer: os.Stdout}
}

func (f *JSONFormatter) Format(s *aggregator.Summary) error {
	data, err := sonic.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(f.Writer, "%s\n", data)
	return err
}
