package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"gitoutofhours/internal/history"
	"gitoutofhours/pkg/errors"
	"gitoutofhours/pkg/models"
)

// Format selects how the report is written
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// NoCommitsMessage is printed when nothing matched
const NoCommitsMessage = "No commits found"

// ParseFormat converts a flag or config value into a Format
func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case "":
		return FormatTable, nil
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", errors.ValidationError("format", raw, "must be one of table, json, yaml")
	}
}

// Document is the machine-readable report
type Document struct {
	Summary Summary               `json:"summary" yaml:"summary"`
	Commits []models.CommitRecord `json:"commits" yaml:"commits"`
}

// Reporter writes reports to Out
type Reporter struct {
	Out    io.Writer
	Format Format
	Color  bool
}

// New creates a table reporter writing to out
func New(out io.Writer) *Reporter {
	if out == nil {
		out = os.Stdout
	}
	return &Reporter{Out: out, Format: FormatTable}
}

// Report renders h and reports whether any commit was found.
//
// The table format prints NoCommitsMessage and no table when h is empty.
// The json and yaml formats always emit a document.
func (r *Reporter) Report(h history.History, opts models.Options) (bool, error) {
	records := Flatten(h)
	summary := Summarise(records, opts)

	switch r.Format {
	case FormatJSON:
		return len(records) > 0, r.writeJSON(Document{Summary: summary, Commits: nonNil(records)})
	case FormatYAML:
		return len(records) > 0, r.writeYAML(Document{Summary: summary, Commits: nonNil(records)})
	}

	if len(records) == 0 {
		_, err := fmt.Fprintln(r.Out, NoCommitsMessage)
		return false, err
	}

	r.writeTable(records)

	bold := color.New(color.Bold)
	if r.Color {
		bold.EnableColor()
	} else {
		bold.DisableColor()
	}

	_, err := fmt.Fprintf(r.Out, "\n%s\n", summary.Sentence(func(s string) string { return bold.Sprint(s) }))
	return true, err
}

func (r *Reporter) writeTable(records []models.CommitRecord) {
	table := tablewriter.NewWriter(r.Out)
	table.SetHeader([]string{"Hash", "Author", "Date", "Message"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, rec := range records {
		table.Append([]string{rec.ShortHash(), rec.Author, rec.SortKey, rec.Message})
	}

	table.Render()
}

func (r *Reporter) writeJSON(doc Document) error {
	enc := json.NewEncoder(r.Out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "Failed to encode report")
	}
	return nil
}

func (r *Reporter) writeYAML(doc Document) error {
	enc := yaml.NewEncoder(r.Out)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "Failed to encode report")
	}
	return enc.Close()
}

func nonNil(records []models.CommitRecord) []models.CommitRecord {
	if records == nil {
		return []models.CommitRecord{}
	}
	return records
}
