package ui

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitoutofhours/pkg/errors"
	"gitoutofhours/pkg/models"
)

func newTestPrinter() (*Printer, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return NewPrinter(&out, &errOut), &out, &errOut
}

func TestNewPrinterDisablesColorForBuffers(t *testing.T) {
	p, _, _ := newTestPrinter()
	assert.False(t, p.Color)
	assert.False(t, IsTerminal(&bytes.Buffer{}))
}

func TestPrinterInfoAndQuiet(t *testing.T) {
	p, out, _ := newTestPrinter()
	p.Info("Getting the last 3 days commits")
	assert.Equal(t, "Getting the last 3 days commits\n", out.String())

	out.Reset()
	p.Quiet = true
	p.Info("hidden")
	p.Success("hidden")
	assert.Empty(t, out.String())
}

func TestPrinterColor(t *testing.T) {
	p, out, _ := newTestPrinter()
	p.Color = true
	p.Info("hello")
	assert.Contains(t, out.String(), "\x1b[")
}

func TestPrinterErrorShowsFirstSuggestion(t *testing.T) {
	p, out, errOut := newTestPrinter()
	p.Error(errors.RetrievalError("exec", fmt.Errorf("fatal: bad revision 'nope'")))

	assert.Empty(t, out.String())
	assert.Equal(t,
		"ERROR: Error retrieving commits\n  TIP: Check that the branch exists\n",
		errOut.String())
}

func TestPrinterErrorVerbose(t *testing.T) {
	p, _, errOut := newTestPrinter()
	p.Verbose = true
	p.Error(errors.RetrievalError("exec", fmt.Errorf("fatal: bad revision 'nope'")))

	assert.Contains(t, errOut.String(), "[GOH3001] ERROR: Error retrieving commits")
	assert.Contains(t, errOut.String(), "cause: fatal: bad revision 'nope'")
}

func TestPrinterErrorPlainSuggestion(t *testing.T) {
	p, _, errOut := newTestPrinter()
	p.Error(fmt.Errorf("fatal: not a git repository"))
	assert.Contains(t, errOut.String(), "TIP: Run the command inside a git repository or pass --repo")

	errOut.Reset()
	p.Error(nil)
	assert.Empty(t, errOut.String())
}

func TestPrinterWarningAndKeyValue(t *testing.T) {
	p, out, errOut := newTestPrinter()
	p.Warning("careful")
	p.KeyValue("branch", "master")

	assert.Equal(t, "WARNING: careful\n", errOut.String())
	// key padded to 14 columns, then one space
	assert.Equal(t, "  branch:"+strings.Repeat(" ", 8)+"master\n", out.String())
}

func TestColorFuncUsesStyleNames(t *testing.T) {
	assert.Equal(t, "\x1b[32mok\x1b[0m", colorFunc(StyleSuccess, true)("ok"))
	assert.True(t, strings.HasPrefix(colorFunc(StyleError, true)("x"), "\x1b[31m"))
	assert.True(t, strings.HasPrefix(colorFunc(StyleWarning, true)("x"), "\x1b[33m"))
	assert.True(t, strings.HasPrefix(colorFunc(StyleInfo, true)("x"), "\x1b[36m"))
	assert.Equal(t, "ok", colorFunc(StyleSuccess, false)("ok"))
}

func TestIntroLine(t *testing.T) {
	assert.Equal(t,
		"Getting the last 30 days commits by John Smith after hours (5:30pm to 8:30am)",
		IntroLine(30, "John Smith", false, "5:30pm", "8:30am"))
	assert.Equal(t,
		"Getting the last 1 day commits",
		IntroLine(1, "", true, "5:30pm", "8:30am"))
}

func TestWindowProgress(t *testing.T) {
	var buf bytes.Buffer
	p := NewWindowProgress(&buf, 3, true)
	p.Update(1, 3)
	p.Update(3, 3)
	p.Finish()
	assert.Equal(t, 3, p.Done())

	off := NewWindowProgress(&buf, 3, false)
	buf.Reset()
	off.Update(2, 3)
	off.Finish()
	assert.Empty(t, buf.String())
	assert.Equal(t, 2, off.Done())
}

func TestPickAuthor(t *testing.T) {
	defer func(orig func(survey.Prompt, interface{}, ...survey.AskOpt) error) { askOne = orig }(askOne)

	askOne = func(p survey.Prompt, response interface{}, _ ...survey.AskOpt) error {
		sel, ok := p.(*survey.Select)
		require.True(t, ok)
		assert.Equal(t, []string{"Jane Doe", "John Smith"}, sel.Options)
		*(response.(*string)) = "John Smith"
		return nil
	}

	got, err := PickAuthor([]string{"Jane Doe", "John Smith"})
	require.NoError(t, err)
	assert.Equal(t, "John Smith", got)

	got, err = PickAuthor([]string{"Solo"})
	require.NoError(t, err)
	assert.Equal(t, "Solo", got)

	_, err = PickAuthor(nil)
	assert.Error(t, err)

	askOne = func(survey.Prompt, interface{}, ...survey.AskOpt) error { return terminal.InterruptErr }
	_, err = PickAuthor([]string{"a", "b"})
	assert.Equal(t, errors.ErrCodeUserInput, errors.GetErrorCode(err))
}

func TestConfigWizard(t *testing.T) {
	w := &ConfigWizard{ask: func(qs []*survey.Question, response interface{}, _ ...survey.AskOpt) error {
		switch r := response.(type) {
		case *scanAnswers:
			assert.Len(t, qs, 4)
			assert.Error(t, qs[0].Validate("abc"))
			assert.NoError(t, qs[0].Validate("14"))
			r.Days, r.Author, r.Match, r.Branch = "14", "Jane Doe", "contains", "main"
		case *hoursAnswers:
			assert.Error(t, qs[0].Validate("25"))
			r.Start, r.End, r.Anytime = "18", "07:45", false
		default:
			t.Fatalf("unexpected answers type %T", response)
		}
		return nil
	}}

	base := models.DefaultConfig()
	cfg, err := w.Run(&base)
	require.NoError(t, err)

	assert.Equal(t, 14, cfg.Scan.Days)
	assert.Equal(t, "Jane Doe", cfg.Scan.Author)
	assert.Equal(t, "contains", cfg.Scan.Match)
	assert.Equal(t, "main", cfg.Scan.Branch)
	assert.Equal(t, "18", cfg.Hours.Start)
	assert.Equal(t, "07:45", cfg.Hours.End)

	// the base config is left untouched
	assert.Equal(t, models.DefaultDayCount, base.Scan.Days)
}

func TestConfigWizardCancelled(t *testing.T) {
	w := &ConfigWizard{ask: func([]*survey.Question, interface{}, ...survey.AskOpt) error {
		return terminal.InterruptErr
	}}

	base := models.DefaultConfig()
	_, err := w.Run(&base)
	require.Error(t, err)
	assert.Equal(t, "Configuration cancelled", err.Error())
}
