package ui

import (
	"fmt"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"gitoutofhours/internal/schedule"
	"gitoutofhours/pkg/errors"
	"gitoutofhours/pkg/models"
)

// ConfigWizard asks for the scan defaults written by 'config init -i'
type ConfigWizard struct {
	ask func(qs []*survey.Question, response interface{}, opts ...survey.AskOpt) error
}

// NewConfigWizard creates a new configuration wizard
func NewConfigWizard() *ConfigWizard {
	return &ConfigWizard{ask: survey.Ask}
}

type scanAnswers struct {
	Days   string
	Author string
	Match  string
	Branch string
}

type hoursAnswers struct {
	Start   string
	End     string
	Anytime bool
}

// Run asks every question, starting from base, and returns the edited copy
func (w *ConfigWizard) Run(base *models.Config) (*models.Config, error) {
	cfg := *base

	if err := w.scanStep(&cfg); err != nil {
		return nil, cancelled(err)
	}
	if err := w.hoursStep(&cfg); err != nil {
		return nil, cancelled(err)
	}
	return &cfg, nil
}

func (w *ConfigWizard) scanStep(cfg *models.Config) error {
	match := cfg.Scan.Match
	if match != string(models.MatchContains) {
		match = string(models.MatchExact)
	}

	questions := []*survey.Question{
		{
			Name: "days",
			Prompt: &survey.Input{
				Message: "Days to search:",
				Default: strconv.Itoa(cfg.Scan.Days),
			},
			Validate: func(ans interface{}) error {
				_, err := models.ParseDayCount(fmt.Sprint(ans))
				return err
			},
		},
		{
			Name: "author",
			Prompt: &survey.Input{
				Message: "Author filter:",
				Default: cfg.Scan.Author,
				Help:    "Leave empty to report every author",
			},
		},
		{
			Name: "match",
			Prompt: &survey.Select{
				Message: "Author matching:",
				Options: []string{string(models.MatchExact), string(models.MatchContains)},
				Default: match,
			},
		},
		{
			Name: "branch",
			Prompt: &survey.Input{
				Message: "Branch:",
				Default: cfg.Scan.Branch,
			},
			Validate: survey.Required,
		},
	}

	var answers scanAnswers
	if err := w.ask(questions, &answers); err != nil {
		return err
	}

	days, err := models.ParseDayCount(answers.Days)
	if err != nil {
		return err
	}
	cfg.Scan.Days = days
	cfg.Scan.Author = answers.Author
	cfg.Scan.Match = answers.Match
	cfg.Scan.Branch = answers.Branch
	return nil
}

func (w *ConfigWizard) hoursStep(cfg *models.Config) error {
	clock := func(ans interface{}) error {
		_, err := schedule.ParseClock(fmt.Sprint(ans), schedule.DefaultStart)
		return err
	}

	questions := []*survey.Question{
		{
			Name:     "start",
			Prompt:   &survey.Input{Message: "Working day ends at (HH or HH:MM):", Default: cfg.Hours.Start},
			Validate: clock,
		},
		{
			Name:     "end",
			Prompt:   &survey.Input{Message: "Working day starts at (HH or HH:MM):", Default: cfg.Hours.End},
			Validate: clock,
		},
		{
			Name:   "anytime",
			Prompt: &survey.Confirm{Message: "Report commits at any time of day?", Default: cfg.Hours.Anytime},
		},
	}

	var answers hoursAnswers
	if err := w.ask(questions, &answers); err != nil {
		return err
	}

	cfg.Hours.Start = answers.Start
	cfg.Hours.End = answers.End
	cfg.Hours.Anytime = answers.Anytime
	return nil
}

func cancelled(err error) error {
	if err == terminal.InterruptErr {
		return errors.New(errors.ErrCodeUserInput, "Configuration cancelled")
	}
	return err
}
