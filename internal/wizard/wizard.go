package wizard

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
)

// Run executes the interactive wizard and returns the user's answers.
func Run(detection DetectionResult) (*WizardAnswers, error) {
	answers := &WizardAnswers{
		Host:     detection.Host,
		Scheme:   "https",
		Username: detection.Username,
		Timeout:  "30s",
		LogLevel: "warn",
	}

	desc := "Where is your APIC-EM controller?"
	var hints []string
	if detection.EnvFile != "" {
		hints = append(hints, "Found "+detection.EnvFile)
	}
	if detection.PasswordFromEnv {
		hints = append(hints, "APICEM_CONTROLLER_PASSWORD is set")
	}
	if len(hints) > 0 {
		desc += "\n\nAuto-detected:\n  " + strings.Join(hints, "\n  ")
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Controller host").
				Description(desc).
				Placeholder("apic-em.example.net").
				Validate(required("host")).
				Value(&answers.Host),
			huh.NewSelect[string]().
				Title("Scheme").
				Options(
					huh.NewOption("HTTPS", "https"),
					huh.NewOption("HTTP (lab only)", "http"),
				).
				Value(&answers.Scheme),
			huh.NewInput().
				Title("Username").
				Validate(required("username")).
				Value(&answers.Username),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Skip TLS certificate verification?").
				Description("Only for controllers with self-signed certificates").
				Value(&answers.Insecure),
			huh.NewInput().
				Title("Request timeout").
				Placeholder("30s").
				Validate(validDuration).
				Value(&answers.Timeout),
			huh.NewConfirm().
				Title("Rewrite location names into valid Ansible group names?").
				Value(&answers.SanitizeGroups),
			huh.NewSelect[string]().
				Title("Log level").
				Options(
					huh.NewOption("Warn", "warn"),
					huh.NewOption("Info", "info"),
					huh.NewOption("Debug", "debug"),
				).
				Value(&answers.LogLevel),
		),
	)

	if err := form.Run(); err != nil {
		return nil, err
	}

	return answers, nil
}

func required(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(name + " is required")
		}
		return nil
	}
}

func validDuration(s string) error {
	if s == "" {
		return nil
	}
	_, err := time.ParseDuration(s)
	return err
}
