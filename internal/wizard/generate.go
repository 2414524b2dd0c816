package wizard

import (
	"bytes"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

// WizardAnswers holds all user responses from the wizard.
type WizardAnswers struct {
	Host     string
	Scheme   string
	Username string
	Insecure bool
	Timeout  string

	SanitizeGroups bool
	LogLevel       string
}

const configTemplate = `# apicem-inventory configuration
# The password is read from APICEM_CONTROLLER_PASSWORD (environment or .env file).

controller:
  host: {{ quote .Host }}
  scheme: {{ quote .Scheme }}
  username: {{ quote .Username }}
  insecure: {{ if .Insecure }}true{{ else }}false{{ end }}
  timeout: {{ quote .Timeout }}

inventory:
  scope: ALL
  sanitize_groups: {{ if .SanitizeGroups }}true{{ else }}false{{ end }}

log:
  level: {{ quote .LogLevel }}
  format: console
`

// GenerateConfig renders the YAML config from wizard answers.
func GenerateConfig(answers WizardAnswers) (string, error) {
	if answers.Scheme == "" {
		answers.Scheme = "https"
	}
	if answers.Timeout == "" {
		answers.Timeout = "30s"
	}
	if answers.LogLevel == "" {
		answers.LogLevel = "warn"
	}

	tmpl, err := template.New("config").Funcs(template.FuncMap{"quote": quote}).Parse(configTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, answers); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// quote encodes s as a single YAML scalar, quoting it when the plain form
// would be read back differently.
func quote(s string) (string, error) {
	out, err := yaml.Marshal(s)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(string(out), "\n"), nil
}
