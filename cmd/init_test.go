package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ThomasCrouzet/apicem-inventory/internal/apicem/apicemtest"
	"github.com/ThomasCrouzet/apicem-inventory/internal/ui"
	"github.com/ThomasCrouzet/apicem-inventory/internal/wizard"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureUI(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	ui.Out = &buf
	t.Cleanup(func() { ui.Out = os.Stdout })
	return &buf
}

// writeWizardConfig writes what the wizard would produce for ctrl and
// clears the environment so the file is the only source.
func writeWizardConfig(t *testing.T, ctrl *apicemtest.Controller, username string) string {
	t.Helper()
	for _, key := range []string{"HOST", "SCHEME", "USERNAME", "PASSWORD"} {
		t.Setenv("APICEM_CONTROLLER_"+key, "")
	}

	c := ctrl.Config()
	content, err := wizard.GenerateConfig(wizard.WizardAnswers{
		Host:     c.Host,
		Scheme:   c.Scheme,
		Username: username,
		Timeout:  "5s",
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "apicem.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestConfirmOverwrite(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{" y \n", true},
		{"n\n", false},
		{"yes\n", false},
		{"\n", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out bytes.Buffer
			got := confirmOverwrite(strings.NewReader(tt.input), &out, "apicem.yml")
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "apicem.yml already exists")
		})
	}
}

func TestCheckConfigFileLogsIn(t *testing.T) {
	ctrl := apicemtest.NewController(t)
	path := writeWizardConfig(t, ctrl, apicemtest.Username)
	t.Setenv("APICEM_CONTROLLER_PASSWORD", apicemtest.Password)
	buf := captureUI(t)

	err := checkConfigFile(context.Background(), path, zerolog.Nop(), true)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "service ticket issued")
	assert.Len(t, ctrl.RequestsTo("/api/v1/ticket"), 1)
}

func TestCheckConfigFileBadCredentials(t *testing.T) {
	ctrl := apicemtest.NewController(t)
	path := writeWizardConfig(t, ctrl, "admin #1")
	t.Setenv("APICEM_CONTROLLER_PASSWORD", apicemtest.Password)
	buf := captureUI(t)

	err := checkConfigFile(context.Background(), path, zerolog.Nop(), true)
	assert.Error(t, err)
	assert.Contains(t, buf.String(), "login failure")
}

func TestCheckConfigFileWithoutPasswordSkipsLogin(t *testing.T) {
	ctrl := apicemtest.NewController(t)
	path := writeWizardConfig(t, ctrl, apicemtest.Username)
	buf := captureUI(t)

	err := checkConfigFile(context.Background(), path, zerolog.Nop(), true)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "APICEM_CONTROLLER_PASSWORD is not set")
	assert.Empty(t, ctrl.RequestsTo("/api/v1/ticket"))
}

func TestCheckConfigFileSkipConnect(t *testing.T) {
	ctrl := apicemtest.NewController(t)
	path := writeWizardConfig(t, ctrl, apicemtest.Username)
	t.Setenv("APICEM_CONTROLLER_PASSWORD", apicemtest.Password)
	captureUI(t)

	require.NoError(t, checkConfigFile(context.Background(), path, zerolog.Nop(), false))
	assert.Empty(t, ctrl.RequestsTo("/api/v1/ticket"))
}
