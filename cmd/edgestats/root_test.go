package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"edge-stats/internal/shared/svcerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_MissingCredentials(t *testing.T) {
	rootDir := t.TempDir()
	t.Setenv("CLOUDFLARE_API_TOKEN", "")
	t.Setenv("ZONE_ID", "")
	t.Setenv("EDGE_STATS_SOURCE_API_TOKEN", "")
	t.Setenv("EDGE_STATS_SOURCE_ZONE_ID", "")
	t.Setenv("EDGE_STATS_REPORT_ROOT_DIR", rootDir)

	for _, sub := range []string{"run", "waf", "serve"} {
		t.Run(sub, func(t *testing.T) {
			cmd := newRootCommand()
			var out bytes.Buffer
			cmd.SetOut(&out)
			cmd.SetErr(&out)
			cmd.SetArgs([]string{sub})

			err := cmd.Execute()
			require.Error(t, err)

			svcErr, ok := svcerrors.AsServiceError(err)
			require.True(t, ok)
			assert.Equal(t, "CFG_1000", svcErr.Code)
			assert.True(t, svcErr.IsConfigurationError())

			_, statErr := os.Stat(filepath.Join(rootDir, "cloudflare_hourly_stats.json"))
			assert.True(t, os.IsNotExist(statErr))
		})
	}
}

func TestRootCommand_UnreadableConfigFile(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetArgs([]string{"run", "--config", filepath.Join(t.TempDir(), "missing.yml")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, "CFG_1001", svcerrors.CodeOf(err))
}

func TestRootCommand_Subcommands(t *testing.T) {
	t.Parallel()

	cmd := newRootCommand()
	names := make([]string, 0, len(cmd.Commands()))
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"run", "serve", "waf"}, names)
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
}
