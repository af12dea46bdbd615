package main_test

import (
	"bytes"
	"testing"

	"github.com/alecthomas/kong"
	main "github.com/fwojciec/helpdesk/cmd/helpdesk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()
	for _, cmd := range []string{"serve", "ask", "docs"} {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestCLI_Defaults(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"ask", "Where", "is", "parking?"})
	require.NoError(t, err)

	assert.Equal(t, "gemini", cli.Provider)
	assert.Equal(t, "auto", cli.FetchMode)
	assert.Equal(t, 1024, cli.ChunkSize)
	assert.Equal(t, 20, cli.ChunkOverlap)
	assert.Equal(t, 2, cli.TopK)
	assert.Equal(t, "https://globalencounters.helpjuice.com/en_US/hospitality-faq", cli.HelpjuiceURL)
	assert.Equal(t, []string{"https://the.ismaili/globalencounters/"}, cli.Pages)
	assert.Equal(t, []string{"Where", "is", "parking?"}, cli.Ask.Question)
}

func TestCLI_RejectsUnknownProvider(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}), kong.Writers(&bytes.Buffer{}, &bytes.Buffer{}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"--provider=claude", "docs"})
	require.Error(t, err)
}
