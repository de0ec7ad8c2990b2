package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/handoff/cmd/handoff/commands"
	"go.trai.ch/handoff/internal/app"
	"go.trai.ch/handoff/internal/build"
	"go.trai.ch/handoff/internal/core/domain"
)

type mockApp struct {
	runFunc      func(ctx context.Context, opts app.RunOptions) error
	validateFunc func(ctx context.Context, path string) error
}

func (m *mockApp) Run(ctx context.Context, opts app.RunOptions) error {
	if m.runFunc != nil {
		return m.runFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) Validate(ctx context.Context, path string) error {
	if m.validateFunc != nil {
		return m.validateFunc(ctx, path)
	}
	return nil
}

func TestCommands_Run(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var captured app.RunOptions
		called := false

		mock := &mockApp{
			runFunc: func(_ context.Context, opts app.RunOptions) error {
				captured = opts
				called = true
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{
			"run", "crate/handoff.yaml",
			"-w", "3", "--format", "json", "--only", "1,DefId(0:4)", "--trace",
		})

		require.NoError(t, cli.Execute(context.Background()))
		assert.True(t, called)
		assert.Equal(t, "crate/handoff.yaml", captured.Manifest)
		assert.Equal(t, 3, captured.Workers)
		assert.Equal(t, "json", captured.Format)
		assert.Equal(t, []domain.DefinitionID{1, 4}, captured.Only)
		assert.True(t, captured.Trace)
	})

	t.Run("defaults", func(t *testing.T) {
		var captured app.RunOptions
		mock := &mockApp{
			runFunc: func(_ context.Context, opts app.RunOptions) error {
				captured = opts
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"run"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Empty(t, captured.Manifest)
		assert.Zero(t, captured.Workers)
		assert.Equal(t, "text", captured.Format)
		assert.Empty(t, captured.Only)
		assert.False(t, captured.Trace)
	})

	t.Run("rejects a malformed definition", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(_ context.Context, _ app.RunOptions) error {
				panic("should not be called")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"run", "--only", "main"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		require.Error(t, cli.Execute(context.Background()))
	})

	t.Run("returns error on run failure", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(_ context.Context, _ app.RunOptions) error {
				return errors.New("simulated error")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"run"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})

	t.Run("rejects extra arguments", func(t *testing.T) {
		cli := commands.New(&mockApp{})
		cli.SetArgs([]string{"run", "a.yaml", "b.yaml"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		require.Error(t, cli.Execute(context.Background()))
	})
}

func TestCommands_Validate(t *testing.T) {
	var captured string
	mock := &mockApp{
		validateFunc: func(_ context.Context, path string) error {
			captured = path
			return nil
		},
	}

	cli := commands.New(mock)
	cli.SetArgs([]string{"validate", "crate"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, "crate", captured)
}

func TestCommands_Version(t *testing.T) {
	t.Run("subcommand", func(t *testing.T) {
		cli := commands.New(&mockApp{})
		buf := new(bytes.Buffer)
		cli.SetOutput(buf, buf)
		cli.SetArgs([]string{"version"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, "handoff version "+build.Version+" (commit: "+build.Commit+", date: "+build.Date+")\n", buf.String())
	})

	t.Run("flag", func(t *testing.T) {
		cli := commands.New(&mockApp{})
		buf := new(bytes.Buffer)
		cli.SetOutput(buf, buf)
		cli.SetArgs([]string{"--version"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Contains(t, buf.String(), "handoff version "+build.Version)
	})
}
