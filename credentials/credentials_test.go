package credentials_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toothbrush/yuque-dump/credentials"
)

type fakePrompter struct {
	namespace string
	token     string
	err       error

	prompts int
}

func (f *fakePrompter) Prompt(label string) (string, error) {
	f.prompts++
	return f.namespace, f.err
}

func (f *fakePrompter) PromptSecret(label string) (string, error) {
	return f.token, f.err
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    credentials.Credentials
		wantErr bool
	}{
		{
			name: "plain",
			raw:  "someone&abc123",
			want: credentials.Credentials{Namespace: "someone", Token: "abc123"},
		},
		{
			name: "trailing newline",
			raw:  "someone&abc123\n",
			want: credentials.Credentials{Namespace: "someone", Token: "abc123"},
		},
		{
			name: "splits on first separator only",
			raw:  "someone&abc&123",
			want: credentials.Credentials{Namespace: "someone", Token: "abc&123"},
		},
		{
			name:    "no separator",
			raw:     "someone",
			wantErr: true,
		},
		{
			name:    "empty token",
			raw:     "someone&",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := credentials.Parse(tt.raw)
			if tt.wantErr {
				require.ErrorIs(t, err, credentials.ErrMalformed)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadOrPrompt(t *testing.T) {
	t.Parallel()

	t.Run("prompts once when file is absent, then reuses it", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".userinfo")
		prompter := &fakePrompter{namespace: "someone", token: "abc123"}

		creds, err := credentials.LoadOrPrompt(path, prompter)
		require.NoError(t, err)
		assert.Equal(t, credentials.Credentials{Namespace: "someone", Token: "abc123"}, creds)
		assert.Equal(t, 1, prompter.prompts)

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "someone&abc123", string(raw))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

		again, err := credentials.LoadOrPrompt(path, prompter)
		require.NoError(t, err)
		assert.Equal(t, creds, again)
		assert.Equal(t, 1, prompter.prompts)
	})

	t.Run("existing file needs no prompter", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".userinfo")
		require.NoError(t, os.WriteFile(path, []byte("someone&abc123"), 0600))

		creds, err := credentials.LoadOrPrompt(path, nil)
		require.NoError(t, err)
		assert.Equal(t, "someone", creds.Namespace)
	})

	t.Run("malformed file is not silently replaced", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".userinfo")
		require.NoError(t, os.WriteFile(path, []byte("garbage"), 0600))
		prompter := &fakePrompter{namespace: "someone", token: "abc123"}

		_, err := credentials.LoadOrPrompt(path, prompter)
		require.ErrorIs(t, err, credentials.ErrMalformed)
		assert.Equal(t, 0, prompter.prompts)
	})

	t.Run("prompt failure writes nothing", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".userinfo")
		prompter := &fakePrompter{err: errors.New("aborted")}

		_, err := credentials.LoadOrPrompt(path, prompter)
		require.Error(t, err)

		_, err = os.Stat(path)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("blank answers are rejected", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".userinfo")
		prompter := &fakePrompter{namespace: "  ", token: "abc123"}

		_, err := credentials.LoadOrPrompt(path, prompter)
		require.Error(t, err)
	})
}

func TestSave_RejectsSeparatorInNamespace(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".userinfo")
	err := credentials.Save(path, credentials.Credentials{Namespace: "a&b", Token: "t"})
	require.Error(t, err)
}
