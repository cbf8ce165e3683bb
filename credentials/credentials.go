// Package credentials keeps the Yuque namespace and token in a small dotfile, asking the user for
// them the first time round.
package credentials

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// DefaultFile is where credentials live unless told otherwise: next to wherever you run the tool.
const DefaultFile = ".userinfo"

// The on-disk format is a single line, namespace and token joined by this.
const separator = "&"

var ErrMalformed = errors.New("credentials: malformed credentials file")

type Credentials struct {
	Namespace string
	Token     string
}

func (c Credentials) String() string {
	return c.Namespace + separator + c.Token
}

// Prompter asks the user for values we don't have yet.
type Prompter interface {
	Prompt(label string) (string, error)
	PromptSecret(label string) (string, error)
}

// Parse reads the `namespace&token` format.  Tokens never contain '&', but we only split on the
// first one regardless.
func Parse(raw string) (Credentials, error) {
	line := strings.TrimSpace(raw)
	namespace, token, ok := strings.Cut(line, separator)
	if !ok {
		return Credentials{}, fmt.Errorf("%w: expected namespace%stoken", ErrMalformed, separator)
	}

	creds := Credentials{
		Namespace: strings.TrimSpace(namespace),
		Token:     strings.TrimSpace(token),
	}
	if creds.Namespace == "" || creds.Token == "" {
		return Credentials{}, fmt.Errorf("%w: namespace or token is empty", ErrMalformed)
	}

	return creds, nil
}

func Load(path string) (Credentials, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Credentials{}, fmt.Errorf("credentials: couldn't read %s: %w", path, err)
	}

	creds, err := Parse(string(raw))
	if err != nil {
		return Credentials{}, fmt.Errorf("credentials: couldn't parse %s: %w", path, err)
	}

	return creds, nil
}

func Save(path string, creds Credentials) error {
	if strings.Contains(creds.Namespace, separator) {
		return fmt.Errorf("credentials: namespace may not contain '%s'", separator)
	}

	if err := os.WriteFile(path, []byte(creds.String()), 0600); err != nil {
		return fmt.Errorf("credentials: couldn't write %s: %w", path, err)
	}

	return nil
}

// LoadOrPrompt returns the credentials stored at path.  If there is no such file, the user is asked
// for both values once and the answer is written to path for next time.
func LoadOrPrompt(path string, prompter Prompter) (Credentials, error) {
	creds, err := Load(path)
	if err == nil {
		return creds, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return Credentials{}, err
	}

	if prompter == nil {
		return Credentials{}, fmt.Errorf("credentials: %s doesn't exist and we can't prompt for it", path)
	}

	namespace, err := prompter.Prompt("Yuque namespace: ")
	if err != nil {
		return Credentials{}, fmt.Errorf("credentials: couldn't read namespace: %w", err)
	}
	token, err := prompter.PromptSecret("Yuque token: ")
	if err != nil {
		return Credentials{}, fmt.Errorf("credentials: couldn't read token: %w", err)
	}

	creds = Credentials{
		Namespace: strings.TrimSpace(namespace),
		Token:     strings.TrimSpace(token),
	}
	if creds.Namespace == "" || creds.Token == "" {
		return Credentials{}, fmt.Errorf("credentials: namespace and token are both required")
	}

	if err := Save(path, creds); err != nil {
		return Credentials{}, err
	}

	return creds, nil
}
