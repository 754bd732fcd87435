package publish

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	// ErrUnknownPlatform is returned by New for a platform it has no backend for.
	ErrUnknownPlatform = errors.New("publish: unknown platform")
	// ErrTooLong is returned by Publish when a status exceeds the platform's limit.
	ErrTooLong = errors.New("publish: status exceeds platform length limit")
)

// Environment variables holding publisher credentials.
const (
	EnvDiscordToken   = "DISCORD_BOT_TOKEN"
	EnvDiscordChannel = "DISCORD_CHANNEL_ID"
	EnvTelegramToken  = "TELEGRAM_BOT_TOKEN"
	EnvTelegramChat   = "TELEGRAM_CHAT_ID"
)

// Publisher posts a finished status to a social platform.
type Publisher interface {
	// Platform returns the short platform name, e.g. "discord".
	Platform() string
	// MaxLength returns the longest status, in characters, the platform accepts.
	MaxLength() int
	// Verify checks the credentials and returns the account they belong to.
	Verify(ctx context.Context) (string, error)
	// Publish posts status once and returns the platform's ID for the post.
	Publish(ctx context.Context, status string) (string, error)
}

// MissingCredentialsError lists every credential variable that was unset or empty.
type MissingCredentialsError struct {
	Platform string
	Vars     []string
}

func (e *MissingCredentialsError) Error() string {
	return fmt.Sprintf("publish: missing %s credentials: %s", e.Platform, strings.Join(e.Vars, ", "))
}

// LookupFunc reads one variable, like os.LookupEnv.
type LookupFunc func(string) (string, bool)

// Platforms returns the names accepted by New.
func Platforms() []string {
	return []string{"discord", "telegram"}
}

// New builds the Publisher for platform with credentials read through lookup.
// A nil lookup reads the process environment. No network calls are made until
// Verify or Publish.
func New(platform string, lookup LookupFunc) (Publisher, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	switch strings.ToLower(platform) {
	case "discord":
		vals, err := requireEnv("discord", lookup, EnvDiscordToken, EnvDiscordChannel)
		if err != nil {
			return nil, err
		}
		d, err := NewDiscord(vals[0], vals[1])
		if err != nil {
			return nil, err
		}
		return d, nil
	case "telegram":
		vals, err := requireEnv("telegram", lookup, EnvTelegramToken, EnvTelegramChat)
		if err != nil {
			return nil, err
		}
		chatID, err := strconv.ParseInt(vals[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("publish: invalid %s %q: %w", EnvTelegramChat, vals[1], err)
		}
		return NewTelegram(vals[0], chatID), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlatform, platform)
	}
}

func requireEnv(platform string, lookup LookupFunc, names ...string) ([]string, error) {
	vals := make([]string, len(names))
	var missing []string
	for i, name := range names {
		v, ok := lookup(name)
		v = strings.TrimSpace(v)
		if !ok || v == "" {
			missing = append(missing, name)
			continue
		}
		vals[i] = v
	}
	if len(missing) > 0 {
		return nil, &MissingCredentialsError{Platform: platform, Vars: missing}
	}
	return vals, nil
}

// Compose appends tag to text, separated by a space. An empty tag leaves text
// unchanged.
func Compose(text, tag string) string {
	if tag == "" {
		return text
	}
	return text + " " + tag
}

// Budget returns how many characters of generated text fit in one status on p
// once tag has been appended by Compose.
func Budget(p Publisher, tag string) int {
	budget := p.MaxLength()
	if tag != "" {
		budget -= utf8.RuneCountInString(tag) + 1
	}
	return budget
}

func checkLength(status string, limit int) error {
	if n := utf8.RuneCountInString(status); n > limit {
		return fmt.Errorf("%w: %d > %d characters", ErrTooLong, n, limit)
	}
	return nil
}
