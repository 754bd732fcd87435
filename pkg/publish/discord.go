package publish

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// DiscordMaxLength is Discord's message content limit.
const DiscordMaxLength = 2000

// discordSession is the part of *discordgo.Session the publisher uses.
type discordSession interface {
	User(userID string, options ...discordgo.RequestOption) (*discordgo.User, error)
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Discord posts statuses to one channel as a bot user.
type Discord struct {
	session   discordSession
	channelID string
}

// NewDiscord creates a Discord publisher for a bot token and target channel.
func NewDiscord(token, channelID string) (*Discord, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("could not create discord session: %w", err)
	}
	return &Discord{session: s, channelID: channelID}, nil
}

func (d *Discord) Platform() string { return "discord" }

func (d *Discord) MaxLength() int { return DiscordMaxLength }

// Verify fetches the bot's own user.
func (d *Discord) Verify(ctx context.Context) (string, error) {
	u, err := d.session.User("@me", discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("could not verify discord credentials: %w", err)
	}
	return u.Username, nil
}

// Publish sends status as a message to the configured channel.
func (d *Discord) Publish(ctx context.Context, status string) (string, error) {
	if err := checkLength(status, DiscordMaxLength); err != nil {
		return "", err
	}
	m, err := d.session.ChannelMessageSend(d.channelID, status, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("could not send discord message to channel %s: %w", d.channelID, err)
	}
	return m.ID, nil
}
