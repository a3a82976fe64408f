// Package bot serves the /hangul Discord slash command.
package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/jusunglee/phonetics-to-hangul/internal/metrics"
	"github.com/jusunglee/phonetics-to-hangul/internal/pronounce"
	"github.com/jusunglee/phonetics-to-hangul/internal/ratelimit"
)

const (
	commandHangul = "hangul"
	optionWord    = "word"
	optionIPA     = "ipa"

	rateLimitMaxCommands = 5
	rateLimitWindow      = 60 * time.Second

	maxInputLength   = 200
	maxInlineEntries = 8
	embedColor       = 0x5865F2
)

type Config struct {
	// GuildID registers commands to one server instead of globally.
	GuildID string
}

type Bot struct {
	log         Logger
	session     DiscordSession
	transcriber Transcriber
	limiter     *ratelimit.Limiter
	config      Config
}

func New(log Logger, session DiscordSession, transcriber Transcriber, config Config) *Bot {
	return &Bot{
		log:         log,
		session:     session,
		transcriber: transcriber,
		limiter:     ratelimit.New(rateLimitMaxCommands, rateLimitWindow),
		config:      config,
	}
}

// Run connects to Discord and serves commands until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	b.session.AddHandler(func(_ *discordgo.Session, i *discordgo.InteractionCreate) {
		b.handleInteraction(i)
	})
	b.session.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		b.log.InfoContext(ctx, "connected to Discord", "username", r.User.Username)
	})

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("opening Discord connection: %w", err)
	}

	if err := b.registerCommands(ctx); err != nil {
		b.session.Close()
		return fmt.Errorf("registering commands: %w", err)
	}

	stop := make(chan struct{})
	go b.limiter.PruneEvery(5*time.Minute, stop)

	b.log.InfoContext(ctx, "bot is running, press Ctrl+C to stop")
	<-ctx.Done()
	close(stop)

	if err := b.session.Close(); err != nil {
		return fmt.Errorf("closing Discord connection: %w", err)
	}
	b.log.InfoContext(ctx, "shut down complete")
	return nil
}

func (b *Bot) registerCommands(ctx context.Context) error {
	guildID := b.config.GuildID
	if guildID != "" {
		b.log.InfoContext(ctx, "registering commands to guild", "guild_id", guildID)
		_, err := b.session.ApplicationCommandBulkOverwrite(b.session.GetUserID(), "", []*discordgo.ApplicationCommand{})
		if err != nil {
			b.log.WarnContext(ctx, "failed to clear global commands", "error", err)
		}
	} else {
		b.log.InfoContext(ctx, "registering commands globally (may take up to 1 hour to propagate)")
	}

	_, err := b.session.ApplicationCommandBulkOverwrite(b.session.GetUserID(), guildID, commands)
	if err != nil {
		return fmt.Errorf("bulk overwrite commands: %w", err)
	}
	b.log.InfoContext(ctx, "registered commands", "count", len(commands))
	return nil
}

var commands = []*discordgo.ApplicationCommand{
	{
		Name:        commandHangul,
		Description: "Write English words the way they sound, in Hangul",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        optionWord,
				Description: "Words to look up (e.g., hello world)",
				MaxLength:   maxInputLength,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        optionIPA,
				Description: "IPA to convert directly (e.g., ɪɡzæmpʌl)",
				MaxLength:   maxInputLength,
			},
		},
	},
}

type handlerResult struct {
	Response string
	Embed    *discordgo.MessageEmbed
	Err      error
	// Deferred means a deferred reply was sent and the result edits it.
	Deferred bool
}

type userError struct {
	Err error
}

func (e *userError) Error() string {
	return e.Err.Error()
}

func (e *userError) Unwrap() error {
	return e.Err
}

func newUserError(err error) *userError {
	return &userError{Err: err}
}

func (b *Bot) handleInteraction(i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
	defer cancel()
	b.handleCommand(ctx, i)
}

func (b *Bot) handleCommand(ctx context.Context, i *discordgo.InteractionCreate) {
	cmd := i.ApplicationCommandData().Name
	var result handlerResult

	if !b.limiter.Allow(interactionUserID(i)) {
		metrics.RateLimitHits.Inc()
		result = handlerResult{Response: "You're going a bit fast. Try again in a minute."}
	} else {
		switch cmd {
		case commandHangul:
			result = b.handleHangul(ctx, i)
		default:
			result = handlerResult{Err: fmt.Errorf("unknown command %q", cmd)}
		}
	}

	b.respond(ctx, i, result)

	if result.Err == nil {
		return
	}

	var uerr *userError
	if errors.As(result.Err, &uerr) {
		b.log.WarnContext(ctx, "user error", "command", cmd, "error", result.Err, "channel_id", i.ChannelID)
	} else {
		b.log.ErrorContext(ctx, "command failed", "command", cmd, "error", result.Err, "channel_id", i.ChannelID)
	}
}

func (b *Bot) handleHangul(ctx context.Context, i *discordgo.InteractionCreate) handlerResult {
	options := i.ApplicationCommandData().Options
	words := strings.TrimSpace(getOption(options, optionWord))
	phonetic := strings.TrimSpace(getOption(options, optionIPA))

	switch {
	case words == "" && phonetic == "":
		err := newUserError(errors.New("either word or ipa is required"))
		return handlerResult{Response: "Give me a word or some IPA to convert.", Err: err}
	case words != "" && phonetic != "":
		err := newUserError(errors.New("both word and ipa given"))
		return handlerResult{Response: "Give me either a word or IPA, not both.", Err: err}
	case words != "":
		// Online and LLM lookups can outlast Discord's 3 second reply deadline.
		if err := b.deferReply(i); err != nil {
			return handlerResult{Err: fmt.Errorf("deferring reply: %w", err)}
		}
		results, err := b.transcriber.Transcribe(ctx, words)
		if err != nil {
			return handlerResult{Response: "Sorry, I couldn't look that up right now. Please try again later.", Err: err, Deferred: true}
		}
		if len(results) == 0 {
			err := newUserError(fmt.Errorf("no words in %q", words))
			return handlerResult{Response: "I couldn't find any words in that.", Err: err, Deferred: true}
		}
		return handlerResult{Embed: formatHangulEmbed(words, results), Deferred: true}
	}

	results := b.transcriber.TranscribeIPA(phonetic)
	if len(results) == 0 {
		err := newUserError(fmt.Errorf("no sounds in %q", phonetic))
		return handlerResult{Response: "I couldn't find any sounds in that.", Err: err}
	}
	return handlerResult{Embed: formatHangulEmbed(phonetic, results)}
}

func getOption(options []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	for _, opt := range options {
		if opt.Name == name {
			return opt.StringValue()
		}
	}
	return ""
}

// interactionUserID is the invoking user, who is on Member in servers and on
// User in direct messages.
func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func (b *Bot) deferReply(i *discordgo.InteractionCreate) error {
	return b.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
}

func (b *Bot) respond(ctx context.Context, i *discordgo.InteractionCreate, result handlerResult) {
	if result.Deferred {
		b.editReply(ctx, i, result)
		return
	}
	if result.Response == "" && result.Embed == nil {
		return
	}

	data := &discordgo.InteractionResponseData{Content: result.Response}
	if result.Embed != nil {
		data.Embeds = []*discordgo.MessageEmbed{result.Embed}
	} else {
		data.Flags = discordgo.MessageFlagsEphemeral
	}

	err := b.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		b.log.ErrorContext(ctx, "failed to respond to interaction", "error", err)
	}
}

// editReply fills in a deferred reply. It cannot be made ephemeral after
// the fact, so errors are visible to the channel.
func (b *Bot) editReply(ctx context.Context, i *discordgo.InteractionCreate, result handlerResult) {
	edit := &discordgo.WebhookEdit{}
	if result.Embed != nil {
		edit.Embeds = &[]*discordgo.MessageEmbed{result.Embed}
	} else {
		edit.Content = &result.Response
	}
	if _, err := b.session.InteractionResponseEdit(i.Interaction, edit); err != nil {
		b.log.ErrorContext(ctx, "failed to edit interaction response", "error", err)
	}
}

func formatHangulEmbed(title string, results []pronounce.Result) *discordgo.MessageEmbed {
	fields := make([]*discordgo.MessageEmbedField, 0, 3*maxInlineEntries+1)

	inlineCount := min(len(results), maxInlineEntries)
	for _, r := range results[:inlineCount] {
		fields = append(fields,
			&discordgo.MessageEmbedField{Name: "Word", Value: r.Word, Inline: true},
			&discordgo.MessageEmbedField{Name: "Pronunciation", Value: pronunciationValue(r), Inline: true},
			&discordgo.MessageEmbedField{Name: "한글", Value: r.Hangul, Inline: true},
		)
	}

	if len(results) > maxInlineEntries {
		var sb strings.Builder
		for _, r := range results[maxInlineEntries:] {
			fmt.Fprintf(&sb, "**%s** → %s\n", r.Word, r.Hangul)
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  "\u200b",
			Value: sb.String(),
		})
	}

	return &discordgo.MessageEmbed{
		Title:       title,
		Color:       embedColor,
		Description: pronounce.Joined(results),
		Fields:      fields,
	}
}

func pronunciationValue(r pronounce.Result) string {
	if !r.Found {
		return "not found"
	}
	return "/" + r.Phonetic + "/"
}
