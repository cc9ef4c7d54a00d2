// Package bot wires the Discord gateway to the external service adapters. It
// registers the slash-command table at connect time and dispatches inbound
// command events to handlers, guaranteeing exactly one reply per invocation.
package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"finbot/internal/errors"
	"finbot/internal/llm"
	"finbot/internal/logging"
	"finbot/internal/models"
)

// MarketData is the market data adapter surface used by handlers.
type MarketData interface {
	Quote(ctx context.Context, symbol string) (models.QuoteSnapshot, error)
	Profile(ctx context.Context, symbol string) (models.ProfileSnapshot, error)
	Calendar(ctx context.Context, date time.Time) ([]models.CalendarEvent, error)
}

// NewsFetcher is the RSS fetcher surface used by handlers.
type NewsFetcher interface {
	Fetch(ctx context.Context, url string, limit int) ([]models.NewsItem, error)
}

// Services groups the external adapters the handlers call. Market and News
// must be set; LLM may be nil, in which case the ask command answers with a
// plain not-configured message.
type Services struct {
	LLM    llm.Client
	Market MarketData
	News   NewsFetcher
}

// Config holds bot construction parameters.
type Config struct {
	Token         string
	GuildID       string
	StockQueryURL string
	EconomicURL   string
}

// Bot owns the Discord session and the command table. The session is an
// explicitly constructed handle, not ambient state, so the dispatch and
// formatting logic is testable without a live connection.
type Bot struct {
	session  *discordgo.Session
	guildID  string
	commands []*Command
	byName   map[string]*Command
	svc      Services
	cfg      Config
	logger   zerolog.Logger
	now      func() time.Time
}

// New creates a bot with an unopened session.
func New(cfg Config, svc Services, logger zerolog.Logger) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, err
	}
	session.Identify.Intents = discordgo.IntentsGuilds

	b := &Bot{
		session: session,
		guildID: cfg.GuildID,
		svc:     svc,
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
	}
	b.commands = b.buildCommands()
	b.byName = make(map[string]*Command, len(b.commands))
	for _, cmd := range b.commands {
		b.byName[cmd.Name] = cmd
	}

	session.AddHandler(b.onReady)
	session.AddHandler(b.onInteraction)
	return b, nil
}

// Run opens the gateway connection and blocks until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return err
	}
	b.logger.Info().Msg("Gateway connected")

	<-ctx.Done()
	b.logger.Info().Msg("Shutting down")
	return b.session.Close()
}

// onReady synchronizes the command table with the platform. A failed sync is
// fatal: running with stale registration is worse than not running.
func (b *Bot) onReady(s *discordgo.Session, _ *discordgo.Ready) {
	registered, err := s.ApplicationCommandBulkOverwrite(s.State.User.ID, b.guildID, b.applicationCommands())
	if err != nil {
		b.logger.Fatal().Err(err).Msg("Slash command sync failed")
	}
	b.logger.Info().Int("count", len(registered)).Msg("Slash commands synchronized")
}

// applicationCommands converts the command table to the platform's schema.
func (b *Bot) applicationCommands() []*discordgo.ApplicationCommand {
	cmds := make([]*discordgo.ApplicationCommand, 0, len(b.commands))
	for _, cmd := range b.commands {
		opts := make([]*discordgo.ApplicationCommandOption, 0, len(cmd.Options))
		for _, opt := range cmd.Options {
			opts = append(opts, &discordgo.ApplicationCommandOption{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        opt.Name,
				Description: opt.Description,
				Required:    opt.Required,
			})
		}
		cmds = append(cmds, &discordgo.ApplicationCommand{
			Name:        cmd.Name,
			Description: cmd.Description,
			Options:     opts,
		})
	}
	return cmds
}

// onInteraction resolves an inbound command event to its handler.
func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	data := i.ApplicationCommandData()
	cmd, ok := b.byName[data.Name]
	if !ok {
		b.logger.Warn().Str("command", data.Name).Msg("Unknown command received")
		return
	}

	args := make(map[string]string, len(data.Options))
	for _, opt := range data.Options {
		if opt.Type == discordgo.ApplicationCommandOptionString {
			args[opt.Name] = opt.StringValue()
		}
	}

	b.Dispatch(context.Background(), cmd, args, &interactionReplier{s: s, i: i})
}

// Dispatch validates arguments against the command schema, runs the handler,
// and converts any error into a single plain reply. Exactly one reply is sent
// per invocation, success or failure.
func (b *Bot) Dispatch(ctx context.Context, cmd *Command, args map[string]string, r Replier) {
	logger := logging.WithCommand(b.logger, cmd.Name)

	for _, opt := range cmd.Options {
		if opt.Required && args[opt.Name] == "" {
			logger.Debug().Err(errors.Wrapf(errors.ErrMissingArgument, "option %q", opt.Name)).Msg("Invocation rejected")
			if err := r.Respond(plainResponse(usageMessage(cmd, opt))); err != nil {
				logger.Error().Err(err).Msg("Failed to send validation reply")
			}
			return
		}
	}

	if cmd.Immediate {
		if err := runHandler(ctx, cmd, args, r); err != nil {
			logger.Error().Err(err).Msg("Command failed")
			if err := r.Respond(plainResponse(cmd.FailureMessage)); err != nil {
				logger.Error().Err(err).Msg("Failed to send failure reply")
			}
		}
		return
	}

	if err := r.Defer(); err != nil {
		logger.Error().Err(err).Msg("Failed to defer reply")
		return
	}
	if err := runHandler(ctx, cmd, args, r); err != nil {
		var upstream *errors.UpstreamError
		if errors.As(err, &upstream) {
			logging.LogUpstreamFailure(logger, upstream.Provider, upstream.Operation, upstream.Err)
		} else {
			logger.Error().Err(err).Msg("Command failed")
		}
		if err := r.Followup(cmd.FailureMessage); err != nil {
			logger.Error().Err(err).Msg("Failed to send failure reply")
		}
	}
}

// runHandler converts a panicking handler into an ordinary error so that the
// caller's failure path still sends its single reply.
func runHandler(ctx context.Context, cmd *Command, args map[string]string, r Replier) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("handler panic: %v", v)
		}
	}()
	return cmd.Handler(ctx, args, r)
}
