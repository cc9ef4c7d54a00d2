package bot

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"finbot/internal/errors"
	"finbot/internal/logging"
	"finbot/internal/market"
)

const maxNewsItems = 5

// Option is one typed command parameter. All parameters are strings; the
// schema is validated before the handler runs.
type Option struct {
	Name        string
	Description string
	Required    bool
}

// Command is one entry of the slash-command table.
type Command struct {
	Name        string
	Description string
	Options     []Option
	// Immediate commands respond without deferring (static content only).
	Immediate bool
	// FailureMessage is the fixed reply sent when the handler returns an
	// error. Raw provider errors never reach the user.
	FailureMessage string
	Handler        func(ctx context.Context, args map[string]string, r Replier) error
}

func usageMessage(cmd *Command, opt Option) string {
	return fmt.Sprintf("Missing required argument `%s`. Usage: /%s %s", opt.Name, cmd.Name, optionSummary(cmd))
}

func optionSummary(cmd *Command) string {
	parts := make([]string, 0, len(cmd.Options))
	for _, opt := range cmd.Options {
		if opt.Required {
			parts = append(parts, "["+opt.Name+"]")
		} else {
			parts = append(parts, "("+opt.Name+")")
		}
	}
	return strings.Join(parts, " ")
}

// buildCommands assembles the fixed command table.
func (b *Bot) buildCommands() []*Command {
	return []*Command{
		{
			Name:        "ask",
			Description: "Ask the model a free-form question.",
			Options: []Option{
				{Name: "question", Description: "The question to ask the model.", Required: true},
			},
			FailureMessage: "The model could not answer that right now. Please try again later.",
			Handler:        b.handleAsk,
		},
		{
			Name:           "help",
			Description:    "Show all commands the bot supports.",
			Immediate:      true,
			FailureMessage: "Could not show help.",
			Handler:        b.handleHelp,
		},
		{
			Name:        "price",
			Description: "Show detailed current price information for a symbol.",
			Options: []Option{
				{Name: "symbol", Description: "Ticker symbol to look up.", Required: true},
			},
			FailureMessage: "Could not fetch price data. Please try again later.",
			Handler:        b.handlePrice,
		},
		{
			Name:        "info",
			Description: "Show key statistics for a company.",
			Options: []Option{
				{Name: "symbol", Description: "Ticker symbol to look up.", Required: true},
			},
			FailureMessage: "Could not fetch company information. Please try again later.",
			Handler:        b.handleInfo,
		},
		{
			Name:        "stock-news",
			Description: "Search the latest news for a company or ticker.",
			Options: []Option{
				{Name: "name", Description: "Company or ticker name to search news for.", Required: true},
			},
			FailureMessage: "Could not fetch news. Please try again later.",
			Handler:        b.handleStockNews,
		},
		{
			Name:           "economic-news",
			Description:    "Show the latest US economic news.",
			FailureMessage: "Could not fetch economic news. Please try again later.",
			Handler:        b.handleEconomicNews,
		},
		{
			Name:        "calendar",
			Description: "Show major economic events for a date (default: today).",
			Options: []Option{
				{Name: "date", Description: "Date as YYYY-MM-DD or YYYYMMDD.", Required: false},
			},
			FailureMessage: "Could not fetch the economic calendar. The provider may be temporarily unavailable.",
			Handler:        b.handleCalendar,
		},
	}
}

func (b *Bot) handleAsk(ctx context.Context, args map[string]string, r Replier) error {
	if b.svc.LLM == nil {
		return r.Followup("The ask command is not configured on this bot.")
	}

	answer, err := b.svc.LLM.Complete(ctx, args["question"])
	if err != nil {
		return err
	}

	// Long completions are split into consecutive chunks, sent in order.
	for _, chunk := range chunkMessage(answer, maxMessageLen) {
		if err := r.Followup(chunk); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bot) handleHelp(_ context.Context, _ map[string]string, r Replier) error {
	return r.Respond(helpResponse(b.commands))
}

func (b *Bot) handlePrice(ctx context.Context, args map[string]string, r Replier) error {
	symbol := strings.ToUpper(args["symbol"])
	logger := logging.WithSymbol(b.logger, symbol)
	logger.Debug().Msg("Fetching quote")
	quote, err := b.svc.Market.Quote(ctx, symbol)
	if errors.Is(err, errors.ErrInsufficientData) {
		return r.Followup(fmt.Sprintf("Not enough data for '%s'. Check that the symbol is listed.", symbol))
	}
	if err != nil {
		return err
	}
	return r.FollowupEmbed(quoteEmbed(quote))
}

func (b *Bot) handleInfo(ctx context.Context, args map[string]string, r Replier) error {
	symbol := strings.ToUpper(args["symbol"])
	logger := logging.WithSymbol(b.logger, symbol)
	logger.Debug().Msg("Fetching profile")
	profile, err := b.svc.Market.Profile(ctx, symbol)
	if errors.Is(err, errors.ErrSymbolNotFound) {
		return r.Followup(fmt.Sprintf("No information found for '%s'.", symbol))
	}
	if err != nil {
		return err
	}
	return r.FollowupEmbed(profileEmbed(profile))
}

func (b *Bot) handleStockNews(ctx context.Context, args map[string]string, r Replier) error {
	name := args["name"]
	feedURL := fmt.Sprintf(b.cfg.StockQueryURL, url.QueryEscape(name))

	items, err := b.svc.News.Fetch(ctx, feedURL, maxNewsItems)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return r.Followup(fmt.Sprintf("No recent news found for '%s'.", name))
	}
	return r.FollowupEmbed(newsEmbed(fmt.Sprintf("Latest news for '%s'", name), colorGreen, items))
}

func (b *Bot) handleEconomicNews(ctx context.Context, _ map[string]string, r Replier) error {
	items, err := b.svc.News.Fetch(ctx, b.cfg.EconomicURL, maxNewsItems)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return r.Followup("No recent economic news found.")
	}
	return r.FollowupEmbed(newsEmbed("US Economic News", colorOrange, items))
}

func (b *Bot) handleCalendar(ctx context.Context, args map[string]string, r Replier) error {
	date := b.now()
	if raw := args["date"]; raw != "" {
		parsed, err := market.ParseDate(raw)
		if err != nil {
			return r.Followup("Invalid date format. Use `YYYY-MM-DD` or `YYYYMMDD`.")
		}
		date = parsed
	}

	events, err := b.svc.Market.Calendar(ctx, date)
	day := date.Format("2006-01-02")
	switch {
	case errors.Is(err, errors.ErrNoEvents):
		return r.Followup(fmt.Sprintf("No major economic events on %s.", day))
	case errors.Is(err, errors.ErrNoHighImpactEvents):
		return r.Followup(fmt.Sprintf("No high-importance events on %s.", day))
	case err != nil:
		return err
	}
	return r.FollowupEmbed(calendarEmbed(day, events))
}
