package bot

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"finbot/internal/models"
)

// Discord caps message content at 2000 characters and embeds at 25 fields.
const (
	maxMessageLen  = 2000
	maxEmbedFields = 25
)

// Embed accent colors (discord.py palette, kept from the source bot).
const (
	colorRed    = 0xE74C3C // price up
	colorBlue   = 0x3498DB // price down
	colorGreen  = 0x2ECC71
	colorOrange = 0xE67E22
	colorPurple = 0x9B59B6
	colorGold   = 0xC27C0E
	colorGrey   = 0x979C9F
)

// chunkMessage splits s into consecutive chunks of at most size runes,
// preserving order. Concatenating the chunks reproduces s exactly.
func chunkMessage(s string, size int) []string {
	if s == "" {
		return nil
	}
	runes := []rune(s)
	chunks := make([]string, 0, len(runes)/size+1)
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}

// priceAccent selects the accent color and direction glyph for a price
// change. Zero change takes the upward branch.
func priceAccent(change float64) (int, string) {
	if change >= 0 {
		return colorRed, "▲"
	}
	return colorBlue, "▼"
}

// formatNumber renders f with comma-grouped thousands and two decimals.
func formatNumber(f float64) string {
	negative := f < 0
	if negative {
		f = -f
	}
	s := fmt.Sprintf("%.2f", f)
	dot := strings.IndexByte(s, '.')
	intPart, decPart := s[:dot], s[dot:]

	var grouped strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(digit)
	}

	out := grouped.String() + decPart
	if negative {
		out = "-" + out
	}
	return out
}

// formatCount renders f as a comma-grouped integer.
func formatCount(f float64) string {
	s := formatNumber(f)
	return strings.TrimSuffix(s, s[strings.IndexByte(s, '.'):])
}

// naFloat renders a sparse numeric field, treating nil and zero as missing.
func naFloat(v *float64, format string) string {
	if v == nil || *v == 0 {
		return "N/A"
	}
	return fmt.Sprintf(format, *v)
}

// naCount renders a sparse count field with thousands grouping.
func naCount(v *float64) string {
	if v == nil || *v == 0 {
		return "N/A"
	}
	return formatCount(*v)
}

func quoteEmbed(q models.QuoteSnapshot) *discordgo.MessageEmbed {
	change := q.Change()
	color, glyph := priceAccent(change)

	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("**%s (%s)** Price", q.LongName, q.Symbol),
		Color: color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Current Price", Value: fmt.Sprintf("**`%s`**", formatNumber(q.CurrentPrice))},
			{Name: "Change", Value: fmt.Sprintf("%s `%s` (`%.2f%%`)", glyph, formatNumber(change), q.ChangePercent())},
			{Name: "Day High", Value: fmt.Sprintf("`%s`", formatNumber(q.DayHigh)), Inline: true},
			{Name: "Day Low", Value: fmt.Sprintf("`%s`", formatNumber(q.DayLow)), Inline: true},
		},
	}
}

func profileEmbed(p models.ProfileSnapshot) *discordgo.MessageEmbed {
	week52 := "N/A"
	if p.Week52Low != nil || p.Week52High != nil {
		week52 = fmt.Sprintf("%s - %s", naFloat(p.Week52Low, "%.2f"), naFloat(p.Week52High, "%.2f"))
	}

	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("**%s (%s)** Key Statistics", p.LongName, p.Symbol),
		Color: colorGold,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "📊 Volume", Value: naCount(p.Volume), Inline: true},
			{Name: "↕️ 52-Week Range", Value: week52},
			{Name: "⚖️ P/E (TTM)", Value: naFloat(p.TrailingPE, "%.2f"), Inline: true},
			{Name: "💰 Dividend Yield", Value: naFloat(p.DividendYield, "%.2f%%"), Inline: true},
			{Name: "📈 Beta", Value: naFloat(p.Beta, "%.2f"), Inline: true},
		},
	}
}

func newsEmbed(title string, color int, items []models.NewsItem) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{Title: title, Color: color}
	for i, item := range items {
		if i >= maxNewsItems {
			break
		}
		date := item.Published
		if item.PublishedAt != nil {
			date = item.PublishedAt.Format("2006-01-02 15:04")
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  item.Title,
			Value: fmt.Sprintf("[Link](%s) - %s", item.Link, date),
		})
	}
	return embed
}

func calendarEmbed(day string, events []models.CalendarEvent) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Major Economic Events - %s", day),
		Color: colorPurple,
	}
	for i, ev := range events {
		if i >= maxEmbedFields {
			break
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: fmt.Sprintf("%s %s - %s", zoneFlag(ev.Zone), ev.Time.Format("15:04"), ev.Event),
			Value: fmt.Sprintf("Actual: %s | Forecast: %s | Previous: %s",
				naValue(ev.Actual), naValue(ev.Forecast), naValue(ev.Previous)),
		})
	}
	return embed
}

// zoneFlag renders a region indicator for a calendar event. Two-letter zones
// become a Discord flag emoji shortcode; anything else falls back to the
// upper-cased code.
func zoneFlag(zone string) string {
	if len(zone) == 2 {
		return fmt.Sprintf(":flag_%s:", strings.ToLower(zone))
	}
	return strings.ToUpper(zone)
}

// naValue renders an optional calendar figure; absent values show N/A but,
// unlike profile fields, a true zero is shown.
func naValue(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", *v)
}

func helpResponse(commands []*Command) *discordgo.InteractionResponseData {
	embed := &discordgo.MessageEmbed{
		Title:       "Command Help",
		Description: "All slash commands this bot supports.",
		Color:       colorGrey,
	}
	for _, cmd := range commands {
		name := "/" + cmd.Name
		if summary := optionSummary(cmd); summary != "" {
			name += " " + summary
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  name,
			Value: cmd.Description,
		})
	}
	return &discordgo.InteractionResponseData{Embeds: []*discordgo.MessageEmbed{embed}}
}
