package bot

import (
	"strings"
	"testing"
	"unicode/utf8"

	"finbot/internal/models"
)

func TestChunkMessageBoundaries(t *testing.T) {
	text := strings.Repeat("a", 4500)
	chunks := chunkMessage(text, maxMessageLen)

	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	for i, want := range []int{2000, 2000, 500} {
		if got := utf8.RuneCountInString(chunks[i]); got != want {
			t.Errorf("chunk %d: expected %d runes, got %d", i, want, got)
		}
	}
	if strings.Join(chunks, "") != text {
		t.Error("concatenated chunks differ from input")
	}
}

func TestChunkMessageEmpty(t *testing.T) {
	if chunks := chunkMessage("", maxMessageLen); chunks != nil {
		t.Errorf("expected no chunks for empty input, got %v", chunks)
	}
}

func TestPriceAccentZeroChange(t *testing.T) {
	color, glyph := priceAccent(0)
	if glyph != "▲" || color != colorRed {
		t.Errorf("zero change must take the upward branch, got %q %#x", glyph, color)
	}
}

func TestQuoteEmbedNegativeChange(t *testing.T) {
	embed := quoteEmbed(models.QuoteSnapshot{
		Symbol:        "AAPL",
		LongName:      "Apple Inc.",
		CurrentPrice:  148.50,
		PreviousClose: 150.00,
		DayHigh:       151.20,
		DayLow:        147.80,
	})

	if embed.Color != colorBlue {
		t.Errorf("expected info color for a drop, got %#x", embed.Color)
	}
	change := embed.Fields[1].Value
	if !strings.Contains(change, "▼") {
		t.Errorf("expected down glyph in %q", change)
	}
	if !strings.Contains(change, "-1.50") || !strings.Contains(change, "-1.00%") {
		t.Errorf("expected -1.50 and -1.00%% in %q", change)
	}
	if got := embed.Fields[0].Value; !strings.Contains(got, "148.50") {
		t.Errorf("expected current price 148.50 in %q", got)
	}
}

func TestFormatNumberGrouping(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{148.5, "148.50"},
		{1234.5, "1,234.50"},
		{1234567.891, "1,234,567.89"},
		{-9876543.21, "-9,876,543.21"},
	}
	for _, tc := range cases {
		if got := formatNumber(tc.in); got != tc.want {
			t.Errorf("formatNumber(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestProfileEmbedMissingFields(t *testing.T) {
	zero := 0.0
	pe := 28.91
	embed := profileEmbed(models.ProfileSnapshot{
		LongName:   "Apple Inc.",
		Symbol:     "AAPL",
		Volume:     nil,
		TrailingPE: &pe,
		Beta:       &zero,
	})

	byName := map[string]string{}
	for _, f := range embed.Fields {
		byName[f.Name] = f.Value
	}
	if byName["📊 Volume"] != "N/A" {
		t.Errorf("nil volume should render N/A, got %q", byName["📊 Volume"])
	}
	if byName["📈 Beta"] != "N/A" {
		t.Errorf("zero beta should render N/A, got %q", byName["📈 Beta"])
	}
	if byName["⚖️ P/E (TTM)"] != "28.91" {
		t.Errorf("P/E should render with 2 decimals, got %q", byName["⚖️ P/E (TTM)"])
	}
	if byName["↕️ 52-Week Range"] != "N/A" {
		t.Errorf("missing range should render N/A, got %q", byName["↕️ 52-Week Range"])
	}
}

func TestNewsEmbedTruncatesToFive(t *testing.T) {
	items := make([]models.NewsItem, 8)
	for i := range items {
		items[i] = models.NewsItem{Title: "headline", Link: "https://example.com", Published: "raw date"}
	}
	embed := newsEmbed("test", colorGreen, items)
	if len(embed.Fields) != maxNewsItems {
		t.Errorf("expected %d fields, got %d", maxNewsItems, len(embed.Fields))
	}
	if !strings.Contains(embed.Fields[0].Value, "raw date") {
		t.Errorf("unparsed date should keep the raw string, got %q", embed.Fields[0].Value)
	}
}

func TestZoneFlag(t *testing.T) {
	if got := zoneFlag("US"); got != ":flag_us:" {
		t.Errorf("zoneFlag(US) = %q", got)
	}
	if got := zoneFlag("euro area"); got != "EURO AREA" {
		t.Errorf("zoneFlag(euro area) = %q", got)
	}
}
