package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/evenlyhq/receiptlens/internal/engine"
)

const (
	embedColor = 0x00ff00
	footerText = "Presented by Evenly"

	defaultThumbnail = "https://encrypted-tbn0.gstatic.com/images?q=tbn:ANd9GcRT3Df4n8SQ0JiB8P_Q5GiB16Z-TzJLT_vYPw&s"
	lotusThumbnail   = "https://raw.githubusercontent.com/likweitan/discord-bot-a/main/assets/lotus.jpg"
)

// buildReceiptEmbed renders a parsed record as a Discord embed: totals and
// date/time up front, one field per line item.
func buildReceiptEmbed(rec engine.ReceiptRecord) *discordgo.MessageEmbed {
	fields := []*discordgo.MessageEmbedField{
		{Name: "Total", Value: "RM" + rec.Totals.Total.StringFixed(2), Inline: true},
		{Name: "Date", Value: rec.Date, Inline: true},
		{Name: "Time", Value: rec.Time, Inline: true},
	}
	for _, it := range rec.Items {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  it.Name,
			Value: fmt.Sprintf("Quantity: %d\n%s", it.Quantity, priceLine(it)),
		})
	}

	return &discordgo.MessageEmbed{
		Title:       "Receipt Details",
		Description: "Merchant: " + rec.Merchant,
		Thumbnail:   &discordgo.MessageEmbedThumbnail{URL: thumbnailFor(rec.Merchant)},
		Fields:      fields,
		Color:       embedColor,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Footer:      &discordgo.MessageEmbedFooter{Text: footerText},
	}
}

func priceLine(it engine.LineItem) string {
	if !it.PriceKnown {
		return "Price: " + it.PriceLabel()
	}
	return "Price: RM" + it.PriceLabel()
}

func thumbnailFor(merchant string) string {
	if strings.Contains(strings.ToLower(merchant), "lotus") {
		return lotusThumbnail
	}
	return defaultThumbnail
}
