package discord

import (
	"github.com/bwmarrin/discordgo"

	"github.com/solimanzein/storefront-bot/internal/render"
)

// embedColor is Discord's dark message background, so embeds blend in.
const embedColor = 0x2b2d31

func buildEmbeds(embeds []render.Embed) []*discordgo.MessageEmbed {
	out := make([]*discordgo.MessageEmbed, 0, len(embeds))
	for _, embed := range embeds {
		fields := make([]*discordgo.MessageEmbedField, 0, len(embed.Fields))
		for _, field := range embed.Fields {
			fields = append(fields, &discordgo.MessageEmbedField{
				Name:   field.Name,
				Value:  field.Value,
				Inline: field.Inline,
			})
		}
		out = append(out, &discordgo.MessageEmbed{
			Title:       embed.Title,
			Description: embed.Description,
			Fields:      fields,
			Color:       embedColor,
		})
	}
	return out
}

func buildComponents(rows []render.Row) []discordgo.MessageComponent {
	out := make([]discordgo.MessageComponent, 0, len(rows))
	for _, row := range rows {
		if row.Select != nil {
			out = append(out, discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{buildSelect(row.Select)},
			})
			continue
		}
		buttons := make([]discordgo.MessageComponent, 0, len(row.Buttons))
		for _, button := range row.Buttons {
			buttons = append(buttons, discordgo.Button{
				CustomID: button.ActionID,
				Label:    button.Label,
				Style:    buttonStyle(button.Style),
			})
		}
		out = append(out, discordgo.ActionsRow{Components: buttons})
	}
	return out
}

func buildSelect(menu *render.SelectMenu) discordgo.SelectMenu {
	options := make([]discordgo.SelectMenuOption, 0, len(menu.Options))
	for _, option := range menu.Options {
		options = append(options, discordgo.SelectMenuOption{
			Label:       option.Label,
			Value:       option.Value,
			Description: option.Description,
		})
	}
	return discordgo.SelectMenu{
		MenuType:    discordgo.StringSelectMenu,
		CustomID:    menu.ActionID,
		Placeholder: menu.Placeholder,
		MaxValues:   menu.MaxValues,
		Options:     options,
	}
}

func buttonStyle(style render.ButtonStyle) discordgo.ButtonStyle {
	switch style {
	case render.ButtonDanger:
		return discordgo.DangerButton
	case render.ButtonSuccess:
		return discordgo.SuccessButton
	}
	return discordgo.SecondaryButton
}
