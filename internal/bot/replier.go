package bot

import "github.com/bwmarrin/discordgo"

// Replier abstracts the platform's reply channel for one command invocation.
// The lifecycle is either Respond once, or Defer followed by one or more
// followups (only /ask sends more than one).
type Replier interface {
	Defer() error
	Respond(data *discordgo.InteractionResponseData) error
	Followup(content string) error
	FollowupEmbed(embed *discordgo.MessageEmbed) error
}

// interactionReplier replies through a live Discord interaction.
type interactionReplier struct {
	s *discordgo.Session
	i *discordgo.InteractionCreate
}

func (r *interactionReplier) Defer() error {
	return r.s.InteractionRespond(r.i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
}

func (r *interactionReplier) Respond(data *discordgo.InteractionResponseData) error {
	return r.s.InteractionRespond(r.i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
}

func (r *interactionReplier) Followup(content string) error {
	_, err := r.s.FollowupMessageCreate(r.i.Interaction, true, &discordgo.WebhookParams{
		Content: content,
	})
	return err
}

func (r *interactionReplier) FollowupEmbed(embed *discordgo.MessageEmbed) error {
	_, err := r.s.FollowupMessageCreate(r.i.Interaction, true, &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{embed},
	})
	return err
}

func plainResponse(msg string) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{Content: msg}
}
