package discord

import (
	"time"

	"github.com/gabapcia/solrelay/internal/notify"
)

// embedField is one name/value pair inside a Discord embed.
type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// embed is the subset of Discord's embed object the relay produces.
type embed struct {
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color"`
	Fields      []embedField `json:"fields,omitempty"`
	Timestamp   string       `json:"timestamp"`
}

// payload is the body of a webhook execution request.
type payload struct {
	Embeds []embed `json:"embeds"`
}

// webhookBody converts a notification message into a single-embed webhook
// payload.
func webhookBody(msg notify.Message) payload {
	fields := make([]embedField, 0, len(msg.Fields))
	for _, f := range msg.Fields {
		fields = append(fields, embedField{
			Name:   f.Name,
			Value:  f.Value,
			Inline: f.Inline,
		})
	}

	return payload{
		Embeds: []embed{
			{
				Title:       msg.Title,
				Description: msg.Description,
				Color:       msg.Color,
				Fields:      fields,
				Timestamp:   time.Now().UTC().Format(time.RFC3339),
			},
		},
	}
}
