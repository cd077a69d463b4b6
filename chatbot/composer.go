package chatbot

import (
	"bytes"
	"log"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// Compose turns a backend reply into a renderable bot message and the
// new suggestion set. A reply without a structured payload becomes a
// plain text message with no cards; a nil suggestion return means the
// current buttons are kept.
func Compose(reply Reply) (Message, []string) {
	if reply.Processed == nil {
		return Message{
			Text:   reply.Response,
			HTML:   RenderMarkdown(reply.Response),
			Sender: SenderBot,
		}, nil
	}

	p := reply.Processed
	text := p.Text
	if text == "" {
		text = reply.Response
	}

	msg := Message{
		Text:             text,
		HTML:             RenderMarkdown(text),
		Sender:           SenderBot,
		DestinationCards: p.DestinationCards,
	}

	if p.SuggestionButtons == nil {
		return msg, nil
	}
	return msg, p.SuggestionButtons
}

// RenderMarkdown converts markdown to HTML, falling back to the raw
// text on renderer errors.
func RenderMarkdown(text string) string {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(text), &buf); err != nil {
		log.Printf("⚠️  Markdown render failed: %v", err)
		return text
	}
	return buf.String()
}
