// © 2026 Ryan Chen. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package slack posts messages to a Slack channel through the Web API.
//
// Besides the plain chat.postMessage wrapper it carries the Block Kit
// renderers for the newsroom surfaces: new-record notifications, byline
// summaries and directory search results.
package slack

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/fatcat2/tippecanews/internal/bylines"
	"github.com/fatcat2/tippecanews/internal/directory"
	"github.com/fatcat2/tippecanews/internal/news"
	"github.com/fatcat2/tippecanews/internal/request"
)

// Text is a Block Kit text object.
type Text struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Accessory is a Block Kit block accessory. Only buttons are used here.
type Accessory struct {
	Type     string `json:"type"`
	Text     *Text  `json:"text,omitempty"`
	Value    string `json:"value,omitempty"`
	ActionID string `json:"action_id,omitempty"`
}

// Block is a Block Kit layout block.
type Block struct {
	Type      string     `json:"type"`
	Text      *Text      `json:"text,omitempty"`
	Accessory *Accessory `json:"accessory,omitempty"`
	Elements  []Text     `json:"elements,omitempty"`
}

// Message is a chat.postMessage payload. Text doubles as the notification
// fallback when Blocks are present.
type Message struct {
	Channel string  `json:"channel"`
	Text    string  `json:"text"`
	Blocks  []Block `json:"blocks,omitempty"`
}

// Client posts to the Slack Web API.
type Client struct {
	// Token is the bot token used as a bearer credential.
	Token string
	// Channel is the channel ID or name messages are posted to.
	Channel string
	// HTTPClient is used for API calls. Defaults to request.DefaultClient.
	HTTPClient *http.Client

	// apiURL overrides the API root in tests.
	apiURL string
}

func (c *Client) apiRoot() string {
	if c.apiURL != "" {
		return c.apiURL
	}
	return "https://slack.com/api"
}

// apiResponse is the envelope every Web API method returns.
type apiResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// Send posts msg to the configured channel. Msg.Channel is filled in from
// the client if unset.
func (c *Client) Send(ctx context.Context, msg Message) error {
	if msg.Channel == "" {
		msg.Channel = c.Channel
	}
	scrubber := strings.NewReplacer(c.Token, "[EXPUNGED]")
	resp, err := request.MakeJSON[apiResponse](ctx, request.Params{
		Method: http.MethodPost,
		URL:    c.apiRoot() + "/chat.postMessage",
		Headers: map[string]string{
			"Authorization": "Bearer " + c.Token,
		},
		Body:       msg,
		HTTPClient: c.HTTPClient,
		Scrubber:   scrubber,
	})
	if err != nil {
		return err
	}
	if !resp.OK {
		return fmt.Errorf("chat.postMessage: %s", resp.Error)
	}
	return nil
}

// NotifyRecord posts a notification for a newly admitted record.
//
// Press releases link the title and carry a "Take Me!" button; everything
// else is plain text. The context line prefers the publication timestamp
// and falls back to the record's day label.
func (c *Client) NotifyRecord(ctx context.Context, rec news.Record) error {
	link := rec.Link
	if !strings.Contains(link, "http") {
		link = "http://" + link
	}

	var posted string
	switch {
	case rec.PublishedAt != nil:
		posted = rec.PublishedAt.Format("(2006/01/02)")
	default:
		posted = rec.Day
	}

	section := Block{
		Type: "section",
		Text: &Text{Type: "mrkdwn", Text: rec.Title},
	}
	if rec.PressRelease {
		section.Text = &Text{Type: "mrkdwn", Text: fmt.Sprintf("<%s|%s>", link, rec.Title)}
		section.Accessory = &Accessory{
			Type:     "button",
			Text:     &Text{Type: "plain_text", Text: "Take Me!"},
			Value:    "take",
			ActionID: "button",
		}
	}

	return c.Send(ctx, Message{
		Text: rec.Title,
		Blocks: []Block{
			section,
			{
				Type:     "context",
				Elements: []Text{{Type: "mrkdwn", Text: "Posted on " + posted}},
			},
		},
	})
}

// BylineBlocks renders a byline summary: a header with the reporter count
// and window, then one section per reporter with a bulleted article list.
func BylineBlocks(sum *bylines.Summary, start, end string) []Block {
	blocks := []Block{
		{
			Type: "section",
			Text: &Text{
				Type: "mrkdwn",
				Text: fmt.Sprintf("%d reporters wrote articles between %s and %s", len(sum.Reporters), start, end),
			},
		},
		{Type: "divider"},
	}
	for _, reporter := range sum.Reporters {
		b := sum.ByAuthor[reporter]
		var sb strings.Builder
		fmt.Fprintf(&sb, "%s: %d \n", reporter, b.Count)
		for _, article := range b.Articles {
			fmt.Fprintf(&sb, "* %s\n", article)
		}
		blocks = append(blocks, Block{
			Type: "section",
			Text: &Text{Type: "mrkdwn", Text: sb.String()},
		})
	}
	return blocks
}

// DirectoryBlocks renders directory search results for a queried name.
func DirectoryBlocks(name string, people []directory.Person) []Block {
	noun := "result"
	if len(people) != 1 {
		noun = "results"
	}
	blocks := []Block{
		{
			Type: "section",
			Text: &Text{
				Type: "mrkdwn",
				Text: fmt.Sprintf("Found *%d* %s for: %q", len(people), noun, name),
			},
		},
		{Type: "divider"},
	}
	for _, p := range people {
		blocks = append(blocks, Block{
			Type: "section",
			Text: &Text{
				Type: "mrkdwn",
				Text: fmt.Sprintf("%s \nemail: %s\ncampus: %s\ncollege: %s", p.Name, p.Email, p.Campus, p.College),
			},
		})
	}
	return blocks
}
