package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"

	"github.com/olickqc/hardlinkcheck/pkg/config"
	"github.com/olickqc/hardlinkcheck/pkg/httputils"
)

const (
	maxEmbedsPerMessage = 10
	maxCharactersPerMsg = 6000

	// hardcoded limit of fields to avoid hammering the api
	maxTotalFields = 250
)

type DiscordMessage struct {
	Content interface{}    `json:"content"`
	Embeds  []DiscordEmbed `json:"embeds,omitempty"`
}

type DiscordEmbed struct {
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Color       int                  `json:"color"`
	Fields      []DiscordEmbedsField `json:"fields,omitempty"`
	Footer      DiscordEmbedsFooter  `json:"footer,omitempty"`
	Timestamp   time.Time            `json:"timestamp"`
}

type DiscordEmbedsFooter struct {
	Text string `json:"text"`
}

type DiscordEmbedsField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type EmbedColors int

const (
	LIGHT_BLUE EmbedColors = 0x58b9ff
	RED        EmbedColors = 0xed4245
	GREEN      EmbedColors = 0x57f287
	GRAY       EmbedColors = 0x99aab5
)

type discordSender struct {
	log    *logrus.Entry
	config config.NotificationsConfig

	webhookURL string
	httpClient *http.Client
}

func (d *discordSender) Name() string {
	return "discord"
}

func NewDiscordSender(log *logrus.Entry, config config.NotificationsConfig) Sender {
	// wait makes discord confirm delivery instead of returning 204
	// immediately; a malformed webhook URL surfaces at send time
	webhookURL := config.Service.Discord
	if webhookURL != "" {
		if u, err := httputils.URLWithQuery(webhookURL, url.Values{"wait": []string{"true"}}); err == nil {
			webhookURL = u
		}
	}

	return &discordSender{
		log:        log.WithField("sender", "discord"),
		config:     config,
		webhookURL: webhookURL,
		httpClient: httputils.NewRetryableHttpClient(30*time.Second, ratelimit.New(1, ratelimit.WithoutSlack)),
	}
}

// Calculate the actual JSON size of an embed
func (d *discordSender) calculateEmbedSize(embed DiscordEmbed) (int, error) {
	jsonData, err := json.Marshal(embed)
	if err != nil {
		return 0, err
	}
	return len(jsonData), nil
}

func (d *discordSender) Send(title string, description string, runTime time.Duration, fields []Field, dryRun bool) error {
	var (
		allEmbeds   []DiscordEmbed
		totalFields = len(fields)
		timestamp   = time.Now()

		batches      [][]DiscordEmbed
		currentBatch []DiscordEmbed
		currentChars int
	)

	// Add (Dry Run) to title if enabled
	if dryRun {
		title = title + " (Dry Run)"
	}

	// if the config setting "skip_empty_run" is set to true, and there are no fields,
	// skip sending the message entirely.
	if totalFields == 0 && d.config.SkipEmptyRun {
		return nil
	}

	color := int(RED)
	if totalFields == 0 {
		color = int(GREEN)
	}
	if dryRun {
		color = int(GRAY)
	}

	rt := runTime.Truncate(time.Millisecond).String()

	// only send a summary embed if no fields are present, there are more fields than allowed,
	// or the config setting "detailed" is set to false
	if totalFields == 0 || totalFields > maxTotalFields || !d.config.Detailed {
		allEmbeds = append(allEmbeds, DiscordEmbed{
			Title:       title,
			Description: description,
			Color:       color,
			Footer: DiscordEmbedsFooter{
				Text: d.buildFooter(0, totalFields, rt),
			},
			Timestamp: timestamp,
		})
	} else {
		// Create one embed per file using the existing field data
		for i, field := range fields {
			embed := DiscordEmbed{
				Title:  title,
				Color:  color,
				Fields: d.parseFieldValueToInlineFields(field.Value),
				Footer: DiscordEmbedsFooter{
					Text: d.buildFooter(i+1, totalFields, rt),
				},
				Timestamp: timestamp,
			}

			// Only add description if field name is not empty
			if field.Name != "" {
				embed.Description = fmt.Sprintf("**%s**", field.Name)
			}

			allEmbeds = append(allEmbeds, embed)
		}
		allEmbeds = append(allEmbeds, DiscordEmbed{
			Title:       fmt.Sprintf("%s - Summary", title),
			Description: description,
			Color:       color,
			Footer: DiscordEmbedsFooter{
				Text: d.buildFooter(0, 0, rt),
			},
			Timestamp: timestamp,
		})
	}

	// Batch embeds for messages (max 10 embeds per message)
	flush := func() {
		if len(currentBatch) == 0 {
			return
		}
		batches = append(batches, currentBatch)
		currentBatch = nil
		currentChars = 0
	}

	for _, e := range allEmbeds {
		eSize, err := d.calculateEmbedSize(e)
		if err != nil {
			return errors.Wrap(err, "calculate embed size for batching")
		}

		// If adding this embed breaks either the embed-count or char limit, flush first
		if len(currentBatch) >= maxEmbedsPerMessage || currentChars+eSize > maxCharactersPerMsg {
			flush()
		}

		currentBatch = append(currentBatch, e)
		currentChars += eSize
	}
	flush()

	totalMsgs := len(batches)

	for i, batch := range batches {
		msg := DiscordMessage{
			Content: nil,
			Embeds:  batch,
		}

		jsonData, err := json.Marshal(msg)
		if err != nil {
			return errors.Wrap(err, "marshal json request for a message chunk")
		}

		if err := d.sendRequest(jsonData); err != nil {
			return errors.Wrap(err, "send a message chunk to discord")
		}

		d.log.Debugf("Sent Discord message %d/%d (%d embeds, %d chars).",
			i+1, totalMsgs, len(batch), len(jsonData))
	}

	d.log.Debugf("All %d Discord messages sent successfully.", totalMsgs)
	return nil
}

func (d *discordSender) CanSend() bool {
	return d.config.Service.Discord != ""
}

func (d *discordSender) sendRequest(jsonData []byte) error {
	headers := map[string]string{"Content-Type": "application/json"}

	err := httputils.MakeAPIRequest(context.Background(), d.httpClient, http.MethodPost, d.webhookURL,
		bytes.NewReader(jsonData), headers, nil)
	if err != nil {
		return errors.Wrap(err, "webhook request")
	}

	d.log.Debug("Notification successfully sent to discord")
	return nil
}

// BuildField constructs the notification field for a non-hardlinked file.
func (d *discordSender) BuildField(file config.File) Field {
	inlineFields := []DiscordEmbedsField{
		{
			Name:   "Link Count",
			Value:  fmt.Sprintf("%d", file.LinkCount),
			Inline: true,
		},
		{
			Name:   "Inode",
			Value:  fmt.Sprintf("%d", file.Inode),
			Inline: true,
		},
		{
			Name:   "Modified",
			Value:  file.ModifiedAt.Format("2006-01-02 15:04:05"),
			Inline: true,
		},
		{
			Name:   "Path",
			Value:  file.Path,
			Inline: false,
		},
	}

	// Serialize to JSON to store in the field value
	jsonData, _ := json.Marshal(inlineFields)

	return Field{
		Name:  fmt.Sprintf("%s (%s)", file.Name, humanize.IBytes(file.SizeBytes)),
		Value: string(jsonData),
	}
}

// parseFieldValueToInlineFields restores the inline fields stored as JSON
// in a field value.
func (d *discordSender) parseFieldValueToInlineFields(value string) []DiscordEmbedsField {
	var fields []DiscordEmbedsField

	if err := json.Unmarshal([]byte(value), &fields); err != nil {
		// Log error but return empty fields rather than fallback
		d.log.WithError(err).Error("Failed to parse field value as JSON")
		return []DiscordEmbedsField{}
	}

	return fields
}

func (d *discordSender) buildFooter(progress int, totalFields int, runTime string) string {
	if totalFields == 0 {
		return fmt.Sprintf("Started: %s ago", runTime)
	}

	return fmt.Sprintf("Progress: %d/%d | Started: %s ago", progress, totalFields, runTime)
}
