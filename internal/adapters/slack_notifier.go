package adapters

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/slack-go/slack"
)

// Slack の section ブロックに入れられるテキストの上限です。
const slackSectionLimit = 3000

// Notifier はレポートを外部のチャットへ通知します。
type Notifier interface {
	Notify(ctx context.Context, title, markdown string) error
}

// SlackNotifier は Incoming Webhook を使用して Slack に投稿します。
type SlackNotifier struct {
	webhookURL string
	httpClient *http.Client
}

// NewSlackNotifier は SlackNotifier の新しいインスタンスを作成します。
func NewSlackNotifier(webhookURL string) *SlackNotifier {
	return &SlackNotifier{
		webhookURL: webhookURL,
		httpClient: &http.Client{
			// ネットワークのハングアップを防ぐため、10秒のタイムアウトを設定
			Timeout: 10 * time.Second,
		},
	}
}

// Notify は header と section の Block Kit メッセージを投稿します。
func (c *SlackNotifier) Notify(ctx context.Context, title, markdown string) error {
	headerBlock := slack.NewHeaderBlock(
		slack.NewTextBlockObject(slack.PlainTextType, title, true, false),
	)
	sectionBlock := slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType, truncateRunes(markdown, slackSectionLimit), false, false),
		nil,
		nil,
	)

	msg := &slack.WebhookMessage{
		Text:   title,
		Blocks: &slack.Blocks{BlockSet: []slack.Block{headerBlock, sectionBlock}},
	}
	if err := slack.PostWebhookCustomHTTPContext(ctx, c.webhookURL, c.httpClient, msg); err != nil {
		return fmt.Errorf("failed to post to Slack: %w", err)
	}
	return nil
}

func truncateRunes(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-1]) + "…"
}
