package bot

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/evenlyhq/receiptlens/constants"
	"github.com/evenlyhq/receiptlens/internal/pipeline"
)

const scanTimeout = 2 * time.Minute

// Bot wires a Discord session to the scan pipeline: image attachments go
// in, receipt embeds come back.
type Bot struct {
	session     *discordgo.Session
	pipeline    *pipeline.Pipeline
	client      *http.Client
	downloadDir string
	logger      *slog.Logger
}

func New(token string, p *pipeline.Pipeline, downloadDir string, logger *slog.Logger) (*Bot, error) {
	if logger == nil {
		logger = slog.Default()
	}
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent

	b := &Bot{
		session:     session,
		pipeline:    p,
		client:      &http.Client{Timeout: 30 * time.Second},
		downloadDir: downloadDir,
		logger:      logger,
	}
	session.AddHandler(b.onReady)
	session.AddHandler(b.onMessageCreate)
	return b, nil
}

func (b *Bot) Open() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open gateway: %w", err)
	}
	return nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	b.logger.Info("logged in", "user", r.User.Username)
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	for _, att := range m.Attachments {
		if !isImageAttachment(att) {
			continue
		}
		go b.handleAttachment(s, m, att)
	}
}

func isImageAttachment(att *discordgo.MessageAttachment) bool {
	if att.ContentType != "" {
		return strings.HasPrefix(att.ContentType, "image/")
	}
	return constants.IsImageExt(constants.NormalizeExt(filepath.Ext(att.Filename)))
}

func (b *Bot) handleAttachment(s *discordgo.Session, m *discordgo.MessageCreate, att *discordgo.MessageAttachment) {
	ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
	defer cancel()

	path, err := downloadAttachment(ctx, b.client, att.URL, b.downloadDir)
	if err != nil {
		b.replyError(s, m, fmt.Errorf("download attachment: %w", err))
		return
	}
	defer func() {
		if err := os.Remove(path); err != nil {
			b.logger.Warn("remove download", "path", path, "error", err)
		}
	}()

	res, err := b.pipeline.Run(ctx, path, att.Filename)
	if err != nil {
		b.replyError(s, m, err)
		return
	}

	embed := buildReceiptEmbed(res.Record)
	if _, err := s.ChannelMessageSendEmbedReply(m.ChannelID, embed, m.Reference()); err != nil {
		b.logger.Error("send embed", "channel", m.ChannelID, "error", err)
	}
}

func (b *Bot) replyError(s *discordgo.Session, m *discordgo.MessageCreate, err error) {
	b.logger.Error("process attachment", "channel", m.ChannelID, "error", err)
	const msg = "There was an error processing the image."
	if _, serr := s.ChannelMessageSendReply(m.ChannelID, msg, m.Reference()); serr != nil {
		b.logger.Error("send reply", "channel", m.ChannelID, "error", serr)
	}
}
