package bot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"

	"linktracker/internal/service"
	"linktracker/internal/store"
	"linktracker/internal/types"
)

const (
	qrSize        = 256
	maxListedLink = 20
)

var ErrUsage = errors.New("usage: /new <url> <title>")

type TelegramBot struct {
	tgBot     *tele.Bot
	store     *store.Store
	shortener *service.Shortener
	baseURL   string
}

func NewTelegramBot(tgToken, baseURL string, s *store.Store, shortener *service.Shortener) (*TelegramBot, error) {
	pref := tele.Settings{
		Token:  tgToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	bot, err := tele.NewBot(pref)
	if err != nil {
		slog.Error("failed to initialize telegram bot", "error", err)
		return nil, err
	}

	return &TelegramBot{
		tgBot:     bot,
		store:     s,
		shortener: shortener,
		baseURL:   baseURL,
	}, nil
}

func (b *TelegramBot) Start(ctx context.Context) error {
	slog.Info("Telegram bot started", "bot_username", b.tgBot.Me.Username)

	b.tgBot.Handle("/start", b.handleStart)
	b.tgBot.Handle("/new", b.handleNew)
	b.tgBot.Handle("/links", b.handleLinks)
	b.tgBot.Handle("/stats", b.handleStats)

	go func() {
		<-ctx.Done()
		slog.Info("Telegram bot shutting down")
		b.tgBot.Stop()
	}()

	b.tgBot.Start()
	return nil
}

func (b *TelegramBot) handleStart(c tele.Context) error {
	slog.Debug("command /start received", "user_id", c.Sender().ID)
	return c.Send(helpText)
}

func (b *TelegramBot) handleNew(c tele.Context) error {
	req, err := parseNewCommand(c.Message().Payload)
	if err != nil {
		return c.Send(ErrUsage.Error())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	link, err := b.shortener.CreateLink(ctx, req)
	if err != nil {
		slog.Warn("failed to create link from bot", "user_id", c.Sender().ID, "error", err)
		return c.Send(createErrorText(err))
	}

	trackingURL := service.TrackingURL(b.baseURL, link.TrackingCode)
	png, err := service.TrackingQR(trackingURL, qrSize)
	if err != nil {
		slog.Warn("failed to render qr code", "error", err)
		return c.Send("Your tracking link:\n" + trackingURL)
	}
	photo := &tele.Photo{
		File:    tele.FromReader(bytes.NewReader(png)),
		Caption: "Your tracking link:\n" + trackingURL,
	}
	return c.Send(photo)
}

func (b *TelegramBot) handleLinks(c tele.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	links, err := b.store.Links(ctx)
	if err != nil {
		slog.Error("failed to list links", "error", err)
		return c.Send("Could not load links, please try again later.")
	}
	return c.Send(formatLinks(links, b.baseURL))
}

func (b *TelegramBot) handleStats(c tele.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	dash, err := b.store.Dashboard(ctx)
	if err != nil {
		slog.Error("failed to compute dashboard", "error", err)
		return c.Send("Could not load statistics, please try again later.")
	}
	return c.Send(formatStats(dash))
}

const helpText = `Hi! I create trackable short links.
/new <url> <title> - create a link
/links - list your links
/stats - click statistics`

// parseNewCommand splits "/new" arguments into the URL and a free-form title.
func parseNewCommand(payload string) (types.CreateLinkRequest, error) {
	fields := strings.Fields(payload)
	if len(fields) < 2 {
		return types.CreateLinkRequest{}, ErrUsage
	}
	return types.CreateLinkRequest{
		OriginalURL: fields[0],
		Title:       strings.Join(fields[1:], " "),
	}, nil
}

func createErrorText(err error) string {
	switch {
	case errors.Is(err, service.ErrMissingFields), errors.Is(err, service.ErrInvalidURL):
		return "That link is not valid."
	default:
		return "Could not create the link, please try again."
	}
}

func formatLinks(links []types.Link, baseURL string) string {
	if len(links) == 0 {
		return "No links yet. Create one with /new."
	}

	var sb strings.Builder
	for i, l := range links {
		if i == maxListedLink {
			fmt.Fprintf(&sb, "...and %d more", len(links)-maxListedLink)
			break
		}
		fmt.Fprintf(&sb, "%s - %s (%d clicks)\n", l.Title, service.TrackingURL(baseURL, l.TrackingCode), l.ClickCount)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func formatStats(s types.DashboardStats) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Links: %d\nClicks: %d\nUnique visitors: %d", s.TotalLinks, s.TotalClicks, s.UniqueVisitors)
	if len(s.TopCountries) > 0 {
		sb.WriteString("\nTop countries:")
		for _, c := range s.TopCountries {
			fmt.Fprintf(&sb, "\n  %s: %d", c.Country, c.Count)
		}
	}
	return sb.String()
}
