// Package slack implements the channels.Adapter contract on top of the Slack
// RTM websocket API.
package slack

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/slack-go/slack"

	"github.com/botslacks/botslacks/internal/channels"
	"github.com/botslacks/botslacks/internal/retry"
	"github.com/botslacks/botslacks/pkg/models"
)

// Config holds the configuration for the Slack adapter.
type Config struct {
	// Token is the xoxb- bot token.
	Token string
}

// Adapter maintains the RTM session: it decodes inbound message events into
// models.InboundMessage, keeps user and channel name directories for
// addressing prefixes, and attaches the per-session sequence id to every
// outbound send. Reconnection is delegated to the RTM connection manager.
type Adapter struct {
	cfg    Config
	client *slack.Client
	rtm    *slack.RTM
	logger *slog.Logger

	messages chan *models.InboundMessage

	status   channels.Status
	statusMu sync.RWMutex

	botID        string
	userNames    map[string]string // user ID -> display name
	channelNames map[string]string // channel ID -> name
	dirMu        sync.RWMutex

	// Outbound sequence counter: monotonic for the lifetime of the
	// session, incremented once per successful send.
	seq atomic.Uint64

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewAdapter creates a Slack adapter. Start must be called before any
// messages flow.
func NewAdapter(cfg Config, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	client := slack.New(cfg.Token)
	return &Adapter{
		cfg:          cfg,
		client:       client,
		rtm:          client.NewRTM(),
		logger:       logger.With("component", "slack"),
		messages:     make(chan *models.InboundMessage, 100),
		userNames:    make(map[string]string),
		channelNames: make(map[string]string),
	}
}

// Start authenticates, seeds the user and channel directories, and begins the
// RTM session.
func (a *Adapter) Start(ctx context.Context) error {
	a.ctx, a.cancel = context.WithCancel(ctx)

	authResp, err := a.client.AuthTestContext(ctx)
	if err != nil {
		return fmt.Errorf("slack auth test: %w", err)
	}
	a.botID = authResp.UserID
	a.logger.Info("authenticated", "bot_user_id", authResp.UserID, "bot_name", authResp.User)

	if err := a.seedDirectory(ctx); err != nil {
		return fmt.Errorf("slack directory seed: %w", err)
	}

	go a.rtm.ManageConnection()

	a.wg.Add(1)
	go a.handleEvents()

	return nil
}

// Stop disconnects the RTM session and closes the message stream.
func (a *Adapter) Stop(ctx context.Context) error {
	if a.cancel != nil {
		a.cancel()
	}
	if err := a.rtm.Disconnect(); err != nil {
		a.logger.Debug("rtm disconnect", "error", err)
	}

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		close(a.messages)
		a.updateStatus(false, "")
		return nil
	case <-ctx.Done():
		a.updateStatus(false, "shutdown timeout")
		return ctx.Err()
	}
}

// Send assigns the next sequence id and delivers the reply over the RTM
// connection.
func (a *Adapter) Send(ctx context.Context, msg *models.OutboundMessage) error {
	if !a.Status().Connected {
		return fmt.Errorf("slack session not connected")
	}

	msg.SequenceID = a.seq.Add(1)
	a.rtm.SendMessage(&slack.OutgoingMessage{
		ID:      int(msg.SequenceID),
		Type:    "message",
		Channel: msg.Channel,
		Text:    msg.Text,
	})

	a.logger.Info("sent message",
		"channel", msg.Channel,
		"sequence_id", msg.SequenceID,
		"bytes", len(msg.Text))
	return nil
}

// Messages returns the inbound message stream.
func (a *Adapter) Messages() <-chan *models.InboundMessage {
	return a.messages
}

// Status returns the current connection status.
func (a *Adapter) Status() channels.Status {
	a.statusMu.RLock()
	defer a.statusMu.RUnlock()
	return a.status
}

// seedDirectory loads user and channel names from the Web API so addressing
// prefixes can be computed without a per-message lookup.
func (a *Adapter) seedDirectory(ctx context.Context) error {
	cfg := retry.Exponential(3, 500*time.Millisecond, 5*time.Second)

	users, res := retry.DoWithValue(ctx, cfg, func() ([]slack.User, error) {
		return a.client.GetUsersContext(ctx)
	})
	if res.Err != nil {
		return res.Err
	}
	for _, u := range users {
		a.upsertUser(u.ID, u.Name)
	}

	params := &slack.GetConversationsParameters{
		Types: []string{"public_channel", "private_channel"},
		Limit: 200,
	}
	for {
		chans, cursor, err := a.client.GetConversationsContext(ctx, params)
		if err != nil {
			return err
		}
		for _, c := range chans {
			a.upsertChannel(c.ID, c.Name)
		}
		if cursor == "" {
			break
		}
		params.Cursor = cursor
	}

	a.dirMu.RLock()
	defer a.dirMu.RUnlock()
	a.logger.Info("directory seeded", "users", len(a.userNames), "channels", len(a.channelNames))
	return nil
}

// handleEvents consumes the RTM event stream until the adapter stops.
func (a *Adapter) handleEvents() {
	defer a.wg.Done()

	for {
		select {
		case <-a.ctx.Done():
			return
		case event, ok := <-a.rtm.IncomingEvents:
			if !ok {
				return
			}

			a.statusMu.Lock()
			a.status.LastEvent = time.Now().Unix()
			a.statusMu.Unlock()

			switch ev := event.Data.(type) {
			case *slack.ConnectingEvent:
				a.logger.Info("connecting", "attempt", ev.Attempt)

			case *slack.ConnectedEvent:
				a.logger.Info("connected", "connection_count", ev.ConnectionCount)
				a.updateStatus(true, "")

			case *slack.MessageEvent:
				a.handleMessage(ev)

			case *slack.ChannelJoinedEvent:
				a.upsertChannel(ev.Channel.ID, ev.Channel.Name)
				a.logger.Info("channel joined", "channel", ev.Channel.Name)

			case *slack.ConnectionErrorEvent:
				a.logger.Warn("connection error", "error", ev.Error())
				a.updateStatus(false, ev.Error())

			case *slack.DisconnectedEvent:
				a.logger.Warn("disconnected", "intentional", ev.Intentional)
				a.updateStatus(false, "disconnected")

			case *slack.RTMError:
				a.logger.Warn("rtm error", "code", ev.Code, "message", ev.Msg)
				a.updateStatus(false, ev.Error())

			case *slack.InvalidAuthEvent:
				// Credentials are bad; reconnecting cannot help.
				a.logger.Error("invalid credentials, stopping session")
				a.updateStatus(false, "invalid credentials")
				return
			}
		}
	}
}

// handleMessage converts one RTM message event into an InboundMessage. The
// bot's own traffic and message subtypes (edits, joins, bot posts) are
// filtered out here so the dispatch loop only sees plain user messages.
func (a *Adapter) handleMessage(ev *slack.MessageEvent) {
	if ev.User == "" || ev.User == a.botID {
		return
	}
	if ev.BotID != "" || ev.SubType != "" {
		return
	}

	msg := &models.InboundMessage{
		Channel:    ev.Channel,
		SenderID:   ev.User,
		SenderName: a.userName(ev.User),
		Text:       ev.Text,
		Direct:     strings.HasPrefix(ev.Channel, "D"),
		ReceivedAt: time.Now(),
	}

	select {
	case a.messages <- msg:
	default:
		a.logger.Warn("message buffer full, dropping message", "channel", ev.Channel)
	}
}

func (a *Adapter) upsertUser(id, name string) {
	if id == "" {
		return
	}
	a.dirMu.Lock()
	a.userNames[id] = name
	a.dirMu.Unlock()
}

func (a *Adapter) upsertChannel(id, name string) {
	if id == "" {
		return
	}
	a.dirMu.Lock()
	a.channelNames[id] = name
	a.dirMu.Unlock()
}

func (a *Adapter) userName(id string) string {
	a.dirMu.RLock()
	defer a.dirMu.RUnlock()
	return a.userNames[id]
}

func (a *Adapter) updateStatus(connected bool, errMsg string) {
	a.statusMu.Lock()
	defer a.statusMu.Unlock()
	a.status.Connected = connected
	a.status.Error = errMsg
	if connected {
		a.status.LastEvent = time.Now().Unix()
	}
}
