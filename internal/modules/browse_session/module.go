package browsesession

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"github.com/mikey-austin/mu_browse/internal/adapters/catalog"
	"github.com/mikey-austin/mu_browse/internal/adapters/downloads"
	"github.com/mikey-austin/mu_browse/internal/adapters/sqlstore"
	"github.com/mikey-austin/mu_browse/internal/browse"
	"github.com/mikey-austin/mu_browse/pkg/mu"
)

// Config configures the browse session module.
type Config struct {
	NodeID    string
	TopicBase string
	Name      string

	DBPath        string
	DownloadsPath string

	CatalogBaseURL string
	CatalogAPIKey  string
	CatalogTimeout time.Duration

	PodcastFeeds    []string
	PodcastCacheDir string
	PodcastRefresh  time.Duration

	SearchLimit   int
	TopSongsLimit int
	PersistQueue  bool
}

// Client is the MQTT surface the module needs.
type Client interface {
	Publish(topic string, qos byte, retained bool, payload []byte) error
	PublishJSON(topic string, retained bool, v any) error
	Subscribe(topic string, qos byte, handler paho.MessageHandler) error
	Unsubscribe(topic string) error
}

// Module serves one browse session over MQTT.
type Module struct {
	log      *zap.Logger
	client   Client
	resolver *browse.Resolver
	config   Config
	cmdTopic string
	evtTopic string
	closers  []func() error
	inflight sync.WaitGroup
}

// NewModule opens the local store, the download tracker and the catalog
// backends, then builds the session resolver.
func NewModule(log *zap.Logger, client Client, cfg Config) (*Module, error) {
	cfg, err := normalize(cfg)
	if err != nil {
		return nil, err
	}

	store, err := sqlstore.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	tracker, err := downloads.Open(cfg.DownloadsPath)
	if err != nil {
		store.Close()
		return nil, err
	}
	closers := []func() error{tracker.Close, store.Close}

	router := catalog.Router{}
	if strings.TrimSpace(cfg.CatalogBaseURL) != "" {
		remote, err := catalog.NewClient(catalog.Config{
			BaseURL: cfg.CatalogBaseURL,
			APIKey:  cfg.CatalogAPIKey,
			Timeout: cfg.CatalogTimeout,
		})
		if err != nil {
			closeAll(closers)
			return nil, err
		}
		router.Remote = remote
	}
	if len(cfg.PodcastFeeds) > 0 {
		podcasts, err := catalog.NewPodcasts(log.With(zap.String("component", "podcasts")), catalog.PodcastConfig{
			Feeds:           cfg.PodcastFeeds,
			CacheDir:        cfg.PodcastCacheDir,
			RefreshInterval: cfg.PodcastRefresh,
			Timeout:         cfg.CatalogTimeout,
		})
		if err != nil {
			closeAll(closers)
			return nil, err
		}
		router.Podcasts = podcasts
	}

	var cat browse.Catalog
	if router.Remote != nil || router.Podcasts != nil {
		cat = router
	}

	m, err := newModule(log, client, cfg, browse.Deps{
		Library:   store,
		Catalog:   cat,
		Downloads: tracker,
		Queue:     store,
	})
	if err != nil {
		closeAll(closers)
		return nil, err
	}
	m.closers = closers
	return m, nil
}

func normalize(cfg Config) (Config, error) {
	if strings.TrimSpace(cfg.NodeID) == "" {
		return cfg, errors.New("browse node_id required")
	}
	if strings.TrimSpace(cfg.TopicBase) == "" {
		cfg.TopicBase = mu.BaseTopic
	}
	if strings.TrimSpace(cfg.Name) == "" {
		cfg.Name = "Browse"
	}
	return cfg, nil
}

func newModule(log *zap.Logger, client Client, cfg Config, deps browse.Deps) (*Module, error) {
	cfg, err := normalize(cfg)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	m := &Module{
		log:      log,
		client:   client,
		config:   cfg,
		cmdTopic: mu.TopicCommands(cfg.TopicBase, cfg.NodeID),
		evtTopic: mu.TopicEvents(cfg.TopicBase, cfg.NodeID),
	}
	deps.Hooks = m.hooks()
	resolver, err := browse.New(context.Background(), log, deps, browse.Config{
		SearchLimit:   cfg.SearchLimit,
		TopSongsLimit: cfg.TopSongsLimit,
		PersistQueue:  cfg.PersistQueue,
	})
	if err != nil {
		return nil, err
	}
	m.resolver = resolver
	return m, nil
}

// Run serves commands until ctx ends, then tears the session down. Each
// command is handled on its own goroutine so a slow remote lookup never
// holds up other requests.
func (m *Module) Run(ctx context.Context) error {
	defer m.close()
	defer m.inflight.Wait()

	if err := m.publishPresence(); err != nil {
		return err
	}

	handler := func(_ paho.Client, msg paho.Message) {
		m.inflight.Go(func() { m.handleMessage(ctx, msg) })
	}

	if err := m.client.Subscribe(m.cmdTopic, 1, handler); err != nil {
		return err
	}
	defer m.client.Unsubscribe(m.cmdTopic)

	<-ctx.Done()
	return nil
}

func (m *Module) close() {
	m.resolver.Close()
	closeAll(m.closers)
}

func closeAll(closers []func() error) {
	for _, c := range closers {
		_ = c()
	}
}

func (m *Module) publishPresence() error {
	presence := mu.Presence{
		NodeID: m.config.NodeID,
		Kind:   "browse",
		Name:   m.config.Name,
		Caps: map[string]any{
			"browse":   true,
			"search":   true,
			"queue":    true,
			"resume":   m.config.PersistQueue,
			"commands": browse.Commands(),
		},
		TS: time.Now().Unix(),
	}
	return m.client.PublishJSON(mu.TopicPresence(m.config.TopicBase, m.config.NodeID), true, presence)
}

func (m *Module) handleMessage(ctx context.Context, msg paho.Message) {
	var cmd mu.CommandEnvelope
	if err := json.Unmarshal(msg.Payload(), &cmd); err != nil {
		m.log.Warn("invalid command", zap.Error(err))
		return
	}

	var reply mu.ReplyEnvelope
	if err := mu.ValidateCommandEnvelope(cmd); err != nil {
		reply = errorReply(cmd, mu.CodeInvalid, err.Error())
	} else {
		reply = m.dispatch(ctx, cmd)
	}
	if cmd.ReplyTo == "" {
		return
	}
	if err := m.client.PublishJSON(cmd.ReplyTo, false, reply); err != nil {
		m.log.Error("publish reply", zap.Error(err))
	}
}

func (m *Module) publishEvent(evtType string, body any) {
	evt, err := mu.NewEvent(evtType, time.Now().Unix(), body)
	if err != nil {
		m.log.Error("build event", zap.String("type", evtType), zap.Error(err))
		return
	}
	if err := m.client.PublishJSON(m.evtTopic, false, evt); err != nil {
		m.log.Warn("publish event", zap.String("type", evtType), zap.Error(err))
	}
}

// hooks forward session commands to the host player as events.
func (m *Module) hooks() browse.Hooks {
	forward := func(name string) func() {
		return func() {
			m.publishEvent(mu.EvtCommandPrefix+name, mu.CommandEventBody{Name: name})
		}
	}
	return browse.Hooks{
		ToggleLike:     forward(browse.CommandToggleLike),
		ToggleDownload: forward(browse.CommandToggleDownload),
		ToggleShuffle:  forward(browse.CommandToggleShuffle),
		ToggleRepeat:   forward(browse.CommandToggleRepeat),
		StartRadio:     forward(browse.CommandStartRadio),
		BeginSearch:    forward(browse.CommandBeginSearch),
	}
}

func errorReply(cmd mu.CommandEnvelope, code string, message string) mu.ReplyEnvelope {
	return mu.ReplyEnvelope{
		ID:   cmd.ID,
		Type: "error",
		OK:   false,
		TS:   time.Now().Unix(),
		Err: &mu.ReplyError{
			Code:    code,
			Message: message,
		},
	}
}
