package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mikey-austin/mu_browse/internal/adapters/mqttserver"
	browsesession "github.com/mikey-austin/mu_browse/internal/modules/browse_session"
	embeddedmqtt "github.com/mikey-austin/mu_browse/internal/modules/embedded_mqtt"
	"github.com/mikey-austin/mu_browse/internal/mud"
	"github.com/mikey-austin/mu_browse/pkg/mu"
)

func main() {
	var (
		configPath  string
		broker      string
		identity    string
		topicBase   string
		logLevel    string
		logFormat   string
		logOutput   string
		logSource   bool
		logUTC      bool
		logColor    bool
		printConfig bool
		dryRun      bool
		moduleOnly  string
	)

	defaultConfig, err := mud.DefaultConfigPath()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	flag.StringVar(&configPath, "config", defaultConfig, "config file path")
	flag.StringVar(&broker, "broker", "", "MQTT broker URL override")
	flag.StringVar(&identity, "identity", "", "server identity override")
	flag.StringVar(&topicBase, "topic-base", "", "topic base override")
	flag.StringVar(&logLevel, "log-level", "", "log level override")
	flag.StringVar(&logFormat, "log-format", "", "log format override (text|json)")
	flag.StringVar(&logOutput, "log-output", "", "log output override (stdout|stderr)")
	flag.BoolVar(&logSource, "log-source", false, "include source file in logs")
	flag.BoolVar(&logUTC, "log-utc", false, "use UTC timestamps in logs")
	flag.BoolVar(&logColor, "log-color", false, "enable colored log output (text only)")
	flag.StringVar(&moduleOnly, "module", "", "limit to a single module")
	flag.BoolVar(&printConfig, "print-config", false, "print resolved config and exit")
	flag.BoolVar(&dryRun, "dry-run", false, "validate config and exit")
	flag.Parse()

	cfg, err := mud.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	applyOverrides(&cfg, broker, identity, topicBase, logLevel, logFormat, logOutput, logSource, logUTC, logColor)

	if printConfig {
		if err := printResolvedConfig(cfg); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}
	if dryRun {
		return
	}

	logger := mud.NewLogger(mud.LogConfig{
		Level:     cfg.Server.LogLevel,
		Format:    cfg.Server.LogFormat,
		Output:    cfg.Server.LogOutput,
		AddSource: cfg.Server.LogSource,
		UTC:       cfg.Server.LogUTC,
		Color:     cfg.Server.LogColor,
	})
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	embeddedURL := embeddedBrokerURL(cfg)
	skipEmbedded := false

	if moduleOnly != "embedded_mqtt" && cfg.Modules.EmbeddedMQTT.Enabled && cfg.Server.Broker == embeddedURL {
		if err := startEmbeddedBroker(ctx, cfg, logger, cancel); err != nil {
			logger.Error("embedded mqtt failed", zap.Error(err))
			os.Exit(1)
		}
		skipEmbedded = true
	}

	if cfg.Server.Broker == "" && !(moduleOnly == "embedded_mqtt" && cfg.Modules.EmbeddedMQTT.Enabled) {
		logger.Error("broker is required")
		os.Exit(1)
	}
	logger.Info("mud starting",
		zap.String("broker", cfg.Server.Broker),
		zap.String("identity", cfg.Server.Identity),
		zap.String("topic_base", cfg.Server.TopicBase),
		zap.String("log_level", cfg.Server.LogLevel),
		zap.String("log_format", cfg.Server.LogFormat),
		zap.String("log_output", cfg.Server.LogOutput),
		zap.Bool("log_source", cfg.Server.LogSource),
		zap.Bool("log_utc", cfg.Server.LogUTC),
		zap.Bool("log_color", cfg.Server.LogColor),
		zap.Strings("modules", enabledModules(cfg)),
	)

	var client *mqttserver.Client
	if moduleOnly != "embedded_mqtt" {
		var err error
		client, err = mqttserver.NewClient(mqttserver.Options{
			BrokerURL: cfg.Server.Broker,
			ClientID:  clientID(cfg),
			Username:  cfg.Server.Auth.User,
			Password:  cfg.Server.Auth.Pass,
			TLSCA:     cfg.Server.TLS.CA,
			TLSCert:   cfg.Server.TLS.Cert,
			TLSKey:    cfg.Server.TLS.Key,
			Timeout:   2 * time.Second,
			Logger:    logger.With(zap.String("component", "mqtt")),
			WillTopic: willTopic(cfg),
		})
		if err != nil {
			logger.Error("mqtt connection failed", zap.Error(err))
			os.Exit(1)
		}
		defer client.Close()
	}

	modules, err := buildModules(cfg, client, logger, moduleOnly, skipEmbedded)
	if err != nil {
		logger.Error("failed to build modules", zap.Error(err))
		os.Exit(1)
	}

	supervisor := mud.Supervisor{Logger: logger}
	if err := supervisor.Run(ctx, modules); err != nil {
		logger.Error("supervisor error", zap.Error(err))
		os.Exit(1)
	}
}

func applyOverrides(cfg *mud.Config, broker string, identity string, topicBase string, logLevel string, logFormat string, logOutput string, logSource bool, logUTC bool, logColor bool) {
	if broker != "" {
		cfg.Server.Broker = broker
	}
	if identity != "" {
		cfg.Server.Identity = identity
	}
	if topicBase != "" {
		cfg.Server.TopicBase = topicBase
	}
	if logLevel != "" {
		cfg.Server.LogLevel = logLevel
	}
	if logFormat != "" {
		cfg.Server.LogFormat = logFormat
	}
	if logOutput != "" {
		cfg.Server.LogOutput = logOutput
	}
	if logSource {
		cfg.Server.LogSource = true
	}
	if logUTC {
		cfg.Server.LogUTC = true
	}
	if logColor {
		cfg.Server.LogColor = true
	}
	if cfg.Server.TopicBase == "" {
		cfg.Server.TopicBase = mu.BaseTopic
	}
	if cfg.Server.Broker == "" && cfg.Modules.EmbeddedMQTT.Enabled {
		cfg.Server.Broker = embeddedBrokerURL(*cfg)
	}
}

func buildModules(cfg mud.Config, client *mqttserver.Client, logger *zap.Logger, moduleOnly string, skipEmbedded bool) ([]mud.ModuleRunner, error) {
	modules := []mud.ModuleRunner{}
	if cfg.Modules.EmbeddedMQTT.Enabled && !skipEmbedded {
		if moduleOnly == "" || moduleOnly == "embedded_mqtt" {
			mod, err := embeddedmqtt.NewModule(logger.With(zap.String("module", "embedded_mqtt")), embeddedConfig(cfg))
			if err != nil {
				return nil, err
			}
			modules = append(modules, mud.ModuleRunner{
				Name: "embedded_mqtt",
				Run:  mod.Run,
			})
		}
	}

	if cfg.Modules.Browse.Enabled {
		if moduleOnly == "" || moduleOnly == "browse" {
			if client == nil {
				return nil, errors.New("browse requires an mqtt connection")
			}
			b := cfg.Modules.Browse
			mod, err := browsesession.NewModule(logger.With(zap.String("module", "browse")), client, browsesession.Config{
				NodeID:          b.NodeID,
				TopicBase:       cfg.Server.TopicBase,
				Name:            b.Name,
				DBPath:          b.DBPath,
				DownloadsPath:   b.DownloadsPath,
				CatalogBaseURL:  b.CatalogBaseURL,
				CatalogAPIKey:   b.CatalogAPIKey,
				CatalogTimeout:  b.CatalogTimeout(),
				PodcastFeeds:    b.PodcastFeeds,
				PodcastCacheDir: b.PodcastCacheDir,
				PodcastRefresh:  b.PodcastRefresh(),
				SearchLimit:     b.SearchLimit,
				TopSongsLimit:   b.TopSongsLimit,
				PersistQueue:    b.PersistQueue,
			})
			if err != nil {
				return nil, err
			}
			modules = append(modules, mud.ModuleRunner{
				Name: "browse",
				Run:  mod.Run,
			})
		}
	}

	if moduleOnly != "" && len(modules) == 0 {
		return nil, errors.New("no modules enabled")
	}
	return modules, nil
}

func enabledModules(cfg mud.Config) []string {
	out := []string{}
	if cfg.Modules.EmbeddedMQTT.Enabled {
		out = append(out, "embedded_mqtt")
	}
	if cfg.Modules.Browse.Enabled {
		out = append(out, "browse")
	}
	return out
}

func printResolvedConfig(cfg mud.Config) error {
	fmt.Fprintf(os.Stdout,
		"broker=%s identity=%s topic_base=%s log_level=%s log_format=%s log_output=%s log_source=%t log_utc=%t log_color=%t modules=%s\n",
		cfg.Server.Broker,
		cfg.Server.Identity,
		cfg.Server.TopicBase,
		cfg.Server.LogLevel,
		cfg.Server.LogFormat,
		cfg.Server.LogOutput,
		cfg.Server.LogSource,
		cfg.Server.LogUTC,
		cfg.Server.LogColor,
		strings.Join(enabledModules(cfg), ","),
	)
	return nil
}

func clientID(cfg mud.Config) string {
	if cfg.Server.Identity != "" {
		return "mud-" + cfg.Server.Identity
	}
	return fmt.Sprintf("mud-%d", time.Now().UnixNano())
}

// willTopic clears the browse node's retained presence if mud drops off.
func willTopic(cfg mud.Config) string {
	if !cfg.Modules.Browse.Enabled || cfg.Modules.Browse.NodeID == "" {
		return ""
	}
	return mu.TopicPresence(cfg.Server.TopicBase, cfg.Modules.Browse.NodeID)
}

func embeddedConfig(cfg mud.Config) embeddedmqtt.Config {
	e := cfg.Modules.EmbeddedMQTT
	return embeddedmqtt.Config{
		Listen:         e.Listen,
		TopicBase:      cfg.Server.TopicBase,
		AllowAnonymous: e.AllowAnonymous,
		Username:       e.Username,
		Password:       e.Password,
		TLSCA:          e.TLSCA,
		TLSCert:        e.TLSCert,
		TLSKey:         e.TLSKey,
	}
}

func embeddedListen(cfg mud.Config) string {
	if cfg.Modules.EmbeddedMQTT.Listen == "" {
		return embeddedmqtt.DefaultListen
	}
	return cfg.Modules.EmbeddedMQTT.Listen
}

func embeddedBrokerURL(cfg mud.Config) string {
	return embeddedmqtt.BrokerURL(embeddedListen(cfg), embeddedConfig(cfg).TLSEnabled())
}

func startEmbeddedBroker(ctx context.Context, cfg mud.Config, logger *zap.Logger, cancel context.CancelFunc) error {
	mod, err := embeddedmqtt.NewModule(logger.With(zap.String("module", "embedded_mqtt")), embeddedConfig(cfg))
	if err != nil {
		return err
	}
	go func() {
		if err := mod.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("embedded mqtt exited", zap.Error(err))
			cancel()
		}
	}()
	return waitForListen(embeddedListen(cfg), 3*time.Second)
}

func waitForListen(listen string, timeout time.Duration) error {
	host, port, err := net.SplitHostPort(listen)
	if err != nil {
		return err
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}
	addr := net.JoinHostPort(host, port)
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		conn, err := net.DialTimeout("tcp", addr, 200*time.Millisecond)
		if err == nil {
			_ = conn.Close()
			return nil
		}
		time.Sleep(50 * time.Millisecond)
	}
	return fmt.Errorf("embedded mqtt not ready at %s", addr)
}
