package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"sync"

	"twinmind/config"

	"github.com/emersion/go-imap/v2/imapclient"
	"go.uber.org/zap"
)

// IMAPConfig describes one mailbox account.
type IMAPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Mailbox  string
}

// ConfigFromApp builds the mailbox config from the loaded app config.
func ConfigFromApp() IMAPConfig {
	return IMAPConfig{
		Host:     config.AppConfig.IMAPHost,
		Port:     config.AppConfig.IMAPPort,
		Username: config.AppConfig.IMAPUsername,
		Password: config.AppConfig.IMAPPassword,
		Mailbox:  config.AppConfig.IMAPMailbox,
	}
}

// Enabled reports whether a mailbox is configured at all.
func (c IMAPConfig) Enabled() bool {
	return c.Host != "" && c.Username != ""
}

// Client wraps a single-account IMAP connection with lazy reconnection.
// Access is serialized with a mutex; go-imap commands on one connection
// must not interleave.
type Client struct {
	cfg    IMAPConfig
	logger *zap.Logger

	mu     sync.Mutex
	client *imapclient.Client
}

func NewClient(cfg IMAPConfig, logger *zap.Logger) *Client {
	return &Client{cfg: cfg, logger: logger}
}

// connectLocked dials and authenticates. Caller must hold c.mu.
func (c *Client) connectLocked(ctx context.Context) error {
	if c.client != nil {
		_ = c.client.Close()
		c.client = nil
	}

	addr := net.JoinHostPort(c.cfg.Host, fmt.Sprintf("%d", c.cfg.Port))
	opts := imapclient.Options{
		TLSConfig: &tls.Config{ServerName: c.cfg.Host},
	}

	client, err := imapclient.DialTLS(addr, &opts)
	if err != nil {
		return fmt.Errorf("dial IMAP %s: %w", addr, err)
	}

	if err := client.Login(c.cfg.Username, c.cfg.Password).Wait(); err != nil {
		_ = client.Close()
		return fmt.Errorf("login as %s: %w", c.cfg.Username, err)
	}

	c.client = client
	c.logger.Info("IMAP connected", zap.String("host", c.cfg.Host), zap.String("user", c.cfg.Username))
	return nil
}

// ensureConnected checks liveness and reconnects if needed. Caller must
// hold c.mu.
func (c *Client) ensureConnected(ctx context.Context) error {
	if c.client != nil {
		if err := c.client.Noop().Wait(); err == nil {
			return nil
		}
		c.logger.Debug("IMAP connection stale, reconnecting", zap.String("host", c.cfg.Host))
	}
	return c.connectLocked(ctx)
}

// Ping checks that the mailbox is reachable.
func (c *Client) Ping(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ensureConnected(ctx)
}

// Close shuts down the connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client == nil {
		return nil
	}
	err := c.client.Close()
	c.client = nil
	return err
}
