// Package sms sends transactional SMS notifications through the
// IntechSMS gateway. A mock mode logs messages instead of sending them
// so local development never hits the paid gateway.
package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Mdev98/fast-food-api/internal/domain/ordering"
	"github.com/Mdev98/fast-food-api/internal/infrastructure/config"
)

const defaultGatewayURL = "https://gateway.intechsms.sn/api/send-sms"

// Client sends an SMS to a single recipient.
type Client interface {
	Send(ctx context.Context, mobile, content string) error
}

// GatewayClient talks to the IntechSMS HTTP API.
type GatewayClient struct {
	gatewayURL string
	appKey     string
	sender     string
	mockMode   bool
	httpClient *http.Client
	logger     *zap.Logger
}

// GatewayOption configures the client.
type GatewayOption func(*GatewayClient)

// WithLogger sets the logger used by the client.
func WithLogger(logger *zap.Logger) GatewayOption {
	return func(c *GatewayClient) {
		c.logger = logger
	}
}

// WithHTTPClient replaces the underlying HTTP client, mainly for tests.
func WithHTTPClient(httpClient *http.Client) GatewayOption {
	return func(c *GatewayClient) {
		c.httpClient = httpClient
	}
}

// NewGatewayClient creates an SMS client from configuration.
func NewGatewayClient(cfg config.SMSConfig, opts ...GatewayOption) (*GatewayClient, error) {
	if !cfg.MockMode && cfg.AppKey == "" {
		return nil, errors.New("sms app key is required unless mock mode is enabled")
	}

	gatewayURL := cfg.GatewayURL
	if gatewayURL == "" {
		gatewayURL = defaultGatewayURL
	}

	sender := cfg.Sender
	if sender == "" {
		sender = "FastFood"
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &GatewayClient{
		gatewayURL: gatewayURL,
		appKey:     cfg.AppKey,
		sender:     sender,
		mockMode:   cfg.MockMode,
		httpClient: &http.Client{Timeout: timeout},
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

type sendRequest struct {
	AppKey  string   `json:"app_key"`
	Sender  string   `json:"sender"`
	Content string   `json:"content"`
	MSISDN  []string `json:"msisdn"`
}

// Send delivers one message to one mobile number. The number is
// normalized to international format before sending.
func (c *GatewayClient) Send(ctx context.Context, mobile, content string) error {
	normalized, err := ordering.NormalizeMobile(mobile)
	if err != nil {
		return err
	}
	if content == "" {
		return errors.New("sms content is required")
	}

	if c.mockMode {
		c.logger.Info("Mock SMS",
			zap.String("to", normalized),
			zap.String("sender", c.sender),
			zap.String("content", content),
		)
		return nil
	}

	payload, err := json.Marshal(sendRequest{
		AppKey:  c.appKey,
		Sender:  c.sender,
		Content: content,
		MSISDN:  []string{normalized},
	})
	if err != nil {
		return fmt.Errorf("failed to encode sms request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.gatewayURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call sms gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sms gateway returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	c.logger.Debug("SMS sent",
		zap.String("to", normalized),
		zap.Int("status", resp.StatusCode),
	)
	return nil
}
