package mqtt

import (
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"firemonitor/internal/logger"
	"firemonitor/internal/telemetry"
)

const (
	connectTimeout    = 10 * time.Second
	reconnectInterval = 5 * time.Second
	disconnectQuiesce = 250 // milliseconds
)

// MessageHandler receives every inbound telemetry message.
type MessageHandler func(topic string, payload []byte)

// Client wraps the paho MQTT client with the telemetry subscriptions and
// the capture command publisher. Reconnection is automatic; topic
// subscriptions are re-established on every (re)connect before any
// message is delivered.
type Client struct {
	client  paho.Client
	handler MessageHandler
	logger  *logger.Logger
}

func New(brokerURL, clientID string, handler MessageHandler, logger *logger.Logger) *Client {
	c := &Client{
		handler: handler,
		logger:  logger,
	}

	opts := paho.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID(clientID).
		SetCleanSession(true).
		SetAutoReconnect(true).
		SetMaxReconnectInterval(reconnectInterval).
		SetConnectRetry(true).
		SetConnectRetryInterval(reconnectInterval).
		SetConnectTimeout(connectTimeout).
		SetOnConnectHandler(c.onConnect).
		SetConnectionLostHandler(c.onConnectionLost).
		SetReconnectingHandler(c.onReconnecting)

	c.client = paho.NewClient(opts)
	return c
}

// Connect dials the broker and blocks until the first connection is
// established (retrying on the configured interval).
func (c *Client) Connect() error {
	token := c.client.Connect()
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to connect to MQTT broker: %w", err)
	}
	return nil
}

// onConnect re-establishes subscriptions; clean sessions do not survive
// a reconnect, so this must run every time.
func (c *Client) onConnect(client paho.Client) {
	c.logger.Info("✓ Connected to MQTT broker")

	topics := map[string]byte{
		telemetry.TopicAlert:     0,
		telemetry.TopicStatus:    0,
		telemetry.TopicImageMeta: 0,
	}

	token := client.SubscribeMultiple(topics, c.onMessage)
	token.Wait()
	if err := token.Error(); err != nil {
		c.logger.Error("Error subscribing to MQTT topics: %v", err)
		return
	}
	c.logger.Info("✓ Subscribed to MQTT topics: %s, %s, %s",
		telemetry.TopicAlert, telemetry.TopicStatus, telemetry.TopicImageMeta)
}

func (c *Client) onConnectionLost(_ paho.Client, err error) {
	c.logger.Error("MQTT connection lost: %v", err)
}

func (c *Client) onReconnecting(_ paho.Client, _ *paho.ClientOptions) {
	c.logger.Info("🔄 Reconnecting to MQTT broker...")
}

func (c *Client) onMessage(_ paho.Client, msg paho.Message) {
	c.handler(msg.Topic(), msg.Payload())
}

// IsConnected reports whether the broker link is currently usable.
func (c *Client) IsConnected() bool {
	return c.client.IsConnectionOpen()
}

// PublishCapture sends a single capture command to the camera.
func (c *Client) PublishCapture() error {
	token := c.client.Publish(telemetry.TopicCapture, 0, false, telemetry.CapturePayload)
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to publish capture command: %w", err)
	}
	return nil
}

// Disconnect drains in-flight work and closes the broker connection.
func (c *Client) Disconnect() {
	c.client.Disconnect(disconnectQuiesce)
}
