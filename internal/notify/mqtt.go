package notify

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/study-planner/internal/model"
)

const (
	publishTimeout = 5 * time.Second
	disconnectWait = 250
)

var connectHandler mqtt.OnConnectHandler = func(client mqtt.Client) {
	log.Info().Msg("connected to MQTT broker")
}

var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	log.Error().Err(err).Msg("MQTT connection lost")
}

type MQTTPublisher struct {
	client mqtt.Client
	prefix string
}

var _ Publisher = (*MQTTPublisher)(nil)

// NewMQTTPublisher connects to brokerURL and publishes under
// <prefix>/<session>/timetable.
func NewMQTTPublisher(brokerURL, clientID, prefix string) (*MQTTPublisher, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	return &MQTTPublisher{client: client, prefix: prefix}, nil
}

// Topic returns the topic a session's timetables are published to.
func Topic(prefix, sessionID string) string {
	return fmt.Sprintf("%s/%s/timetable", prefix, sessionID)
}

func (p *MQTTPublisher) PublishTimetable(sessionID string, tt *model.Timetable) error {
	payload, err := json.Marshal(tt)
	if err != nil {
		return fmt.Errorf("encode timetable: %w", err)
	}

	topic := Topic(p.prefix, sessionID)
	token := p.client.Publish(topic, 1, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish to %s: timed out", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}

	log.Debug().Str("topic", topic).Int("days", len(tt.Days)).Msg("timetable published")
	return nil
}

func (p *MQTTPublisher) Close() {
	p.client.Disconnect(disconnectWait)
	log.Info().Msg("MQTT client disconnected")
}
