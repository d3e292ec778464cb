package main

import (
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/study-planner/internal/config"
	"github.com/Nixie-Tech-LLC/study-planner/internal/notify"
)

// InitPublisher connects to the MQTT broker when one is configured. A broker
// that cannot be reached is logged and publishing is disabled.
func InitPublisher(cfg *config.Config) notify.Publisher {
	if cfg.MQTTBrokerURL == "" {
		return notify.Nop{}
	}

	pub, err := notify.NewMQTTPublisher(cfg.MQTTBrokerURL, cfg.MQTTClientID, cfg.MQTTTopicPrefix)
	if err != nil {
		log.Error().Err(err).Str("broker", cfg.MQTTBrokerURL).Msg("timetable publishing disabled")
		return notify.Nop{}
	}
	log.Info().Str("broker", cfg.MQTTBrokerURL).Str("prefix", cfg.MQTTTopicPrefix).Msg("publishing timetables over MQTT")
	return pub
}
