// Package notify pushes prayer timetables to mosque display boards
// over MQTT. Boards subscribe to athan/<place_id>/timetable and render
// whatever payload arrives; the service publishes whenever it resolves
// a fresh schedule.
package notify

import (
	"encoding/json"
	"fmt"
	"sync"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

var (
	mu     sync.RWMutex
	client mqtt.Client
)

var connectHandler mqtt.OnConnectHandler = func(c mqtt.Client) {
	log.Info().Msg("connected to MQTT broker")
}

var connectLostHandler mqtt.ConnectionLostHandler = func(c mqtt.Client, err error) {
	log.Warn().Err(err).Msg("MQTT connection lost")
}

// Init connects the shared MQTT client. Publishing stays a no-op if
// Init is never called, so deployments without a broker just skip it.
func Init(brokerURL, clientID string) error {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	c := mqtt.NewClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("connect to MQTT broker: %w", token.Error())
	}

	mu.Lock()
	client = c
	mu.Unlock()
	return nil
}

// PublishTimetable sends a board payload to the mosque's topic.
func PublishTimetable(placeID string, payload BoardPayload) error {
	mu.RLock()
	c := client
	mu.RUnlock()
	if c == nil {
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal board payload: %w", err)
	}

	topic := fmt.Sprintf("athan/%s/timetable", placeID)
	token := c.Publish(topic, 1, true, body)
	token.Wait()
	if token.Error() != nil {
		return fmt.Errorf("publish to %s: %w", topic, token.Error())
	}

	log.Debug().Str("topic", topic).Msg("timetable published")
	return nil
}

// Cleanup disconnects the shared client.
func Cleanup() {
	mu.Lock()
	defer mu.Unlock()
	if client != nil {
		client.Disconnect(250)
		client = nil
	}
}
