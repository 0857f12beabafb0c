package notify

import (
	"encoding/json"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/miqat-labs/miqat/internal/model"
)

const (
	azanTopic  = "miqat/azan"
	flagsTopic = "miqat/notifications"
)

// MQTT connection handler
var connectHandler mqtt.OnConnectHandler = func(client mqtt.Client) {
	log.Info().Msg("connected to MQTT broker")
}

// MQTT connection lost handler
var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	log.Warn().Err(err).Msg("MQTT connection lost")
}

// MQTTNotifier publishes azan announcements and flag updates to an MQTT
// broker consumed by downstream notification schedulers.
type MQTTNotifier struct {
	client mqtt.Client
}

var _ Notifier = (*MQTTNotifier)(nil)

// NewMQTTNotifier connects to the broker and returns a ready notifier.
func NewMQTTNotifier(brokerURL, clientName string) (*MQTTNotifier, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientName)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %v", token.Error())
	}

	log.Info().Str("broker", brokerURL).Msg("MQTT notifier initialized")
	return &MQTTNotifier{client: client}, nil
}

type azanMessage struct {
	Event   string `json:"event"`
	Display string `json:"display"`
}

// EventDue publishes an azan announcement for the given event.
func (n *MQTTNotifier) EventDue(ev model.PrayerEvent) {
	payload, _ := json.Marshal(azanMessage{Event: string(ev.Name), Display: ev.Display})
	token := n.client.Publish(azanTopic, 1, false, payload)
	token.Wait()
	if token.Error() != nil {
		log.Error().Err(token.Error()).Str("event", string(ev.Name)).
			Msg("failed to publish azan announcement")
		return
	}
	log.Info().Str("event", string(ev.Name)).Msg("published azan announcement")
}

// FlagsChanged publishes the full notification flag set.
func (n *MQTTNotifier) FlagsChanged(schedule model.DailySchedule) {
	flags := make(map[string]bool, len(schedule.Events))
	for _, ev := range schedule.Events {
		flags[string(ev.Name)] = ev.NotificationEnabled
	}
	payload, _ := json.Marshal(flags)
	token := n.client.Publish(flagsTopic, 1, false, payload)
	token.Wait()
	if token.Error() != nil {
		log.Error().Err(token.Error()).Msg("failed to publish notification flags")
	}
}

// Close disconnects from the broker.
func (n *MQTTNotifier) Close() {
	n.client.Disconnect(250)
}
