package telemetry

import (
	"encoding/json"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	logger "github.com/sirupsen/logrus"
)

// HitEvent is the JSON payload published for every accepted strike.
type HitEvent struct {
	Pad        string    `json:"pad"`
	Millivolts uint32    `json:"millivolts"`
	Sound      string    `json:"sound"`
	At         time.Time `json:"at"`
}

// Publisher sends hit events to an MQTT broker. Publishing is fire and
// forget; a lost event is not worth stalling the sampling loop for.
type Publisher struct {
	client mqtt.Client
	topic  string
}

func NewPublisher(broker, clientID, topic string) (*Publisher, error) {
	logger.Infof("Connecting to MQTT broker [%v] as [%v]", broker, clientID)
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectTimeout(5 * time.Second)
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		logger.Errorf("Failed to connect to MQTT broker [%v]", token.Error())
		return nil, token.Error()
	}
	return &Publisher{client: client, topic: topic}, nil
}

func (p *Publisher) PublishHit(e HitEvent) {
	js, err := json.Marshal(e)
	if err != nil {
		logger.Errorf("Failed to marshal hit event [%v]", err)
		return
	}
	// don't wait on the token; the broker ack is nobody's problem here
	p.client.Publish(p.topic, 0, false, js)
}

func (p *Publisher) Close() {
	p.client.Disconnect(250)
}
