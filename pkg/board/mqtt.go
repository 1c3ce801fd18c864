// Copyright 2018 Ewout Prangsma
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// Author Ewout Prangsma
//

package board

import (
	"fmt"
	"strings"
	"sync"
	"time"

	mqttapi "github.com/eclipse/paho.mqtt.golang"
	aerr "github.com/ewoutp/go-aggregate-error"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	// TypeMQTT is the board type of pins driven through MQTT commands.
	TypeMQTT = "mqtt"

	mqttPinCount       = 256
	mqttPublishTimeout = time.Millisecond * 200
	mqttConnectTimeout = time.Second * 5
)

// MQTTConfig describes the broker an MQTT board connects to.
type MQTTConfig struct {
	// Address of the broker (host:port)
	BrokerAddress string
	// Prefix of all topics
	TopicPrefix string
	// Client ID used on the broker
	ClientID string
}

// MQTTClient is the part of the paho client used by the MQTT board.
type MQTTClient interface {
	Connect() mqttapi.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) mqttapi.Token
}

type mqttBoard struct {
	log         zerolog.Logger
	mutex       sync.Mutex
	topicPrefix string
	client      MQTTClient
	pins        map[int]*mqttPin
}

type mqttPin struct {
	board     *mqttBoard
	number    int
	activeLow bool
}

// NewMQTTBoard connects to the broker and returns a board whose pins
// are driven by publishing commands.
func NewMQTTBoard(config MQTTConfig, log zerolog.Logger) (API, error) {
	opts := mqttapi.NewClientOptions().
		AddBroker("tcp://" + config.BrokerAddress).
		SetClientID(config.ClientID)
	opts.SetKeepAlive(2 * time.Second)
	opts.SetPingTimeout(1 * time.Second)
	opts.SetOrderMatters(true)
	client := mqttapi.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(mqttConnectTimeout) {
		return nil, fmt.Errorf("timeout connecting to mqtt broker %s", config.BrokerAddress)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("failed to connect to mqtt: %w", err)
	}
	return newMQTTBoard(config, client, log), nil
}

// newMQTTBoard creates a board on an already connected client.
func newMQTTBoard(config MQTTConfig, client MQTTClient, log zerolog.Logger) *mqttBoard {
	return &mqttBoard{
		log:         log.With().Str("board", TypeMQTT).Logger(),
		topicPrefix: strings.TrimSuffix(config.TopicPrefix, "/") + "/",
		client:      client,
		pins:        make(map[int]*mqttPin),
	}
}

func (b *mqttBoard) Name() string {
	return TypeMQTT
}

// PinCount returns the number of pins of the board
func (b *mqttBoard) PinCount() int {
	return mqttPinCount
}

// Output claims a remote output pin and publishes its initial value.
func (b *mqttBoard) Output(pinNumber int, activeLow bool, initialValue bool) (OutputPin, error) {
	if pinNumber < 0 || pinNumber >= mqttPinCount {
		return nil, errors.Wrapf(InvalidPinError, "Pin must be between 0 and %d, got %d", mqttPinCount-1, pinNumber)
	}
	b.mutex.Lock()
	if _, found := b.pins[pinNumber]; found {
		b.mutex.Unlock()
		return nil, errors.Wrapf(PinInUseError, "pin %d", pinNumber)
	}
	p := &mqttPin{board: b, number: pinNumber, activeLow: activeLow}
	b.pins[pinNumber] = p
	b.mutex.Unlock()

	if err := p.Write(initialValue); err != nil {
		b.mutex.Lock()
		delete(b.pins, pinNumber)
		b.mutex.Unlock()
		return nil, maskAny(err)
	}
	return withMetrics(TypeMQTT, pinNumber, p), nil
}

// Close turns all claimed outputs off and disconnects.
func (b *mqttBoard) Close() error {
	b.mutex.Lock()
	pins := make([]*mqttPin, 0, len(b.pins))
	for _, p := range b.pins {
		pins = append(pins, p)
	}
	b.mutex.Unlock()

	var ae aerr.AggregateError
	for _, p := range pins {
		if err := p.Write(false); err != nil {
			ae.Add(err)
		}
	}
	b.client.Disconnect(250)
	return ae.AsError()
}

// Write publishes the physical value of the pin
func (p *mqttPin) Write(value bool) error {
	b := p.board
	topic := fmt.Sprintf("%spin%d/command", b.topicPrefix, p.number)
	payload := formatBool(value != p.activeLow)
	token := b.client.Publish(topic, 1, false, payload)
	if !token.WaitTimeout(mqttPublishTimeout) {
		b.log.Error().
			Str("topic", topic).
			Str("payload", payload).
			Msg("failed to deliver MQTT command in time")
		return fmt.Errorf("timeout publishing to %s", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return nil
}

// format a bool as string
func formatBool(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
