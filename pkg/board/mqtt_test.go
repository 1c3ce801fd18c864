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
	"sync"
	"testing"
	"time"

	mqttapi "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeToken struct {
	err      error
	complete bool
}

func (t *fakeToken) Wait() bool                     { return t.complete }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return t.complete }
func (t *fakeToken) Error() error                   { return t.err }
func (t *fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	if t.complete {
		close(ch)
	}
	return ch
}

type published struct {
	Topic   string
	Payload string
}

type fakeMQTTClient struct {
	mutex        sync.Mutex
	published    []published
	publishErr   error
	hang         bool
	disconnected bool
}

func (c *fakeMQTTClient) Connect() mqttapi.Token {
	return &fakeToken{complete: true}
}

func (c *fakeMQTTClient) Disconnect(quiesce uint) {
	c.disconnected = true
}

func (c *fakeMQTTClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqttapi.Token {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.hang {
		return &fakeToken{}
	}
	if c.publishErr == nil {
		c.published = append(c.published, published{Topic: topic, Payload: payload.(string)})
	}
	return &fakeToken{complete: true, err: c.publishErr}
}

func TestMQTTOutput(t *testing.T) {
	client := &fakeMQTTClient{}
	b := newMQTTBoard(MQTTConfig{TopicPrefix: "pibrella/"}, client, zerolog.Nop())

	p, err := b.Output(27, false, false)
	require.NoError(t, err)
	require.NoError(t, p.Write(true))
	require.NoError(t, p.Write(false))

	assert.Equal(t, []published{
		{Topic: "pibrella/pin27/command", Payload: "off"},
		{Topic: "pibrella/pin27/command", Payload: "on"},
		{Topic: "pibrella/pin27/command", Payload: "off"},
	}, client.published)
}

func TestMQTTOutputActiveLow(t *testing.T) {
	client := &fakeMQTTClient{}
	b := newMQTTBoard(MQTTConfig{TopicPrefix: "leds"}, client, zerolog.Nop())

	p, err := b.Output(3, true, false)
	require.NoError(t, err)
	require.NoError(t, p.Write(true))

	assert.Equal(t, []published{
		{Topic: "leds/pin3/command", Payload: "on"},
		{Topic: "leds/pin3/command", Payload: "off"},
	}, client.published)
}

func TestMQTTWriteFailure(t *testing.T) {
	client := &fakeMQTTClient{}
	b := newMQTTBoard(MQTTConfig{TopicPrefix: "leds"}, client, zerolog.Nop())
	p, err := b.Output(1, false, false)
	require.NoError(t, err)

	client.publishErr = fmt.Errorf("not connected")
	assert.Error(t, p.Write(true))

	client.publishErr = nil
	client.hang = true
	assert.Error(t, p.Write(true))
}

func TestMQTTOutputFailureReleasesPin(t *testing.T) {
	client := &fakeMQTTClient{publishErr: fmt.Errorf("not connected")}
	b := newMQTTBoard(MQTTConfig{TopicPrefix: "leds"}, client, zerolog.Nop())
	_, err := b.Output(1, false, false)
	require.Error(t, err)

	client.publishErr = nil
	_, err = b.Output(1, false, false)
	assert.NoError(t, err)
}

func TestMQTTClose(t *testing.T) {
	client := &fakeMQTTClient{}
	b := newMQTTBoard(MQTTConfig{TopicPrefix: "leds"}, client, zerolog.Nop())
	p, err := b.Output(5, false, false)
	require.NoError(t, err)
	require.NoError(t, p.Write(true))

	require.NoError(t, b.Close())
	assert.True(t, client.disconnected)
	last := client.published[len(client.published)-1]
	assert.Equal(t, published{Topic: "leds/pin5/command", Payload: "off"}, last)
}
