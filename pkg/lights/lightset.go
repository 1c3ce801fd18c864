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

package lights

import (
	"context"
	"time"

	aerr "github.com/ewoutp/go-aggregate-error"
	"github.com/mattn/go-pubsub"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/binkynet/LightBlinker/pkg/board"
)

// RandomSource is the part of math/rand used to select lights.
type RandomSource interface {
	// Intn returns a uniform number in [0,n).
	Intn(n int) int
}

// StateChange is published after a light changed state.
type StateChange struct {
	Light string
	Pin   int
	On    bool
	Time  time.Time
}

// Config of a LightSet
type Config struct {
	// Wiring of the lights
	Layout Layout
	// If set, a light is on when its pin is low
	ActiveLow bool
}

// Dependencies of a LightSet
type Dependencies struct {
	Log   zerolog.Logger
	Board board.API
}

// LightSet is the fixed collection of lights on the attached board.
type LightSet struct {
	log     zerolog.Logger
	lights  []*Light
	changes *pubsub.PubSub
}

// New claims an output on the board for every light in the layout.
// All lights start off.
func New(conf Config, deps Dependencies) (*LightSet, error) {
	if err := conf.Layout.Validate(); err != nil {
		return nil, err
	}
	s := &LightSet{
		log:     deps.Log.With().Str("component", "lights").Logger(),
		lights:  make([]*Light, 0, len(conf.Layout)),
		changes: pubsub.New(),
	}
	for i, a := range conf.Layout {
		if a.Pin >= deps.Board.PinCount() {
			return nil, errors.Wrapf(ConfigurationError, "pin %d of light '%s' exceeds %d pins of %s board",
				a.Pin, a.Name, deps.Board.PinCount(), deps.Board.Name())
		}
		out, err := deps.Board.Output(a.Pin, conf.ActiveLow, false)
		if err != nil {
			return nil, maskAny(&HardwareError{Light: a.Name, Err: err})
		}
		s.lights = append(s.lights, &Light{
			ID:   i,
			Name: a.Name,
			Pin:  a.Pin,
			out:  out,
		})
		lightOn.WithLabelValues(a.Name).Set(0)
	}
	s.log.Debug().Str("layout", conf.Layout.String()).Msg("Lights configured")
	return s, nil
}

// Lights returns all lights in wiring order.
func (s *LightSet) Lights() []*Light {
	return append([]*Light(nil), s.lights...)
}

// Len returns the number of lights.
func (s *LightSet) Len() int {
	return len(s.lights)
}

// SelectRandom returns a light chosen uniformly using the given source.
func (s *LightSet) SelectRandom(rnd RandomSource) (*Light, error) {
	if len(s.lights) == 0 {
		return nil, errors.Wrap(ConfigurationError, "no lights configured")
	}
	return s.lights[rnd.Intn(len(s.lights))], nil
}

// SetState turns the given light on or off.
func (s *LightSet) SetState(light *Light, on bool) error {
	if light == nil || light.ID < 0 || light.ID >= len(s.lights) || s.lights[light.ID] != light {
		return errors.Wrapf(ConfigurationError, "light %v is not part of this set", light)
	}
	if err := light.write(on); err != nil {
		hardwareErrorsTotal.WithLabelValues(light.Name).Inc()
		return maskAny(&HardwareError{Light: light.Name, Err: err})
	}
	stateChangesTotal.WithLabelValues(light.Name).Inc()
	if on {
		lightOn.WithLabelValues(light.Name).Set(1)
	} else {
		lightOn.WithLabelValues(light.Name).Set(0)
	}
	s.changes.Pub(StateChange{
		Light: light.Name,
		Pin:   light.Pin,
		On:    on,
		Time:  time.Now(),
	})
	return nil
}

// Acquire turns the given light on until the returned guard is released.
func (s *LightSet) Acquire(light *Light) (*Guard, error) {
	return Acquire(s, light)
}

// Off turns all lights off.
func (s *LightSet) Off() error {
	var ae aerr.AggregateError
	for _, l := range s.lights {
		ae.Add(s.SetState(l, false))
	}
	return ae.AsError()
}

// Subscribe registers a callback that is invoked asynchronously
// for every state change.
func (s *LightSet) Subscribe(cb func(StateChange)) context.CancelFunc {
	wcb := func(x StateChange) {
		cb(x)
	}
	s.changes.Sub(wcb)
	return func() {
		s.changes.Leave(wcb)
	}
}
