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

package blink

import (
	"context"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/binkynet/LightBlinker/pkg/lights"
)

var (
	maskAny = errors.WithStack
)

// LightSet is the part of lights.LightSet used by the loop.
type LightSet interface {
	SelectRandom(rnd lights.RandomSource) (*lights.Light, error)
	SetState(light *lights.Light, on bool) error
}

// Dependencies of the loop
type Dependencies struct {
	Log     zerolog.Logger
	Lights  LightSet
	Random  lights.RandomSource
	Sleeper Sleeper
	// OnState is called (if set) when the loop enters a state.
	// The light is nil for SELECT and DONE.
	OnState func(State, *lights.Light)
}

// Loop blinks randomly selected lights a fixed number of times.
type Loop struct {
	Config
	Dependencies
}

// NewLoop creates a blink loop.
func NewLoop(conf Config, deps Dependencies) (*Loop, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	if deps.Lights == nil {
		return nil, errors.Wrap(lights.ConfigurationError, "lights missing")
	}
	if deps.Random == nil {
		return nil, errors.Wrap(lights.ConfigurationError, "random source missing")
	}
	if deps.Sleeper == nil {
		deps.Sleeper = TimerSleeper{}
	}
	deps.Log = deps.Log.With().Str("component", "blink").Logger()
	return &Loop{
		Config:       conf,
		Dependencies: deps,
	}, nil
}

// Run all blink cycles.
// The first error aborts the remaining cycles.
func (l *Loop) Run(ctx context.Context) error {
	l.Log.Debug().
		Int("repeat", l.RepeatCount).
		Dur("on", l.OnDuration).
		Dur("off", l.OffDuration).
		Msg("Starting blink loop")
	for i := 0; i < l.RepeatCount; i++ {
		if err := l.cycle(ctx, i); err != nil {
			cycleFailuresTotal.Inc()
			l.Log.Debug().Err(err).Msgf("%s blink cycle failed", humanize.Ordinal(i+1))
			return err
		}
		cyclesTotal.Inc()
	}
	l.notify(StateDone, nil)
	l.Log.Debug().Int("cycles", l.RepeatCount).Msg("Blink loop done")
	return nil
}

// cycle runs a single select, on, pause, off, pause sequence.
func (l *Loop) cycle(ctx context.Context, index int) error {
	if err := ctx.Err(); err != nil {
		return maskAny(err)
	}
	l.notify(StateSelect, nil)
	light, err := l.Lights.SelectRandom(l.Random)
	if err != nil {
		return maskAny(err)
	}
	log := l.Log.With().Str("light", light.Name).Logger()
	log.Debug().Msgf("%s blink cycle", humanize.Ordinal(index+1))

	l.notify(StateOn, light)
	guard, err := lights.Acquire(l.Lights, light)
	if err != nil {
		return maskAny(err)
	}
	released := false
	defer func() {
		if !released {
			// Never leave a light on after an abort
			if err := guard.Release(); err != nil {
				log.Warn().Err(err).Msg("Failed to turn light off")
			}
		}
	}()

	l.notify(StatePauseOn, light)
	if err := l.Sleeper.Sleep(ctx, l.OnDuration); err != nil {
		return maskAny(err)
	}

	l.notify(StateOff, light)
	released = true
	if err := guard.Release(); err != nil {
		return maskAny(err)
	}

	l.notify(StatePauseOff, light)
	if err := l.Sleeper.Sleep(ctx, l.OffDuration); err != nil {
		return maskAny(err)
	}
	return nil
}

func (l *Loop) notify(state State, light *lights.Light) {
	if cb := l.OnState; cb != nil {
		cb(state, light)
	}
}
