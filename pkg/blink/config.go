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
	"time"

	"github.com/pkg/errors"

	"github.com/binkynet/LightBlinker/pkg/lights"
)

const (
	// DefaultRepeatCount is the number of blink cycles by default.
	DefaultRepeatCount = 3
	// DefaultOnDuration is how long a light stays lit by default.
	DefaultOnDuration = time.Millisecond * 250
	// DefaultOffDuration is how long a light stays dark by default.
	DefaultOffDuration = time.Millisecond * 200
)

// Config of the blink loop
type Config struct {
	// Number of blink cycles
	RepeatCount int
	// Time a light stays lit
	OnDuration time.Duration
	// Time a light stays dark before the next cycle
	OffDuration time.Duration
}

// DefaultConfig returns 3 cycles of 250ms on, 200ms off.
func DefaultConfig() Config {
	return Config{
		RepeatCount: DefaultRepeatCount,
		OnDuration:  DefaultOnDuration,
		OffDuration: DefaultOffDuration,
	}
}

// Validate the config
func (c Config) Validate() error {
	if c.RepeatCount < 0 {
		return errors.Wrapf(lights.ConfigurationError, "repeat count must be >= 0, got %d", c.RepeatCount)
	}
	if c.OnDuration < 0 {
		return errors.Wrapf(lights.ConfigurationError, "on duration must be >= 0, got %s", c.OnDuration)
	}
	if c.OffDuration < 0 {
		return errors.Wrapf(lights.ConfigurationError, "off duration must be >= 0, got %s", c.OffDuration)
	}
	return nil
}
