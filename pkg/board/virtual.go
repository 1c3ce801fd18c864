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
	"sync"

	aerr "github.com/ewoutp/go-aggregate-error"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	// TypeVirtual is the board type of the in-memory board.
	TypeVirtual = "virtual"

	virtualPinCount = 32
)

// Write is a single recorded write on a virtual board.
type Write struct {
	Pin   int
	Value bool
}

// VirtualBoard keeps pin state in memory.
// It is used for dry runs on machines without GPIO and in tests.
type VirtualBoard struct {
	log      zerolog.Logger
	mutex    sync.Mutex
	pins     map[int]*virtualPin
	failures map[int]error
	writes   []Write
}

type virtualPin struct {
	board     *VirtualBoard
	number    int
	activeLow bool
	value     bool
}

// NewVirtualBoard implements the board for a virtual worker.
func NewVirtualBoard(log zerolog.Logger) *VirtualBoard {
	return &VirtualBoard{
		log:      log.With().Str("board", TypeVirtual).Logger(),
		pins:     make(map[int]*virtualPin),
		failures: make(map[int]error),
	}
}

func (b *VirtualBoard) Name() string {
	return TypeVirtual
}

// Returns number of local pins
func (b *VirtualBoard) PinCount() int {
	return virtualPinCount
}

// Output initializes a virtual output pin with the given pin number
// and initial logical value.
func (b *VirtualBoard) Output(pinNumber int, activeLow bool, initialValue bool) (OutputPin, error) {
	if pinNumber < 0 || pinNumber >= virtualPinCount {
		return nil, errors.Wrapf(InvalidPinError, "Pin must be between 0 and %d, got %d", virtualPinCount-1, pinNumber)
	}
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if _, found := b.pins[pinNumber]; found {
		return nil, errors.Wrapf(PinInUseError, "pin %d", pinNumber)
	}
	p := &virtualPin{
		board:     b,
		number:    pinNumber,
		activeLow: activeLow,
		value:     initialValue,
	}
	b.pins[pinNumber] = p
	return withMetrics(TypeVirtual, pinNumber, p), nil
}

// FailPin makes all following writes to the given pin fail with the given error.
// Passing a nil error clears the failure.
func (b *VirtualBoard) FailPin(pinNumber int, err error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if err == nil {
		delete(b.failures, pinNumber)
	} else {
		b.failures[pinNumber] = err
	}
}

// Value returns the logical value of the given pin.
func (b *VirtualBoard) Value(pinNumber int) (bool, bool) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	p, found := b.pins[pinNumber]
	if !found {
		return false, false
	}
	return p.value, true
}

// Writes returns a copy of all successful writes in order.
func (b *VirtualBoard) Writes() []Write {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	return append([]Write(nil), b.writes...)
}

// Close turns all claimed outputs off.
func (b *VirtualBoard) Close() error {
	b.mutex.Lock()
	pins := make([]*virtualPin, 0, len(b.pins))
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
	return ae.AsError()
}

// Write the logical value of the pin
func (p *virtualPin) Write(value bool) error {
	b := p.board
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if err := b.failures[p.number]; err != nil {
		return errors.Wrapf(err, "Write[%d] failed", p.number)
	}
	if p.value != value {
		b.log.Debug().
			Int("pin", p.number).
			Bool("value", value).
			Bool("active-low", p.activeLow).
			Msg("Pin state changed")
	}
	p.value = value
	b.writes = append(b.writes, Write{Pin: p.number, Value: value})
	return nil
}
