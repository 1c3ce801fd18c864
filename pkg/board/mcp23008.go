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
	"context"
	"sync"

	aerr "github.com/ewoutp/go-aggregate-error"
	"github.com/pkg/errors"
)

const (
	// TypeMCP23008 is the board type of an MCP23008 I2C GPIO expander.
	TypeMCP23008 = "mcp23008"

	mcp23008PinCount = 8

	// Registry addresses with IOCON.BANK=0
	mcp23008RegIODIR = 0x00
	mcp23008RegIOCON = 0x05
	mcp23008RegGPIO  = 0x09
)

type mcp23008 struct {
	mutex   sync.Mutex
	bus     I2CBus
	address byte
	iodir   byte
	value   byte
	pins    map[int]*mcp23008Pin
}

type mcp23008Pin struct {
	board     *mcp23008
	mask      byte
	activeLow bool
}

// NewMCP23008Board opens the I2C bus at the given location and configures
// the expander at the given address with all pins as input.
func NewMCP23008Board(ctx context.Context, location string, address uint8) (API, error) {
	bus, err := NewI2CBus(location)
	if err != nil {
		return nil, maskAny(err)
	}
	b, err := newMCP23008(ctx, bus, address)
	if err != nil {
		bus.Close()
		return nil, maskAny(err)
	}
	return b, nil
}

func newMCP23008(ctx context.Context, bus I2CBus, address uint8) (*mcp23008, error) {
	b := &mcp23008{
		bus:     bus,
		address: address,
		iodir:   0xff,
		pins:    make(map[int]*mcp23008Pin),
	}
	if err := bus.Execute(ctx, address, func(ctx context.Context, dev I2CDevice) error {
		if err := dev.WriteByteReg(mcp23008RegIOCON, 0x20); err != nil {
			return err
		}
		return dev.WriteByteReg(mcp23008RegIODIR, b.iodir)
	}); err != nil {
		return nil, errors.Wrapf(err, "Configure mcp23008 at 0x%0x failed", address)
	}
	return b, nil
}

func (b *mcp23008) Name() string {
	return TypeMCP23008
}

// PinCount returns the number of pins of the device
func (b *mcp23008) PinCount() int {
	return mcp23008PinCount
}

// Output switches the pin at given index (0...) to output.
func (b *mcp23008) Output(pinNumber int, activeLow bool, initialValue bool) (OutputPin, error) {
	if pinNumber < 0 || pinNumber >= mcp23008PinCount {
		return nil, errors.Wrapf(InvalidPinError, "Pin must be between 0 and %d, got %d", mcp23008PinCount-1, pinNumber)
	}
	b.mutex.Lock()
	if _, found := b.pins[pinNumber]; found {
		b.mutex.Unlock()
		return nil, errors.Wrapf(PinInUseError, "pin %d", pinNumber)
	}
	p := &mcp23008Pin{board: b, mask: 1 << uint(pinNumber), activeLow: activeLow}
	b.pins[pinNumber] = p
	b.mutex.Unlock()

	err := p.Write(initialValue)
	if err == nil {
		err = b.update(func() { b.iodir &= ^p.mask })
	}
	if err != nil {
		b.mutex.Lock()
		delete(b.pins, pinNumber)
		b.mutex.Unlock()
		return nil, maskAny(err)
	}
	return withMetrics(TypeMCP23008, pinNumber, p), nil
}

// Close turns all outputs off, restores all pins to input and closes the bus.
func (b *mcp23008) Close() error {
	var ae aerr.AggregateError
	b.mutex.Lock()
	pins := make([]*mcp23008Pin, 0, len(b.pins))
	for _, p := range b.pins {
		pins = append(pins, p)
	}
	b.mutex.Unlock()
	for _, p := range pins {
		ae.Add(p.Write(false))
	}
	ae.Add(b.update(func() { b.iodir = 0xff }))
	ae.Add(b.bus.Close())
	return ae.AsError()
}

// update applies the given change to the cached registers and writes them.
func (b *mcp23008) update(change func()) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	change()
	return b.bus.Execute(context.Background(), b.address, func(ctx context.Context, dev I2CDevice) error {
		if err := dev.WriteByteReg(mcp23008RegGPIO, b.value); err != nil {
			return err
		}
		return dev.WriteByteReg(mcp23008RegIODIR, b.iodir)
	})
}

// Write the logical value of the pin
func (p *mcp23008Pin) Write(value bool) error {
	b := p.board
	return b.update(func() {
		if value != p.activeLow {
			b.value |= p.mask
		} else {
			b.value &= ^p.mask
		}
	})
}
