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

	"github.com/ecc1/gpio"
	aerr "github.com/ewoutp/go-aggregate-error"
	"github.com/pkg/errors"
)

const (
	// TypeRaspberryPi is the board type of local Raspberry Pi GPIO.
	TypeRaspberryPi = "rpi"

	// BCM GPIO 0..27 on the 40 pin header
	rpiPinCount = 28
)

type piBoard struct {
	mutex   sync.Mutex
	outputs map[int]gpio.OutputPin
}

// NewRaspberryPiBoard implements the board for Raspberry PI's
func NewRaspberryPiBoard() (API, error) {
	return &piBoard{
		outputs: make(map[int]gpio.OutputPin),
	}, nil
}

func (p *piBoard) Name() string {
	return TypeRaspberryPi
}

// Returns number of local pins
func (p *piBoard) PinCount() int {
	return rpiPinCount
}

// Output initializes a GPIO output pin with the given pin number
// and initial logical value.
func (p *piBoard) Output(pinNumber int, activeLow bool, initialValue bool) (OutputPin, error) {
	if pinNumber < 0 || pinNumber >= rpiPinCount {
		return nil, errors.Wrapf(InvalidPinError, "Pin must be between 0 and %d, got %d", rpiPinCount-1, pinNumber)
	}
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if _, found := p.outputs[pinNumber]; found {
		return nil, errors.Wrapf(PinInUseError, "pin %d", pinNumber)
	}
	pin, err := gpio.Output(pinNumber, activeLow, initialValue)
	if err != nil {
		return nil, errors.Wrapf(err, "Output[%d] failed", pinNumber)
	}
	p.outputs[pinNumber] = pin
	return withMetrics(TypeRaspberryPi, pinNumber, pin), nil
}

// Close turns all claimed outputs off.
func (p *piBoard) Close() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	var ae aerr.AggregateError
	for pinNumber, pin := range p.outputs {
		if err := pin.Write(false); err != nil {
			ae.Add(errors.Wrapf(err, "Write[%d] failed", pinNumber))
		}
	}
	p.outputs = make(map[int]gpio.OutputPin)
	return ae.AsError()
}
