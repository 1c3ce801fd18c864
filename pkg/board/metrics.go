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
	"strconv"

	"github.com/binkynet/LightBlinker/pkg/metrics"
)

const (
	subSystem = "board"
)

var (
	// Total number of times OutputPin.Write is called
	writeCounters = metrics.MustRegisterCounterVec(subSystem,
		"write_total",
		"Total number of times OutputPin.Write is called",
		"board", "pin")
	// Total number of times OutputPin.Write failed
	writeErrorCounters = metrics.MustRegisterCounterVec(subSystem,
		"write_error_total",
		"Total number of times OutputPin.Write failed",
		"board", "pin")
)

// countedPin wraps an output pin with write metrics.
type countedPin struct {
	board string
	pin   string
	OutputPin
}

func withMetrics(board string, pin int, p OutputPin) OutputPin {
	return &countedPin{board: board, pin: strconv.Itoa(pin), OutputPin: p}
}

func (p *countedPin) Write(value bool) error {
	writeCounters.WithLabelValues(p.board, p.pin).Inc()
	if err := p.OutputPin.Write(value); err != nil {
		writeErrorCounters.WithLabelValues(p.board, p.pin).Inc()
		return err
	}
	return nil
}

var (
	// Total number of times I2CBus.Execute is called
	i2cExecuteCounters = metrics.MustRegisterCounterVec(subSystem,
		"i2c_execute_total",
		"Total number of times I2CBus.Execute is called",
		"address")
	// Total number of times I2CBus.Execute failed
	i2cExecuteErrorCounters = metrics.MustRegisterCounterVec(subSystem,
		"i2c_execute_error_total",
		"Total number of times I2CBus.Execute failed",
		"address")
)
