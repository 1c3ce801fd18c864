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
	"fmt"
	"sync"

	"github.com/binkynet/LightBlinker/pkg/board"
)

// Light is a single controllable output on the board.
type Light struct {
	// Index in the set, matches wiring order
	ID int
	// Name of the light (e.g. red)
	Name string
	// Pin number on the board
	Pin int

	out   board.OutputPin
	mutex sync.Mutex
	on    bool
}

// IsOn returns the last successfully written state.
func (l *Light) IsOn() bool {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return l.on
}

func (l *Light) String() string {
	return fmt.Sprintf("%s (pin %d)", l.Name, l.Pin)
}

func (l *Light) write(on bool) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if err := l.out.Write(on); err != nil {
		return err
	}
	l.on = on
	return nil
}
