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

// State of a blink cycle
type State int

const (
	StateSelect State = iota
	StateOn
	StatePauseOn
	StateOff
	StatePauseOff
	StateDone
)

func (s State) String() string {
	switch s {
	case StateSelect:
		return "SELECT"
	case StateOn:
		return "ON"
	case StatePauseOn:
		return "PAUSE_ON"
	case StateOff:
		return "OFF"
	case StatePauseOff:
		return "PAUSE_OFF"
	case StateDone:
		return "DONE"
	default:
		return "UNKNOWN"
	}
}
