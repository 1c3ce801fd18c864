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
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	// DefaultLayout is the wiring of the Pibrella board lights (BCM numbering).
	DefaultLayout = "red:27,amber:17,green:4"
)

// PinAssignment wires a named light to a board pin.
type PinAssignment struct {
	Name string
	Pin  int
}

func (a PinAssignment) String() string {
	return fmt.Sprintf("%s:%d", a.Name, a.Pin)
}

// Layout is the ordered list of lights on a board.
type Layout []PinAssignment

// ParseLayout parses a comma separated list of name:pin pairs.
// An empty string results in an empty layout.
func ParseLayout(s string) (Layout, error) {
	var result Layout
	s = strings.TrimSpace(s)
	if s == "" {
		return result, nil
	}
	for _, part := range strings.Split(s, ",") {
		name, pinStr, found := strings.Cut(strings.TrimSpace(part), ":")
		name = strings.TrimSpace(name)
		if !found || name == "" {
			return nil, errors.Wrapf(ConfigurationError, "invalid light '%s', expected name:pin", part)
		}
		pin, err := strconv.Atoi(strings.TrimSpace(pinStr))
		if err != nil || pin < 0 {
			return nil, errors.Wrapf(ConfigurationError, "invalid pin '%s' for light '%s'", pinStr, name)
		}
		result = append(result, PinAssignment{Name: name, Pin: pin})
	}
	if err := result.Validate(); err != nil {
		return nil, err
	}
	return result, nil
}

// Validate checks for duplicate names and pins.
func (l Layout) Validate() error {
	names := make(map[string]struct{})
	pins := make(map[int]string)
	for _, a := range l {
		if _, found := names[a.Name]; found {
			return errors.Wrapf(ConfigurationError, "duplicate light '%s'", a.Name)
		}
		if other, found := pins[a.Pin]; found {
			return errors.Wrapf(ConfigurationError, "pin %d used by '%s' and '%s'", a.Pin, other, a.Name)
		}
		names[a.Name] = struct{}{}
		pins[a.Pin] = a.Name
	}
	return nil
}

func (l Layout) String() string {
	parts := make([]string, 0, len(l))
	for _, a := range l {
		parts = append(parts, a.String())
	}
	return strings.Join(parts, ",")
}
