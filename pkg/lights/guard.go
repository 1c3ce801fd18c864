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

// StateSetter sets the state of a light.
type StateSetter interface {
	SetState(light *Light, on bool) error
}

// Guard keeps a light on until it is released.
type Guard struct {
	setter   StateSetter
	light    *Light
	released bool
	err      error
}

// Acquire turns the given light on and returns a guard whose Release
// turns it off again.
// When turning the light on fails, a best-effort off is attempted and
// the original error is returned.
func Acquire(setter StateSetter, light *Light) (*Guard, error) {
	if err := setter.SetState(light, true); err != nil {
		setter.SetState(light, false)
		return nil, err
	}
	return &Guard{
		setter: setter,
		light:  light,
	}, nil
}

// Light returns the guarded light.
func (g *Guard) Light() *Light {
	return g.light
}

// Release turns the light off.
// Only the first call writes; later calls return the first result.
func (g *Guard) Release() error {
	if g.released {
		return g.err
	}
	g.released = true
	g.err = g.setter.SetState(g.light, false)
	return g.err
}
