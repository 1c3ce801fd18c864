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

	"github.com/pkg/errors"
)

var (
	// ConfigurationError is returned when the light configuration is
	// invalid or empty.
	ConfigurationError = errors.New("configuration error")
	maskAny            = errors.WithStack
)

// HardwareError is returned when the state of a light cannot be set.
type HardwareError struct {
	// Name of the light
	Light string
	// Underlying driver error
	Err error
}

func (e *HardwareError) Error() string {
	return fmt.Sprintf("hardware error on light '%s': %v", e.Light, e.Err)
}

// Unwrap returns the underlying driver error.
func (e *HardwareError) Unwrap() error {
	return e.Err
}

// IsConfigurationError returns true if the given error is caused by
// a ConfigurationError.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ConfigurationError)
}

// IsHardwareError returns true if the given error is caused by
// a HardwareError.
func IsHardwareError(err error) bool {
	var he *HardwareError
	return errors.As(err, &he)
}
