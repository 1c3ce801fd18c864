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

import "github.com/pkg/errors"

var (
	// InvalidPinError is returned when a pin number is out of range for a board.
	InvalidPinError = errors.New("invalid pin")
	// PinInUseError is returned when an output is claimed twice.
	PinInUseError = errors.New("pin already in use")
	// UnknownBoardError is returned for an unsupported board type.
	UnknownBoardError = errors.New("unknown board type")
	maskAny           = errors.WithStack
)
