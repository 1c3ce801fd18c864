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
	"github.com/binkynet/LightBlinker/pkg/metrics"
)

const (
	subSystem = "lights"
)

var (
	// Total number of successful state changes per light
	stateChangesTotal = metrics.MustRegisterCounterVec(subSystem,
		"state_changes_total",
		"Total number of successful state changes per light",
		"light")
	// Total number of failed state changes per light
	hardwareErrorsTotal = metrics.MustRegisterCounterVec(subSystem,
		"hardware_errors_total",
		"Total number of failed state changes per light",
		"light")
	// Current state per light (1 = on)
	lightOn = metrics.MustRegisterGaugeVec(subSystem,
		"on",
		"Current state per light (1 = on)",
		"light")
)
