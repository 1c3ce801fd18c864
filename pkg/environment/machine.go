//    Copyright 2018 Ewout Prangsma
//
//    Licensed under the Apache License, Version 2.0 (the "License");
//    you may not use this file except in compliance with the License.
//    You may obtain a copy of the License at
//
//        http://www.apache.org/licenses/LICENSE-2.0
//
//    Unless required by applicable law or agreed to in writing, software
//    distributed under the License is distributed on an "AS IS" BASIS,
//    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//    See the License for the specific language governing permissions and
//    limitations under the License.

package environment

import "strings"

const (
	boardTypeRaspberryPi = "rpi"
	boardTypeVirtual     = "virtual"
)

// boardTypeForMachine maps a uname machine to a board type.
func boardTypeForMachine(machine string) string {
	machine = strings.TrimSpace(machine)
	if strings.HasPrefix(machine, "arm") || strings.HasPrefix(machine, "aarch64") {
		return boardTypeRaspberryPi
	}
	return boardTypeVirtual
}
