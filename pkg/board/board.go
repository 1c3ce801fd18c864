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
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/binkynet/LightBlinker/pkg/environment"
)

const (
	// TypeAuto selects the board type from the environment.
	TypeAuto = "auto"
)

// Config selects and configures the board to open.
type Config struct {
	// Type of board (auto|rpi|virtual|mqtt|mcp23008)
	Type string
	// MQTT settings, used by the mqtt board
	MQTT MQTTConfig
	// Location of the I2C bus device, used by the mcp23008 board
	I2CBus string
	// Address of the expander on the I2C bus, used by the mcp23008 board
	I2CAddress uint8
}

// Types returns all supported board types.
func Types() []string {
	return []string{TypeAuto, TypeRaspberryPi, TypeVirtual, TypeMQTT, TypeMCP23008}
}

// Open initializes the board described by the given config.
// The caller must Close the returned board at exit.
func Open(ctx context.Context, cfg Config, log zerolog.Logger) (API, error) {
	boardType := cfg.Type
	if boardType == TypeAuto || boardType == "" {
		boardType = environment.AutoDetectBoardType(log)
		log.Debug().Str("board", boardType).Msg("Detected board type")
	}
	switch boardType {
	case TypeRaspberryPi:
		br, err := NewRaspberryPiBoard()
		if err != nil {
			return nil, errors.Wrap(err, "Failed to initialize Raspberry Pi board")
		}
		return br, nil
	case TypeVirtual:
		return NewVirtualBoard(log), nil
	case TypeMQTT:
		br, err := NewMQTTBoard(cfg.MQTT, log)
		if err != nil {
			return nil, errors.Wrap(err, "Failed to initialize MQTT board")
		}
		return br, nil
	case TypeMCP23008:
		br, err := NewMCP23008Board(ctx, cfg.I2CBus, cfg.I2CAddress)
		if err != nil {
			return nil, errors.Wrap(err, "Failed to initialize MCP23008 board")
		}
		return br, nil
	default:
		return nil, errors.Wrapf(UnknownBoardError, "'%s' (%v)", boardType, Types())
	}
}
