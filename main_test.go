//    Copyright 2017 Ewout Prangsma
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

package main

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/binkynet/LightBlinker/pkg/board"
	"github.com/binkynet/LightBlinker/pkg/lights"
)

func testOptions() options {
	return options{
		boardType:   board.TypeVirtual,
		layout:      lights.DefaultLayout,
		repeat:      3,
		onDuration:  time.Millisecond,
		offDuration: time.Millisecond,
		seed:        1,
		i2cAddress:  "0x20",
	}
}

func TestRunVirtual(t *testing.T) {
	assert.NoError(t, run(context.Background(), testOptions(), zerolog.Nop()))
}

func TestRunEmptyLayout(t *testing.T) {
	opts := testOptions()
	opts.layout = ""
	err := run(context.Background(), opts, zerolog.Nop())
	assert.True(t, lights.IsConfigurationError(err))
}

func TestRunZeroRepeat(t *testing.T) {
	opts := testOptions()
	opts.layout = ""
	opts.repeat = 0
	assert.NoError(t, run(context.Background(), opts, zerolog.Nop()))
}

func TestRunInvalidOptions(t *testing.T) {
	opts := testOptions()
	opts.layout = "red:27,red:17"
	assert.True(t, lights.IsConfigurationError(run(context.Background(), opts, zerolog.Nop())))

	opts = testOptions()
	opts.i2cAddress = "0x200"
	assert.True(t, lights.IsConfigurationError(run(context.Background(), opts, zerolog.Nop())))

	opts = testOptions()
	opts.repeat = -1
	assert.True(t, lights.IsConfigurationError(run(context.Background(), opts, zerolog.Nop())))

	opts = testOptions()
	opts.boardType = "pibrella"
	assert.ErrorIs(t, run(context.Background(), opts, zerolog.Nop()), board.UnknownBoardError)
}

func TestRunCanceled(t *testing.T) {
	opts := testOptions()
	opts.onDuration = time.Hour
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(time.Millisecond * 50)
		cancel()
	}()
	assert.ErrorIs(t, run(ctx, opts, zerolog.Nop()), context.Canceled)
}
