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
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVirtualOutput(t *testing.T) {
	b := NewVirtualBoard(zerolog.Nop())
	p, err := b.Output(4, false, false)
	require.NoError(t, err)

	require.NoError(t, p.Write(true))
	value, found := b.Value(4)
	assert.True(t, found)
	assert.True(t, value)

	require.NoError(t, p.Write(false))
	value, _ = b.Value(4)
	assert.False(t, value)

	assert.Equal(t, []Write{{Pin: 4, Value: true}, {Pin: 4, Value: false}}, b.Writes())
}

func TestVirtualOutputInvalidPin(t *testing.T) {
	b := NewVirtualBoard(zerolog.Nop())
	_, err := b.Output(-1, false, false)
	assert.True(t, errors.Is(err, InvalidPinError))
	_, err = b.Output(b.PinCount(), false, false)
	assert.True(t, errors.Is(err, InvalidPinError))
}

func TestVirtualOutputTwice(t *testing.T) {
	b := NewVirtualBoard(zerolog.Nop())
	_, err := b.Output(17, false, false)
	require.NoError(t, err)
	_, err = b.Output(17, false, false)
	assert.True(t, errors.Is(err, PinInUseError))
}

func TestVirtualFailPin(t *testing.T) {
	b := NewVirtualBoard(zerolog.Nop())
	p, err := b.Output(27, false, false)
	require.NoError(t, err)

	failure := fmt.Errorf("disconnected")
	b.FailPin(27, failure)
	err = p.Write(true)
	assert.True(t, errors.Is(err, failure))
	value, _ := b.Value(27)
	assert.False(t, value)
	assert.Empty(t, b.Writes())

	b.FailPin(27, nil)
	assert.NoError(t, p.Write(true))
}

func TestVirtualWriteMetrics(t *testing.T) {
	b := NewVirtualBoard(zerolog.Nop())
	p, err := b.Output(11, false, false)
	require.NoError(t, err)
	before := testutil.ToFloat64(writeCounters.WithLabelValues(TypeVirtual, "11"))
	beforeErr := testutil.ToFloat64(writeErrorCounters.WithLabelValues(TypeVirtual, "11"))

	require.NoError(t, p.Write(true))
	b.FailPin(11, fmt.Errorf("broken"))
	assert.Error(t, p.Write(false))

	assert.Equal(t, before+2, testutil.ToFloat64(writeCounters.WithLabelValues(TypeVirtual, "11")))
	assert.Equal(t, beforeErr+1, testutil.ToFloat64(writeErrorCounters.WithLabelValues(TypeVirtual, "11")))
}

func TestVirtualClose(t *testing.T) {
	b := NewVirtualBoard(zerolog.Nop())
	red, err := b.Output(27, false, false)
	require.NoError(t, err)
	green, err := b.Output(4, false, false)
	require.NoError(t, err)
	require.NoError(t, red.Write(true))
	require.NoError(t, green.Write(true))

	require.NoError(t, b.Close())
	value, _ := b.Value(27)
	assert.False(t, value)
	value, _ = b.Value(4)
	assert.False(t, value)
}

func TestVirtualCloseAggregatesErrors(t *testing.T) {
	b := NewVirtualBoard(zerolog.Nop())
	_, err := b.Output(1, false, false)
	require.NoError(t, err)
	_, err = b.Output(2, false, false)
	require.NoError(t, err)
	b.FailPin(1, fmt.Errorf("pin1 broken"))
	b.FailPin(2, fmt.Errorf("pin2 broken"))

	err = b.Close()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pin1 broken")
	assert.Contains(t, err.Error(), "pin2 broken")
}

func TestOpen(t *testing.T) {
	b, err := Open(context.Background(), Config{Type: TypeVirtual}, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, TypeVirtual, b.Name())

	_, err = Open(context.Background(), Config{Type: "pibrella"}, zerolog.Nop())
	assert.True(t, errors.Is(err, UnknownBoardError))
}
