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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeI2CBus struct {
	regs   map[uint8]uint8
	fail   error
	closed bool
}

func newFakeI2CBus() *fakeI2CBus {
	return &fakeI2CBus{regs: make(map[uint8]uint8)}
}

func (b *fakeI2CBus) Execute(ctx context.Context, address uint8, op func(ctx context.Context, dev I2CDevice) error) error {
	if b.fail != nil {
		return b.fail
	}
	return op(ctx, b)
}

func (b *fakeI2CBus) Close() error {
	b.closed = true
	return nil
}

func (b *fakeI2CBus) ReadByteReg(reg uint8) (uint8, error) {
	return b.regs[reg], nil
}

func (b *fakeI2CBus) WriteByteReg(reg uint8, val uint8) error {
	b.regs[reg] = val
	return nil
}

func TestMCP23008Configure(t *testing.T) {
	bus := newFakeI2CBus()
	_, err := newMCP23008(context.Background(), bus, 0x20)
	require.NoError(t, err)
	assert.Equal(t, uint8(0x20), bus.regs[mcp23008RegIOCON])
	assert.Equal(t, uint8(0xff), bus.regs[mcp23008RegIODIR])
}

func TestMCP23008Output(t *testing.T) {
	bus := newFakeI2CBus()
	b, err := newMCP23008(context.Background(), bus, 0x20)
	require.NoError(t, err)

	p, err := b.Output(2, false, false)
	require.NoError(t, err)
	assert.Equal(t, uint8(0xfb), bus.regs[mcp23008RegIODIR])

	require.NoError(t, p.Write(true))
	assert.Equal(t, uint8(0x04), bus.regs[mcp23008RegGPIO])
	require.NoError(t, p.Write(false))
	assert.Equal(t, uint8(0x00), bus.regs[mcp23008RegGPIO])
}

func TestMCP23008OutputActiveLow(t *testing.T) {
	bus := newFakeI2CBus()
	b, err := newMCP23008(context.Background(), bus, 0x20)
	require.NoError(t, err)

	p, err := b.Output(0, true, false)
	require.NoError(t, err)
	assert.Equal(t, uint8(0x01), bus.regs[mcp23008RegGPIO])
	require.NoError(t, p.Write(true))
	assert.Equal(t, uint8(0x00), bus.regs[mcp23008RegGPIO])
}

func TestMCP23008InvalidPin(t *testing.T) {
	b, err := newMCP23008(context.Background(), newFakeI2CBus(), 0x20)
	require.NoError(t, err)
	_, err = b.Output(8, false, false)
	assert.Error(t, err)
}

func TestMCP23008BusFailure(t *testing.T) {
	bus := newFakeI2CBus()
	b, err := newMCP23008(context.Background(), bus, 0x20)
	require.NoError(t, err)
	p, err := b.Output(1, false, false)
	require.NoError(t, err)

	bus.fail = fmt.Errorf("nack")
	assert.Error(t, p.Write(true))
}

func TestMCP23008Close(t *testing.T) {
	bus := newFakeI2CBus()
	b, err := newMCP23008(context.Background(), bus, 0x20)
	require.NoError(t, err)
	p, err := b.Output(1, false, false)
	require.NoError(t, err)
	require.NoError(t, p.Write(true))

	require.NoError(t, b.Close())
	assert.Equal(t, uint8(0x00), bus.regs[mcp23008RegGPIO])
	assert.Equal(t, uint8(0xff), bus.regs[mcp23008RegIODIR])
	assert.True(t, bus.closed)
}
