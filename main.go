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
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	terminate "github.com/pulcy/go-terminate"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/binkynet/LightBlinker/pkg/blink"
	"github.com/binkynet/LightBlinker/pkg/board"
	"github.com/binkynet/LightBlinker/pkg/lights"
	"github.com/binkynet/LightBlinker/pkg/logging"
	"github.com/binkynet/LightBlinker/pkg/server"
)

const (
	projectName = "BinkyNet Light Blinker"
)

var (
	projectVersion = "dev"
	projectBuild   = "dev"
)

type options struct {
	level       string
	logFile     string
	boardType   string
	layout      string
	activeLow   bool
	repeat      int
	onDuration  time.Duration
	offDuration time.Duration
	seed        int64
	mqttBroker  string
	mqttPrefix  string
	i2cBus      string
	i2cAddress  string
	host        string
	metricsPort int
}

func main() {
	var opts options
	pflag.StringVarP(&opts.level, "level", "l", "info", "Set log level")
	pflag.StringVar(&opts.logFile, "log-file", "", "Also write logs to this file")
	pflag.StringVarP(&opts.boardType, "board", "b", board.TypeAuto, "Type of board to use ("+strings.Join(board.Types(), "|")+")")
	pflag.StringVar(&opts.layout, "lights", lights.DefaultLayout, "Lights on the board as name:pin,...")
	pflag.BoolVar(&opts.activeLow, "active-low", false, "Lights are on when their pin is low")
	pflag.IntVarP(&opts.repeat, "repeat", "n", blink.DefaultRepeatCount, "Number of blink cycles")
	pflag.DurationVar(&opts.onDuration, "on", blink.DefaultOnDuration, "Time a light stays lit")
	pflag.DurationVar(&opts.offDuration, "off", blink.DefaultOffDuration, "Time a light stays dark")
	pflag.Int64Var(&opts.seed, "seed", 0, "Seed of the light selection (0 = time based)")
	pflag.StringVar(&opts.mqttBroker, "mqtt-broker", "localhost:1883", "Address of the MQTT broker (mqtt board)")
	pflag.StringVar(&opts.mqttPrefix, "mqtt-prefix", "blinker", "Topic prefix of the pins (mqtt board)")
	pflag.StringVar(&opts.i2cBus, "i2c-bus", "/dev/i2c-1", "Location of the I2C bus (mcp23008 board)")
	pflag.StringVar(&opts.i2cAddress, "i2c-address", "0x20", "Address of the expander on the I2C bus (mcp23008 board)")
	pflag.StringVar(&opts.host, "host", "0.0.0.0", "Host address the metrics server will listen on")
	pflag.IntVar(&opts.metricsPort, "metrics-port", 0, "Port the metrics server will listen on (0 = disabled)")
	pflag.Parse()

	logger, logCloser, err := logging.NewLogger(os.Stderr, opts.level, opts.logFile)
	if err != nil {
		Exitf("Failed to initialize logging: %v\n", err)
	}
	defer logCloser.Close()

	// Prepare to shutdown in a controlled manor
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	t := terminate.NewTerminator(func(template string, args ...interface{}) {
		logger.Info().Msgf(template, args...)
	}, cancel)
	go t.ListenSignals()

	logger.Debug().Msgf("Starting %s (version %s build %s)", projectName, projectVersion, projectBuild)
	if err := run(ctx, opts, logger); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info().Msg("Interrupted")
			return
		}
		logCloser.Close()
		Exitf("Blinking failed: %v\n", err)
	}
}

// run opens the board, blinks the lights and closes the board again.
func run(ctx context.Context, opts options, logger zerolog.Logger) (result error) {
	layout, err := lights.ParseLayout(opts.layout)
	if err != nil {
		return err
	}
	i2cAddress, err := strconv.ParseUint(opts.i2cAddress, 0, 7)
	if err != nil {
		return errors.Wrapf(lights.ConfigurationError, "invalid i2c address '%s'", opts.i2cAddress)
	}
	hostname, _ := os.Hostname()

	br, err := board.Open(ctx, board.Config{
		Type: opts.boardType,
		MQTT: board.MQTTConfig{
			BrokerAddress: opts.mqttBroker,
			TopicPrefix:   opts.mqttPrefix,
			ClientID:      fmt.Sprintf("blinker-%s-%d", hostname, os.Getpid()),
		},
		I2CBus:     opts.i2cBus,
		I2CAddress: uint8(i2cAddress),
	}, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := br.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close board")
			if result == nil {
				result = err
			}
		}
	}()
	logger.Info().Str("board", br.Name()).Str("lights", layout.String()).Msg("Board ready")

	ls, err := lights.New(lights.Config{
		Layout:    layout,
		ActiveLow: opts.activeLow,
	}, lights.Dependencies{
		Log:   logger,
		Board: br,
	})
	if err != nil {
		return err
	}
	defer ls.Off()
	stopLogging := ls.Subscribe(func(x lights.StateChange) {
		logger.Debug().
			Str("light", x.Light).
			Int("pin", x.Pin).
			Bool("on", x.On).
			Time("at", x.Time).
			Msg("Light changed")
	})
	defer stopLogging()

	seed := opts.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Debug().Int64("seed", seed).Msg("Seeded light selection")
	loop, err := blink.NewLoop(blink.Config{
		RepeatCount: opts.repeat,
		OnDuration:  opts.onDuration,
		OffDuration: opts.offDuration,
	}, blink.Dependencies{
		Log:    logger,
		Lights: ls,
		Random: rand.New(rand.NewSource(seed)),
	})
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	loopCtx, loopDone := context.WithCancel(ctx)
	if opts.metricsPort > 0 {
		srv := server.New(server.Config{
			Host: opts.host,
			Port: opts.metricsPort,
		}, logger)
		g.Go(func() error { return srv.Run(loopCtx) })
	}
	g.Go(func() error {
		defer loopDone()
		return loop.Run(loopCtx)
	})
	return g.Wait()
}

// Print the given error message and exit with code 1
func Exitf(message string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, message, args...)
	os.Exit(1)
}
