package main

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/fulldump/goconfig"
	"go.uber.org/zap"
)

type Config struct {
	Test       string  `usage:"name of the test: ALL | LIST | TEARDOWN | MAP"`
	N          int     `usage:"number of items"`
	OffHeap    bool    `usage:"keep nodes and entries in an anonymous memory mapping"`
	Buckets    int     `usage:"initial number of map buckets"`
	LoadFactor float64 `usage:"grow the map above this load factor, 0 keeps buckets fixed"`
	Hasher     string  `usage:"string hasher: SUM | XXHASH | SIPHASH"`
	Verify     bool    `usage:"check map contents against an ordered reference"`
	Progress   bool    `usage:"render live progress"`
	Debug      bool    `usage:"debug logging"`
	ShowConfig bool    `usage:"print config"`
}

func main() {

	c := Config{
		Test:     "ALL",
		N:        200_000,
		Buckets:  30,
		Hasher:   "SUM",
		Verify:   true,
		Progress: true,
	}
	goconfig.Read(&c)

	logger := newLogger(c.Debug)
	defer logger.Sync()

	if c.ShowConfig {
		e := json.NewEncoder(os.Stdout)
		e.SetIndent("", "    ")
		e.Encode(c)
	}

	var err error

	switch strings.ToUpper(c.Test) {
	case "ALL":
		if err = TestList(c, logger); err != nil {
			break
		}

		if err = TestTeardown(c, logger); err != nil {
			break
		}

		err = TestMap(c, logger)
	case "LIST":
		err = TestList(c, logger)
	case "TEARDOWN":
		err = TestTeardown(c, logger)
	case "MAP":
		err = TestMap(c, logger)
	default:
		logger.Fatal("Unknown test.", zap.String("test", c.Test))
	}

	if err != nil {
		logger.Fatal("Test failed.", zap.String("test", c.Test), zap.Error(err))
	}
}

func newLogger(debug bool) *zap.Logger {
	conf := zap.NewDevelopmentConfig()

	if !debug {
		conf.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	logger, err := conf.Build()

	if err != nil {
		panic(err)
	}

	return logger
}
