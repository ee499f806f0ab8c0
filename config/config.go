// Package config reads the hub's Lua configuration file: executed as a
// script, then mapped onto a typed struct via gluamapper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/yuin/gluamapper"
	lua "github.com/yuin/gopher-lua"

	"github.com/bitmark-inc/logger"
)

const (
	defaultTickInterval           = 30 * time.Second
	defaultPromotionDepth         = 0
	defaultMinimumWeightMagnitude = 14

	defaultLogDirectory = "log"
	defaultLogFile      = "hub.log"
	defaultLogSize      = 1024 * 1024
	defaultLogCount     = 10
)

// LedgerConfiguration describes how to reach the ledger node.
type LedgerConfiguration struct {
	RPCEndpoint string `gluamapper:"rpc_endpoint"`
	ZMQEndpoint string `gluamapper:"zmq_endpoint"`
}

// DatabaseConfiguration describes the relational store connection.
type DatabaseConfiguration struct {
	DSN string `gluamapper:"dsn"`
}

// JournalConfiguration describes the local publish journal.
type JournalConfiguration struct {
	Directory string `gluamapper:"directory"`
}

// NodeCacheConfiguration describes the node-info TTL cache.
type NodeCacheConfiguration struct {
	TTLSeconds     int `gluamapper:"ttl_seconds"`
	CleanupSeconds int `gluamapper:"cleanup_seconds"`
}

// Configuration is the top-level shape of the hub's Lua configuration
// file: the named tunables of the attachment protocol plus the ambient
// connection settings a running daemon also needs.
type Configuration struct {
	DataDirectory          string `gluamapper:"data_directory"`
	PidFile                string `gluamapper:"pidfile"`
	TickIntervalSeconds    int    `gluamapper:"tick_interval"`
	PromotionDepth         int    `gluamapper:"promotion_depth"`
	PromotionAddress       string `gluamapper:"promotion_address"`
	MinimumWeightMagnitude int    `gluamapper:"minimum_weight_magnitude"`

	Ledger    LedgerConfiguration    `gluamapper:"ledger"`
	Database  DatabaseConfiguration  `gluamapper:"database"`
	Journal   JournalConfiguration   `gluamapper:"journal"`
	NodeCache NodeCacheConfiguration `gluamapper:"node_cache"`
	Logging   logger.Configuration   `gluamapper:"logging"`
}

// TickInterval is TickIntervalSeconds as a time.Duration; zero means the
// 30-second default.
func (c *Configuration) TickInterval() time.Duration {
	if 0 == c.TickIntervalSeconds {
		return defaultTickInterval
	}
	return time.Duration(c.TickIntervalSeconds) * time.Second
}

// Load reads, executes, and maps the Lua file at path onto a
// Configuration, filling in defaults and resolving relative journal,
// log and PID-file paths against the data directory. The data directory
// is the file's own directory unless data_directory names another one;
// a relative data_directory is taken relative to the working directory.
func Load(path string) (*Configuration, error) {
	path, err := filepath.Abs(filepath.Clean(path))
	if nil != err {
		return nil, err
	}
	dataDirectory := filepath.Dir(path)

	c := &Configuration{
		DataDirectory:          ".",
		PromotionDepth:         defaultPromotionDepth,
		MinimumWeightMagnitude: defaultMinimumWeightMagnitude,
		Journal: JournalConfiguration{
			Directory: "journal",
		},
		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    map[string]string{logger.DefaultTag: "info"},
		},
	}

	if err := parseFile(path, c); nil != err {
		return nil, err
	}

	if "." == c.DataDirectory || "" == c.DataDirectory {
		c.DataDirectory = dataDirectory
	} else {
		c.DataDirectory = filepath.Clean(c.DataDirectory)
	}

	if fileInfo, err := os.Stat(c.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("data directory %q is not a directory", c.DataDirectory)
	}

	if "" == c.Ledger.RPCEndpoint {
		return nil, errors.New("ledger.rpc_endpoint is required")
	}
	if "" == c.Database.DSN {
		return nil, errors.New("database.dsn is required")
	}

	c.Journal.Directory = ensureAbsolute(c.DataDirectory, c.Journal.Directory)
	c.Logging.Directory = ensureAbsolute(c.DataDirectory, c.Logging.Directory)
	if "" != c.PidFile {
		c.PidFile = ensureAbsolute(c.DataDirectory, c.PidFile)
	}

	for _, d := range []string{c.Journal.Directory, c.Logging.Directory} {
		if err := os.MkdirAll(d, 0700); nil != err {
			return nil, err
		}
	}

	return c, nil
}

// parseFile runs path as a Lua script and maps its returned table onto
// config.
func parseFile(path string, config interface{}) error {
	L := lua.NewState()
	defer L.Close()
	L.OpenLibs()

	arg := &lua.LTable{}
	arg.Insert(0, lua.LString(path))
	L.SetGlobal("arg", arg)

	if err := L.DoFile(path); nil != err {
		return err
	}

	mapper := gluamapper.Mapper{Option: gluamapper.Option{
		NameFunc: func(s string) string { return s },
		TagName:  "gluamapper",
	}}
	return mapper.Map(L.Get(L.GetTop()).(*lua.LTable), config)
}

// ensureAbsolute joins path onto base unless it is already absolute.
func ensureAbsolute(base string, path string) string {
	if "" == path {
		return path
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
