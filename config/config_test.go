package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/hub/config"
)

const fixture = `
return {
	data_directory = ".",
	promotion_address = "PROMOTIONADDRESSAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA",

	ledger = {
		rpc_endpoint = "http://127.0.0.1:14265",
		zmq_endpoint = "tcp://127.0.0.1:5556",
	},

	database = {
		dsn = "postgres://hub@localhost/hub",
	},
}
`

func writeFixture(t *testing.T, dir string, body string) string {
	path := filepath.Join(dir, "hub.conf")
	assert.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, fixture)

	c, err := config.Load(path)
	assert.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:14265", c.Ledger.RPCEndpoint)
	assert.Equal(t, "postgres://hub@localhost/hub", c.Database.DSN)
	assert.Equal(t, 14, c.MinimumWeightMagnitude, "default minimum weight magnitude")
	assert.Equal(t, dir, c.DataDirectory)
	assert.Equal(t, filepath.Join(dir, "journal"), c.Journal.Directory)
	assert.Equal(t, filepath.Join(dir, "log"), c.Logging.Directory)
	assert.DirExists(t, c.Journal.Directory)
	assert.DirExists(t, c.Logging.Directory)
}

func TestLoadMissingRPCEndpointIsError(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, `
return {
	data_directory = ".",
	database = { dsn = "postgres://hub@localhost/hub" },
}
`)

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestLoadMissingDatabaseDSNIsError(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, `
return {
	data_directory = ".",
	ledger = { rpc_endpoint = "http://127.0.0.1:14265" },
}
`)

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestLoadOverridesTickInterval(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, `
return {
	data_directory = ".",
	tick_interval = 5,
	ledger = { rpc_endpoint = "http://127.0.0.1:14265" },
	database = { dsn = "postgres://hub@localhost/hub" },
}
`)

	c, err := config.Load(path)
	assert.NoError(t, err)
	assert.Equal(t, 5, c.TickIntervalSeconds)
}
