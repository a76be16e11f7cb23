package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

type ConfigTestSuite struct {
	suite.Suite
}

func (s *ConfigTestSuite) TestDefaults() {
	config := Default()
	require.NotNil(s.T(), config)
	require.Equal(s.T(), "Baby Spirit", config.Ledger.Name)
	require.Equal(s.T(), "BabySpirit", config.Ledger.Symbol)
	require.Equal(s.T(), "ipfs.io/ipfs/", config.Ledger.BaseURI)
	require.Equal(s.T(), uint64(1000), config.Ledger.MaxSupply)
	require.Equal(s.T(), uint64(10), config.Ledger.MaxBatchSize)
	require.Equal(s.T(), uint64(0), config.Ledger.FirstTokenId)
	require.Equal(s.T(), "0", config.Ledger.MintPrice)
	require.Equal(s.T(), 30*time.Second, config.StopTimeout)
	require.Equal(s.T(), "0.0.0.0:4000", config.Gateway.RESTListenAddress)
	require.False(s.T(), config.Journal.Enabled)
	require.False(s.T(), config.Redis.Enabled)
	require.Equal(s.T(), 1, config.Redis.MaxWorkers)
	require.Equal(s.T(), time.Second, config.Journal.MaxTimeInQueue)
}

func (s *ConfigTestSuite) TestEnvOverride() {
	s.T().Setenv("MINTER_LEDGER_MAX_SUPPLY", "20")
	s.T().Setenv("MINTER_LEDGER_MINT_PRICE", "1000000000000000000")
	s.T().Setenv("MINTER_JOURNAL_ENABLED", "true")

	config, err := Load("")
	require.Nil(s.T(), err)
	require.Equal(s.T(), uint64(20), config.Ledger.MaxSupply)
	require.Equal(s.T(), "1000000000000000000", config.Ledger.MintPrice)
	require.True(s.T(), config.Journal.Enabled)
}

func (s *ConfigTestSuite) TestLoadFile() {
	path := filepath.Join(s.T().TempDir(), "config.json")
	err := os.WriteFile(path, []byte(`{
		"LogLevel": "info",
		"Ledger": {"MaxSupply": 5, "FirstTokenId": 1},
		"Journal": {"MaxTimeInQueue": "250ms"}
	}`), 0600)
	require.Nil(s.T(), err)

	config, err := Load(path)
	require.Nil(s.T(), err)
	require.Equal(s.T(), "info", config.LogLevel)
	require.Equal(s.T(), uint64(5), config.Ledger.MaxSupply)
	require.Equal(s.T(), uint64(1), config.Ledger.FirstTokenId)
	require.Equal(s.T(), 250*time.Millisecond, config.Journal.MaxTimeInQueue)

	// Not overwritten values stay default
	require.Equal(s.T(), uint64(10), config.Ledger.MaxBatchSize)
}

func (s *ConfigTestSuite) TestMissingFile() {
	_, err := Load(filepath.Join(s.T().TempDir(), "missing.json"))
	require.NotNil(s.T(), err)
}
