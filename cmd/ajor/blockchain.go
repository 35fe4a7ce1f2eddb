package main

import (
	"time"

	valid "github.com/asaskevich/govalidator"
	"github.com/sirupsen/logrus"

	"github.com/ajor-finance/ajor/internal/chain/cosmwasm"
	"github.com/ajor-finance/ajor/internal/governance"
	"github.com/ajor-finance/ajor/internal/orchestrator"
	"github.com/ajor-finance/ajor/internal/storage"
	"github.com/ajor-finance/ajor/pkg/entities"
)

type BlockchainOpts struct {
	BlockchainNode             string        `long:"blockchain.node" env:"BLOCKCHAIN_NODE" default:"https://rpc-palvus.pion-1.ntrn.tech:443" description:"neutron node tendermint rpc address"`
	BlockchainChainID          string        `long:"blockchain.chain_id" env:"BLOCKCHAIN_CHAIN_ID" default:"pion-1" description:"chain id"`
	BlockchainAddressPrefix    string        `long:"blockchain.address_prefix" env:"BLOCKCHAIN_ADDRESS_PREFIX" default:"neutron" description:"bech32 prefix of accounts"`
	BlockchainMnemonic         string        `long:"blockchain.mnemonic" env:"MNEMONIC" description:"mnemonic of the signing account, queries only if empty"`
	BlockchainGasPrices        string        `long:"blockchain.gas_prices" env:"BLOCKCHAIN_GAS_PRICES" default:"0.025untrn" description:"gas prices"`
	BlockchainGasAdjustment    float64       `long:"blockchain.gas_adjustment" env:"BLOCKCHAIN_GAS_ADJUSTMENT" default:"1.4" description:"multiplier of simulated gas"`
	BlockchainFee              string        `long:"blockchain.fee" env:"BLOCKCHAIN_FEE" default:"auto" description:"fee mode: auto or gas limit"`
	BlockchainTxMemo           string        `long:"blockchain.tx_memo" env:"BLOCKCHAIN_TX_MEMO" description:"tx's memo"`
	BlockchainInclusionTimeout time.Duration `long:"blockchain.inclusion_timeout" env:"BLOCKCHAIN_INCLUSION_TIMEOUT" default:"60s" description:"how long to wait for tx to be included into a block"`
	BlockchainPollInterval     time.Duration `long:"blockchain.poll_interval" env:"BLOCKCHAIN_POLL_INTERVAL" default:"1s" description:"interval between tx inclusion checks"`
	BlockchainRetryAttempts    uint          `long:"blockchain.retry_attempts" env:"BLOCKCHAIN_RETRY_ATTEMPTS" default:"3" description:"attempts for transient failures"`
	BlockchainRetryInterval    time.Duration `long:"blockchain.retry_interval" env:"BLOCKCHAIN_RETRY_INTERVAL" default:"2s" description:"interval to be waited on transient error before retry"`

	Contract    string `long:"contract" env:"CONTRACT" required:"true" description:"address of the cooperative contract"`
	NativeDenom string `long:"native-denom" env:"NATIVE_DENOM" default:"untrn" description:"denom of the native coin"`
}

func mustGetChain() *cosmwasm.Chain {
	if !valid.IsURL(opts.BlockchainNode) {
		logrus.Fatalf("invalid node address %q", opts.BlockchainNode)
	}

	c, err := cosmwasm.New(cosmwasm.Config{
		NodeURI:          opts.BlockchainNode,
		ChainID:          opts.BlockchainChainID,
		AddressPrefix:    opts.BlockchainAddressPrefix,
		Mnemonic:         opts.BlockchainMnemonic,
		GasPrices:        opts.BlockchainGasPrices,
		GasAdjustment:    opts.BlockchainGasAdjustment,
		InclusionTimeout: opts.BlockchainInclusionTimeout,
		PollInterval:     opts.BlockchainPollInterval,
	})
	if err != nil {
		logrus.WithError(err).Fatal("failed to create chain client")
	}

	return c
}

// mustGetOrchestrator returns orchestrator connected to the mnemonic's account if signing is required.
func mustGetOrchestrator(j storage.Journal, sign bool) *orchestrator.Orchestrator {
	entities.AddressPrefix = opts.BlockchainAddressPrefix

	c := mustGetChain()

	o, err := orchestrator.New(orchestrator.Config{
		Contract:      opts.Contract,
		NativeDenom:   opts.NativeDenom,
		FeeMode:       opts.BlockchainFee,
		Memo:          opts.BlockchainTxMemo,
		RetryAttempts: opts.BlockchainRetryAttempts,
		RetryDelay:    opts.BlockchainRetryInterval,
	}, c, j)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create orchestrator")
	}

	if !sign {
		return o
	}

	if c.Account() == "" {
		logrus.Fatal("MNEMONIC is required to sign transactions")
	}

	if err := o.Connect(c.Account()); err != nil {
		logrus.WithError(err).Fatal("failed to connect")
	}

	logrus.WithField("account", c.Account()).Debug("connected")

	return o
}

func mustGetGovernance(j storage.Journal, sign bool) (*orchestrator.Orchestrator, *governance.Governance) {
	o := mustGetOrchestrator(j, sign)
	return o, governance.New(o)
}
