package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"github.com/gagliardetto/solana-go"
	"github.com/joho/godotenv"
	"os"
)

var (
	ConfigFile   = "./config.json"
	EnvFile      = ".env"
	PoolInfoFile = "./pool-info.json"
	LogPath      = "./logs/"
	BackendLog   = "backend"
	StoreLog     = "store"
	ServerLog    = "server"
	NetworkLog   = "network"
	WatchLog     = "watch"
	CommandLog   = "ammctl"
)

const (
	EnvRpcUrl    = "AMM_RPC_URL"
	EnvWallet    = "AMM_WALLET"
	EnvProgramId = "AMM_PROGRAM_ID"
	EnvDBPasswd  = "AMM_DB_PASSWD"
)

const (
	DefaultRpc             = "https://api.devnet.solana.com"
	DefaultSlippageBps     = 100
	DefaultFeeBps          = 30
	DefaultRetryAttempts   = 5
	DefaultRetryDelayMs    = 1000
	DefaultConfirmAttempts = 30
	DefaultConfirmDelayMs  = 1000
	DefaultListen          = ":8080"
)

var (
	ErrNoNodes         = errors.New("no rpc node configured")
	ErrNoWallet        = errors.New("no wallet configured")
	ErrNoProgram       = errors.New("no program id configured")
	ErrInvalidSlippage = errors.New("slippage bps must be within [0, 10000]")
	ErrInvalidFee      = errors.New("fee bps must be within [0, 10000]")
	ErrInvalidRetry    = errors.New("retry attempts must be positive")
)

type Node struct {
	Rpc string `json:"rpc"`
	Ws  string `json:"ws"`
}

type Token struct {
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
}

type Config struct {
	Nodes           []*Node          `json:"nodes"`
	Wallet          string           `json:"wallet"`
	Program         solana.PublicKey `json:"program"`
	PoolInfo        string           `json:"pool_info"`
	TokenX          Token            `json:"token_x"`
	TokenY          Token            `json:"token_y"`
	TokenList       string           `json:"token_list"`
	FeeBps          uint16           `json:"fee_bps"`
	SlippageBps     uint16           `json:"slippage_bps"`
	RetryAttempts   int              `json:"retry_attempts"`
	RetryDelayMs    int64            `json:"retry_delay_ms"`
	ConfirmAttempts int              `json:"confirm_attempts"`
	ConfirmDelayMs  int64            `json:"confirm_delay_ms"`
	Simulate        bool             `json:"simulate"`
	LogDir          string           `json:"log_dir"`
	DBUrl           string           `json:"db_url"`
	DBScheme        string           `json:"db_scheme"`
	DBUser          string           `json:"db_user"`
	DBPasswd        string           `json:"db_passwd"`
	DingUrl         string           `json:"ding-url"`
	Listen          string           `json:"listen"`
}

func Default() *Config {
	return &Config{
		Nodes:           []*Node{{Rpc: DefaultRpc}},
		PoolInfo:        PoolInfoFile,
		TokenX:          Token{Symbol: "X", Decimals: 6},
		TokenY:          Token{Symbol: "Y", Decimals: 6},
		FeeBps:          DefaultFeeBps,
		SlippageBps:     DefaultSlippageBps,
		RetryAttempts:   DefaultRetryAttempts,
		RetryDelayMs:    DefaultRetryDelayMs,
		ConfirmAttempts: DefaultConfirmAttempts,
		ConfirmDelayMs:  DefaultConfirmDelayMs,
		LogDir:          LogPath,
		Listen:          DefaultListen,
	}
}

// Load reads the JSON config file over the defaults, then applies the environment. A missing
// file is not an error; a missing .env is not either.
func Load(file string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(file)
	if err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", file, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if err := godotenv.Load(EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", EnvFile, err)
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) applyEnv() error {
	if rpc := os.Getenv(EnvRpcUrl); rpc != "" {
		cfg.Nodes = append([]*Node{{Rpc: rpc}}, cfg.Nodes...)
	}
	if wallet := os.Getenv(EnvWallet); wallet != "" {
		cfg.Wallet = wallet
	}
	if programId := os.Getenv(EnvProgramId); programId != "" {
		program, err := solana.PublicKeyFromBase58(programId)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvProgramId, err)
		}
		cfg.Program = program
	}
	if passwd := os.Getenv(EnvDBPasswd); passwd != "" {
		cfg.DBPasswd = passwd
	}
	return nil
}

func (cfg *Config) Validate() error {
	if len(cfg.Nodes) == 0 || cfg.Nodes[0].Rpc == "" {
		return ErrNoNodes
	}
	if cfg.Wallet == "" {
		return ErrNoWallet
	}
	if cfg.Program.IsZero() {
		return ErrNoProgram
	}
	if cfg.SlippageBps > 10000 {
		return fmt.Errorf("%w: %d", ErrInvalidSlippage, cfg.SlippageBps)
	}
	if cfg.FeeBps > 10000 {
		return fmt.Errorf("%w: %d", ErrInvalidFee, cfg.FeeBps)
	}
	if cfg.RetryAttempts < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidRetry, cfg.RetryAttempts)
	}
	return nil
}

func (cfg *Config) Rpcs() []string {
	rpcs := make([]string, 0, len(cfg.Nodes))
	for _, node := range cfg.Nodes {
		rpcs = append(rpcs, node.Rpc)
	}
	return rpcs
}

func (cfg *Config) JournalEnabled() bool {
	return cfg.DBUrl != ""
}
