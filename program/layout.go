package program

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"github.com/gagliardetto/solana-go"
)

const ConfigAccountName = "Config"

// ConfigAccountSize is the allocated size of the config account, with room for an authority.
const ConfigAccountSize = 8 + 8 + 1 + 32 + 32 + 32 + 2 + 1 + 1 + 1

// Config is the pool state account. Authority is an Option<Pubkey>, so the layout after
// it shifts by 32 bytes when it is set.
type Config struct {
	Seed       uint64
	Authority  *solana.PublicKey
	MintX      solana.PublicKey
	MintY      solana.PublicKey
	Fee        uint16
	Locked     bool
	ConfigBump uint8
	LPBump     uint8
}

type configTail struct {
	MintX      solana.PublicKey
	MintY      solana.PublicKey
	Fee        uint16
	Locked     uint8
	ConfigBump uint8
	LPBump     uint8
}

func ParseConfig(data []byte) (*Config, error) {
	body, err := accountBody(ConfigAccountName, data)
	if err != nil {
		return nil, err
	}
	buf := bytes.NewReader(body)
	config := &Config{}
	if err := binary.Read(buf, binary.LittleEndian, &config.Seed); err != nil {
		return nil, fmt.Errorf("config seed: %w", err)
	}
	var option uint8
	if err := binary.Read(buf, binary.LittleEndian, &option); err != nil {
		return nil, fmt.Errorf("config authority: %w", err)
	}
	switch option {
	case 0:
	case 1:
		authority := solana.PublicKey{}
		if err := binary.Read(buf, binary.LittleEndian, &authority); err != nil {
			return nil, fmt.Errorf("config authority: %w", err)
		}
		config.Authority = &authority
	default:
		return nil, fmt.Errorf("config authority: invalid option tag %d", option)
	}
	tail := configTail{}
	if err := binary.Read(buf, binary.LittleEndian, &tail); err != nil {
		return nil, fmt.Errorf("config data is not valid: %w", err)
	}
	config.MintX = tail.MintX
	config.MintY = tail.MintY
	config.Fee = tail.Fee
	config.Locked = tail.Locked != 0
	config.ConfigBump = tail.ConfigBump
	config.LPBump = tail.LPBump
	return config, nil
}

// MarshalBinary writes the account as the program stores it, without the trailing space
// reserved for an unset authority.
func (config *Config) MarshalBinary() ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Write(AccountDiscriminator(ConfigAccountName))
	if err := binary.Write(buf, binary.LittleEndian, config.Seed); err != nil {
		return nil, err
	}
	if config.Authority == nil {
		buf.WriteByte(0)
	} else {
		buf.WriteByte(1)
		buf.Write(config.Authority.Bytes())
	}
	tail := configTail{
		MintX:      config.MintX,
		MintY:      config.MintY,
		Fee:        config.Fee,
		ConfigBump: config.ConfigBump,
		LPBump:     config.LPBump,
	}
	if config.Locked {
		tail.Locked = 1
	}
	if err := binary.Write(buf, binary.LittleEndian, &tail); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
