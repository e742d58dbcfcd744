package program

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"github.com/near/borsh-go"
)

const DiscriminatorSize = 8

func discriminator(namespace, name string) []byte {
	sum := sha256.Sum256([]byte(namespace + ":" + name))
	return sum[:DiscriminatorSize]
}

func InstructionDiscriminator(name string) []byte {
	return discriminator("global", name)
}

func AccountDiscriminator(name string) []byte {
	return discriminator("account", name)
}

// encodeInstruction lays out an Anchor instruction: discriminator then borsh args.
func encodeInstruction(name string, args interface{}) ([]byte, error) {
	payload, err := borsh.Serialize(args)
	if err != nil {
		return nil, fmt.Errorf("encode %s args: %w", name, err)
	}
	data := make([]byte, 0, DiscriminatorSize+len(payload))
	data = append(data, InstructionDiscriminator(name)...)
	return append(data, payload...), nil
}

// accountBody strips and checks the Anchor account discriminator.
func accountBody(name string, data []byte) ([]byte, error) {
	if len(data) < DiscriminatorSize {
		return nil, fmt.Errorf("%s account data too short: %d", name, len(data))
	}
	if !bytes.Equal(data[:DiscriminatorSize], AccountDiscriminator(name)) {
		return nil, fmt.Errorf("account is not a %s account", name)
	}
	return data[DiscriminatorSize:], nil
}
