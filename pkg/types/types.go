package types

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// DigestLength is the size of a keccak256 output.
const DigestLength = 32

// Digest is a fixed-width 32 byte hash. It is encoded as a 0x-prefixed hex
// string in JSON, matching the bytes32 values exchanged with the contract.
type Digest [DigestLength]byte

// ZeroDigest is the all-zero digest
var ZeroDigest = Digest{}

// ParseDigest decodes a hex string into a Digest. The 0x prefix is optional
// but the payload must be exactly 32 bytes.
func ParseDigest(s string) (Digest, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	b, err := hexutil.Decode(s)
	if err != nil {
		return Digest{}, fmt.Errorf("invalid digest %q: %w", s, err)
	}
	if len(b) != DigestLength {
		return Digest{}, fmt.Errorf("invalid digest length: expected %d bytes, got %d", DigestLength, len(b))
	}
	var d Digest
	copy(d[:], b)
	return d, nil
}

// DigestFromBytes copies b into a Digest, rejecting any other length.
func DigestFromBytes(b []byte) (Digest, error) {
	if len(b) != DigestLength {
		return Digest{}, fmt.Errorf("invalid digest length: expected %d bytes, got %d", DigestLength, len(b))
	}
	var d Digest
	copy(d[:], b)
	return d, nil
}

func (d Digest) Bytes() []byte {
	return d[:]
}

func (d Digest) Hex() string {
	return hexutil.Encode(d[:])
}

func (d Digest) String() string {
	return d.Hex()
}

func (d Digest) IsZero() bool {
	return d == ZeroDigest
}

// Compare orders digests by byte value.
func (d Digest) Compare(other Digest) int {
	return bytes.Compare(d[:], other[:])
}

func (d Digest) MarshalText() ([]byte, error) {
	return []byte(d.Hex()), nil
}

func (d *Digest) UnmarshalText(text []byte) error {
	parsed, err := ParseDigest(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DigestsToHex encodes a proof for display or JSON transport.
func DigestsToHex(digests []Digest) []string {
	out := make([]string, len(digests))
	for i, d := range digests {
		out[i] = d.Hex()
	}
	return out
}

// ParseDigests decodes a hex-encoded proof. Any malformed element fails the
// whole proof.
func ParseDigests(values []string) ([]Digest, error) {
	out := make([]Digest, len(values))
	for i, v := range values {
		d, err := ParseDigest(v)
		if err != nil {
			return nil, fmt.Errorf("proof element %d: %w", i, err)
		}
		out[i] = d
	}
	return out, nil
}

// DigestsToBytes32 converts a proof to the [][32]byte form abi bindings expect.
func DigestsToBytes32(digests []Digest) [][32]byte {
	out := make([][32]byte, len(digests))
	for i, d := range digests {
		out[i] = [32]byte(d)
	}
	return out
}

// ParseAddress validates and decodes a 20 byte hex address. Mixed-case input
// must carry a valid EIP-55 checksum; all-lower and all-upper input is accepted
// as is.
func ParseAddress(s string) (common.Address, error) {
	s = strings.TrimSpace(s)
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("invalid address %q: expected 20 bytes of hex", s)
	}
	addr := common.HexToAddress(s)

	body := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if body != strings.ToLower(body) && body != strings.ToUpper(body) {
		if addr.Hex()[2:] != body {
			return common.Address{}, fmt.Errorf("invalid address %q: bad EIP-55 checksum", s)
		}
	}
	return addr, nil
}

// ParseAddresses validates every entry, reporting the first failure with its position.
func ParseAddresses(values []string) ([]common.Address, error) {
	out := make([]common.Address, 0, len(values))
	for i, v := range values {
		addr, err := ParseAddress(v)
		if err != nil {
			return nil, fmt.Errorf("address %d: %w", i, err)
		}
		out = append(out, addr)
	}
	return out, nil
}

// AddressesToHex returns checksummed hex strings.
func AddressesToHex(addrs []common.Address) []string {
	out := make([]string, len(addrs))
	for i, a := range addrs {
		out[i] = a.Hex()
	}
	return out
}
