package types

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWei(t *testing.T) {
	testCases := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"10000000000000000", "10000000000000000", false},
		{"0", "0", false},
		{"0.01ether", "10000000000000000", false},
		{"0.01 ether", "10000000000000000", false},
		{"1ether", "1000000000000000000", false},
		{"1.5 Ether", "1500000000000000000", false},
		{".5ether", "500000000000000000", false},
		{"0.000000000000000001ether", "1", false},
		{"0.0000000000000000001ether", "", true},
		{"-1", "", true},
		{"-1ether", "", true},
		{"1e18", "", true},
		{"", "", true},
		{"ether", "0", false},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseWei(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.String())
		})
	}
}

func TestFormatEther(t *testing.T) {
	wei := func(s string) *big.Int {
		v, ok := new(big.Int).SetString(s, 10)
		require.True(t, ok)
		return v
	}

	assert.Equal(t, "0", FormatEther(nil))
	assert.Equal(t, "0", FormatEther(big.NewInt(0)))
	assert.Equal(t, "0.01", FormatEther(wei("10000000000000000")))
	assert.Equal(t, "1", FormatEther(wei("1000000000000000000")))
	assert.Equal(t, "1000.5", FormatEther(wei("1000500000000000000000")))
	assert.Equal(t, "0.000000000000000001", FormatEther(big.NewInt(1)))
	assert.Equal(t, "-0.02", FormatEther(wei("-20000000000000000")))
}
