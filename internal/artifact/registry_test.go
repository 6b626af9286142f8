package artifact

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const trustABI = `[
  {
    "inputs": [
      {"internalType": "string", "name": "_name", "type": "string"},
      {"internalType": "string", "name": "_symbol", "type": "string"},
      {"internalType": "uint8", "name": "_decimals", "type": "uint8"},
      {"internalType": "address", "name": "_ksp", "type": "address"},
      {"internalType": "address", "name": "_kslp", "type": "address"}
    ],
    "stateMutability": "nonpayable",
    "type": "constructor"
  }
]`

func writeArtifact(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".json"), []byte(body), 0o644))
}

func TestDirRegistryResolve(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, "KctTrust", `{"contractName":"KctTrust","abi":`+trustABI+`,"bytecode":"0x6080604052"}`)

	reg := NewDirRegistry(dir)
	art, err := reg.Resolve("KctTrust")
	require.NoError(t, err)

	assert.Equal(t, "KctTrust", art.Name)
	assert.Equal(t, []byte{0x60, 0x80, 0x60, 0x40, 0x52}, art.Bytecode)
	require.Len(t, art.ABI.Constructor.Inputs, 5)
	assert.Equal(t, "uint8", art.ABI.Constructor.Inputs[2].Type.String())

	// served from cache once the file is gone
	require.NoError(t, os.Remove(filepath.Join(dir, "KctTrust.json")))
	cached, err := reg.Resolve("KctTrust")
	require.NoError(t, err)
	assert.Equal(t, art.Bytecode, cached.Bytecode)
}

func TestDirRegistryNotFound(t *testing.T) {
	_, err := NewDirRegistry(t.TempDir()).Resolve("Missing")
	assert.ErrorIs(t, err, ErrArtifactNotFound)
}

func TestParseRejects(t *testing.T) {
	cases := []struct {
		name string
		body string
		want error
	}{
		{"empty bytecode", `{"abi":` + trustABI + `,"bytecode":"0x"}`, ErrEmptyBytecode},
		{"unlinked", `{"abi":` + trustABI + `,"bytecode":"0x6080__$abcdef$__00"}`, ErrUnlinkedBytecode},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse("KctTrust", []byte(tc.body))
			assert.ErrorIs(t, err, tc.want)
		})
	}

	_, err := Parse("KctTrust", []byte(`{"bytecode":"0x60"}`))
	assert.Error(t, err, "missing abi")
}

func TestParseAcceptsUnprefixedBytecode(t *testing.T) {
	art, err := Parse("KctTrust", []byte(`{"abi":`+trustABI+`,"bytecode":"6080"}`))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x60, 0x80}, art.Bytecode)
}

func TestStaticRegistry(t *testing.T) {
	reg := StaticRegistry{"A": {Name: "A", Bytecode: []byte{1}}}

	art, err := reg.Resolve("A")
	require.NoError(t, err)
	assert.Equal(t, "A", art.Name)

	_, err = reg.Resolve("B")
	assert.ErrorIs(t, err, ErrArtifactNotFound)
}
