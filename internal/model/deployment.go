package model

// DeploymentResult is what a deployer reports for a mined contract creation.
type DeploymentResult struct {
	ChainID     uint64 `json:"chain_id"`
	Contract    string `json:"contract"`
	Address     string `json:"address"`
	TxHash      string `json:"tx_hash"`
	BlockNumber uint64 `json:"block_number"`
	GasUsed     uint64 `json:"gas_used"`
	Deployer    string `json:"deployer"`
}

// DeploymentRecord is the journal entry written after a successful deployment.
type DeploymentRecord struct {
	DeploymentResult
	Params     TrustParams `json:"params"`
	DeployedAt string      `json:"deployed_at"`
}
