package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"trustdeploy/internal/model"
)

// Schema creates the deployment journal table.
const Schema = `
CREATE TABLE IF NOT EXISTS trust_deployments (
	chain_id        BIGINT      NOT NULL,
	tx_hash         TEXT        NOT NULL,
	contract        TEXT        NOT NULL,
	address         TEXT        NOT NULL,
	block_number    BIGINT      NOT NULL,
	gas_used        BIGINT      NOT NULL,
	deployer        TEXT        NOT NULL,
	name            TEXT        NOT NULL,
	symbol          TEXT        NOT NULL,
	decimals        SMALLINT    NOT NULL,
	protocol_token  TEXT        NOT NULL,
	liquidity_pool  TEXT        NOT NULL,
	deployed_at     TIMESTAMPTZ NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (chain_id, tx_hash)
)`

// Store provides Postgres persistence for the deployment journal.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the journal table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, Schema)
	return err
}

// PutDeployment inserts a record; a replay of the same transaction is a no-op.
func (s *Store) PutDeployment(ctx context.Context, record model.DeploymentRecord) error {
	deployedAt, err := time.Parse(time.RFC3339Nano, record.DeployedAt)
	if err != nil {
		return fmt.Errorf("parse deployed_at: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO trust_deployments (
			chain_id, tx_hash, contract, address, block_number, gas_used, deployer,
			name, symbol, decimals, protocol_token, liquidity_pool, deployed_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		ON CONFLICT (chain_id, tx_hash) DO NOTHING
	`,
		int64(record.ChainID),
		record.TxHash,
		record.Contract,
		record.Address,
		int64(record.BlockNumber),
		int64(record.GasUsed),
		record.Deployer,
		record.Params.Name,
		record.Params.Symbol,
		int16(record.Params.Decimals),
		record.Params.ProtocolToken,
		record.Params.LiquidityPool,
		deployedAt,
	)
	if err != nil {
		return fmt.Errorf("insert deployment: %w", err)
	}
	return nil
}
