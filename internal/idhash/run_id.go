// Package idhash computes deterministic identifiers for simulation
// runs. The same configuration and scenario always hash to the same ID,
// matching the engine's reproducibility guarantee.
package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/SkinxH/RPCfi-TRON/internal/domain"
)

// ComputeRunID computes a deterministic run_id using SHA256.
// Formula: SHA256(chain|strategy|scenario|apy|start|end)
// Returns hex-encoded hash (64 characters).
func ComputeRunID(cfg *domain.SimulationConfig, scenarioName string, apyPercent float64) string {
	data := fmt.Sprintf("%s|%s|%s|%g|%s|%s",
		cfg.ChainName,
		cfg.GrowthStrategy,
		scenarioName,
		apyPercent,
		cfg.Period.Start.Format("2006-01"),
		cfg.Period.End.Format("2006-01"),
	)

	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
