// Copyright (c) 2025 The Freyr developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"bytes"
	"io"
	"math/big"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/freyrlabs/freyr/freyr"
	"github.com/freyrlabs/freyr/node"
	"github.com/freyrlabs/freyr/pool/campaign"
)

// manifest declares the campaign parameters and the opening balances.
// Amounts are strings, decimal or 0x-prefixed hex.
type manifest struct {
	Campaign struct {
		Budget       string `yaml:"budget"`
		DurationDays uint32 `yaml:"duration-days"`
		LockinDays   uint32 `yaml:"lockin-days"`
		Asset        string `yaml:"asset"`
		StartTime    uint64 `yaml:"start-time"`
	} `yaml:"campaign"`
	Allocations []allocation `yaml:"allocations"`
}

type allocation struct {
	Address string `yaml:"address"`
	Balance string `yaml:"balance"`
}

func parseManifest(data []byte) (*manifest, error) {
	var m manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, errors.WithMessage(err, "decode manifest")
	}
	return &m, nil
}

func readManifest(path string) (*manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithMessage(err, "read manifest")
	}
	return parseManifest(data)
}

func parseAmount(s string) (*big.Int, error) {
	v, ok := math.ParseBig256(s)
	if !ok {
		return nil, errors.Errorf("malformed amount %q", s)
	}
	if v.Sign() < 0 {
		return nil, errors.Errorf("negative amount %q", s)
	}
	return v, nil
}

// parseAsset accepts a 32-byte hex identifier or a short symbol.
func parseAsset(s string) (freyr.Bytes32, error) {
	if s == "" {
		return freyr.Bytes32{}, errors.New("missing")
	}
	if strings.HasPrefix(strings.ToLower(s), "0x") {
		return freyr.ParseBytes32(s)
	}
	if len(s) > 32 {
		return freyr.Bytes32{}, errors.Errorf("symbol %q too long", s)
	}
	return freyr.BytesToBytes32([]byte(s)), nil
}

// CampaignConfig validates the campaign block and converts it.
func (m *manifest) CampaignConfig() (*campaign.Config, error) {
	budget, err := parseAmount(m.Campaign.Budget)
	if err != nil {
		return nil, errors.WithMessage(err, "campaign.budget")
	}
	if budget.Sign() == 0 {
		return nil, errors.New("campaign.budget: must be positive")
	}
	if m.Campaign.DurationDays == 0 {
		return nil, errors.New("campaign.duration-days: must be positive")
	}
	if m.Campaign.StartTime == 0 {
		return nil, errors.New("campaign.start-time: missing")
	}
	asset, err := parseAsset(m.Campaign.Asset)
	if err != nil {
		return nil, errors.WithMessage(err, "campaign.asset")
	}
	return &campaign.Config{
		Budget:       budget,
		DurationDays: m.Campaign.DurationDays,
		LockinDays:   m.Campaign.LockinDays,
		StartTime:    m.Campaign.StartTime,
		Asset:        asset,
	}, nil
}

// NodeAllocations converts the opening balances.
func (m *manifest) NodeAllocations() ([]node.Allocation, error) {
	allocs := make([]node.Allocation, 0, len(m.Allocations))
	seen := make(map[freyr.Address]bool)
	for i, a := range m.Allocations {
		addr, err := freyr.ParseAddress(a.Address)
		if err != nil {
			return nil, errors.WithMessagef(err, "allocations[%d].address", i)
		}
		if seen[*addr] {
			return nil, errors.Errorf("allocations[%d]: duplicate address %v", i, addr)
		}
		seen[*addr] = true

		balance, err := parseAmount(a.Balance)
		if err != nil {
			return nil, errors.WithMessagef(err, "allocations[%d].balance", i)
		}
		allocs = append(allocs, node.Allocation{Address: *addr, Balance: balance})
	}
	return allocs, nil
}

// campaignID derives a stable identifier used to name the instance dir, so
// distinct campaigns never share a store.
func campaignID(cfg *campaign.Config) freyr.Bytes32 {
	return freyr.Blake2bFn(func(w io.Writer) {
		rlp.Encode(w, []interface{}{
			cfg.Asset,
			cfg.Budget,
			cfg.StartTime,
			cfg.DurationDays,
			cfg.LockinDays,
		})
	})
}
