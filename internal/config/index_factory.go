package config

import (
	"fmt"

	"github.com/tuannm99/reldb/internal/index"
	"github.com/tuannm99/reldb/internal/index/bptree"
	"github.com/tuannm99/reldb/internal/index/exthash"
	"github.com/tuannm99/reldb/internal/index/linhash"
	"github.com/tuannm99/reldb/internal/relation"
)

// IndexFactory builds the index.Map[relation.Tuple] constructor a table
// should use for its primary-key index, per cfg.Index.Kind.
func (c *Config) IndexFactory() (func() index.Map[relation.Tuple], error) {
	switch c.Index.Kind {
	case "", "bptree":
		order := c.Index.BTreeOrder
		return func() index.Map[relation.Tuple] { return bptree.New[relation.Tuple](order) }, nil
	case "exthash":
		dirSize, slots := c.Index.ExtDirSize, c.Index.HashSlots
		return func() index.Map[relation.Tuple] { return exthash.New[relation.Tuple](dirSize, slots) }, nil
	case "linhash":
		initSize, slots := c.Index.LinInitSize, c.Index.HashSlots
		return func() index.Map[relation.Tuple] { return linhash.New[relation.Tuple](initSize, slots) }, nil
	default:
		return nil, fmt.Errorf("config: unknown index kind %q", c.Index.Kind)
	}
}
