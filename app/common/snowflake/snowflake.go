package snowflake

import (
	"hash/fnv"
	"os"
	"sync"

	bwsnowflake "github.com/bwmarrin/snowflake"
)

var (
	mu   sync.Mutex
	node *bwsnowflake.Node
)

// SetNodeID overrides the derived node ID (0-1023). Call once at bootstrap,
// before the first Next.
func SetNodeID(id int64) error {
	mu.Lock()
	defer mu.Unlock()
	n, err := bwsnowflake.NewNode(id & 0x3FF)
	if err != nil {
		return err
	}
	node = n
	return nil
}

// Next returns a new snowflake id. The node is derived from a hostname
// hash (10 bits) unless SetNodeID was called.
func Next() int64 {
	mu.Lock()
	defer mu.Unlock()
	if node == nil {
		host, _ := os.Hostname()
		h := fnv.New32a()
		_, _ = h.Write([]byte(host))
		n, err := bwsnowflake.NewNode(int64(h.Sum32()) & 0x3FF)
		if err != nil {
			n, _ = bwsnowflake.NewNode(1)
		}
		node = n
	}
	return node.Generate().Int64()
}
