package id

import (
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	node *snowflake.Node
	once sync.Once
)

// Init initializes the Snowflake node for this process. Call once at boot
// before any New(); the node ID must be unique per running instance.
func Init(nodeID int64) error {
	var err error
	once.Do(func() {
		node, err = snowflake.NewNode(nodeID)
	})
	return err
}

// New returns a time-ordered int64 ID unique across instances.
// Used for slots, availability requests and outcomes.
func New() int64 {
	return node.Generate().Int64()
}
