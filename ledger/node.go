package ledger

import (
	"context"

	"github.com/bitmark-inc/hub/tangle"
)

// NodeClient composes the RPC transport (node-info, queries, attach,
// store) with the ZMQ broadcaster (gossip) into the full Client
// interface the attachment controller depends on.
type NodeClient struct {
	*RPCClient
	broadcaster *ZMQBroadcaster
}

// NewNodeClient wires an RPCClient and a ZMQBroadcaster together.
func NewNodeClient(rpc *RPCClient, broadcaster *ZMQBroadcaster) *NodeClient {
	return &NodeClient{RPCClient: rpc, broadcaster: broadcaster}
}

func (n *NodeClient) BroadcastTransactions(ctx context.Context, trytes []tangle.Trytes) error {
	return n.broadcaster.Broadcast(ctx, trytes)
}

// Close releases both the RPC connection and the broadcaster socket.
func (n *NodeClient) Close() {
	n.RPCClient.Close()
	n.broadcaster.Close()
}

var _ Client = (*NodeClient)(nil)
