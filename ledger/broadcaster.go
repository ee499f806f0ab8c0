package ledger

import (
	"context"
	"sync"

	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/hub/fault"
	"github.com/bitmark-inc/hub/tangle"
	"github.com/bitmark-inc/logger"
)

// ZMQBroadcaster gossips attached trytes to the ledger network over a
// ZMQ PUB socket, the same transport proof.publisher uses to announce
// newly mined blocks. Its Broadcast method backs
// NodeClient.BroadcastTransactions; NodeInfo, GetBalances, and the
// remaining methods of Client still belong to the node's own RPC
// endpoint.
type ZMQBroadcaster struct {
	mutex  sync.Mutex
	socket *zmq.Socket
	log    *logger.L
}

// NewZMQBroadcaster binds a PUB socket on bindTo (e.g.
// "tcp://127.0.0.1:5556").
func NewZMQBroadcaster(bindTo string) (*ZMQBroadcaster, error) {
	log := logger.New("broadcaster")

	socket, err := zmq.NewSocket(zmq.PUB)
	if nil != err {
		log.Errorf("new socket: %v", err)
		return nil, fault.ErrLedgerUnavailable
	}
	if err := socket.Bind(bindTo); nil != err {
		log.Errorf("bind %q: %v", bindTo, err)
		socket.Close()
		return nil, fault.ErrLedgerUnavailable
	}
	log.Infof("broadcasting on: %q", bindTo)
	return &ZMQBroadcaster{socket: socket, log: log}, nil
}

// Close shuts down the PUB socket.
func (b *ZMQBroadcaster) Close() {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.socket.Close()
}

// Broadcast publishes each tryte payload as a separate PUB message. ctx
// is accepted for interface symmetry with the rest of Client; the
// underlying zmq4 send call does not itself support cancellation.
func (b *ZMQBroadcaster) Broadcast(ctx context.Context, trytes []tangle.Trytes) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	for _, t := range trytes {
		if _, err := b.socket.Send(string(t), 0|zmq.DONTWAIT); nil != err {
			b.log.Errorf("send: %v", err)
			return fault.ErrPublicationFailed
		}
	}
	return nil
}
