package ledger

import (
	"context"
	"time"

	gethrpc "github.com/ethereum/go-ethereum/rpc"

	"github.com/bitmark-inc/hub/fault"
	"github.com/bitmark-inc/hub/tangle"
	"github.com/bitmark-inc/logger"
)

// RPCClient implements Client over the ledger node's JSON-RPC-over-HTTP
// API using go-ethereum's generic rpc.Client as transport: the node's
// request/response shape (a single POST endpoint, one JSON command per
// call) is structurally the same JSON-RPC 2.0 contract go-ethereum
// already speaks to an Ethereum node, so its battle-tested client
// (retry-free, context-aware, connection-reusing) is reused here rather
// than hand-rolled.
type RPCClient struct {
	rpc *gethrpc.Client
	log *logger.L
}

// DialRPCClient connects to the ledger node at endpoint (e.g.
// "http://localhost:14265").
func DialRPCClient(ctx context.Context, endpoint string) (*RPCClient, error) {
	c, err := gethrpc.DialContext(ctx, endpoint)
	if nil != err {
		return nil, fault.ErrLedgerUnavailable
	}
	return &RPCClient{rpc: c, log: logger.New("ledger")}, nil
}

// Close releases the underlying connection.
func (c *RPCClient) Close() {
	c.rpc.Close()
}

type nodeInfoResult struct {
	LatestMilestone           string `json:"latestMilestone"`
	LatestMilestoneIndex      uint64 `json:"latestMilestoneIndex"`
	LatestSolidMilestoneIndex uint64 `json:"latestSolidMilestoneIndex"`
}

func (c *RPCClient) NodeInfo(ctx context.Context) (tangle.NodeInfo, error) {
	var result nodeInfoResult
	if err := c.rpc.CallContext(ctx, &result, "getNodeInfo"); nil != err {
		c.log.Errorf("getNodeInfo: %v", err)
		return tangle.NodeInfo{}, fault.ErrLedgerUnavailable
	}
	return tangle.NodeInfo{
		LatestMilestone:           tangle.Hash(result.LatestMilestone),
		LatestMilestoneIndex:      result.LatestMilestoneIndex,
		LatestSolidMilestoneIndex: result.LatestSolidMilestoneIndex,
	}, nil
}

func (c *RPCClient) GetBalances(ctx context.Context, addresses []string) (map[string]uint64, error) {
	var result struct {
		Balances []uint64 `json:"balances"`
	}
	if err := c.rpc.CallContext(ctx, &result, "getBalances", addresses); nil != err {
		c.log.Errorf("getBalances: %v", err)
		return nil, fault.ErrLedgerUnavailable
	}
	balances := make(map[string]uint64, len(addresses))
	for i, address := range addresses {
		if i < len(result.Balances) {
			balances[address] = result.Balances[i]
		} else {
			balances[address] = 0
		}
	}
	return balances, nil
}

func (c *RPCClient) FindTransactions(ctx context.Context, addresses []string, bundles []tangle.Hash) ([]tangle.Hash, error) {
	var result struct {
		Hashes []string `json:"hashes"`
	}
	request := map[string]interface{}{}
	if len(addresses) > 0 {
		request["addresses"] = addresses
	}
	if len(bundles) > 0 {
		request["bundles"] = bundles
	}
	if err := c.rpc.CallContext(ctx, &result, "findTransactions", request); nil != err {
		c.log.Errorf("findTransactions: %v", err)
		return nil, fault.ErrLedgerUnavailable
	}
	hashes := make([]tangle.Hash, len(result.Hashes))
	for i, h := range result.Hashes {
		hashes[i] = tangle.Hash(h)
	}
	return hashes, nil
}

type trytesResult struct {
	Address      string `json:"address"`
	Value        int64  `json:"value"`
	Timestamp    int64  `json:"timestamp"`
	CurrentIndex uint64 `json:"currentIndex"`
	LastIndex    uint64 `json:"lastIndex"`
	BundleHash   string `json:"bundleHash"`
	TrunkHash    string `json:"trunkTransaction"`
}

func (c *RPCClient) GetTrytes(ctx context.Context, hashes []tangle.Hash) ([]tangle.Transaction, error) {
	var result struct {
		Trytes []trytesResult `json:"trytes"`
	}
	if err := c.rpc.CallContext(ctx, &result, "getTrytes", hashes); nil != err {
		c.log.Errorf("getTrytes: %v", err)
		return nil, fault.ErrLedgerUnavailable
	}
	transactions := make([]tangle.Transaction, len(hashes))
	for i, h := range hashes {
		var tr trytesResult
		if i < len(result.Trytes) {
			tr = result.Trytes[i]
		}
		transactions[i] = tangle.Transaction{
			Hash:         h,
			Address:      tr.Address,
			Value:        tr.Value,
			Timestamp:    time.Unix(tr.Timestamp, 0).UTC(),
			CurrentIndex: tr.CurrentIndex,
			LastIndex:    tr.LastIndex,
			BundleHash:   tangle.Hash(tr.BundleHash),
			TrunkHash:    tangle.Hash(tr.TrunkHash),
		}
	}
	return transactions, nil
}

func (c *RPCClient) FilterConfirmedTails(ctx context.Context, tails []tangle.Hash, reference tangle.Hash) ([]tangle.Hash, error) {
	var result struct {
		States []bool `json:"states"`
	}
	request := map[string]interface{}{"transactions": tails}
	if "" != reference {
		request["tip"] = reference
	}
	if err := c.rpc.CallContext(ctx, &result, "getInclusionStates", request); nil != err {
		c.log.Errorf("getInclusionStates: %v", err)
		return nil, fault.ErrLedgerUnavailable
	}
	confirmed := make([]tangle.Hash, 0, len(tails))
	for i, t := range tails {
		if i < len(result.States) && result.States[i] {
			confirmed = append(confirmed, t)
		}
	}
	return confirmed, nil
}

func (c *RPCClient) FilterConsistentTails(ctx context.Context, tails []tangle.Hash) ([]tangle.Hash, error) {
	consistent := make([]tangle.Hash, 0, len(tails))
	for _, t := range tails {
		var result struct {
			State bool `json:"state"`
		}
		if err := c.rpc.CallContext(ctx, &result, "checkConsistency", []tangle.Hash{t}); nil != err {
			c.log.Errorf("checkConsistency: %v", err)
			return nil, fault.ErrLedgerUnavailable
		}
		if result.State {
			consistent = append(consistent, t)
		}
	}
	return consistent, nil
}

func (c *RPCClient) GetTransactionsToApprove(ctx context.Context, depth int, reference tangle.Hash) (tangle.TipPair, error) {
	var result struct {
		TrunkTransaction  string `json:"trunkTransaction"`
		BranchTransaction string `json:"branchTransaction"`
	}
	request := map[string]interface{}{"depth": depth}
	if "" != reference {
		request["reference"] = reference
	}
	if err := c.rpc.CallContext(ctx, &result, "getTransactionsToApprove", request); nil != err {
		c.log.Errorf("getTransactionsToApprove: %v", err)
		return tangle.TipPair{}, fault.ErrTipSelectionFailed
	}
	return tangle.TipPair{
		Trunk:  tangle.Hash(result.TrunkTransaction),
		Branch: tangle.Hash(result.BranchTransaction),
	}, nil
}

func (c *RPCClient) AttachToTangle(ctx context.Context, tips tangle.TipPair, mwm int, trytes []tangle.Trytes) ([]tangle.Trytes, error) {
	var result struct {
		Trytes []string `json:"trytes"`
	}
	err := c.rpc.CallContext(ctx, &result, "attachToTangle", tips.Trunk, tips.Branch, mwm, trytes)
	if nil != err {
		c.log.Errorf("attachToTangle: %v", err)
		return nil, fault.ErrLedgerUnavailable
	}
	attached := make([]tangle.Trytes, len(result.Trytes))
	for i, t := range result.Trytes {
		attached[i] = tangle.Trytes(t)
	}
	return attached, nil
}

func (c *RPCClient) StoreTransactions(ctx context.Context, trytes []tangle.Trytes) error {
	var result struct{}
	if err := c.rpc.CallContext(ctx, &result, "storeTransactions", trytes); nil != err {
		c.log.Errorf("storeTransactions: %v", err)
		return fault.ErrPublicationFailed
	}
	return nil
}
