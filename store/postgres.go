package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bitmark-inc/hub/fault"
	"github.com/bitmark-inc/hub/tangle"
	"github.com/bitmark-inc/logger"
)

// PostgresGateway implements Gateway over a relational database via
// pgx, giving the core real begin/commit/rollback transactional
// semantics rather than an approximation over a key/value store.
type PostgresGateway struct {
	pool *pgxpool.Pool
	log  *logger.L
}

// NewPostgresGateway wires a PostgresGateway around an already-opened
// pool. Schema management lives in store/migrations, applied by the
// composition root via golang-migrate before the gateway is used.
func NewPostgresGateway(pool *pgxpool.Pool) *PostgresGateway {
	return &PostgresGateway{pool: pool, log: logger.New("store")}
}

// pgxTx adapts pgx.Tx to the Tx interface, making Commit/Rollback
// idempotent no-ops after the first call so a deferred Rollback after
// an explicit Commit (the standard pgx pattern for scoped acquisition)
// never surfaces pgx.ErrTxClosed to the caller.
type pgxTx struct {
	tx     pgx.Tx
	closed bool
}

func (t *pgxTx) Commit(ctx context.Context) error {
	if t.closed {
		return nil
	}
	t.closed = true
	if err := t.tx.Commit(ctx); nil != err {
		return fault.ErrDBTransient
	}
	return nil
}

func (t *pgxTx) Rollback(ctx context.Context) error {
	if t.closed {
		return nil
	}
	t.closed = true
	if err := t.tx.Rollback(ctx); nil != err {
		return fault.ErrRollbackFailed
	}
	return nil
}

func (g *PostgresGateway) BeginTransaction(ctx context.Context) (Tx, error) {
	tx, err := g.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if nil != err {
		g.log.Errorf("begin: %v", err)
		return nil, fault.ErrDBTransient
	}
	return &pgxTx{tx: tx}, nil
}

func (g *PostgresGateway) GetUnconfirmedSweeps(ctx context.Context, asOf time.Time) ([]Sweep, error) {
	const query = `
		SELECT s.id, s.bundle_hash, s.trytes, s.created_at
		FROM sweeps s
		WHERE s.created_at < $1
		  AND NOT EXISTS (
			SELECT 1 FROM sweep_tails t
			WHERE t.sweep_id = s.id AND t.confirmed
		  )
		ORDER BY s.created_at, s.id`

	rows, err := g.pool.Query(ctx, query, asOf)
	if nil != err {
		g.log.Errorf("get-unconfirmed-sweeps: %v", err)
		return nil, fault.ErrDBTransient
	}
	defer rows.Close()

	var sweeps []Sweep
	for rows.Next() {
		var (
			id, bundleHash string
			trytes         string
			createdAt      time.Time
		)
		if err := rows.Scan(&id, &bundleHash, &trytes, &createdAt); nil != err {
			g.log.Errorf("get-unconfirmed-sweeps scan: %v", err)
			return nil, fault.ErrDBTransient
		}
		sweeps = append(sweeps, Sweep{
			ID:         id,
			BundleHash: tangle.Hash(bundleHash),
			Trytes:     splitTrytes(trytes),
			CreatedAt:  createdAt,
		})
	}
	if err := rows.Err(); nil != err {
		return nil, fault.ErrDBTransient
	}
	return sweeps, nil
}

func (g *PostgresGateway) GetTailsForSweep(ctx context.Context, tx Tx, sweepID string) ([]tangle.Hash, error) {
	pg := mustPgxTx(tx)
	rows, err := pg.tx.Query(ctx, `
		SELECT tail_hash FROM sweep_tails
		WHERE sweep_id = $1
		ORDER BY created_at, tail_hash`, sweepID)
	if nil != err {
		g.log.Errorf("get-tails-for-sweep: %v", err)
		return nil, fault.ErrDBTransient
	}
	defer rows.Close()

	var tails []tangle.Hash
	for rows.Next() {
		var hash string
		if err := rows.Scan(&hash); nil != err {
			return nil, fault.ErrDBTransient
		}
		tails = append(tails, tangle.Hash(hash))
	}
	return tails, rows.Err()
}

func (g *PostgresGateway) CreateTail(ctx context.Context, tx Tx, sweepID string, tailHash tangle.Hash) error {
	pg := mustPgxTx(tx)
	_, err := pg.tx.Exec(ctx, `
		INSERT INTO sweep_tails (sweep_id, tail_hash, created_at, confirmed)
		VALUES ($1, $2, now(), false)
		ON CONFLICT (tail_hash) DO NOTHING`, sweepID, string(tailHash))
	if nil != err {
		g.log.Errorf("create-tail: %v", err)
		return fault.ErrDBTransient
	}
	return nil
}

func (g *PostgresGateway) MarkTailAsConfirmed(ctx context.Context, tx Tx, tailHash tangle.Hash) error {
	pg := mustPgxTx(tx)
	tag, err := pg.tx.Exec(ctx, `
		UPDATE sweep_tails SET confirmed = true WHERE tail_hash = $1`, string(tailHash))
	if nil != err {
		g.log.Errorf("mark-tail-as-confirmed: %v", err)
		return fault.ErrDBTransient
	}
	if 0 == tag.RowsAffected() {
		return fault.ErrUnknownTail
	}
	return nil
}

func mustPgxTx(tx Tx) *pgxTx {
	pg, ok := tx.(*pgxTx)
	if !ok {
		fault.Panic("store: Tx handed to PostgresGateway did not originate from it")
	}
	return pg
}

// splitTrytes breaks a bundle's concatenated trytes column back into
// per-transaction Trytes on the fixed transaction-trytes width; bundle
// serialization itself is an external collaborator, this is only the
// storage-column framing the core's own reads depend on.
func splitTrytes(concatenated string) []tangle.Trytes {
	const transactionTryteLength = 2673
	var out []tangle.Trytes
	for i := 0; i < len(concatenated); i += transactionTryteLength {
		end := i + transactionTryteLength
		if end > len(concatenated) {
			end = len(concatenated)
		}
		out = append(out, tangle.Trytes(concatenated[i:end]))
	}
	return out
}
