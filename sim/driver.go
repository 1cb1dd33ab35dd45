package sim

import (
	"context"
	"encoding/binary"
	"sync/atomic"
	"time"

	"github.com/iotaledger/tangle-engine/adapters"
	"github.com/iotaledger/tangle-engine/global"
	"github.com/iotaledger/tangle-engine/ids"
	"github.com/iotaledger/tangle-engine/tangle"
)

// Driver runs the three producers against an Engine until its context is
// cancelled, grounded in the teacher's RepeatInBackground-style periodic
// worker idiom (sequencer/backlog.go).
type Driver struct {
	engine *tangle.Engine
	cfg    Config
	log    *global.Global
	rnd    adapters.RandomSource

	pool    *recentPairPool
	nextMS  milestoneFlag
	seqNo   uint64
	msIndex uint32
}

func NewDriver(engine *tangle.Engine, cfg Config, log *global.Global, rnd adapters.RandomSource) *Driver {
	return &Driver{
		engine: engine,
		cfg:    cfg,
		log:    log,
		rnd:    rnd,
		pool:   newRecentPairPool(256),
	}
}

// Run starts the three producers and blocks until ctx is cancelled.
func (d *Driver) Run(ctx context.Context) {
	d.log.MarkWorkProcessStarted("sim.ingestion")
	d.log.MarkWorkProcessStarted("sim.issuance")
	d.log.MarkWorkProcessStarted("sim.milestone")

	go d.runIngestion(ctx)
	go d.runLocalIssuance(ctx)
	go d.runMilestoneProducer(ctx)

	<-ctx.Done()
	d.log.MustWaitAllWorkProcessesStop(5 * time.Second)
}

func (d *Driver) runIngestion(ctx context.Context) {
	defer d.log.MarkWorkProcessStopped("sim.ingestion")
	ticker := time.NewTicker(rateToPeriod(d.cfg.TPSIn))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.ingestOne()
		}
	}
}

func (d *Driver) ingestOne() {
	ma, pa, ok := d.pool.randomPair(d.rnd.UniformInt)
	if !ok {
		ma, pa = ids.NullID, ids.NullID
	}

	raw := d.nextPayloadBytes()
	payload := ids.DataPayload(raw)
	if idx, armed := d.nextMS.takeIfArmed(); armed {
		payload = ids.MilestonePayload(idx)
	}

	id := ids.MessageIdFromBytes(raw)
	if err := d.engine.InsertGossip(id, payload, ma, pa); err != nil {
		d.log.Tracef(tangle.TraceTagInsert, "ingestion insert refused: %v", err)
		return
	}
	d.pool.observe(id)
}

func (d *Driver) runLocalIssuance(ctx context.Context) {
	defer d.log.MarkWorkProcessStopped("sim.issuance")
	ticker := time.NewTicker(rateToPeriod(d.cfg.TPSOut))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.issueOne()
		}
	}
}

func (d *Driver) issueOne() {
	ma, pa, ok := d.engine.SelectTwoTips()
	if !ok {
		d.log.Tracef(tangle.TraceTagSelectTip, "local issuance found no eligible tips")
		return
	}
	raw := d.nextPayloadBytes()
	id := ids.MessageIdFromBytes(raw)
	payload := ids.DataPayload(raw)
	if err := d.engine.InsertOwn(id, payload, ma, pa); err != nil {
		d.log.Tracef(tangle.TraceTagInsert, "local issuance insert refused: %v", err)
		return
	}
	d.pool.observe(id)
}

func (d *Driver) runMilestoneProducer(ctx context.Context) {
	defer d.log.MarkWorkProcessStopped("sim.milestone")
	period := time.Duration(d.cfg.MilestoneIntervalSeconds * float64(time.Second))
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			next := atomic.AddUint32(&d.msIndex, 1)
			d.nextMS.arm(ids.MilestoneIndex(next))
		}
	}
}

func (d *Driver) nextPayloadBytes() []byte {
	seq := atomic.AddUint64(&d.seqNo, 1)
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], seq)
	return b[:]
}

func rateToPeriod(tps float64) time.Duration {
	if tps <= 0 {
		return time.Hour
	}
	return time.Duration(float64(time.Second) / tps)
}
