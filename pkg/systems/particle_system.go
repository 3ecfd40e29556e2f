package systems

import (
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/gonewx/confetti/pkg/components"
	"github.com/gonewx/confetti/pkg/config"
)

// BurstID 爆发批次编号，从 1 开始递增，0 表示无效批次
type BurstID = uint64

// BurstState 批次生命周期：Pending → Live → Expired
type BurstState uint8

const (
	BurstPending BurstState = iota // 已预留或尚未分配，粒子还未插入粒子池
	BurstLive                      // 已插入，等待定时移除
	BurstExpired                   // 已定时移除、被清空或粒子池已关闭
)

// String returns the state name.
func (s BurstState) String() string {
	switch s {
	case BurstPending:
		return "pending"
	case BurstLive:
		return "live"
	case BurstExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// ParticleSystem 粒子池管理器
//
// 持有按插入顺序排列的存活粒子，负责：
//  1. 新爆发插入前按全局上限挤出最旧的粒子（饱和，不会失败）
//  2. 为每个批次安排在最长寿命之后的定时移除
//  3. 为渲染层提供只读快照
//
// 所有修改都在同一把锁下串行执行。定时移除是一个按截止时间排序的队列，
// 由调用方在更新循环里通过 Tick 驱动，不依赖后台计时器；
// Close 之后队列被清空，不会有回调访问已销毁的状态。
type ParticleSystem struct {
	// Verbose 打开后记录挤出与过期日志
	Verbose bool

	mu        sync.Mutex
	particles []*components.Particle
	expiries  expiryQueue
	live      map[BurstID]*expiry
	reserved  map[BurstID]struct{}
	nextBurst BurstID
	closed    bool
}

// NewParticleSystem creates an empty pool.
func NewParticleSystem() *ParticleSystem {
	return &ParticleSystem{
		particles: make([]*components.Particle, 0),
		live:      make(map[BurstID]*expiry),
		reserved:  make(map[BurstID]struct{}),
		nextBurst: 1,
	}
}

// ReserveBurst 预留下一个批次编号，批次在插入前保持 Pending
//
// 调用方用该编号和生成时刻调用 Emitter.EmitBurst，让粒子记录在创建时就带上
// BurstID 与 SpawnTime。粒子池已关闭时返回 0。
func (ps *ParticleSystem) ReserveBurst() BurstID {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.closed {
		return 0
	}
	id := ps.nextBurst
	ps.nextBurst++
	ps.reserved[id] = struct{}{}
	return id
}

// AdmitBurst 插入一批新粒子
//
// 若插入后总数超过 settings.MaxTotalParticles，先移除最旧的
// min(超出量, 当前粒子数) 个粒子；新批次总是完整插入。
// 粒子记录不会被修改：记录带有已预留的 BurstID 时沿用该编号，
// 否则分配新编号（此时记录上的 BurstID 保持原值）。
// 这一批粒子在 now + settings.MaxLifetime() 时被移除。
//
// 参数:
//   - now: 粒子池时钟（秒）
//   - settings: 本批次的设置；nil 时取第一个粒子的设置
//   - records: Emitter 生成的粒子
//
// 返回:
//   - 批次编号；records 为空或粒子池已关闭时返回 0
func (ps *ParticleSystem) AdmitBurst(now float64, settings *config.Settings, records []*components.Particle) BurstID {
	if len(records) == 0 {
		return 0
	}
	if settings == nil {
		settings = records[0].Settings
	}
	if settings == nil {
		return 0
	}

	ps.mu.Lock()
	defer ps.mu.Unlock()

	if ps.closed {
		return 0
	}

	// 容量检查：饱和地挤出最旧的粒子
	if excess := len(ps.particles) + len(records) - settings.MaxTotalParticles; excess > 0 {
		evict := min(excess, len(ps.particles))
		ps.evictOldestLocked(evict)
		if ps.Verbose {
			log.Printf("[ParticleSystem] Evicted %d oldest particles (cap %d)", evict, settings.MaxTotalParticles)
		}
	}

	id := records[0].BurstID
	if _, ok := ps.reserved[id]; ok {
		delete(ps.reserved, id)
	} else {
		id = ps.nextBurst
		ps.nextBurst++
	}

	ids := make(map[uuid.UUID]struct{}, len(records))
	for _, p := range records {
		ids[p.ID] = struct{}{}
	}
	ps.particles = append(ps.particles, records...)

	e := &expiry{burst: id, deadline: now + settings.MaxLifetime(), ids: ids}
	ps.expiries.schedule(e)
	ps.live[id] = e

	return id
}

// Tick 执行所有截止时间 <= now 的定时移除
//
// 按 ID 集合成员关系移除粒子；已被挤出的粒子直接忽略，
// 因此迟到或重复调用都是安全的。返回本次移除的粒子数。
func (ps *ParticleSystem) Tick(now float64) int {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if ps.closed {
		return 0
	}

	due := ps.expiries.popDue(now)
	if len(due) == 0 {
		return 0
	}

	remove := make(map[uuid.UUID]struct{})
	for _, e := range due {
		for id := range e.ids {
			remove[id] = struct{}{}
		}
		delete(ps.live, e.burst)
	}

	before := len(ps.particles)
	kept := ps.particles[:0]
	for _, p := range ps.particles {
		if _, gone := remove[p.ID]; !gone {
			kept = append(kept, p)
		}
	}
	clear(ps.particles[len(kept):])
	ps.particles = kept

	removed := before - len(kept)
	if ps.Verbose && removed > 0 {
		log.Printf("[ParticleSystem] Expired %d bursts, removed %d particles", len(due), removed)
	}
	return removed
}

// LiveParticles 返回存活粒子的快照（按插入顺序）
//
// 返回的切片归调用方所有；粒子记录本身只读。
func (ps *ParticleSystem) LiveParticles() []*components.Particle {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return append([]*components.Particle(nil), ps.particles...)
}

// Len returns the number of live particles.
func (ps *ParticleSystem) Len() int {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return len(ps.particles)
}

// PendingExpiries returns the number of bursts still waiting for removal.
func (ps *ParticleSystem) PendingExpiries() int {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.expiries.Len()
}

// NextExpiry returns the earliest pending deadline.
func (ps *ParticleSystem) NextExpiry() (float64, bool) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.expiries.Len() == 0 {
		return 0, false
	}
	return ps.expiries[0].deadline, true
}

// BurstState 查询批次状态
//
// 粒子全部被挤出的批次在定时移除触发前仍为 Live。
func (ps *ParticleSystem) BurstState(id BurstID) BurstState {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if id == 0 || id >= ps.nextBurst {
		return BurstPending
	}
	if _, ok := ps.reserved[id]; ok {
		return BurstPending
	}
	if _, ok := ps.live[id]; ok {
		return BurstLive
	}
	return BurstExpired
}

// Clear 移除所有粒子并取消所有定时移除
func (ps *ParticleSystem) Clear() {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.clearLocked()
}

// Close 销毁粒子池：丢弃所有粒子与未执行的定时移除
//
// 之后 AdmitBurst 与 Tick 都是空操作。可重复调用。
func (ps *ParticleSystem) Close() {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if ps.closed {
		return
	}
	ps.clearLocked()
	ps.closed = true
}

func (ps *ParticleSystem) clearLocked() {
	for _, e := range ps.live {
		ps.expiries.cancel(e)
	}
	clear(ps.live)
	clear(ps.reserved)
	clear(ps.particles)
	ps.particles = ps.particles[:0]
}

// evictOldestLocked drops the first n particles; n is already bounded by len.
func (ps *ParticleSystem) evictOldestLocked(n int) {
	if n <= 0 {
		return
	}
	remaining := copy(ps.particles, ps.particles[n:])
	clear(ps.particles[remaining:])
	ps.particles = ps.particles[:remaining]
}
