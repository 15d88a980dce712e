package dining

import (
	"fmt"

	"dinercraft/internal/sim/tasks"
)

// moveTo replaces the mover's current task. Retargeting mid-walk is fine;
// FSMs never observe intermediate positions, only completion.
func (r *Restaurant) moveTo(m *mover, target Vec2i, tolerance int) {
	n := r.nextTaskNum.Add(1)
	m.Move = &tasks.MovementTask{
		TaskID:      fmt.Sprintf("T%06d", n),
		Kind:        tasks.KindMoveTo,
		Target:      v2ToTask(target),
		Tolerance:   tolerance,
		StartedTick: r.tick.Load(),
	}
}

// systemMovement advances every mover one cell along the dominant axis and
// clears the task on arrival. The floor is an open grid with no collision;
// agents walk through each other.
func (r *Restaurant) systemMovement(nowTick uint64) {
	for _, id := range sortedCustomerIDs(r.customers) {
		stepMover(&r.customers[id].mover, r.cfg)
	}
	for _, id := range sortedWaiterIDs(r.waiters) {
		stepMover(&r.waiters[id].mover, r.cfg)
	}
	for _, id := range sortedChefIDs(r.chefs) {
		stepMover(&r.chefs[id].mover, r.cfg)
	}
}

func stepMover(m *mover, cfg Config) {
	if m.Move == nil {
		return
	}
	target := v2FromTask(m.Move.Target)
	if Manhattan(m.Pos, target) <= m.Move.Tolerance {
		m.Move = nil
		return
	}
	dx := target.X - m.Pos.X
	dy := target.Y - m.Pos.Y
	if absInt(dx) >= absInt(dy) {
		m.Pos.X += sign(dx)
	} else {
		m.Pos.Y += sign(dy)
	}
	m.Pos = clampToFloor(m.Pos, cfg)
	if Manhattan(m.Pos, target) <= m.Move.Tolerance {
		m.Move = nil
	}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func clampToFloor(p Vec2i, cfg Config) Vec2i {
	if p.X < 0 {
		p.X = 0
	}
	if p.Y < 0 {
		p.Y = 0
	}
	if p.X >= cfg.FloorW {
		p.X = cfg.FloorW - 1
	}
	if p.Y >= cfg.FloorH {
		p.Y = cfg.FloorH - 1
	}
	return p
}
