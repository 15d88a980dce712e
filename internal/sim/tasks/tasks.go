package tasks

type Kind string

const (
	KindMoveTo Kind = "MOVE_TO"
)

type MovementTask struct {
	TaskID      string
	Kind        Kind
	Target      Vec2i
	Tolerance   int
	StartedTick uint64
}

// Vec2i is duplicated here to avoid import cycles (tasks is used by dining).
type Vec2i struct{ X, Y int }
