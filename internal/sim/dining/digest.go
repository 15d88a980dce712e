package dining

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
)

// stateDigest hashes the full mutable state in a fixed order. Two restaurants
// with the same seed and arrival schedule must produce identical digests at
// every tick.
func (r *Restaurant) stateDigest(nowTick uint64) string {
	h := sha256.New()
	var tmp [8]byte

	digestWriteU64(h, &tmp, nowTick)
	digestWriteI64(h, &tmp, r.cfg.Seed)
	h.Write([]byte(r.cfg.ID))

	r.digestCustomers(h, &tmp)
	r.digestStaff(h, &tmp)
	r.digestTables(h, &tmp)
	r.digestStations(h, &tmp)
	r.digestStats(h, &tmp)

	return hex.EncodeToString(h.Sum(nil))
}

func (r *Restaurant) digestCustomers(h hashWriter, tmp *[8]byte) {
	for _, id := range sortedCustomerIDs(r.customers) {
		c := r.customers[id]
		h.Write([]byte(c.ID))
		h.Write([]byte(c.State))
		digestWriteI64(h, tmp, int64(c.Pos.X))
		digestWriteI64(h, tmp, int64(c.Pos.Y))
		digestWriteU64(h, tmp, math.Float64bits(c.Satisfaction))
		h.Write([]byte(c.Waiter.Holder()))
		h.Write([]byte(c.Chef.Holder()))
		h.Write([]byte{boolByte(c.FoodInbound)})
		if c.Table != nil {
			digestWriteI64(h, tmp, int64(c.Table.Number))
		}
		if c.Order != nil {
			h.Write([]byte(c.Order.ID))
			h.Write([]byte(c.Order.Item))
			h.Write([]byte(c.Order.Status))
			digestWriteU64(h, tmp, c.Order.PlacedTick)
		}
	}
}

func (r *Restaurant) digestStaff(h hashWriter, tmp *[8]byte) {
	for _, id := range sortedWaiterIDs(r.waiters) {
		w := r.waiters[id]
		h.Write([]byte(w.ID))
		h.Write([]byte(w.State))
		digestWriteI64(h, tmp, int64(w.Pos.X))
		digestWriteI64(h, tmp, int64(w.Pos.Y))
		h.Write([]byte(w.Customer))
		h.Write([]byte(w.Reserved))
		if w.Carried != nil {
			h.Write([]byte(w.Carried.ID))
		}
	}
	for _, id := range sortedChefIDs(r.chefs) {
		k := r.chefs[id]
		h.Write([]byte(k.ID))
		h.Write([]byte(k.State))
		digestWriteI64(h, tmp, int64(k.Pos.X))
		digestWriteI64(h, tmp, int64(k.Pos.Y))
		h.Write([]byte(k.Customer))
		if k.Working != nil {
			h.Write([]byte(k.Working.ID))
		}
		if k.Carried != nil {
			h.Write([]byte(k.Carried.ID))
		}
	}
}

func (r *Restaurant) digestTables(h hashWriter, tmp *[8]byte) {
	for _, t := range r.tables {
		digestWriteI64(h, tmp, int64(t.Number))
		h.Write([]byte{boolByte(t.Reserved)})
		digestWriteU64(h, tmp, uint64(len(t.Seated)))
		for _, c := range t.Seated {
			h.Write([]byte(c.ID))
		}
		for _, f := range t.PlacedFood {
			digestFood(h, tmp, f)
		}
	}
}

func (r *Restaurant) digestStations(h hashWriter, tmp *[8]byte) {
	for _, s := range r.stations {
		h.Write([]byte(s.ID))
		for _, f := range s.Foods {
			digestFood(h, tmp, f)
		}
	}
}

func (r *Restaurant) digestStats(h hashWriter, tmp *[8]byte) {
	digestWriteU64(h, tmp, uint64(r.stats.Arrived))
	digestWriteU64(h, tmp, uint64(r.stats.Served))
	digestWriteU64(h, tmp, uint64(r.stats.Lost))
	digestWriteU64(h, tmp, uint64(r.stats.TurnedAway))
	digestWriteU64(h, tmp, uint64(r.stats.OrdersTaken))
	digestWriteU64(h, tmp, uint64(r.stats.OrdersDelivered))
	digestWriteU64(h, tmp, uint64(r.stats.WrongDeliveries))
	digestWriteU64(h, tmp, uint64(r.stats.FoodBurnt))
	digestWriteU64(h, tmp, uint64(r.stats.FoodDiscarded))
	digestWriteU64(h, tmp, math.Float64bits(r.stats.SatisfactionSum))
}

func digestFood(h hashWriter, tmp *[8]byte, f *Food) {
	h.Write([]byte(f.ID))
	h.Write([]byte(f.Type))
	h.Write([]byte(f.State))
	digestWriteU64(h, tmp, uint64(f.CookTicks))
	h.Write([]byte(f.ReservedBy.Holder()))
}

func digestWriteU64(h hashWriter, tmp *[8]byte, v uint64) {
	binary.LittleEndian.PutUint64(tmp[:], v)
	h.Write(tmp[:])
}

func digestWriteI64(h hashWriter, tmp *[8]byte, v int64) {
	digestWriteU64(h, tmp, uint64(v))
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

type hashWriter interface {
	Write(p []byte) (n int, err error)
}
