package zone

import "fmt"

// Rand is the randomness the zone package needs. *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// OccupiedShare is the chance a slot is drawn as occupied on reset.
const OccupiedShare = 0.3

// seedLayout is the initial size and occupancy of each zone.
var seedLayout = map[Kind]struct{ total, occupied int }{
	KindCar:     {50, 38},
	KindBike:    {80, 52},
	KindBicycle: {100, 55},
}

// Seed builds the initial parking data: the first slots of each zone are
// occupied by generated vehicles, the rest are free.
func Seed(rng Rand) Zones {
	zs := make(Zones, len(Kinds))
	for _, k := range Kinds {
		layout := seedLayout[k]
		z := &Zone{}
		z.Append(k, layout.total)
		for _, s := range z.Slots[:layout.occupied] {
			s.Occupied = true
			plate := GeneratePlate(rng)
			s.VehicleNumber = &plate
		}
		z.Recount()
		zs[k] = z
	}
	return zs
}

// Redraw independently re-rolls occupancy of every slot and clears all holds.
func (zs Zones) Redraw(rng Rand) {
	for _, k := range Kinds {
		z, ok := zs[k]
		if !ok {
			continue
		}
		for _, s := range z.Slots {
			s.Free()
			if rng.Float64() < OccupiedShare {
				s.Occupied = true
				plate := GeneratePlate(rng)
				s.VehicleNumber = &plate
			}
		}
		z.Recount()
	}
}

// GeneratePlate returns a simulated registration like "AP 42 KD 1234".
func GeneratePlate(rng Rand) string {
	num := rng.IntN(99) + 1
	l1 := rune('A' + rng.IntN(26))
	l2 := rune('A' + rng.IntN(26))
	suffix := rng.IntN(9999) + 1
	return fmt.Sprintf("AP %d %c%c %d", num, l1, l2, suffix)
}
