package probemap

type Stats struct {
	Size         int
	Tombstones   int
	Capacity     int
	BaseCapacity int

	// Occupied slots per hundred, the figure the resize policy looks at.
	LoadFactor int

	TombstonesCapacityRatio float32
	TombstonesSizeRatio     float32
}
