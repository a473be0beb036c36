package enums

// TableStatus tracks physical occupancy of a table.
type TableStatus string

const (
	TableStatusAvailable TableStatus = "available"
	TableStatusOccupied  TableStatus = "occupied"
)

func (s TableStatus) IsValid() bool {
	return s == TableStatusAvailable || s == TableStatusOccupied
}

func (s TableStatus) String() string {
	return string(s)
}
