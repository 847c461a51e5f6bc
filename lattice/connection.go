package lattice

// Connection is the cost of the edge between a preceding node and an entry.
// An absent connection carries cost math.MaxInt32.
type Connection struct {
	cost int32
}

// NewConnection creates a connection.
func NewConnection(cost int32) Connection {
	return Connection{cost: cost}
}

// Cost returns the connection cost.
func (c Connection) Cost() int32 {
	return c.cost
}
