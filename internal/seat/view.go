package seat

// View is the client-visible projection of a seat. Lock timestamps and
// connection identities never leave the process.
type View struct {
	ID     int     `json:"id"`
	Booked bool    `json:"booked"`
	User   *string `json:"user"`
	Locked bool    `json:"locked"`
}

// Deps lets you inject the transport-side broadcast without global singletons.
// The engine calls Broadcast after every successful mutation (and on lock
// expiry) with a full ordered snapshot; clients replace their state wholesale.
type Deps struct {
	Broadcast func(snapshot []View)
}

func (d Deps) publish(s *Store) {
	if d.Broadcast != nil {
		d.Broadcast(s.Snapshot())
	}
}
