package snapshot

// Static is a fixed in-memory source for tests and demo mode.
type Static struct {
	SessionActive bool
	Local         *Player
	AllPlayers    []Player
	AllLoot       []LootItem
	AllExits      []Exit
}

func (s *Static) Active() bool { return s.SessionActive }

func (s *Static) LocalPlayer() (Player, bool) {
	if s.Local == nil {
		return Player{}, false
	}
	return *s.Local, true
}

func (s *Static) Players() []Player { return s.AllPlayers }
func (s *Static) Loot() []LootItem  { return s.AllLoot }
func (s *Static) Exits() []Exit     { return s.AllExits }
