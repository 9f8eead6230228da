package snapshot

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gorilla/websocket"
)

// Feed streams entity snapshots from the acquisition bridge over a
// websocket. The bridge pushes a full world message whenever its scan ticks;
// the feed keeps only the latest one, so a slow render loop never queues
// stale frames.
type Feed struct {
	conn *websocket.Conn
	log  *slog.Logger

	mu     sync.RWMutex
	world  world
	closed bool
}

type wirePlayer struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Position    [3]float32            `json:"pos"`
	Bones       map[string][3]float32 `json:"bones"`
	Local       bool                  `json:"local"`
	Alive       bool                  `json:"alive"`
	Active      bool                  `json:"active"`
	Aiming      bool                  `json:"aiming"`
	Class       string                `json:"class"`
	Focused     bool                  `json:"focused"`
	Watchlisted bool                  `json:"watchlisted"`
}

type wireLoot struct {
	Name      string     `json:"name"`
	Price     int64      `json:"price"`
	Position  [3]float32 `json:"pos"`
	Important bool       `json:"important"`
}

type wireExit struct {
	Name     string     `json:"name"`
	Position [3]float32 `json:"pos"`
}

type wireWorld struct {
	Active  bool         `json:"active"`
	Players []wirePlayer `json:"players"`
	Loot    []wireLoot   `json:"loot"`
	Exits   []wireExit   `json:"exits"`
}

type world struct {
	active  bool
	local   *Player
	players []Player
	loot    []LootItem
	exits   []Exit
}

// DialFeed connects to the bridge's snapshot endpoint, e.g.
// "ws://127.0.0.1:7718/world", and starts the receive loop.
func DialFeed(addr string, log *slog.Logger) (*Feed, error) {
	if log == nil {
		log = slog.Default()
	}
	conn, _, err := websocket.DefaultDialer.Dial(addr, nil)
	if err != nil {
		return nil, fmt.Errorf("snapshot: dial feed %s: %w", addr, err)
	}
	f := &Feed{conn: conn, log: log}
	go f.receive()
	return f, nil
}

func (f *Feed) receive() {
	for {
		var msg wireWorld
		if err := f.conn.ReadJSON(&msg); err != nil {
			f.mu.Lock()
			closed := f.closed
			f.world = world{}
			f.mu.Unlock()
			if !closed {
				f.log.Warn("snapshot feed dropped", "err", err)
			}
			return
		}
		w := decodeWorld(msg)
		f.mu.Lock()
		f.world = w
		f.mu.Unlock()
	}
}

func decodeWorld(msg wireWorld) world {
	w := world{active: msg.Active}
	for _, wp := range msg.Players {
		p := Player{
			ID:          wp.ID,
			Name:        wp.Name,
			Position:    vec3(wp.Position),
			IsLocal:     wp.Local,
			IsAlive:     wp.Alive,
			IsActive:    wp.Active,
			IsAiming:    wp.Aiming,
			Focused:     wp.Focused,
			Watchlisted: wp.Watchlisted,
		}
		switch wp.Class {
		case "teammate":
			p.Classification = ClassTeammate
		case "hostile":
			p.Classification = ClassHostile
		case "bot":
			p.Classification = ClassBot
		}
		if len(wp.Bones) > 0 {
			p.Bones = make(map[BoneID]mgl32.Vec3, len(wp.Bones))
			for name, pos := range wp.Bones {
				if id, ok := BoneByName(name); ok {
					p.Bones[id] = vec3(pos)
				}
			}
		}
		if p.IsLocal {
			local := p
			w.local = &local
			continue
		}
		w.players = append(w.players, p)
	}
	for _, l := range msg.Loot {
		w.loot = append(w.loot, LootItem{
			Name:      l.Name,
			Price:     l.Price,
			Position:  vec3(l.Position),
			Important: l.Important,
		})
	}
	for _, e := range msg.Exits {
		w.exits = append(w.exits, Exit{Name: e.Name, Position: vec3(e.Position)})
	}
	return w
}

func vec3(v [3]float32) mgl32.Vec3 {
	return mgl32.Vec3{v[0], v[1], v[2]}
}

func (f *Feed) Active() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.world.active
}

func (f *Feed) LocalPlayer() (Player, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.world.local == nil {
		return Player{}, false
	}
	return *f.world.local, true
}

func (f *Feed) Players() []Player {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.world.players
}

func (f *Feed) Loot() []LootItem {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.world.loot
}

func (f *Feed) Exits() []Exit {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.world.exits
}

func (f *Feed) Close() error {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	return f.conn.Close()
}
