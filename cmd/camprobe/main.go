// camprobe discovers the observed process's cameras and prints the camera
// state as JSON once per interval. It is the headless check for a layout
// table: if camprobe finds the cameras and the numbers look sane, the overlay
// will too.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/varkas/overlens/camera"
	"github.com/varkas/overlens/memread"
)

type probeLine struct {
	Initialized bool      `json:"initialized"`
	FOV         float32   `json:"fov"`
	AspectRatio float32   `json:"aspect_ratio"`
	IsAiming    bool      `json:"is_aiming"`
	View        []float32 `json:"view"`
}

func main() {
	bridgeAddr := flag.String("bridge", "ws://127.0.0.1:7718", "acquisition bridge address")
	layoutPath := flag.String("layout", "", "YAML layout table (defaults to the built-in offsets)")
	demo := flag.Bool("demo", false, "probe a built-in mock address space instead of the bridge")
	aiming := flag.Bool("aiming", false, "request the optic camera")
	count := flag.Int("count", 0, "number of samples to print, 0 for unlimited")
	interval := flag.Duration("interval", time.Second, "time between samples")
	flag.Parse()

	layout := camera.DefaultLayout()
	if *layoutPath != "" {
		var err error
		layout, err = camera.LoadLayout(*layoutPath)
		if err != nil {
			log.Fatal(err)
		}
	}

	var reader memread.Reader
	if *demo {
		reader = demoReader(layout)
	} else {
		client, err := memread.Dial(*bridgeAddr + "/mem")
		if err != nil {
			log.Fatal(err)
		}
		defer client.Close()
		reader = client
	}

	provider := camera.NewProvider(reader, layout, nil)
	enc := json.NewEncoder(os.Stdout)

	for i := 0; *count == 0 || i < *count; i++ {
		if i > 0 {
			time.Sleep(*interval)
		}
		provider.Update(*aiming)
		state := provider.State()
		line := probeLine{
			Initialized: provider.Initialized(),
			FOV:         state.FOV,
			AspectRatio: state.AspectRatio,
			IsAiming:    state.IsAiming,
			View:        state.View[:],
		}
		if err := enc.Encode(line); err != nil {
			log.Fatal(err)
		}
	}
}

// demoReader seeds a minimal mock address space matching the layout.
func demoReader(layout camera.Layout) memread.Reader {
	m := memread.NewMockReader()
	const obj = 0x300000

	table := seedChain(m, layout.ManagerChain[0], layout.ManagerChain[1:], 0x200000, 0x100000)
	for i := 0; i < layout.ProbeLimit; i++ {
		m.SetUint64(table+uint64(i)*layout.SlotStride, 0)
	}
	m.SetUint64(table, obj)

	nameAddr := seedChain(m, obj, layout.NameChain, obj+0x8000, obj+0x1000)
	m.SetString(nameAddr, layout.PrimaryName)
	m.SetFloat32(obj+layout.FOVOffset, 68)
	m.SetFloat32(obj+layout.AspectOffset, 16.0/9.0)
	var ident [16]float32
	ident[0], ident[5], ident[10], ident[15] = 1, 1, 1, 1
	m.SetMatrix4(obj+layout.MatrixOffset, ident)
	return m
}

func seedChain(m *memread.MockReader, base uint64, offsets []uint64, target, scratch uint64) uint64 {
	if len(offsets) == 0 {
		return base
	}
	if len(offsets) == 1 {
		return base + offsets[0]
	}
	addr := base
	for i := 0; i < len(offsets)-1; i++ {
		next := scratch + uint64(i)*0x1000
		if i == len(offsets)-2 {
			next = target - offsets[len(offsets)-1]
		}
		m.SetUint64(addr+offsets[i], next)
		addr = next
	}
	return target
}
