// Command duocore hosts the two emulation cores this module implements
// as a single demo harness: it loads a cartridge through the 8-bit
// console's memory/mapper stack and drives the 32-bit console's
// software renderer from a canned VRAM/OAM fixture, presenting both via
// ebiten. Adapted from the teacher's root gintendo.go.
package main

import (
	"flag"
	"image"
	"log"

	"github.com/duocore-emu/duocore/cartridge"
	"github.com/duocore-emu/duocore/gbavideo"
	"github.com/duocore-emu/duocore/gbmem"
	"github.com/duocore-emu/duocore/mbc"
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/draw"
)

var romPath = flag.String("rom", "", "Path to an 8-bit console cartridge image to load into the memory/mapper demo.")

func main() {
	flag.Parse()

	app, err := newApp(*romPath)
	if err != nil {
		log.Fatalf("couldn't start duocore: %v", err)
	}

	ebiten.SetWindowSize(gbavideo.ScreenWidth*2, visibleLines*2)
	ebiten.SetWindowTitle("duocore")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(app); err != nil {
		log.Fatal(err)
	}
}

const visibleLines = 160

// app is the ebiten.Game implementation tying the two emulated
// subsystems together for the demo: a gbmem.Bus (if a ROM was given)
// and a gbavideo.Renderer always driven from a synthetic fixture.
type app struct {
	bus      *gbmem.Bus
	renderer *gbavideo.Renderer
	frame    *image.RGBA

	dmaDemoArmed bool
	scrollX      int
}

func newApp(romPath string) (*app, error) {
	a := &app{
		frame: image.NewRGBA(image.Rect(0, 0, gbavideo.ScreenWidth, visibleLines)),
	}

	if romPath != "" {
		cart, err := cartridge.New(romPath)
		if err != nil {
			return nil, err
		}
		mapper := mbc.New(cart, nil)
		a.bus = gbmem.New(cart, mapper, nil, nil)
	}

	mem := &gbavideo.VideoMemory{}
	installDemoFixture(mem)
	a.renderer = gbavideo.NewRenderer(mem)
	regs := a.renderer.Registers()
	regs.SetDISPCNT(1<<8 | 1<<12) // mode 0, BG0 and OBJ enabled
	regs.SetBGCNT(0, 1<<2)        // BG0: char base 0x4000, screen base 0

	return a, nil
}

// Update advances one frame: it pokes the memory bus's DMA engine (if a
// cartridge was loaded) to keep the mechanism exercised, and lets the
// keyboard nudge the renderer's demo register set so a user has
// something to interact with. This stands in for a real CPU core, which
// spec.md places out of scope for this module.
func (a *app) Update() error {
	if a.bus != nil {
		a.bus.Tick(4)
		if !a.dmaDemoArmed && !a.bus.DMAInFlight() {
			a.bus.StartDMA(0xC100)
			a.dmaDemoArmed = true
		}
	}

	keys := keyinput()
	if keys&(1<<4) == 0 { // Right
		a.scrollX++
	}
	if keys&(1<<5) == 0 { // Left
		a.scrollX--
	}
	a.renderer.Registers().SetBGHOFS(0, uint16(a.scrollX))
	return nil
}

func (a *app) Draw(screen *ebiten.Image) {
	for y := 0; y < visibleLines; y++ {
		row := a.renderer.DrawScanline(y)
		for x, c := range row {
			a.frame.Set(x, y, color555ToRGBA(c))
		}
	}

	bounds := screen.Bounds()
	dst := image.NewRGBA(bounds)
	draw.NearestNeighbor.Scale(dst, bounds, a.frame, a.frame.Bounds(), draw.Over, nil)
	screen.WritePixels(dst.Pix)
}

func (a *app) Layout(outsideWidth, outsideHeight int) (int, int) {
	return gbavideo.ScreenWidth * 2, visibleLines * 2
}
