package main

import "github.com/hajimehoshi/ebiten/v2"

// joypadKeys maps the host keyboard to the target console's 10-button
// pad, in KEYINPUT bit order: A, B, Select, Start, Right, Left, Up,
// Down, R, L. Adapted from the teacher's console/controller.go, which
// polls the same way for its 8-button NES pad.
var joypadKeys = []ebiten.Key{
	ebiten.KeyZ,     // A
	ebiten.KeyX,     // B
	ebiten.KeySpace, // Select
	ebiten.KeyEnter, // Start
	ebiten.KeyRight,
	ebiten.KeyLeft,
	ebiten.KeyUp,
	ebiten.KeyDown,
	ebiten.KeyS, // R
	ebiten.KeyA, // L
}

// keyinput polls the host keyboard into a KEYINPUT-shaped register: bits
// are active-low (0 = pressed), matching the real register's convention,
// with the unused top bits (10-15) left clear.
func keyinput() uint16 {
	var v uint16 = 0x3FF
	for i, key := range joypadKeys {
		if ebiten.IsKeyPressed(key) {
			v &^= 1 << uint(i)
		}
	}
	return v
}
