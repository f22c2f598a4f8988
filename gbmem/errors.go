package gbmem

import "fmt"

// BankOutOfRange reports a mapper bank selection past the end of the
// cartridge image. The memory controller recovers by masking the bank
// into range; this error documents why the resulting read looked odd.
type BankOutOfRange struct {
	Bank  int
	Count int
}

func (e *BankOutOfRange) Error() string {
	return fmt.Sprintf("bank %#x out of range for a %d-bank image", e.Bank, e.Count)
}

// InvalidRead/InvalidWrite report an access into the unusable
// 0xFEA0-0xFEFF region. Recovered: reads still yield 0xFF, writes are
// still dropped.
type InvalidRead struct{ Addr uint16 }

func (e *InvalidRead) Error() string { return fmt.Sprintf("invalid read at %#04x", e.Addr) }

type InvalidWrite struct{ Addr uint16 }

func (e *InvalidWrite) Error() string { return fmt.Sprintf("invalid write at %#04x", e.Addr) }

// DmaInFlight is returned by StartDMA when a transfer is armed while a
// previous one is still running. The spec treats re-arm as an allowed
// restart (matching the source's overwrite semantics); this error is
// informational, surfaced to the logging collaborator only.
type DmaInFlight struct{ Remaining int }

func (e *DmaInFlight) Error() string {
	return fmt.Sprintf("DMA re-armed with %d bytes still in flight", e.Remaining)
}
