package clipboard

import atotto "github.com/atotto/clipboard"

// Writer sends text to a clipboard. Write-only; the storefront never reads
// back.
type Writer interface {
	Write(text string) error
}

// System writes to the OS clipboard.
type System struct{}

func (System) Write(text string) error {
	return atotto.WriteAll(text)
}
