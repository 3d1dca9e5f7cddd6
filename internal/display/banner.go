package display

import (
	"fmt"
	"io"

	"github.com/backmassage/recompress/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner(w io.Writer) {
	fmt.Fprint(w, term.Magenta)
	fmt.Fprint(w, `
 _ __ ___  ___ ___  _ __ ___  _ __  _ __ ___  ___ ___ 
| '__/ _ \/ __/ _ \| '_ `+"`"+` _ \| '_ \| '__/ _ \/ __/ __|
| | |  __/ (_| (_) | | | | | | |_) | | |  __/\__ \__ \
|_|  \___|\___\___/|_| |_| |_| .__/|_|  \___||___/___/
                             |_|
`)
	fmt.Fprint(w, term.NC)
}
