package display

import (
	"fmt"
	"os"

	"github.com/nminhducit/rechronos/internal/logging"
)

// PrintBanner prints the ASCII art banner; uses Cyan if colors are enabled.
func PrintBanner() {
	if logging.Cyan != "" {
		fmt.Fprint(os.Stdout, "\033[1;96m")
	}
	fmt.Fprint(os.Stdout, `                 .d8888b.  888
                d88P  Y88b 888
                888    888 888
888d888 .d88b.  888        88888b.  888d888 .d88b.  88888b.   .d88b.  .d8888b
888P'  d8P  Y8b 888        888 '88b 888P'  d88''88b 888 '88b d88''88b 88K
888    88888888 888    888 888  888 888    888  888 888  888 888  888 'Y8888b.
888    Y8b.     Y88b  d88P 888  888 888    Y88..88P 888  888 Y88..88P      X88
888     'Y8888   'Y8888P'  888  888 888     'Y88P'  888  888  'Y88P'   88888P'
`)
	if logging.Cyan != "" {
		fmt.Fprintln(os.Stdout, logging.NC)
	}
}
