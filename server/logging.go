package server

import (
	"log"

	"github.com/fatih/color"
)

// logRequest logs one served request with color-coded status. source says
// where a 200 body came from: "hit" (cache), "miss" (disk, now cached) or
// "uncached" (disk, too large to cache).
func logRequest(method, path, status, source string) {
	switch status {
	case "200":
		log.Print(color.GreenString("%s %s %s (%s)", method, path, status, source))
	case "400", "403", "404", "405":
		log.Print(color.RedString("%s %s %s", method, path, status))
	default:
		log.Print(color.YellowString("%s %s %s", method, path, status))
	}
}
