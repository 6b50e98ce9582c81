// Command wareki converts between Gregorian and Japanese era dates.
package main

import "github.com/mesh-intelligence/wareki/internal/cli"

func main() {
	cli.Execute()
}
