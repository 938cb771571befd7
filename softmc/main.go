// Command softmc encodes SoftMC controller instructions.
package main

import "github.com/sarchlab/softmc/softmc/cmd"

func main() {
	cmd.Execute()
}
