package main

import "metromc/cmd"

// TODO: checkpointing for chains (freeze the RNG state and current vector so
//       a run can resume across processes)

func main() {
	cmd.Execute()
}
