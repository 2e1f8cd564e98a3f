package main

import "github.com/s3v-cli/s3v/cmd/s3v/cmd"

func main() {
	cmd.Execute()
}
