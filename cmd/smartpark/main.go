package main

import "github.com/nekogravitycat/smartpark-backend/cmd/smartpark/command"

func main() {
	command.Execute()
}
