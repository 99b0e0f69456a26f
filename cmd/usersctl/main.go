// Command usersctl manages users on a running server.
package main

import "github.com/Vadym-Teslytskyy/usermanager/internal/cli"

func main() {
	cli.Execute()
}
