// Command fundplan prints goal funding plans from YAML plan files.
package main

func main() {
	Execute()
}
