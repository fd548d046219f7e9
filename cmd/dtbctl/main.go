// Command dtbctl inspects Flattened Device Tree blobs.
package main

func main() {
	execute()
}
