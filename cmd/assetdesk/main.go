// Command assetdesk serves the asset desk API and runs maintenance tasks
// against its database.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
