// Command stevedore renders per-environment Kubernetes manifests from a
// shared template and a layered settings file.
package main

import "github.com/cameronsjo/stevedore/internal/cmd"

func main() {
	cmd.Execute()
}
