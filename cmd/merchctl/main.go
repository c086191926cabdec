// Command merchctl administers a merchstore deployment: it seeds the catalog,
// manages the alumni records and the admin allow-list, and runs storefront
// searches against the stored catalog.
package main

import "os"

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
