// ABOUTME: Product name and version information
// ABOUTME: Used for the HTTP User-Agent and the TUI title
package version

const (
	Product      = "voicebox"
	Manufacturer = "Travesía"
	Version      = "0.3.0"
)

// UserAgent returns the value sent with every speech API request
func UserAgent() string {
	return Product + "/" + Version
}
