// ABOUTME: Sample encoder contract
// ABOUTME: Shared by the PCM byte encoder and the WAV export path
package encode

// Encoder turns 24-bit int32 samples into a byte payload such as the data
// chunk of an exported clip.
type Encoder interface {
	Encode(samples []int32) ([]byte, error)
	Close() error
}
